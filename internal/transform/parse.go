package transform

import (
	"strconv"

	"github.com/martinohmann/dts/internal/keypath"
	"github.com/martinohmann/dts/internal/query"
)

// Parse parses a transformation expression into a pipeline. Expressions are
// chained calls separated by dots, for example:
//
//	delete_keys('foo').select('items').flatten(1)
//
// Operations without arguments may be written with or without parentheses.
func Parse(input string) (Pipeline, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	pipeline, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.typ != tokenEOF {
		return nil, expressionError("unexpected token at position %d", tok.pos)
	}

	return pipeline, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ tokenType, what string) (token, error) {
	tok := p.next()
	if tok.typ != typ {
		return token{}, expressionError("expected %s at position %d", what, tok.pos)
	}
	return tok, nil
}

// parsePipeline parses `call ('.' call)*`. It stops before tokens it cannot
// consume so it can be reused for nested sub-pipelines in call arguments.
func (p *parser) parsePipeline() (Pipeline, error) {
	var pipeline Pipeline

	for {
		op, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, op)

		if p.peek().typ != tokenDot {
			return pipeline, nil
		}
		p.next()
	}
}

func (p *parser) parseCall() (Op, error) {
	name, err := p.expect(tokenIdentifier, "operation name")
	if err != nil {
		return nil, err
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	return bindOp(name, args)
}

type argKind int

const (
	argString argKind = iota
	argNumber
	argPipeline
)

type arg struct {
	kind     argKind
	str      string
	num      int
	pipeline Pipeline
	pos      int
}

func (p *parser) parseArgs() ([]arg, error) {
	if p.peek().typ != tokenLParen {
		return nil, nil
	}
	p.next()

	if p.peek().typ == tokenRParen {
		p.next()
		return nil, nil
	}

	var args []arg

	for {
		a, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, a)

		switch tok := p.next(); tok.typ {
		case tokenComma:
		case tokenRParen:
			return args, nil
		default:
			return nil, expressionError("expected `,` or `)` at position %d", tok.pos)
		}
	}
}

func (p *parser) parseArg() (arg, error) {
	switch tok := p.peek(); tok.typ {
	case tokenString:
		p.next()
		return arg{kind: argString, str: tok.literal, pos: tok.pos}, nil
	case tokenNumber:
		p.next()
		n, err := strconv.Atoi(tok.literal)
		if err != nil {
			return arg{}, expressionError("invalid number %q at position %d", tok.literal, tok.pos)
		}
		return arg{kind: argNumber, num: n, pos: tok.pos}, nil
	case tokenIdentifier:
		pipeline, err := p.parsePipeline()
		if err != nil {
			return arg{}, err
		}
		return arg{kind: argPipeline, pipeline: pipeline, pos: tok.pos}, nil
	default:
		return arg{}, expressionError("expected argument at position %d", tok.pos)
	}
}

func bindOp(name token, args []arg) (Op, error) {
	switch name.literal {
	case "select":
		return bindSelect(name, args)
	case "mutate":
		return bindMutate(name, args)
	case "flatten":
		return bindFlatten(name, args)
	case "flatten_keys":
		if err := expectNoArgs(name, args); err != nil {
			return nil, err
		}
		return &flattenKeysOp{}, nil
	case "expand_keys":
		if err := expectNoArgs(name, args); err != nil {
			return nil, err
		}
		return &expandKeysOp{}, nil
	case "delete_keys":
		return bindDeleteKeys(name, args)
	case "deep_merge":
		if err := expectNoArgs(name, args); err != nil {
			return nil, err
		}
		return &deepMergeOp{}, nil
	case "sort":
		return bindSort(name, args)
	case "remove_empty_values":
		if err := expectNoArgs(name, args); err != nil {
			return nil, err
		}
		return &removeEmptyValuesOp{}, nil
	case "dedup":
		if err := expectNoArgs(name, args); err != nil {
			return nil, err
		}
		return &dedupOp{}, nil
	default:
		return nil, expressionError("unknown operation %q at position %d", name.literal, name.pos)
	}
}

func expectNoArgs(name token, args []arg) error {
	if len(args) != 0 {
		return expressionError("%s takes no arguments", name.literal)
	}
	return nil
}

func bindSelect(name token, args []arg) (Op, error) {
	if len(args) != 1 || args[0].kind != argString {
		return nil, expressionError("%s requires a single query argument", name.literal)
	}

	selector, err := query.New(args[0].str)
	if err != nil {
		return nil, expressionError("%s: %v", name.literal, err)
	}

	return &selectOp{selector: selector}, nil
}

func bindMutate(name token, args []arg) (Op, error) {
	if len(args) != 2 || args[0].kind != argString || args[1].kind != argPipeline {
		return nil, expressionError("%s requires a query argument and a sub-expression", name.literal)
	}

	selector, err := query.New(args[0].str)
	if err != nil {
		return nil, expressionError("%s: %v", name.literal, err)
	}

	return &mutateOp{selector: selector, pipeline: args[1].pipeline}, nil
}

func bindFlatten(name token, args []arg) (Op, error) {
	switch len(args) {
	case 0:
		return &flattenOp{depth: -1}, nil
	case 1:
		if args[0].kind != argNumber || args[0].num < 0 {
			return nil, expressionError("%s requires a non-negative depth", name.literal)
		}
		return &flattenOp{depth: args[0].num}, nil
	default:
		return nil, expressionError("%s takes at most one argument", name.literal)
	}
}

func bindDeleteKeys(name token, args []arg) (Op, error) {
	if len(args) == 0 {
		return nil, expressionError("%s requires at least one key", name.literal)
	}

	keys := make(map[string]struct{}, len(args))
	for _, a := range args {
		if a.kind != argString {
			return nil, expressionError("%s arguments must be strings", name.literal)
		}
		keys[a.str] = struct{}{}
	}

	return &deleteKeysOp{keys: keys}, nil
}

// bindSort accepts an optional order (`asc` or `desc`, written as a string)
// and an optional element key path, in either order.
func bindSort(name token, args []arg) (Op, error) {
	op := &sortOp{order: OrderAsc}
	haveOrder := false

	for _, a := range args {
		if a.kind != argString {
			return nil, expressionError("%s arguments must be strings", name.literal)
		}

		switch a.str {
		case "asc", "desc":
			if haveOrder {
				return nil, expressionError("%s: duplicate order argument", name.literal)
			}
			haveOrder = true
			if a.str == "desc" {
				op.order = OrderDesc
			}
		default:
			if op.key != nil {
				return nil, expressionError("%s: duplicate key argument", name.literal)
			}
			path, err := keypath.Parse(a.str)
			if err != nil {
				return nil, expressionError("%s: invalid key path %q", name.literal, a.str)
			}
			op.key = path
		}
	}

	return op, nil
}
