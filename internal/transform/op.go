// Package transform implements the transformation pipeline: a chained-call
// expression such as `delete_keys('k').deep_merge.select('[*]').flatten` is
// parsed once into an ordered list of operations which are then applied to
// a value left to right.
package transform

import (
	"github.com/martinohmann/dts/internal/keypath"
	"github.com/martinohmann/dts/internal/query"
	"github.com/martinohmann/dts/internal/value"
)

// Op is a single parsed operation. Arguments are captured at parse time;
// apply never re-inspects expression text.
type Op interface {
	// Name returns the operation name as written in expressions.
	Name() string

	apply(v value.Value) (value.Value, error)
}

// Pipeline is an ordered list of operations, applied left to right.
type Pipeline []Op

// Apply runs the pipeline against v and returns the transformed value. The
// input is never aliased or mutated; on error no partially transformed
// value is returned.
func (p Pipeline) Apply(v value.Value) (value.Value, error) {
	out := v.Clone()

	for _, op := range p {
		next, err := op.apply(out)
		if err != nil {
			return value.Null(), err
		}
		out = next
	}

	return out, nil
}

// Order is the sort direction for the sort operation.
type Order int

const (
	OrderAsc Order = iota
	OrderDesc
)

type selectOp struct {
	selector *query.Selector
}

func (o *selectOp) Name() string { return "select" }

type mutateOp struct {
	selector *query.Selector
	pipeline Pipeline
}

func (o *mutateOp) Name() string { return "mutate" }

type flattenOp struct {
	// depth < 0 flattens without bound.
	depth int
}

func (o *flattenOp) Name() string { return "flatten" }

type flattenKeysOp struct{}

func (o *flattenKeysOp) Name() string { return "flatten_keys" }

type expandKeysOp struct{}

func (o *expandKeysOp) Name() string { return "expand_keys" }

type deleteKeysOp struct {
	keys map[string]struct{}
}

func (o *deleteKeysOp) Name() string { return "delete_keys" }

type deepMergeOp struct{}

func (o *deepMergeOp) Name() string { return "deep_merge" }

type sortOp struct {
	order Order
	// key is an optional path extracted from each element to sort by; nil
	// sorts by the elements themselves.
	key keypath.Path
}

func (o *sortOp) Name() string { return "sort" }

type removeEmptyValuesOp struct{}

func (o *removeEmptyValuesOp) Name() string { return "remove_empty_values" }

type dedupOp struct{}

func (o *dedupOp) Name() string { return "dedup" }
