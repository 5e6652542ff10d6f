package transform

import (
	"slices"

	"github.com/martinohmann/dts/internal/gron"
	"github.com/martinohmann/dts/internal/keypath"
	"github.com/martinohmann/dts/internal/value"
)

func (o *selectOp) apply(v value.Value) (value.Value, error) {
	matches := o.selector.Select(v)
	if len(matches) == 1 {
		return matches[0], nil
	}
	return value.Array(matches...), nil
}

func (o *mutateOp) apply(v value.Value) (value.Value, error) {
	for _, match := range o.selector.SelectLocated(v) {
		mutated, err := o.pipeline.Apply(match.Value)
		if err != nil {
			return value.Null(), err
		}
		v.Set(match.Path, mutated)
	}
	return v, nil
}

func (o *flattenOp) apply(v value.Value) (value.Value, error) {
	items, ok := v.AsArray()
	if !ok {
		return v, nil
	}
	return value.Array(flattenItems(items, o.depth)...), nil
}

func flattenItems(items []value.Value, depth int) []value.Value {
	out := make([]value.Value, 0, len(items))
	for _, item := range items {
		nested, ok := item.AsArray()
		if !ok || depth == 0 {
			out = append(out, item)
			continue
		}
		next := depth - 1
		if depth < 0 {
			next = depth
		}
		out = append(out, flattenItems(nested, next)...)
	}
	return out
}

func (o *flattenKeysOp) apply(v value.Value) (value.Value, error) {
	flat := value.NewObject()
	for _, s := range gron.Encode(v) {
		flat.Set(s.Path.String(), s.Value)
	}
	return value.Obj(flat), nil
}

func (o *expandKeysOp) apply(v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindObject:
		obj, _ := v.AsObject()
		if obj.Len() == 0 {
			return v, nil
		}

		root := value.Null()
		for i := 0; i < obj.Len(); i++ {
			key, val := obj.At(i)
			path, err := keypath.Parse(key)
			if err != nil {
				// Keys that are not valid path text stay literal keys.
				path = keypath.Path{keypath.Key(key)}
			}
			root.Set(path, val)
		}
		return root, nil
	case value.KindArray:
		items, _ := v.AsArray()
		for i := range items {
			expanded, err := o.apply(items[i])
			if err != nil {
				return value.Null(), err
			}
			items[i] = expanded
		}
		return v, nil
	default:
		return v, nil
	}
}

func (o *deleteKeysOp) apply(v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindObject, value.KindArray:
		o.deleteFrom(&v)
		return v, nil
	default:
		return value.Null(), typeError(o.Name(), "object or array", v.Kind())
	}
}

func (o *deleteKeysOp) deleteFrom(v *value.Value) {
	switch v.Kind() {
	case value.KindObject:
		obj, _ := v.AsObject()
		// Delete shifts the key slice in place, so iterate a snapshot.
		for _, key := range slices.Clone(obj.Keys()) {
			if _, drop := o.keys[key]; drop {
				obj.Delete(key)
				continue
			}
			ref, _ := obj.Ref(key)
			o.deleteFrom(ref)
		}
	case value.KindArray:
		items, _ := v.AsArray()
		for i := range items {
			o.deleteFrom(&items[i])
		}
	}
}

func (o *deepMergeOp) apply(v value.Value) (value.Value, error) {
	items, ok := v.AsArray()
	if !ok {
		return value.Null(), typeError(o.Name(), "array", v.Kind())
	}

	merged := value.Array()
	for _, item := range items {
		merged = merge(merged, item)
	}
	return merged, nil
}

// merge folds rhs into lhs: null on the right never overwrites, objects
// merge per key, arrays merge index-wise extending with the longer side,
// anything else the right side wins.
func merge(lhs, rhs value.Value) value.Value {
	if rhs.IsNull() {
		return lhs
	}

	lobj, lok := lhs.AsObject()
	if robj, rok := rhs.AsObject(); lok && rok {
		for i := 0; i < robj.Len(); i++ {
			key, rval := robj.At(i)
			if lref, ok := lobj.Ref(key); ok {
				*lref = merge(*lref, rval)
				continue
			}
			lobj.Set(key, rval)
		}
		return lhs
	}

	larr, lok := lhs.AsArray()
	if rarr, rok := rhs.AsArray(); lok && rok {
		out := make([]value.Value, 0, max(len(larr), len(rarr)))
		for i := 0; i < max(len(larr), len(rarr)); i++ {
			switch {
			case i >= len(larr):
				out = append(out, rarr[i])
			case i >= len(rarr):
				out = append(out, larr[i])
			default:
				out = append(out, merge(larr[i], rarr[i]))
			}
		}
		return value.Array(out...)
	}

	return rhs
}

func (o *sortOp) apply(v value.Value) (value.Value, error) {
	items, ok := v.AsArray()
	if !ok {
		return value.Null(), typeError(o.Name(), "array", v.Kind())
	}

	slices.SortStableFunc(items, func(a, b value.Value) int {
		c := o.sortKey(a).Compare(o.sortKey(b))
		if o.order == OrderDesc {
			return -c
		}
		return c
	})
	return v, nil
}

func (o *sortOp) sortKey(v value.Value) value.Value {
	if o.key == nil {
		return v
	}
	if ref, ok := v.Get(o.key); ok {
		return *ref
	}
	return value.Null()
}

func (o *removeEmptyValuesOp) apply(v value.Value) (value.Value, error) {
	return prune(v), nil
}

// prune drops empty children bottom-up. The root itself is kept even when
// pruning empties it.
func prune(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindArray:
		items, _ := v.AsArray()
		kept := make([]value.Value, 0, len(items))
		for _, item := range items {
			if p := prune(item); !p.IsEmpty() {
				kept = append(kept, p)
			}
		}
		return value.Array(kept...)
	case value.KindObject:
		obj, _ := v.AsObject()
		kept := value.NewObject()
		for i := 0; i < obj.Len(); i++ {
			key, val := obj.At(i)
			if p := prune(val); !p.IsEmpty() {
				kept.Set(key, p)
			}
		}
		return value.Obj(kept)
	default:
		return v
	}
}

func (o *dedupOp) apply(v value.Value) (value.Value, error) {
	items, ok := v.AsArray()
	if !ok {
		return value.Null(), typeError(o.Name(), "array", v.Kind())
	}

	seen := make(map[uint64][]value.Value, len(items))
	kept := make([]value.Value, 0, len(items))

	for _, item := range items {
		h := item.Hash()
		duplicate := false
		for _, prev := range seen[h] {
			if prev.Equal(item) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		seen[h] = append(seen[h], item)
		kept = append(kept, item)
	}
	return value.Array(kept...), nil
}
