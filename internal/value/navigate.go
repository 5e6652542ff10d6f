package value

import (
	"github.com/martinohmann/dts/internal/keypath"
)

// Get resolves path against the tree and returns a pointer to the addressed
// node, or false if any segment does not resolve. An empty path addresses
// the receiver itself.
func (v *Value) Get(path keypath.Path) (*Value, bool) {
	cur := v
	for _, seg := range path {
		if seg.IsIndex() {
			if cur.kind != KindArray || seg.Index() >= len(cur.arr) {
				return nil, false
			}
			cur = &cur.arr[seg.Index()]
			continue
		}

		if cur.kind != KindObject {
			return nil, false
		}
		ref, ok := cur.obj.Ref(seg.Key())
		if !ok {
			return nil, false
		}
		cur = ref
	}
	return cur, true
}

// Set assigns val at path, creating intermediate objects for key segments
// and intermediate arrays for index segments. Arrays are padded with nulls
// up to the required index, so sparse indices produce left-padding. An
// existing node of the wrong container kind is replaced.
func (v *Value) Set(path keypath.Path, val Value) {
	cur := v
	for _, seg := range path {
		if seg.IsIndex() {
			if cur.kind != KindArray {
				*cur = Array()
			}
			for len(cur.arr) <= seg.Index() {
				cur.arr = append(cur.arr, Null())
			}
			cur = &cur.arr[seg.Index()]
			continue
		}

		if cur.kind != KindObject {
			*cur = Obj(NewObject())
		}
		ref, ok := cur.obj.Ref(seg.Key())
		if !ok {
			cur.obj.Set(seg.Key(), Null())
			ref, _ = cur.obj.Ref(seg.Key())
		}
		cur = ref
	}
	*cur = val
}

// Remove deletes the node at path and reports whether it existed. Removing
// an array element shifts the following elements left. An empty path resets
// the receiver to null.
func (v *Value) Remove(path keypath.Path) bool {
	if len(path) == 0 {
		*v = Null()
		return true
	}

	parent, ok := v.Get(path[:len(path)-1])
	if !ok {
		return false
	}

	last := path[len(path)-1]
	if last.IsIndex() {
		if parent.kind != KindArray || last.Index() >= len(parent.arr) {
			return false
		}
		parent.arr = append(parent.arr[:last.Index()], parent.arr[last.Index()+1:]...)
		return true
	}

	if parent.kind != KindObject {
		return false
	}
	return parent.obj.Delete(last.Key())
}
