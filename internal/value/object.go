package value

// Object is an ordered mapping from string keys to values. Iteration and
// serialization follow insertion order; equality and hashing do not depend
// on it (see compare.go).
type Object struct {
	keys  []string
	index map[string]int
	vals  []Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Null(), false
	}
	i, ok := o.index[key]
	if !ok {
		return Null(), false
	}
	return o.vals[i], true
}

// Ref returns a pointer to the value stored under key for in-place updates.
func (o *Object) Ref(key string) (*Value, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return &o.vals[i], true
}

// Set stores val under key, keeping the original insertion position when the
// key already exists.
func (o *Object) Set(key string, val Value) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = val
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, val)
}

// Delete removes the entry for key, preserving the order of the remaining
// entries. It reports whether an entry was removed.
func (o *Object) Delete(key string) bool {
	i, ok := o.index[key]
	if !ok {
		return false
	}

	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.vals = append(o.vals[:i], o.vals[i+1:]...)
	delete(o.index, key)
	for k, j := range o.index {
		if j > i {
			o.index[k] = j - 1
		}
	}
	return true
}

// Keys returns the keys in insertion order. The returned slice must not be
// modified.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// At returns the i-th entry in insertion order.
func (o *Object) At(i int) (string, Value) {
	return o.keys[i], o.vals[i]
}

// Clone returns a deep copy.
func (o *Object) Clone() *Object {
	clone := NewObject()
	for i, key := range o.keys {
		clone.Set(key, o.vals[i].Clone())
	}
	return clone
}
