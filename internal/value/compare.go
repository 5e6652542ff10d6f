package value

import (
	"hash/fnv"
	"math"
	"strings"
)

// Compare returns -1, 0 or 1 ordering v against other. Variants order as
// null < bool < number < string < array < object; within a variant the
// comparison is structural, container lengths first.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}

	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		switch {
		case v.b == other.b:
			return 0
		case !v.b:
			return -1
		default:
			return 1
		}
	case KindNumber:
		return v.num.Compare(other.num)
	case KindString:
		return strings.Compare(v.str, other.str)
	case KindArray:
		return compareArrays(v.arr, other.arr)
	case KindObject:
		return compareObjects(v.obj, other.obj)
	default:
		return 0
	}
}

// Equal reports structural equality. Object key order is irrelevant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num.Equal(other.num)
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for i, key := range v.obj.Keys() {
			otherVal, ok := other.obj.Get(key)
			if !ok {
				return false
			}
			_, val := v.obj.At(i)
			if !val.Equal(otherVal) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func compareArrays(a, b []Value) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := range a {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareObjects(a, b *Object) int {
	if a.Len() != b.Len() {
		if a.Len() < b.Len() {
			return -1
		}
		return 1
	}
	for i := 0; i < a.Len(); i++ {
		ka, va := a.At(i)
		kb, vb := b.At(i)
		if c := strings.Compare(ka, kb); c != 0 {
			return c
		}
		if c := va.Compare(vb); c != 0 {
			return c
		}
	}
	return 0
}

// Variant tags mixed into the hash so that e.g. false, 0 and "" do not
// collide.
const (
	hashTagNull   = 0xf9
	hashTagBool   = 0xfa
	hashTagNumber = 0xfb
	hashTagString = 0xfc
	hashTagArray  = 0xfd
	hashTagObject = 0xfe
	hashTagKey    = 0xff
)

// Hash returns a content hash consistent with Equal: equal values hash
// equal. Object entries are combined order-independently so key order does
// not influence the result.
func (v Value) Hash() uint64 {
	h := fnv.New64a()
	v.hashInto(h)
	return h.Sum64()
}

type hashWriter interface {
	Write(p []byte) (int, error)
	Sum64() uint64
}

func (v Value) hashInto(h hashWriter) {
	var tag [1]byte

	switch v.kind {
	case KindNull:
		tag[0] = hashTagNull
		h.Write(tag[:])
	case KindBool:
		tag[0] = hashTagBool
		h.Write(tag[:])
		if v.b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case KindNumber:
		tag[0] = hashTagNumber
		h.Write(tag[:])
		// Numerically equal int and float values must hash equal.
		f := v.num.Float64()
		var buf [8]byte
		bits := math.Float64bits(f)
		for i := 0; i < 8; i++ {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
	case KindString:
		tag[0] = hashTagString
		h.Write(tag[:])
		h.Write([]byte(v.str))
	case KindArray:
		tag[0] = hashTagArray
		h.Write(tag[:])
		for _, item := range v.arr {
			item.hashInto(h)
		}
	case KindObject:
		tag[0] = hashTagObject
		h.Write(tag[:])
		// XOR of per-entry hashes keeps the result key-order independent.
		var acc uint64
		for i := 0; i < v.obj.Len(); i++ {
			key, val := v.obj.At(i)
			eh := fnv.New64a()
			eh.Write([]byte{hashTagKey})
			eh.Write([]byte(key))
			val.hashInto(eh)
			acc ^= eh.Sum64()
		}
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(acc >> (8 * i))
		}
		h.Write(buf[:])
	}
}
