package value

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ToInterface converts the value into plain Go types: nil, bool, int64,
// float64, string, []any and map[string]any. Object insertion order is lost;
// the result is meant for order-insensitive consumers such as query
// evaluation.
func (v Value) ToInterface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		if v.num.IsFloat() {
			return v.num.Float64()
		}
		return v.num.Int64()
	case KindString:
		return v.str
	case KindArray:
		items := make([]any, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.ToInterface()
		}
		return items
	case KindObject:
		m := make(map[string]any, v.obj.Len())
		for i := 0; i < v.obj.Len(); i++ {
			key, val := v.obj.At(i)
			m[key] = val.ToInterface()
		}
		return m
	default:
		return nil
	}
}

// FromInterface converts plain Go types into a Value. Map keys are ordered
// lexicographically since Go maps carry no insertion order. Unsupported
// types fall back to their string representation.
func FromInterface(in any) Value {
	switch x := in.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Int(int64(x))
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return Int(int64(x))
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case json.Number:
		n, err := ParseNumber(x.String())
		if err != nil {
			return String(x.String())
		}
		return Num(n)
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = FromInterface(item)
		}
		return Array(items...)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for key := range x {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		obj := NewObject()
		for _, key := range keys {
			obj.Set(key, FromInterface(x[key]))
		}
		return Obj(obj)
	default:
		return String(fmt.Sprint(x))
	}
}
