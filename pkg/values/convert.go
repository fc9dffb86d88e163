package values

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"
)

// FromAny converts decoded TOML, YAML, JSON or koanf data into a Value.
// nil becomes Absent. Types with no natural mapping use their fmt form.
func FromAny(in any) Value {
	switch x := in.(type) {
	case nil:
		return Absent()
	case Value:
		return x.clone()
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i)
		}
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return String(x.String())
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
		return Number(float64(x))
	case float64:
		return Number(x)
	case time.Time:
		return String(x.Format(time.RFC3339))
	case fmt.Stringer:
		return String(x.String())
	case []any:
		seq := make([]Value, len(x))
		for i, item := range x {
			seq[i] = FromAny(item)
		}
		return Value{kind: KindSequence, seq: seq}
	case []string:
		return Strings(x...)
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, item := range x {
			m[k] = FromAny(item)
		}
		return Value{kind: KindMapping, m: m}
	}

	rv := reflect.ValueOf(in)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		seq := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			seq[i] = FromAny(rv.Index(i).Interface())
		}
		return Value{kind: KindSequence, seq: seq}
	case reflect.Map:
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = FromAny(iter.Value().Interface())
		}
		return Value{kind: KindMapping, m: m}
	case reflect.Pointer:
		if rv.IsNil() {
			return Absent()
		}
		return FromAny(rv.Elem().Interface())
	}
	return String(fmt.Sprint(in))
}

// Variables maps variable names to values. Names are case-sensitive.
type Variables map[string]Value

// FromMap converts plain decoded data into Variables
func FromMap(in map[string]any) Variables {
	vars := make(Variables, len(in))
	for k, v := range in {
		vars[k] = FromAny(v)
	}
	return vars
}

// Lookup returns the value bound to name, or Absent
func (vs Variables) Lookup(name string) (Value, bool) {
	v, ok := vs[name]
	if !ok || v.IsAbsent() {
		return Value{}, false
	}
	return v, true
}

// Get returns the value bound to name, Absent when unbound
func (vs Variables) Get(name string) Value {
	v, _ := vs.Lookup(name)
	return v
}

// Clone returns a deep copy
func (vs Variables) Clone() Variables {
	out := make(Variables, len(vs))
	for k, v := range vs {
		out[k] = v.clone()
	}
	return out
}

// Merge returns a copy of vs with every entry of other whose name is not
// already bound in vs.
func (vs Variables) Merge(other Variables) Variables {
	out := vs.Clone()
	for k, v := range other {
		if _, exists := out[k]; exists {
			continue
		}
		out[k] = v.clone()
	}
	return out
}

// Names returns the bound names in lexical order
func (vs Variables) Names() []string {
	names := make([]string, 0, len(vs))
	for k := range vs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
