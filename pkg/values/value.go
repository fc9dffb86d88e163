package values

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds
type Kind int

const (
	KindAbsent Kind = iota
	KindBool
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "absent"
	}
}

// Value is a template variable value. The zero Value is Absent.
type Value struct {
	kind  Kind
	b     bool
	str   string
	isNum bool
	seq   []Value
	m     map[string]Value
}

// Absent returns the absent value
func Absent() Value { return Value{} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string scalar
func String(s string) Value { return Value{kind: KindScalar, str: s} }

// Int returns a numeric scalar
func Int(i int64) Value {
	return Value{kind: KindScalar, str: strconv.FormatInt(i, 10), isNum: true}
}

// Number returns a numeric scalar. Integral values print without a
// decimal point.
func Number(f float64) Value {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return Int(int64(f))
	}
	return Value{kind: KindScalar, str: strconv.FormatFloat(f, 'f', -1, 64), isNum: true}
}

// List returns a sequence of the given values
func List(items ...Value) Value {
	seq := make([]Value, len(items))
	copy(seq, items)
	return Value{kind: KindSequence, seq: seq}
}

// Strings returns a sequence of string scalars
func Strings(items ...string) Value {
	seq := make([]Value, len(items))
	for i, s := range items {
		seq[i] = String(s)
	}
	return Value{kind: KindSequence, seq: seq}
}

// Map returns a mapping value
func Map(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return Value{kind: KindMapping, m: m}
}

// Kind reports the variant held by v
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the absent value
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNumber reports whether v is a numeric scalar
func (v Value) IsNumber() bool { return v.kind == KindScalar && v.isNum }

// Truthy applies the truthiness rule for v's kind
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindScalar, KindMapping:
		return true
	case KindSequence:
		return len(v.seq) > 0
	default:
		return false
	}
}

// Items returns the elements of a sequence, nil for other kinds
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Field looks up key in a mapping
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	f, ok := v.m[key]
	return f, ok
}

// Fields returns a copy of a mapping's entries, nil for other kinds
func (v Value) Fields() map[string]Value {
	if v.kind != KindMapping {
		return nil
	}
	out := make(map[string]Value, len(v.m))
	for k, f := range v.m {
		out[k] = f
	}
	return out
}

// Int returns the integer held by a numeric or numeric-looking scalar
func (v Value) Int() (int64, bool) {
	if v.kind != KindScalar {
		return 0, false
	}
	i, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// String returns the substitution form of v
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindScalar:
		return v.str
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = item.String()
		}
		return strings.Join(parts, ", ")
	case KindMapping:
		data, err := v.compactJSON()
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return ""
	}
}

// Interface converts v back into plain Go data
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindScalar:
		if v.isNum {
			return json.Number(v.str)
		}
		return v.str
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.m))
		for k, f := range v.m {
			out[k] = f.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v as its plain JSON equivalent
func (v Value) MarshalJSON() ([]byte, error) {
	return v.compactJSON()
}

func (v Value) compactJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v.Interface()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Equal reports deep equality between two values
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindScalar:
		return v.str == o.str && v.isNum == o.isNum
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, f := range v.m {
			g, ok := o.m[k]
			if !ok || !f.Equal(g) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (v Value) clone() Value {
	switch v.kind {
	case KindSequence:
		seq := make([]Value, len(v.seq))
		for i, item := range v.seq {
			seq[i] = item.clone()
		}
		return Value{kind: KindSequence, seq: seq}
	case KindMapping:
		m := make(map[string]Value, len(v.m))
		for k, f := range v.m {
			m[k] = f.clone()
		}
		return Value{kind: KindMapping, m: m}
	default:
		return v
	}
}
