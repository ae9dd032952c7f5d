package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "null"
	}
}

// Value is a tagged attribute value. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	flag bool
	list []Value
}

func StringValue(s string) Value  { return Value{kind: KindString, str: s} }
func IntValue(n int64) Value      { return Value{kind: KindInt, num: n} }
func FloatValue(f float64) Value  { return Value{kind: KindFloat, flt: f} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, flag: b} }
func NullValue() Value            { return Value{} }
func ListValue(vs ...Value) Value { return Value{kind: KindList, list: append([]Value{}, vs...)} }

// ParseValue coerces raw console input. An integer parse wins over a float
// parse, which wins over keeping the text as a string. Numbers are decimal
// and may group digits with single underscores. Integers outside the int64
// range parse as floats.
func ParseValue(raw string) Value {
	trimmed, ok := stripDigitSeparators(strings.TrimSpace(raw))
	if !ok {
		return StringValue(raw)
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return IntValue(n)
	}
	if !strings.ContainsAny(trimmed, "xX") {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return FloatValue(f)
		}
	}
	return StringValue(raw)
}

// stripDigitSeparators drops underscores that sit between two digits. Any
// other underscore means s is not a number.
func stripDigitSeparators(s string) (string, bool) {
	if strings.IndexByte(s, '_') < 0 {
		return s, true
	}
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Str() (string, bool)    { return v.str, v.kind == KindString }
func (v Value) Int() (int64, bool)     { return v.num, v.kind == KindInt }
func (v Value) Float() (float64, bool) { return v.flt, v.kind == KindFloat }
func (v Value) Bool() (bool, bool)     { return v.flag, v.kind == KindBool }

// List returns a copy of the list elements.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]Value{}, v.list...), true
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.num == o.num
	case KindFloat:
		return v.flt == o.flt || (math.IsNaN(v.flt) && math.IsNaN(o.flt))
	case KindBool:
		return v.flag == o.flag
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
	}
	return true
}

// Text renders the value without quoting strings.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.str
	}
	return v.Repr()
}

// Repr renders the value with strings quoted, as it appears inside an
// instance's string form.
func (v Value) Repr() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return FormatFloat(v.flt)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "null"
	}
}

func (v Value) String() string { return v.Text() }

// FormatFloat renders f in its shortest form, keeping a fractional part on
// integral values so floats stay distinguishable from ints.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ─── JSON ───────────────────────────────────────────────────────────────────

// MarshalJSON encodes the value as its natural JSON form. Non-finite floats
// have no JSON number form and are written as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return []byte(strconv.FormatInt(v.num, 10)), nil
	case KindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return json.Marshal(FormatFloat(v.flt))
		}
		return []byte(FormatFloat(v.flt)), nil
	case KindBool:
		return json.Marshal(v.flag)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON value. Numbers written without a fraction
// or exponent decode as ints; nested objects are kept as their JSON text.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	val, err := fromJSON(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func fromJSON(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case json.Number:
		return numberValue(x.String())
	case []any:
		items := make([]Value, 0, len(x))
		for _, r := range x {
			item, err := fromJSON(r)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{kind: KindList, list: items}, nil
	case map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return Value{}, err
		}
		return StringValue(string(b)), nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON value %T", raw)
	}
}

func numberValue(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(n), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("parse number %q: %w", s, err)
	}
	return FloatValue(f), nil
}
