package expr

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindString
	KindBool
)

// Value is the runtime value union: number, string or boolean.
// Numbers are float64 and represent integers exactly up to 2^53.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Bool bool
}

// Number wraps a float64 as a Value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// String wraps a string as a Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool wraps a bool as a Value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Truthy reports the condition truth of the value: numbers are truthy when
// non-zero, strings when non-empty, booleans as-is.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNumber:
		return v.Num != 0
	case KindString:
		return v.Str != ""
	default:
		return v.Bool
	}
}

// String renders the canonical text form used by interpolation: booleans as
// "true"/"false", numbers in their shortest decimal form ("8", not "8.0").
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	default:
		if v.Bool {
			return "true"
		}
		return "false"
	}
}

// numeric returns the arithmetic reading of the value. Booleans coerce to
// 0/1; strings have no numeric reading.
func (v Value) numeric() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// MarshalJSON encodes the value as its natural JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindString:
		return json.Marshal(v.Str)
	default:
		return json.Marshal(v.Bool)
	}
}

// UnmarshalJSON decodes a JSON scalar back into the matching variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Bool(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Number(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}
	return fmt.Errorf("unsupported value literal: %s", string(data))
}

// Env is the mutable variable environment of one playback session.
type Env map[string]Value

// Get returns the value bound to name. Undefined names read as Number(0).
func (e Env) Get(name string) Value {
	if v, ok := e[name]; ok {
		return v
	}
	return Number(0)
}

// Set binds name to v.
func (e Env) Set(name string, v Value) {
	e[name] = v
}

// Clone returns an independent copy of the environment.
func (e Env) Clone() Env {
	out := make(Env, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
