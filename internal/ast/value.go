package ast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	INTEGER ValueKind = iota
	FLOAT
	BOOLEAN
	STRING
)

func (kind ValueKind) String() string {
	switch kind {
	case INTEGER:
		return "integer"
	case FLOAT:
		return "float"
	case BOOLEAN:
		return "boolean"
	case STRING:
		return "string"
	}
	return fmt.Sprintf("ValueKind(%d)", int(kind))
}

// Value is a literal value. Raw keeps the spelling; exactly one of the
// native fields is meaningful, selected by Kind.
type Value struct {
	Kind     ValueKind
	Raw      string
	IntVal   int64
	FloatVal float64
	BoolVal  bool
	StrVal   string
}

func NewInteger(i int64) Value {
	return Value{Kind: INTEGER, Raw: strconv.FormatInt(i, 10), IntVal: i}
}

func NewFloat(f float64) Value {
	return Value{Kind: FLOAT, Raw: strconv.FormatFloat(f, 'g', -1, 64), FloatVal: f}
}

func NewBoolean(b bool) Value {
	return Value{Kind: BOOLEAN, Raw: strconv.FormatBool(b), BoolVal: b}
}

func NewString(s string) Value {
	return Value{Kind: STRING, Raw: strconv.Quote(s), StrVal: s}
}

// ParseNumber decodes a numeric literal. Spellings without a fraction or an
// exponent are integers, unless they do not fit in an int64.
func ParseNumber(raw string) (Value, error) {
	if !strings.ContainsAny(raw, ".eE") {
		i, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return Value{Kind: INTEGER, Raw: raw, IntVal: i}, nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("invalid integer literal %q", raw)
		}
		// too wide for int64: keep the magnitude as a float
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("invalid float literal %q", raw)
	}
	return Value{Kind: FLOAT, Raw: raw, FloatVal: f}, nil
}

func (v Value) IsNumeric() bool {
	return v.Kind == INTEGER || v.Kind == FLOAT
}

// AsFloat returns a numeric value as float64.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case INTEGER:
		return float64(v.IntVal), true
	case FLOAT:
		return v.FloatVal, true
	}
	return 0, false
}

// float64 bounds of the int64 range, max excluded
const (
	minInt64 = -(1 << 63)
	maxInt64 = 1 << 63
)

// AsInteger returns integers, and floats with an integral value in the
// int64 range, as int64.
func (v Value) AsInteger() (int64, bool) {
	switch v.Kind {
	case INTEGER:
		return v.IntVal, true
	case FLOAT:
		if v.FloatVal == math.Trunc(v.FloatVal) && v.FloatVal >= minInt64 && v.FloatVal < maxInt64 {
			return int64(v.FloatVal), true
		}
	}
	return 0, false
}

// Native returns the decoded Go value: int64, float64, bool or string.
func (v Value) Native() any {
	switch v.Kind {
	case INTEGER:
		return v.IntVal
	case FLOAT:
		return v.FloatVal
	case BOOLEAN:
		return v.BoolVal
	case STRING:
		return v.StrVal
	}
	return nil
}

func (v Value) String() string {
	return v.Raw
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case INTEGER:
		return []byte(strconv.FormatInt(v.IntVal, 10)), nil
	case FLOAT:
		if math.IsNaN(v.FloatVal) || math.IsInf(v.FloatVal, 0) {
			return []byte(strconv.Quote(v.Raw)), nil
		}
		return []byte(strconv.FormatFloat(v.FloatVal, 'g', -1, 64)), nil
	case BOOLEAN:
		return []byte(strconv.FormatBool(v.BoolVal)), nil
	}
	return []byte(strconv.Quote(v.StrVal)), nil
}

func (v Value) MarshalYAML() (any, error) {
	return v.Native(), nil
}
