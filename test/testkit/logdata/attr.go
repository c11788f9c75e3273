package logdata

import (
	"math"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
)

type valueKind int

const (
	kindInvalid valueKind = iota
	kindString
	kindBool
	kindInt
	kindFloat
)

// Attr builds an attribute entry from plain Go values.
//
// A single scalar yields a scalar attribute, several scalars or a single slice yield a slice attribute.
// Every integer width is stored as INT64 and every float width as FLOAT64, so Attr("n", 30) and Attr("n", int64(30))
// produce the same entry. Integers mixed with floats are widened to FLOAT64SLICE. An empty typed slice keeps its
// element kind, an empty []any becomes an empty STRINGSLICE.
// Values that have no attribute representation, including unsigned integers above math.MaxInt64, produce an
// invalid KeyValue.
func Attr(key string, values ...any) attribute.KeyValue {
	k := attribute.Key(key)

	switch len(values) {
	case 0:
		return attribute.KeyValue{Key: k}
	case 1:
		if elems, emptyKind, ok := sliceElems(values[0]); ok {
			return multiAttr(k, elems, emptyKind)
		}

		return scalarAttr(k, values[0])
	default:
		return multiAttr(k, values, kindInvalid)
	}
}

func scalarAttr(k attribute.Key, v any) attribute.KeyValue {
	switch kindOf(v) {
	case kindString:
		return k.String(v.(string))
	case kindBool:
		return k.Bool(v.(bool))
	case kindInt:
		return k.Int64(toInt64(v))
	case kindFloat:
		return k.Float64(toFloat64(v))
	default:
		return attribute.KeyValue{Key: k}
	}
}

// sliceElems unpacks a slice of any element type. emptyKind is the kind an empty slice maps to.
func sliceElems(v any) ([]any, valueKind, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, kindInvalid, false
	}

	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}

	return elems, kindOfType(rv.Type().Elem()), true
}

func multiAttr(k attribute.Key, values []any, emptyKind valueKind) attribute.KeyValue {
	kind := kindInvalid
	if len(values) == 0 {
		kind = emptyKind
	}

	for _, v := range values {
		next := kindOf(v)
		switch {
		case next == kindInvalid:
			return attribute.KeyValue{Key: k}
		case kind == kindInvalid || kind == next:
			kind = next
		case isNumeric(kind) && isNumeric(next):
			kind = kindFloat
		default:
			return attribute.KeyValue{Key: k}
		}
	}

	switch kind {
	case kindString:
		s := make([]string, len(values))
		for i, v := range values {
			s[i] = v.(string)
		}

		return k.StringSlice(s)
	case kindBool:
		s := make([]bool, len(values))
		for i, v := range values {
			s[i] = v.(bool)
		}

		return k.BoolSlice(s)
	case kindInt:
		s := make([]int64, len(values))
		for i, v := range values {
			s[i] = toInt64(v)
		}

		return k.Int64Slice(s)
	case kindFloat:
		s := make([]float64, len(values))
		for i, v := range values {
			s[i] = toFloat64(v)
		}

		return k.Float64Slice(s)
	default:
		return attribute.KeyValue{Key: k}
	}
}

func isNumeric(k valueKind) bool {
	return k == kindInt || k == kindFloat
}

func kindOf(v any) valueKind {
	switch n := v.(type) {
	case string:
		return kindString
	case bool:
		return kindBool
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return kindInt
	case uint:
		if uint64(n) > math.MaxInt64 {
			return kindInvalid
		}

		return kindInt
	case uint64:
		if n > math.MaxInt64 {
			return kindInvalid
		}

		return kindInt
	case float32, float64:
		return kindFloat
	default:
		return kindInvalid
	}
}

func kindOfType(t reflect.Type) valueKind {
	switch t.Kind() {
	case reflect.String, reflect.Interface:
		return kindString
	case reflect.Bool:
		return kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return kindInt
	case reflect.Float32, reflect.Float64:
		return kindFloat
	default:
		return kindInvalid
	}
}

// toInt64 expects a value kindOf classified as kindInt.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n) //nolint:gosec // kindOf rejects values above math.MaxInt64
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n) //nolint:gosec // kindOf rejects values above math.MaxInt64
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return float64(toInt64(v))
	}
}
