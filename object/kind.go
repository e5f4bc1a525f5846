package object

import (
	"reflect"
	"regexp"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum is the merge-relevant shape of a value.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindScalar   // nil, bool, string and numbers
	KindSequence // any slice or array
	KindMapping  // *Object or map[string]any
	KindFunction // Func or any other Go func
	KindDate     // time.Time or *time.Time
	KindPattern  // *regexp.Regexp
	KindOpaque   // everything else, e.g. structs, channels, entities

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsReference reports whether values of this kind are shared by reference
// rather than copied when merged.
func (k KindEnum) IsReference() bool {
	switch k {
	default:
		return false
	case KindFunction, KindDate, KindPattern, KindOpaque:
		return true
	}
}

// IsContainer reports whether values of this kind are rebuilt by a deep merge.
func (k KindEnum) IsContainer() bool {
	return k == KindSequence || k == KindMapping
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	timePtrType = reflect.TypeOf(&time.Time{})
	regexpType  = reflect.TypeOf(&regexp.Regexp{})
)

// KindOf classifies v. The common concrete types are matched directly, the
// rest fall back to reflection on the dynamic type.
func KindOf(v any) KindEnum {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return KindScalar
	case []any:
		return KindSequence
	case *Object, map[string]any:
		return KindMapping
	case Func:
		return KindFunction
	case time.Time, *time.Time:
		return KindDate
	case *regexp.Regexp:
		return KindPattern
	}

	return FromReflectType(reflect.TypeOf(v))
}

// FromReflectType classifies a dynamic type. Named scalar types (enums) are
// scalars, named func types are functions.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return KindScalar
	}

	switch rtype {
	case timeType, timePtrType:
		return KindDate
	case regexpType:
		return KindPattern
	}

	switch rtype.Kind() {
	default:
		return KindOpaque
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return KindScalar
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Func:
		return KindFunction
	case reflect.Map:
		if rtype.Key().Kind() == reflect.String {
			return KindMapping
		}

		return KindOpaque
	}
}
