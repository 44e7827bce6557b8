package domain

import "strings"

// ScalarType is the elemental type of a source column.
type ScalarType int

const (
	Invalid ScalarType = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	Bool
)

// ScalarTypes lists every supported type in declaration order.
var ScalarTypes = []ScalarType{
	Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64, Float32, Float64, Bool,
}

func (t ScalarType) String() string {
	switch t {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "invalid"
	}
}

// TypeCode returns the single character ROOT uses for the type in a leaflist.
func (t ScalarType) TypeCode() (byte, error) {
	switch t {
	case Int8:
		return 'B', nil
	case Uint8:
		return 'b', nil
	case Int16:
		return 'S', nil
	case Uint16:
		return 's', nil
	case Int32:
		return 'I', nil
	case Uint32:
		return 'i', nil
	case Int64:
		return 'L', nil
	case Uint64:
		return 'l', nil
	case Float32:
		return 'F', nil
	case Float64:
		return 'D', nil
	case Bool:
		return 'O', nil
	default:
		return 0, &UnsupportedTypeError{Type: t.String()}
	}
}

// Size returns the width in bytes of one element.
func (t ScalarType) Size() (int, error) {
	switch t {
	case Int8, Uint8, Bool:
		return 1, nil
	case Int16, Uint16:
		return 2, nil
	case Int32, Uint32, Float32:
		return 4, nil
	case Int64, Uint64, Float64:
		return 8, nil
	default:
		return 0, &UnsupportedTypeError{Type: t.String()}
	}
}

// ParseScalarType accepts the NumPy dtype names PyTables reports for columns.
func ParseScalarType(name string) (ScalarType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, t := range ScalarTypes {
		if t.String() == n {
			return t, nil
		}
	}
	return Invalid, &UnsupportedTypeError{Type: name}
}
