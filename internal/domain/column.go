package domain

import "fmt"

type Column struct {
	Name string
	Type ScalarType
	// SourceType is the type as the source reports it, kept for error messages
	// when Type is Invalid.
	SourceType string
}

func (c Column) TypeName() string {
	if c.Type == Invalid && c.SourceType != "" {
		return c.SourceType
	}
	return c.Type.String()
}

// Column buffers travel as `any` holding a []T of the column's Go type:
// []int8, []uint8, []int16, []uint16, []int32, []uint32, []int64, []uint64,
// []float32, []float64 or []bool.

// NewColumnData allocates a zeroed buffer of n elements for t.
func NewColumnData(t ScalarType, n int) (any, error) {
	switch t {
	case Int8:
		return make([]int8, n), nil
	case Uint8:
		return make([]uint8, n), nil
	case Int16:
		return make([]int16, n), nil
	case Uint16:
		return make([]uint16, n), nil
	case Int32:
		return make([]int32, n), nil
	case Uint32:
		return make([]uint32, n), nil
	case Int64:
		return make([]int64, n), nil
	case Uint64:
		return make([]uint64, n), nil
	case Float32:
		return make([]float32, n), nil
	case Float64:
		return make([]float64, n), nil
	case Bool:
		return make([]bool, n), nil
	default:
		return nil, &UnsupportedTypeError{Type: t.String()}
	}
}

// ColumnDataType reports the scalar type of a column buffer.
func ColumnDataType(data any) ScalarType {
	switch data.(type) {
	case []int8:
		return Int8
	case []uint8:
		return Uint8
	case []int16:
		return Int16
	case []uint16:
		return Uint16
	case []int32:
		return Int32
	case []uint32:
		return Uint32
	case []int64:
		return Int64
	case []uint64:
		return Uint64
	case []float32:
		return Float32
	case []float64:
		return Float64
	case []bool:
		return Bool
	default:
		return Invalid
	}
}

func ColumnDataLen(data any) (int, error) {
	switch d := data.(type) {
	case []int8:
		return len(d), nil
	case []uint8:
		return len(d), nil
	case []int16:
		return len(d), nil
	case []uint16:
		return len(d), nil
	case []int32:
		return len(d), nil
	case []uint32:
		return len(d), nil
	case []int64:
		return len(d), nil
	case []uint64:
		return len(d), nil
	case []float32:
		return len(d), nil
	case []float64:
		return len(d), nil
	case []bool:
		return len(d), nil
	default:
		return 0, fmt.Errorf("unknown column buffer type: %T", data)
	}
}

// CloneColumnData returns an independently owned, contiguous copy of data.
func CloneColumnData(data any) (any, error) {
	switch d := data.(type) {
	case []int8:
		return cloneSlice(d), nil
	case []uint8:
		return cloneSlice(d), nil
	case []int16:
		return cloneSlice(d), nil
	case []uint16:
		return cloneSlice(d), nil
	case []int32:
		return cloneSlice(d), nil
	case []uint32:
		return cloneSlice(d), nil
	case []int64:
		return cloneSlice(d), nil
	case []uint64:
		return cloneSlice(d), nil
	case []float32:
		return cloneSlice(d), nil
	case []float64:
		return cloneSlice(d), nil
	case []bool:
		return cloneSlice(d), nil
	default:
		return nil, fmt.Errorf("unknown column buffer type: %T", data)
	}
}

// cloneSlice never returns nil so an empty chunk still binds a real buffer.
func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
