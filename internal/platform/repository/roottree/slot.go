package roottree

import (
	"H5ROOT/internal/domain"
	"fmt"
)

// newSlot allocates the *[]T the tree writer reads a branch from.
func newSlot(t domain.ScalarType) (any, error) {
	switch t {
	case domain.Int8:
		return new([]int8), nil
	case domain.Uint8:
		return new([]uint8), nil
	case domain.Int16:
		return new([]int16), nil
	case domain.Uint16:
		return new([]uint16), nil
	case domain.Int32:
		return new([]int32), nil
	case domain.Uint32:
		return new([]uint32), nil
	case domain.Int64:
		return new([]int64), nil
	case domain.Uint64:
		return new([]uint64), nil
	case domain.Float32:
		return new([]float32), nil
	case domain.Float64:
		return new([]float64), nil
	case domain.Bool:
		return new([]bool), nil
	default:
		return nil, &domain.UnsupportedTypeError{Type: t.String()}
	}
}

// bindSlot points slot at data. data must be a []T matching the slot.
func bindSlot(slot, data any) error {
	switch p := slot.(type) {
	case *[]int8:
		return bind(p, data)
	case *[]uint8:
		return bind(p, data)
	case *[]int16:
		return bind(p, data)
	case *[]uint16:
		return bind(p, data)
	case *[]int32:
		return bind(p, data)
	case *[]uint32:
		return bind(p, data)
	case *[]int64:
		return bind(p, data)
	case *[]uint64:
		return bind(p, data)
	case *[]float32:
		return bind(p, data)
	case *[]float64:
		return bind(p, data)
	case *[]bool:
		return bind(p, data)
	default:
		return fmt.Errorf("unknown branch slot %T", slot)
	}
}

func bind[T any](slot *[]T, data any) error {
	v, ok := data.([]T)
	if !ok {
		return fmt.Errorf("cannot bind %T to a %T branch", data, *slot)
	}
	*slot = v
	return nil
}
