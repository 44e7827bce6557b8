package h5table

import (
	"H5ROOT/internal/domain"
	"fmt"
	"math"
)

// decodeMember extracts one member of n packed records into a fresh []T.
func decodeMember(raw []byte, n, recordSize int, m member) (any, error) {
	at := func(i int) []byte {
		p := i*recordSize + m.offset
		return raw[p : p+m.size]
	}
	o := m.order

	switch m.typ {
	case domain.Int8:
		return decodeAll(n, func(i int) int8 { return int8(at(i)[0]) }), nil
	case domain.Uint8:
		return decodeAll(n, func(i int) uint8 { return at(i)[0] }), nil
	case domain.Bool:
		return decodeAll(n, func(i int) bool { return at(i)[0] != 0 }), nil
	case domain.Int16:
		return decodeAll(n, func(i int) int16 { return int16(o.Uint16(at(i))) }), nil
	case domain.Uint16:
		return decodeAll(n, func(i int) uint16 { return o.Uint16(at(i)) }), nil
	case domain.Int32:
		return decodeAll(n, func(i int) int32 { return int32(o.Uint32(at(i))) }), nil
	case domain.Uint32:
		return decodeAll(n, func(i int) uint32 { return o.Uint32(at(i)) }), nil
	case domain.Int64:
		return decodeAll(n, func(i int) int64 { return int64(o.Uint64(at(i))) }), nil
	case domain.Uint64:
		return decodeAll(n, func(i int) uint64 { return o.Uint64(at(i)) }), nil
	case domain.Float32:
		return decodeAll(n, func(i int) float32 { return math.Float32frombits(o.Uint32(at(i))) }), nil
	case domain.Float64:
		return decodeAll(n, func(i int) float64 { return math.Float64frombits(o.Uint64(at(i))) }), nil
	default:
		return nil, &domain.UnsupportedTypeError{Column: m.name, Type: m.typ.String()}
	}
}

func decodeAll[T any](n int, get func(i int) T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = get(i)
	}
	return out
}

func checkRecordBounds(recordSize int, m member) error {
	if m.offset < 0 || m.offset+m.size > recordSize {
		return fmt.Errorf("member %s at offset %d (%d bytes) exceeds record size %d", m.name, m.offset, m.size, recordSize)
	}
	return nil
}
