package memtable

import (
	"H5ROOT/internal/domain"
	"fmt"
	"sync"
)

// Memtable is an in-memory table. ReadChunk hands out views of its own
// storage, never copies.
type Memtable struct {
	mu      sync.RWMutex
	name    string
	rows    int
	columns []domain.Column
	data    []any
}

func NewMemtable(name string, rows int) *Memtable {
	return &Memtable{
		name: name,
		rows: rows,
	}
}

// AddColumn appends a column backed by data, a []T of a supported type with NumRows elements.
func (mt *Memtable) AddColumn(name string, data any) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	t := domain.ColumnDataType(data)
	if t == domain.Invalid {
		return fmt.Errorf("column %s: unknown column buffer type %T", name, data)
	}
	n, err := domain.ColumnDataLen(data)
	if err != nil {
		return err
	}
	if n != mt.rows {
		return fmt.Errorf("column %s has %d rows, table %s has %d", name, n, mt.name, mt.rows)
	}
	mt.columns = append(mt.columns, domain.Column{Name: name, Type: t})
	mt.data = append(mt.data, data)
	return nil
}

// AddOpaqueColumn appends a column whose type has no scalar mapping.
func (mt *Memtable) AddOpaqueColumn(name, sourceType string) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.columns = append(mt.columns, domain.Column{Name: name, Type: domain.Invalid, SourceType: sourceType})
	mt.data = append(mt.data, nil)
}

func (mt *Memtable) Name() string {
	return mt.name
}

func (mt *Memtable) NumRows() int {
	return mt.rows
}

func (mt *Memtable) Columns() ([]domain.Column, error) {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	out := make([]domain.Column, len(mt.columns))
	copy(out, mt.columns)
	return out, nil
}

func (mt *Memtable) ReadChunk(start, n int) (domain.Chunk, error) {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	if start < 0 || n < 0 || start+n > mt.rows {
		return domain.Chunk{}, fmt.Errorf("rows [%d, %d) out of range for %s with %d rows", start, start+n, mt.name, mt.rows)
	}

	columns := make([]any, len(mt.data))
	for i, data := range mt.data {
		view, err := sliceView(data, start, start+n)
		if err != nil {
			return domain.Chunk{}, fmt.Errorf("column %s: %w", mt.columns[i].Name, err)
		}
		columns[i] = view
	}
	return domain.Chunk{Start: start, Rows: n, Columns: columns}, nil
}

func sliceView(data any, lo, hi int) (any, error) {
	switch d := data.(type) {
	case []int8:
		return d[lo:hi], nil
	case []uint8:
		return d[lo:hi], nil
	case []int16:
		return d[lo:hi], nil
	case []uint16:
		return d[lo:hi], nil
	case []int32:
		return d[lo:hi], nil
	case []uint32:
		return d[lo:hi], nil
	case []int64:
		return d[lo:hi], nil
	case []uint64:
		return d[lo:hi], nil
	case []float32:
		return d[lo:hi], nil
	case []float64:
		return d[lo:hi], nil
	case []bool:
		return d[lo:hi], nil
	default:
		return nil, fmt.Errorf("cannot read column buffer of type %T", data)
	}
}
