package h5table

import (
	"H5ROOT/internal/domain"
	"encoding/binary"
	"fmt"

	"gonum.org/v1/hdf5"
)

type member struct {
	name   string
	offset int
	size   int
	typ    domain.ScalarType
	order  binary.ByteOrder
}

// Table is a PyTables table: a rank-1 dataset of compound records.
type Table struct {
	name       string
	ds         *hdf5.Dataset
	rows       int
	recordSize int
	columns    []domain.Column
	members    []member
}

// newTable inspects ds and reports ok=false when it is not a table.
func newTable(name string, ds *hdf5.Dataset) (*Table, bool, error) {
	dt, err := ds.Datatype()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get datatype of %s: %w", name, err)
	}
	defer dt.Close()

	if dt.Class() != hdf5.T_COMPOUND {
		return nil, false, nil
	}

	space := ds.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get dimensions of %s: %w", name, err)
	}
	if len(dims) != 1 {
		return nil, false, nil
	}

	t := &Table{
		name:       name,
		ds:         ds,
		rows:       int(dims[0]),
		recordSize: int(dt.Size()),
	}

	ct := hdf5.CompoundType{Datatype: *dt}
	for i := 0; i < ct.NMembers(); i++ {
		m, col, err := inspectMember(&ct, i)
		if err != nil {
			return nil, false, fmt.Errorf("table %s: %w", name, err)
		}
		if err := checkRecordBounds(t.recordSize, m); err != nil {
			return nil, false, fmt.Errorf("table %s: %w", name, err)
		}
		t.members = append(t.members, m)
		t.columns = append(t.columns, col)
	}
	return t, true, nil
}

func inspectMember(ct *hdf5.CompoundType, i int) (member, domain.Column, error) {
	name := ct.MemberName(i)
	mt, err := ct.MemberType(i)
	if err != nil {
		return member{}, domain.Column{}, fmt.Errorf("failed to get type of member %s: %w", name, err)
	}
	defer mt.Close()

	typ, order, desc := classify(mt)
	m := member{
		name:   name,
		offset: ct.MemberOffset(i),
		size:   int(mt.Size()),
		typ:    typ,
		order:  order,
	}
	return m, domain.Column{Name: name, Type: typ, SourceType: desc}, nil
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) NumRows() int {
	return t.rows
}

func (t *Table) Columns() ([]domain.Column, error) {
	out := make([]domain.Column, len(t.columns))
	copy(out, t.columns)
	return out, nil
}

// ReadChunk reads the raw records [start, start+n) and splits them into one
// freshly allocated buffer per column.
func (t *Table) ReadChunk(start, n int) (domain.Chunk, error) {
	if start < 0 || n < 0 || start+n > t.rows {
		return domain.Chunk{}, fmt.Errorf("rows [%d, %d) out of range for %s with %d rows", start, start+n, t.name, t.rows)
	}
	for i, m := range t.members {
		if m.typ == domain.Invalid {
			return domain.Chunk{}, &domain.UnsupportedTypeError{Table: t.name, Column: m.name, Type: t.columns[i].SourceType}
		}
	}

	chunk := domain.Chunk{Start: start, Rows: n, Columns: make([]any, len(t.members))}
	var raw []byte
	if n > 0 {
		var err error
		raw, err = t.readRecords(start, n)
		if err != nil {
			return domain.Chunk{}, err
		}
	}
	for i, m := range t.members {
		data, err := decodeMember(raw, n, t.recordSize, m)
		if err != nil {
			return domain.Chunk{}, fmt.Errorf("table %s: %w", t.name, err)
		}
		chunk.Columns[i] = data
	}
	return chunk, nil
}

func (t *Table) readRecords(start, n int) ([]byte, error) {
	filespace := t.ds.Space()
	defer filespace.Close()
	if err := filespace.SelectHyperslab([]uint{uint(start)}, nil, []uint{uint(n)}, nil); err != nil {
		return nil, fmt.Errorf("failed to select rows [%d, %d) of %s: %w", start, start+n, t.name, err)
	}

	memspace, err := hdf5.CreateSimpleDataspace([]uint{uint(n)}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory dataspace: %w", err)
	}
	defer memspace.Close()

	// Read with the file datatype: records arrive packed exactly as stored.
	raw := make([]byte, n*t.recordSize)
	if err := t.ds.ReadSubset(&raw, memspace, filespace); err != nil {
		return nil, fmt.Errorf("failed to read rows [%d, %d) of %s: %w", start, start+n, t.name, err)
	}
	return raw, nil
}

func (t *Table) close() error {
	return t.ds.Close()
}
