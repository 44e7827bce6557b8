package h5table

import (
	"H5ROOT/internal/domain"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/hdf5"
)

type hit struct {
	Event  int64   `hdf5:"event_number"`
	Column uint8   `hdf5:"column"`
	Row    uint16  `hdf5:"row"`
	Charge float32 `hdf5:"charge"`
	Tot    int8    `hdf5:"tot"`
	Weight float64 `hdf5:"weight"`
	Flags  uint32  `hdf5:"flags"`
}

type tagged struct {
	ID  int32   `hdf5:"id"`
	Tag [4]int8 `hdf5:"tag"`
}

func makeHits(n int) []hit {
	hits := make([]hit, n)
	for i := range hits {
		hits[i] = hit{
			Event:  int64(i / 3),
			Column: uint8(i % 80),
			Row:    uint16(i % 336),
			Charge: float32(i) * 0.25,
			Tot:    int8(i%15 - 7),
			Weight: 1 / float64(i+1),
			Flags:  uint32(i) << 20,
		}
	}
	return hits
}

func writeCompound[T any](t *testing.T, f *hdf5.File, name string, records []T) {
	t.Helper()
	var zero T
	dtype, err := hdf5.NewDatatypeFromValue(zero)
	require.NoError(t, err)
	space, err := hdf5.CreateSimpleDataspace([]uint{uint(len(records))}, nil)
	require.NoError(t, err)
	defer space.Close()
	ds, err := f.CreateDataset(name, dtype, space)
	require.NoError(t, err)
	defer ds.Close()
	if len(records) > 0 {
		require.NoError(t, ds.Write(&records))
	}
}

func createTestFile(t *testing.T, hits []hit) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hits.h5")
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	require.NoError(t, err)
	defer f.Close()

	writeCompound(t, f, "Hits", hits)
	writeCompound(t, f, "Empty", []hit{})

	space, err := hdf5.CreateSimpleDataspace([]uint{3}, nil)
	require.NoError(t, err)
	defer space.Close()
	arr, err := f.CreateDataset("calibration", hdf5.T_NATIVE_DOUBLE, space)
	require.NoError(t, err)
	defer arr.Close()
	calibration := []float64{1, 2, 3}
	require.NoError(t, arr.Write(&calibration))

	g, err := f.CreateGroup("meta")
	require.NoError(t, err)
	require.NoError(t, g.Close())
	return path
}

func tablesByName(t *testing.T, f *File) map[string]domain.Table {
	t.Helper()
	tables, err := f.Tables()
	require.NoError(t, err)
	out := make(map[string]domain.Table, len(tables))
	for _, tb := range tables {
		out[tb.Name()] = tb
	}
	return out
}

func TestTables_OnlyCompoundDatasets(t *testing.T) {
	path := createTestFile(t, makeHits(10))
	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	tables := tablesByName(t, f)
	assert.Len(t, tables, 2)
	assert.Contains(t, tables, "Hits")
	assert.Contains(t, tables, "Empty")
	assert.NotContains(t, tables, "calibration")
	assert.NotContains(t, tables, "meta")
}

func TestTable_ColumnsInDeclarationOrder(t *testing.T) {
	path := createTestFile(t, makeHits(4))
	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	columns, err := tablesByName(t, f)["Hits"].Columns()
	require.NoError(t, err)
	assert.Equal(t, []domain.Column{
		{Name: "event_number", Type: domain.Int64, SourceType: "int64"},
		{Name: "column", Type: domain.Uint8, SourceType: "uint8"},
		{Name: "row", Type: domain.Uint16, SourceType: "uint16"},
		{Name: "charge", Type: domain.Float32, SourceType: "float32"},
		{Name: "tot", Type: domain.Int8, SourceType: "int8"},
		{Name: "weight", Type: domain.Float64, SourceType: "float64"},
		{Name: "flags", Type: domain.Uint32, SourceType: "uint32"},
	}, columns)
}

func TestTable_ReadChunk(t *testing.T) {
	hits := makeHits(50)
	path := createTestFile(t, hits)
	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	table := tablesByName(t, f)["Hits"]
	assert.Equal(t, 50, table.NumRows())

	chunk, err := table.ReadChunk(45, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, chunk.Rows)
	require.Len(t, chunk.Columns, 7)

	want := hits[45:]
	for i, h := range want {
		assert.Equal(t, h.Event, chunk.Columns[0].([]int64)[i])
		assert.Equal(t, h.Column, chunk.Columns[1].([]uint8)[i])
		assert.Equal(t, h.Row, chunk.Columns[2].([]uint16)[i])
		assert.Equal(t, h.Charge, chunk.Columns[3].([]float32)[i])
		assert.Equal(t, h.Tot, chunk.Columns[4].([]int8)[i])
		assert.Equal(t, h.Weight, chunk.Columns[5].([]float64)[i])
		assert.Equal(t, h.Flags, chunk.Columns[6].([]uint32)[i])
	}

	_, err = table.ReadChunk(48, 5)
	assert.Error(t, err)
}

func TestTable_EmptyTable(t *testing.T) {
	path := createTestFile(t, makeHits(1))
	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	table := tablesByName(t, f)["Empty"]
	assert.Equal(t, 0, table.NumRows())
	chunk, err := table.ReadChunk(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, chunk.Columns[0])
}

func TestTable_UnsupportedMember(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagged.h5")
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	require.NoError(t, err)
	writeCompound(t, f, "Tagged", []tagged{{ID: 1}, {ID: 2}})
	require.NoError(t, f.Close())

	h5, err := Open(path)
	require.NoError(t, err)
	defer h5.Close()

	table := tablesByName(t, h5)["Tagged"]
	columns, err := table.Columns()
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, domain.Int32, columns[0].Type)
	assert.Equal(t, domain.Invalid, columns[1].Type)
	assert.Equal(t, "array (4 bytes)", columns[1].SourceType)

	_, err = domain.MirrorSchema(table.Name(), columns)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = table.ReadChunk(0, 1)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestOpen_NotHDF5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.h5")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := Open(path)
	assert.ErrorIs(t, err, domain.ErrContainerOpen)

	_, err = Opener(filepath.Join(t.TempDir(), "missing.h5"))
	assert.ErrorIs(t, err, domain.ErrContainerOpen)
}

type mixedRecord struct {
	flag   byte
	count  int16
	id     int32
	mask   uint64
	weight float64
}

// mixedRecordSize packs the members without padding: flag at 0, count at 1,
// id at 3, mask at 7, weight at 15.
const mixedRecordSize = 23

func makeMixedRecords(n int) []mixedRecord {
	records := make([]mixedRecord, n)
	for i := range records {
		records[i] = mixedRecord{
			flag:   byte(i % 3),
			count:  int16(-100 * i),
			id:     int32(i*100000 - 5),
			mask:   0xFF00000000000000 | uint64(1)<<(i%56),
			weight: float64(i) / 7,
		}
	}
	return records
}

// writeMixedEndianTable builds the compound type member by member, the way
// PyTables files written on other machines store them.
func writeMixedEndianTable(t *testing.T, f *hdf5.File, name string, records []mixedRecord) {
	t.Helper()
	ct, err := hdf5.NewCompoundType(mixedRecordSize)
	require.NoError(t, err)
	defer ct.Close()
	require.NoError(t, ct.Insert("flag", 0, hdf5.T_STD_B8LE))
	require.NoError(t, ct.Insert("count", 1, hdf5.T_STD_I16BE))
	require.NoError(t, ct.Insert("id", 3, hdf5.T_STD_I32LE))
	require.NoError(t, ct.Insert("mask", 7, hdf5.T_STD_U64BE))
	require.NoError(t, ct.Insert("weight", 15, hdf5.T_IEEE_F64BE))

	raw := make([]byte, len(records)*mixedRecordSize)
	for i, r := range records {
		p := raw[i*mixedRecordSize:]
		p[0] = r.flag
		binary.BigEndian.PutUint16(p[1:], uint16(r.count))
		binary.LittleEndian.PutUint32(p[3:], uint32(r.id))
		binary.BigEndian.PutUint64(p[7:], r.mask)
		binary.BigEndian.PutUint64(p[15:], math.Float64bits(r.weight))
	}

	space, err := hdf5.CreateSimpleDataspace([]uint{uint(len(records))}, nil)
	require.NoError(t, err)
	defer space.Close()
	ds, err := f.CreateDataset(name, &ct.Datatype, space)
	require.NoError(t, err)
	defer ds.Close()
	require.NoError(t, ds.Write(&raw))
}

func TestTable_MixedByteOrderMembers(t *testing.T) {
	records := makeMixedRecords(11)
	path := filepath.Join(t.TempDir(), "mixed.h5")
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	require.NoError(t, err)
	writeMixedEndianTable(t, f, "Mixed", records)
	require.NoError(t, f.Close())

	h5, err := Open(path)
	require.NoError(t, err)
	defer h5.Close()

	table := tablesByName(t, h5)["Mixed"]
	require.NotNil(t, table)
	columns, err := table.Columns()
	require.NoError(t, err)
	assert.Equal(t, []domain.Column{
		{Name: "flag", Type: domain.Bool, SourceType: "bool"},
		{Name: "count", Type: domain.Int16, SourceType: "int16"},
		{Name: "id", Type: domain.Int32, SourceType: "int32"},
		{Name: "mask", Type: domain.Uint64, SourceType: "uint64"},
		{Name: "weight", Type: domain.Float64, SourceType: "float64"},
	}, columns)

	for _, span := range [][2]int{{0, 4}, {4, 7}} {
		chunk, err := table.ReadChunk(span[0], span[1])
		require.NoError(t, err)
		for i, r := range records[span[0] : span[0]+span[1]] {
			assert.Equal(t, r.flag != 0, chunk.Columns[0].([]bool)[i])
			assert.Equal(t, r.count, chunk.Columns[1].([]int16)[i])
			assert.Equal(t, r.id, chunk.Columns[2].([]int32)[i])
			assert.Equal(t, r.mask, chunk.Columns[3].([]uint64)[i])
			assert.Equal(t, r.weight, chunk.Columns[4].([]float64)[i])
		}
	}
}

func TestTables_RepeatedListingOpensDatasetsOnce(t *testing.T) {
	path := createTestFile(t, makeHits(5))
	f, err := Open(path)
	require.NoError(t, err)

	first, err := f.Tables()
	require.NoError(t, err)
	second, err := f.Tables()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, f.tables, len(first))
	assert.NoError(t, f.Close())
}
