package h5table

import (
	"H5ROOT/internal/domain"
	"encoding/binary"
	"fmt"

	"gonum.org/v1/hdf5"
)

type memberType struct {
	dt    *hdf5.Datatype
	typ   domain.ScalarType
	order binary.ByteOrder
}

// standardTypes are the member types a PyTables table can hold that map to a
// scalar branch. PyTables stores booleans as an 8-bit bitfield.
var standardTypes = []memberType{
	{hdf5.T_STD_I8LE, domain.Int8, binary.LittleEndian},
	{hdf5.T_STD_I8BE, domain.Int8, binary.BigEndian},
	{hdf5.T_STD_U8LE, domain.Uint8, binary.LittleEndian},
	{hdf5.T_STD_U8BE, domain.Uint8, binary.BigEndian},
	{hdf5.T_STD_I16LE, domain.Int16, binary.LittleEndian},
	{hdf5.T_STD_I16BE, domain.Int16, binary.BigEndian},
	{hdf5.T_STD_U16LE, domain.Uint16, binary.LittleEndian},
	{hdf5.T_STD_U16BE, domain.Uint16, binary.BigEndian},
	{hdf5.T_STD_I32LE, domain.Int32, binary.LittleEndian},
	{hdf5.T_STD_I32BE, domain.Int32, binary.BigEndian},
	{hdf5.T_STD_U32LE, domain.Uint32, binary.LittleEndian},
	{hdf5.T_STD_U32BE, domain.Uint32, binary.BigEndian},
	{hdf5.T_STD_I64LE, domain.Int64, binary.LittleEndian},
	{hdf5.T_STD_I64BE, domain.Int64, binary.BigEndian},
	{hdf5.T_STD_U64LE, domain.Uint64, binary.LittleEndian},
	{hdf5.T_STD_U64BE, domain.Uint64, binary.BigEndian},
	{hdf5.T_IEEE_F32LE, domain.Float32, binary.LittleEndian},
	{hdf5.T_IEEE_F32BE, domain.Float32, binary.BigEndian},
	{hdf5.T_IEEE_F64LE, domain.Float64, binary.LittleEndian},
	{hdf5.T_IEEE_F64BE, domain.Float64, binary.BigEndian},
	{hdf5.T_STD_B8LE, domain.Bool, binary.LittleEndian},
	{hdf5.T_STD_B8BE, domain.Bool, binary.BigEndian},
}

// classify maps an HDF5 member type onto a scalar type and byte order.
// Unsupported types return domain.Invalid and a description of the type.
func classify(dt *hdf5.Datatype) (domain.ScalarType, binary.ByteOrder, string) {
	for _, st := range standardTypes {
		if dt.Equal(st.dt) {
			return st.typ, st.order, st.typ.String()
		}
	}
	return domain.Invalid, nil, fmt.Sprintf("%s (%d bytes)", className(dt.Class()), dt.Size())
}

func className(c hdf5.TypeClass) string {
	switch c {
	case hdf5.T_INTEGER:
		return "integer"
	case hdf5.T_FLOAT:
		return "float"
	case hdf5.T_TIME:
		return "time"
	case hdf5.T_STRING:
		return "string"
	case hdf5.T_BITFIELD:
		return "bitfield"
	case hdf5.T_OPAQUE:
		return "opaque"
	case hdf5.T_COMPOUND:
		return "compound"
	case hdf5.T_REFERENCE:
		return "reference"
	case hdf5.T_ENUM:
		return "enum"
	case hdf5.T_VLEN:
		return "vlen"
	case hdf5.T_ARRAY:
		return "array"
	default:
		return "unknown"
	}
}
