package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirrorSchema_BranchesFollowColumns(t *testing.T) {
	columns := []Column{
		{Name: "event_number", Type: Int64},
		{Name: "column", Type: Uint8},
		{Name: "row", Type: Uint16},
		{Name: "charge", Type: Float32},
		{Name: "is_noisy", Type: Bool},
	}

	layout, err := MirrorSchema("Hits", columns)
	require.NoError(t, err)

	assert.Equal(t, "Hits", layout.Name)
	assert.Equal(t, "Hits", layout.Title)
	assert.Equal(t, []string{"event_number", "column", "row", "charge", "is_noisy"}, layout.BranchNames())

	assert.Equal(t, LengthBranchName, layout.Length.Name)
	assert.Equal(t, "n_entries/L", layout.Length.Leaflist)
	assert.Empty(t, layout.Length.Count)

	want := []string{
		"event_number[n_entries]/L",
		"column[n_entries]/b",
		"row[n_entries]/s",
		"charge[n_entries]/F",
		"is_noisy[n_entries]/O",
	}
	for i, b := range layout.Branches {
		assert.Equal(t, want[i], b.Leaflist)
		assert.Equal(t, LengthBranchName, b.Count)
		assert.Equal(t, columns[i].Type, b.Type)
	}

	assert.Equal(t, 3, layout.Index("charge"))
	assert.Equal(t, -1, layout.Index(LengthBranchName))
	assert.Equal(t, -1, layout.Index("Charge"), "names are case-sensitive")
}

func TestMirrorSchema_NoColumns(t *testing.T) {
	layout, err := MirrorSchema("empty", nil)
	require.NoError(t, err)
	assert.Empty(t, layout.Branches)
	assert.Equal(t, LengthBranchName, layout.Length.Name)
}

func TestMirrorSchema_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		columns []Column
	}{
		{"empty table name", " ", []Column{{Name: "x", Type: Int32}}},
		{"reserved length name", "t", []Column{{Name: "x", Type: Int32}, {Name: LengthBranchName, Type: Int64}}},
		{"duplicated column", "t", []Column{{Name: "x", Type: Int32}, {Name: "x", Type: Int64}}},
		{"empty column name", "t", []Column{{Name: "", Type: Int32}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MirrorSchema(tc.table, tc.columns)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestMirrorSchema_UnsupportedType(t *testing.T) {
	columns := []Column{
		{Name: "x", Type: Int32},
		{Name: "label", Type: Invalid, SourceType: "string"},
	}

	_, err := MirrorSchema("Hits", columns)
	require.ErrorIs(t, err, ErrUnsupportedType)

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "Hits", unsupported.Table)
	assert.Equal(t, "label", unsupported.Column)
	assert.Equal(t, "string", unsupported.Type)
	assert.Contains(t, err.Error(), "Hits.label")
}
