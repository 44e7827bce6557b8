package domain

import (
	"fmt"
	"strings"
)

const (
	// LengthBranchName is the synthetic branch holding the row count of the current chunk.
	LengthBranchName = "n_entries"
	LengthBranchType = Int64
)

// BranchDescriptor describes one destination branch.
// Count is empty for the length branch and LengthBranchName for data branches.
type BranchDescriptor struct {
	Name     string
	Type     ScalarType
	Code     byte
	Count    string
	Leaflist string
}

// TreeLayout is the destination structure mirrored from one source table.
type TreeLayout struct {
	Name     string
	Title    string
	Length   BranchDescriptor
	Branches []BranchDescriptor
}

// MirrorSchema builds the tree layout for a table: the length branch first,
// then one variable-length array branch per column in source order.
func MirrorSchema(name string, columns []Column) (TreeLayout, error) {
	if strings.TrimSpace(name) == "" {
		return TreeLayout{}, NewInvalidArgument("table", "empty table name")
	}

	length, err := newBranchDescriptor(LengthBranchName, LengthBranchType, "")
	if err != nil {
		return TreeLayout{}, err
	}

	seen := make(map[string]struct{}, len(columns))
	branches := make([]BranchDescriptor, 0, len(columns))
	for i, col := range columns {
		switch {
		case col.Name == "":
			return TreeLayout{}, NewInvalidArgument("column", "table %s: column %d has an empty name", name, i)
		case col.Name == LengthBranchName:
			return TreeLayout{}, NewInvalidArgument("column", "table %s: column name %q is reserved for the length branch", name, col.Name)
		}
		if _, dup := seen[col.Name]; dup {
			return TreeLayout{}, NewInvalidArgument("column", "table %s: duplicated column name %q", name, col.Name)
		}
		seen[col.Name] = struct{}{}

		branch, err := newBranchDescriptor(col.Name, col.Type, LengthBranchName)
		if err != nil {
			return TreeLayout{}, &UnsupportedTypeError{Table: name, Column: col.Name, Type: col.TypeName()}
		}
		branches = append(branches, branch)
	}

	return TreeLayout{
		Name:     name,
		Title:    name,
		Length:   length,
		Branches: branches,
	}, nil
}

func newBranchDescriptor(name string, t ScalarType, count string) (BranchDescriptor, error) {
	code, err := t.TypeCode()
	if err != nil {
		return BranchDescriptor{}, err
	}
	leaflist := fmt.Sprintf("%s/%c", name, code)
	if count != "" {
		leaflist = fmt.Sprintf("%s[%s]/%c", name, count, code)
	}
	return BranchDescriptor{
		Name:     name,
		Type:     t,
		Code:     code,
		Count:    count,
		Leaflist: leaflist,
	}, nil
}

// BranchNames returns the data branch names in order, without the length branch.
func (l TreeLayout) BranchNames() []string {
	names := make([]string, len(l.Branches))
	for i, b := range l.Branches {
		names[i] = b.Name
	}
	return names
}

// Index resolves a data branch by name; -1 when absent.
func (l TreeLayout) Index(name string) int {
	for i, b := range l.Branches {
		if b.Name == name {
			return i
		}
	}
	return -1
}
