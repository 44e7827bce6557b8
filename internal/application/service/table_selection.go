package service

import (
	"H5ROOT/internal/domain"
	"fmt"
)

// NormalizeNames turns the requested table names into a filter. A nil
// list means every table while an empty one selects none. Blank names are
// rejected and duplicates collapse.
func NormalizeNames(names ...string) ([]string, error) {
	if names == nil {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			return nil, domain.NewInvalidArgument("names", "table names must not be empty")
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}

// selectTables keeps the tables named in filter, in file order, and reports
// the requested names no table matched. A nil filter selects everything.
func selectTables(tables []domain.Table, filter []string) ([]domain.Table, []string) {
	if filter == nil {
		return tables, nil
	}
	wanted := make(map[string]bool, len(filter))
	for _, n := range filter {
		wanted[n] = false
	}

	var selected []domain.Table
	for _, t := range tables {
		if _, ok := wanted[t.Name()]; ok {
			selected = append(selected, t)
			wanted[t.Name()] = true
		}
	}

	var missing []string
	for _, n := range filter {
		if !wanted[n] {
			missing = append(missing, n)
		}
	}
	return selected, missing
}

type plannedTable struct {
	table  domain.Table
	layout domain.TreeLayout
}

func planTable(t domain.Table) (plannedTable, error) {
	columns, err := t.Columns()
	if err != nil {
		return plannedTable{}, fmt.Errorf("failed to read columns of %s: %w", t.Name(), err)
	}
	layout, err := domain.MirrorSchema(t.Name(), columns)
	if err != nil {
		return plannedTable{}, err
	}
	return plannedTable{table: t, layout: layout}, nil
}
