package service

import (
	"H5ROOT/internal/domain"
	"H5ROOT/internal/platform/utils"
	"fmt"
	"log/slog"
)

// ListTablesService reports the trees a conversion would write without
// creating any output.
type ListTablesService struct {
	open   domain.SourceOpener
	logger *slog.Logger
}

func NewListTablesService(open domain.SourceOpener, logger *slog.Logger) *ListTablesService {
	return &ListTablesService{
		open:   open,
		logger: logger,
	}
}

type ListTablesQuery struct {
	Input string
	Names []string
}

type TablePlan struct {
	Name      string
	Rows      int
	Leaflists []string
	// Err is set when the table cannot be mirrored.
	Err error
}

type ListTablesResult struct {
	Input   string
	Tables  []TablePlan
	Missing []string
}

func (s *ListTablesService) Execute(query ListTablesQuery) (ListTablesResult, error) {
	if query.Input == "" {
		return ListTablesResult{}, domain.NewInvalidArgument("input", "path must not be empty")
	}
	names, err := NormalizeNames(query.Names...)
	if err != nil {
		return ListTablesResult{}, err
	}
	input, _ := utils.ResolveInputPath(query.Input)
	result := ListTablesResult{Input: input}

	src, err := s.open(input)
	if err != nil {
		return result, err
	}
	defer src.Close()

	tables, err := src.Tables()
	if err != nil {
		return result, fmt.Errorf("failed to list tables of %s: %w", input, err)
	}
	selected, missing := selectTables(tables, names)
	result.Missing = missing

	for _, t := range selected {
		tp := TablePlan{Name: t.Name(), Rows: t.NumRows()}
		plan, err := planTable(t)
		if err != nil {
			tp.Err = err
			s.logger.Warn("table cannot be converted", "table", t.Name(), "error", err)
		} else {
			tp.Leaflists = append(tp.Leaflists, plan.layout.Length.Leaflist)
			for _, b := range plan.layout.Branches {
				tp.Leaflists = append(tp.Leaflists, b.Leaflist)
			}
		}
		result.Tables = append(result.Tables, tp)
	}
	return result, nil
}
