package service

import (
	"H5ROOT/internal/domain"
	"H5ROOT/internal/platform/logging"
	"H5ROOT/internal/platform/utils"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

type ConvertTableService struct {
	open   domain.SourceOpener
	create domain.OutputCreator
	logger *slog.Logger
}

func NewConvertTableService(open domain.SourceOpener, create domain.OutputCreator,
	logger *slog.Logger) *ConvertTableService {
	return &ConvertTableService{
		open:   open,
		create: create,
		logger: logger,
	}
}

type ConvertTableCommand struct {
	Input  string
	Output string
	// Names restricts the conversion to these tables; nil converts all.
	Names     []string
	ChunkSize int
}

type TableReport struct {
	Name     string
	Rows     int
	Entries  int
	Branches []string
}

type ConvertTableResult struct {
	Input  string
	Output string
	RunID  string
	Tables []TableReport
}

// Execute converts the selected tables of the input into trees of a freshly
// recreated output file. Every schema is mirrored before the output is
// created, so an unsupported column leaves no file behind.
func (s *ConvertTableService) Execute(command ConvertTableCommand) (ConvertTableResult, error) {
	if command.Input == "" {
		return ConvertTableResult{}, domain.NewInvalidArgument("input", "path must not be empty")
	}
	if command.ChunkSize <= 0 {
		return ConvertTableResult{}, domain.NewInvalidArgument("chunk size", "must be positive, got %d", command.ChunkSize)
	}
	names, err := NormalizeNames(command.Names...)
	if err != nil {
		return ConvertTableResult{}, err
	}

	input, base := utils.ResolveInputPath(command.Input)
	output := utils.ResolveOutputPath(base, command.Output)
	logger, runID := logging.WithRunID(s.logger)
	logger = logger.With("input", input, "output", output)
	result := ConvertTableResult{Input: input, Output: output, RunID: runID}

	src, err := s.open(input)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn("failed to close source", "error", err)
		}
	}()

	tables, err := src.Tables()
	if err != nil {
		return result, fmt.Errorf("failed to list tables of %s: %w", input, err)
	}
	selected, missing := selectTables(tables, names)
	for _, n := range missing {
		logger.Warn("table not found", "name", n)
	}

	plans := make([]plannedTable, 0, len(selected))
	for _, t := range selected {
		plan, err := planTable(t)
		if err != nil {
			return result, err
		}
		plans = append(plans, plan)
	}

	out, err := s.create(output)
	if err != nil {
		return result, err
	}
	for _, plan := range plans {
		report, err := s.convert(logger, out, plan, command.ChunkSize)
		if err != nil {
			return result, errors.Join(err, discard(out, output))
		}
		result.Tables = append(result.Tables, report)
	}
	if err := out.Close(); err != nil {
		return result, errors.Join(fmt.Errorf("failed to close %s: %w", output, err), removePartial(output))
	}

	logger.Info("conversion finished", "tables", len(result.Tables))
	return result, nil
}

func (s *ConvertTableService) convert(logger *slog.Logger, out domain.Output, plan plannedTable, chunkSize int) (TableReport, error) {
	name := plan.layout.Name
	tree, err := out.CreateTree(plan.layout)
	if err != nil {
		return TableReport{}, err
	}
	stats, err := domain.CopyChunks(plan.table, tree, chunkSize)
	if err != nil {
		return TableReport{}, err
	}
	if err := tree.Flush(); err != nil {
		return TableReport{}, err
	}
	logger.Debug("table converted", "table", name, "rows", stats.Rows, "entries", stats.Entries)
	return TableReport{
		Name:     name,
		Rows:     stats.Rows,
		Entries:  stats.Entries,
		Branches: plan.layout.BranchNames(),
	}, nil
}

func discard(out domain.Output, path string) error {
	if d, ok := out.(domain.Discarder); ok {
		return d.Discard()
	}
	return errors.Join(out.Close(), removePartial(path))
}

func removePartial(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
