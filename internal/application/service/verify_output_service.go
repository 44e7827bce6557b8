package service

import (
	"H5ROOT/internal/domain"
	"fmt"
	"log/slog"
	"slices"
)

// VerifyOutputService reopens a converted file and checks it against the
// conversion report.
type VerifyOutputService struct {
	open   domain.StoredOutputOpener
	logger *slog.Logger
}

func NewVerifyOutputService(open domain.StoredOutputOpener, logger *slog.Logger) *VerifyOutputService {
	return &VerifyOutputService{
		open:   open,
		logger: logger,
	}
}

type VerifyOutputQuery struct {
	Output    string
	Expected  []TableReport
	ChunkSize int
}

func (s *VerifyOutputService) Execute(query VerifyOutputQuery) error {
	if query.ChunkSize <= 0 {
		return domain.NewInvalidArgument("chunk size", "must be positive, got %d", query.ChunkSize)
	}
	stored, err := s.open(query.Output)
	if err != nil {
		return err
	}
	defer stored.Close()

	keys, err := stored.TreeKeys()
	if err != nil {
		return err
	}

	for _, want := range query.Expected {
		if err := verifyTree(stored, keys[want.Name], want, query.ChunkSize); err != nil {
			return fmt.Errorf("%w: %s: tree %s: %w", domain.ErrVerificationFailed, query.Output, want.Name, err)
		}
		s.logger.Debug("tree verified", "tree", want.Name, "entries", want.Entries)
	}
	return nil
}

func verifyTree(stored domain.StoredOutput, keys int, want TableReport, chunkSize int) error {
	if keys != 1 {
		return fmt.Errorf("stored under %d keys, expected 1", keys)
	}
	data, err := stored.ReadTree(want.Name)
	if err != nil {
		return err
	}
	if n := domain.ExpectedEntries(want.Rows, chunkSize); len(data.Lengths) != n {
		return fmt.Errorf("has %d entries, expected %d", len(data.Lengths), n)
	}
	var rows int64
	for _, n := range data.Lengths {
		rows += n
	}
	if rows != int64(want.Rows) {
		return fmt.Errorf("holds %d rows, expected %d", rows, want.Rows)
	}
	if !slices.Equal(data.Branches, want.Branches) {
		return fmt.Errorf("has branches %v, expected %v", data.Branches, want.Branches)
	}
	return nil
}
