package cli

import (
	"H5ROOT/internal/application/service"
	"H5ROOT/internal/platform/config"
	"H5ROOT/internal/platform/utils"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
)

// Runner converts every configured input in turn.
type Runner struct {
	cfg     config.Config
	convert *service.ConvertTableService
	list    *service.ListTablesService
	verify  *service.VerifyOutputService
	logger  *slog.Logger
	out     io.Writer
}

func NewRunner(cfg config.Config, convert *service.ConvertTableService, list *service.ListTablesService,
	verify *service.VerifyOutputService, logger *slog.Logger, out io.Writer) *Runner {
	return &Runner{
		cfg:     cfg,
		convert: convert,
		list:    list,
		verify:  verify,
		logger:  logger,
		out:     out,
	}
}

// Run processes all inputs and returns the joined failures, if any.
func (r *Runner) Run() error {
	names := utils.SplitNames(r.cfg.Names)
	r.logger.Debug("starting", "config", r.cfg.String())

	var errs []error
	for _, input := range r.cfg.Inputs {
		var err error
		if r.cfg.DryRun {
			err = r.plan(input, names)
		} else {
			err = r.run(input, names)
		}
		if err != nil {
			r.logger.Error("conversion failed", "input", input, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", input, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) run(input string, names []string) error {
	result, err := r.convert.Execute(service.ConvertTableCommand{
		Input:     input,
		Output:    r.cfg.Output,
		Names:     names,
		ChunkSize: r.cfg.ChunkSize,
	})
	if err != nil {
		return err
	}

	if r.cfg.Verify {
		err := r.verify.Execute(service.VerifyOutputQuery{
			Output:    result.Output,
			Expected:  result.Tables,
			ChunkSize: r.cfg.ChunkSize,
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(r.out, "%s -> %s\n", result.Input, result.Output)
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, t := range result.Tables {
		fmt.Fprintf(w, "  %s\t%d rows\t%d entries\t%d branches\n", t.Name, t.Rows, t.Entries, len(t.Branches))
	}
	return w.Flush()
}

func (r *Runner) plan(input string, names []string) error {
	result, err := r.list.Execute(service.ListTablesQuery{Input: input, Names: names})
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%s\n", result.Input)
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, t := range result.Tables {
		if t.Err != nil {
			fmt.Fprintf(w, "  %s\t%d rows\tskipped: %v\n", t.Name, t.Rows, t.Err)
			continue
		}
		fmt.Fprintf(w, "  %s\t%d rows\t%s\n", t.Name, t.Rows, strings.Join(t.Leaflists, " "))
	}
	for _, n := range result.Missing {
		fmt.Fprintf(w, "  %s\tnot found\t\n", n)
	}
	return w.Flush()
}
