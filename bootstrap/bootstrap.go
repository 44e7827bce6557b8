package bootstrap

import (
	"H5ROOT/internal/application/service"
	"H5ROOT/internal/domain"
	"H5ROOT/internal/platform/cli"
	"H5ROOT/internal/platform/config"
	"H5ROOT/internal/platform/logging"
	"H5ROOT/internal/platform/repository/h5table"
	"H5ROOT/internal/platform/repository/roottree"
	"io"
	"log/slog"
	"os"

	"go.uber.org/dig"
)

// Run wires the converter for args and runs it. The logger is flushed
// before Run returns.
func Run(args []string) error {
	var cleanup func()
	defer func() {
		if cleanup != nil {
			cleanup()
		}
	}()

	container := dig.New()
	serviceConstructors := []interface{}{
		func() (config.Config, error) { return config.LoadConfig(args) },
		func(cfg config.Config) *slog.Logger {
			l, closeFn := newLogger(cfg)
			cleanup = closeFn
			return l
		},
		compression,
		sourceOpener,
		outputCreator,
		storedOutputOpener,
		stdout,
		service.NewConvertTableService,
		service.NewListTablesService,
		service.NewVerifyOutputService,
		cli.NewRunner,
	}
	for _, constructor := range serviceConstructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}
	return container.Invoke(func(r *cli.Runner) error {
		return r.Run()
	})
}

func newLogger(cfg config.Config) (*slog.Logger, func()) {
	return logging.SetupLogger(logging.Options{
		Level:  cfg.LogLevel,
		Output: os.Stderr,
		SeqURL: cfg.SeqURL,
	})
}

func compression(cfg config.Config) (roottree.Compression, error) {
	algorithm, err := roottree.ParseAlgorithm(cfg.Compression)
	if err != nil {
		return roottree.Compression{}, err
	}
	return roottree.Compression{Algorithm: algorithm, Level: cfg.CompressionLevel}, nil
}

func sourceOpener() domain.SourceOpener {
	return h5table.Opener
}

func outputCreator(c roottree.Compression) domain.OutputCreator {
	return roottree.Creator(c)
}

func storedOutputOpener() domain.StoredOutputOpener {
	return roottree.OpenStored
}

func stdout() io.Writer {
	return os.Stdout
}
