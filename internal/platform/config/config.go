package config

import (
	"H5ROOT/internal/domain"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultInput       = "input.h5"
	DefaultChunkSize   = 100000
	DefaultCompression = "zlib"
	// DefaultCompressionLevel is ROOT's default level for every algorithm.
	DefaultCompressionLevel = 1
)

type Config struct {
	Inputs           []string
	Output           string
	Names            string
	ChunkSize        int
	Compression      string
	CompressionLevel int
	DryRun           bool
	Verify           bool
	LogLevel         slog.Level
	SeqURL           string
}

// LoadConfig resolves the configuration from defaults, then .env and the
// process environment, then the command line args.
func LoadConfig(args []string) (Config, error) {
	godotenv.Load(".env")

	cfg := Config{
		ChunkSize:        DefaultChunkSize,
		Compression:      DefaultCompression,
		CompressionLevel: DefaultCompressionLevel,
		LogLevel:         slog.LevelInfo,
		SeqURL:           os.Getenv("H5ROOT_SEQ_URL"),
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("h5root", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Output, "o", "", "output ROOT file, derived from the input name when empty")
	fs.StringVar(&cfg.Names, "names", "", "comma separated table names to convert, all tables when empty")
	fs.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "rows copied per tree entry")
	fs.StringVar(&cfg.Compression, "compression", cfg.Compression, "none, zlib, lz4 or lzma")
	fs.IntVar(&cfg.CompressionLevel, "compression-level", cfg.CompressionLevel, "compression level from 1 to 9")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "list the trees that would be written and exit")
	fs.BoolVar(&cfg.Verify, "verify", false, "read the output back and check it after converting")
	fs.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, domain.NewInvalidArgument("arguments", "%v", err)
	}

	cfg.Inputs = fs.Args()
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = []string{DefaultInput}
	}
	if cfg.ChunkSize <= 0 {
		return Config{}, domain.NewInvalidArgument("chunk size", "must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.Output != "" && len(cfg.Inputs) > 1 {
		return Config{}, domain.NewInvalidArgument("o", "a single output cannot hold %d inputs", len(cfg.Inputs))
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("H5ROOT_CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.NewInvalidArgument("H5ROOT_CHUNK_SIZE", "%q is not an integer", v)
		}
		c.ChunkSize = n
	}
	if v := os.Getenv("H5ROOT_COMPRESSION"); v != "" {
		c.Compression = v
	}
	if v := os.Getenv("H5ROOT_COMPRESSION_LEVEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.NewInvalidArgument("H5ROOT_COMPRESSION_LEVEL", "%q is not an integer", v)
		}
		c.CompressionLevel = n
	}
	if v := os.Getenv("H5ROOT_LOG_LEVEL"); v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return domain.NewInvalidArgument("H5ROOT_LOG_LEVEL", "%v", err)
		}
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("inputs=%v output=%q names=%q chunk=%d compression=%s:%d",
		c.Inputs, c.Output, c.Names, c.ChunkSize, c.Compression, c.CompressionLevel)
}
