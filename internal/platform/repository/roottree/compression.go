package roottree

import (
	"H5ROOT/internal/domain"
	"strings"

	"go-hep.org/x/hep/groot/rtree"
)

type Algorithm string

const (
	None Algorithm = "none"
	Zlib Algorithm = "zlib"
	LZ4  Algorithm = "lz4"
	LZMA Algorithm = "lzma"
)

// ROOT encodes a compression setting as algorithm*100 + level, so every
// algorithm takes a level in [MinLevel, MaxLevel].
const (
	MinLevel = 1
	MaxLevel = 9
	// DefaultLevel matches ROOT's default zlib setting (101).
	DefaultLevel = MinLevel
)

type Compression struct {
	Algorithm Algorithm
	Level     int
}

func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(name))); a {
	case None, Zlib, LZ4, LZMA:
		return a, nil
	case "":
		return Zlib, nil
	default:
		return "", domain.NewInvalidArgument("compression", "unknown algorithm %q", name)
	}
}

func (c Compression) writeOptions() ([]rtree.WriteOption, error) {
	if c.Algorithm == None {
		return []rtree.WriteOption{rtree.WithoutCompression()}, nil
	}
	if c.Level < MinLevel || c.Level > MaxLevel {
		return nil, domain.NewInvalidArgument("compression level", "%d is outside [%d, %d]", c.Level, MinLevel, MaxLevel)
	}
	switch c.Algorithm {
	case Zlib, "":
		return []rtree.WriteOption{rtree.WithZlib(c.Level)}, nil
	case LZ4:
		return []rtree.WriteOption{rtree.WithLZ4(c.Level)}, nil
	case LZMA:
		return []rtree.WriteOption{rtree.WithLZMA(c.Level)}, nil
	default:
		return nil, domain.NewInvalidArgument("compression", "unknown algorithm %q", c.Algorithm)
	}
}
