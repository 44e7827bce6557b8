// Package h5probe checks that a file carries an HDF5 superblock before the
// HDF5 library is asked to open it.
package h5probe

import (
	"H5ROOT/internal/domain"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"
)

// Signature opens every HDF5 superblock.
var Signature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

// The superblock sits at 0, 512, 1024, 2048, ... when a user block precedes it.
const firstUserBlockOffset = 512

type Superblock struct {
	Offset  int64
	Version uint8
}

func Probe(path string) (Superblock, error) {
	file, err := os.Open(path)
	if err != nil {
		return Superblock{}, fmt.Errorf("%w: %w", domain.ErrContainerOpen, err)
	}
	defer file.Close()

	sb, err := ProbeStream(kaitai.NewStream(file))
	if err != nil {
		return Superblock{}, fmt.Errorf("%s: %w", path, err)
	}
	return sb, nil
}

func ProbeStream(stream *kaitai.Stream) (Superblock, error) {
	size, err := stream.Size()
	if err != nil {
		return Superblock{}, fmt.Errorf("%w: failed to get size: %w", domain.ErrContainerOpen, err)
	}

	for offset := int64(0); offset+int64(len(Signature))+1 <= size; offset = nextOffset(offset) {
		if _, err := stream.Seek(offset, io.SeekStart); err != nil {
			return Superblock{}, fmt.Errorf("%w: failed to seek to %d: %w", domain.ErrContainerOpen, offset, err)
		}
		magic, err := stream.ReadBytes(len(Signature))
		if err != nil {
			return Superblock{}, fmt.Errorf("%w: failed to read signature at %d: %w", domain.ErrContainerOpen, offset, err)
		}
		if !bytes.Equal(magic, Signature) {
			continue
		}
		version, err := stream.ReadU1()
		if err != nil {
			return Superblock{}, fmt.Errorf("%w: failed to read superblock version: %w", domain.ErrContainerOpen, err)
		}
		return Superblock{Offset: offset, Version: version}, nil
	}

	return Superblock{}, fmt.Errorf("%w: not an HDF5 file, no superblock signature found", domain.ErrContainerOpen)
}

func nextOffset(offset int64) int64 {
	if offset == 0 {
		return firstUserBlockOffset
	}
	return offset * 2
}
