package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_InvalidArguments(t *testing.T) {
	err := Run([]string{"-chunk-size", "0", "input.h5"})
	assert.ErrorContains(t, err, "chunk size")

	err = Run([]string{"-compression", "brotli", "input.h5"})
	assert.ErrorContains(t, err, "brotli")
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	err := Run([]string{"-log-level", "error", filepath.Join(dir, "absent")})
	assert.ErrorContains(t, err, "absent.h5")
	assert.NoFileExists(t, filepath.Join(dir, "absent.root"))
}
