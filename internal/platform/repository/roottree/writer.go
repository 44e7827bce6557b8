package roottree

import (
	"H5ROOT/internal/domain"
	"errors"
	"fmt"
	"os"

	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// File is a ROOT file opened for writing. Creating it truncates any
// previous content at the same path.
type File struct {
	path  string
	f     *riofs.File
	opts  []rtree.WriteOption
	trees []*Tree
}

func Create(path string, compression Compression) (*File, error) {
	opts, err := compression.writeOptions()
	if err != nil {
		return nil, err
	}
	f, err := riofs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create %s: %w", domain.ErrContainerOpen, path, err)
	}
	return &File{
		path: path,
		f:    f,
		opts: opts,
	}, nil
}

// Creator adapts Create to the domain output factory.
func Creator(compression Compression) domain.OutputCreator {
	return func(path string) (domain.Output, error) {
		return Create(path, compression)
	}
}

func (f *File) Path() string {
	return f.path
}

// CreateTree declares the length branch and one variable-length array
// branch per data branch of layout. Branch buffers start empty and are
// attached with Bind before every Fill.
func (f *File) CreateTree(layout domain.TreeLayout) (domain.TreeWriter, error) {
	if f.f == nil {
		return nil, fmt.Errorf("file %s is closed", f.path)
	}

	length := new(int64)
	wvars := make([]rtree.WriteVar, 0, len(layout.Branches)+1)
	wvars = append(wvars, rtree.WriteVar{Name: layout.Length.Name, Value: length})

	slots := make([]any, len(layout.Branches))
	for i, b := range layout.Branches {
		slot, err := newSlot(b.Type)
		if err != nil {
			return nil, fmt.Errorf("branch %s: %w", b.Name, err)
		}
		slots[i] = slot
		wvars = append(wvars, rtree.WriteVar{Name: b.Name, Value: slot, Count: b.Count})
	}

	opts := append([]rtree.WriteOption{rtree.WithTitle(layout.Title)}, f.opts...)
	w, err := rtree.NewWriter(f.f, layout.Name, wvars, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree %s: %w", layout.Name, err)
	}

	tree := &Tree{
		name:   layout.Name,
		w:      w,
		length: length,
		slots:  slots,
	}
	f.trees = append(f.trees, tree)
	return tree, nil
}

// Close flushes every tree not flushed yet and closes the file.
func (f *File) Close() error {
	if f.f == nil {
		return nil
	}
	var errs []error
	for _, t := range f.trees {
		if err := t.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := f.f.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close %s: %w", f.path, err))
	}
	f.f = nil
	return errors.Join(errs...)
}

// Discard closes the file and removes it from disk.
func (f *File) Discard() error {
	closeErr := f.Close()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Join(closeErr, err)
	}
	return closeErr
}

type Tree struct {
	name    string
	w       rtree.Writer
	length  *int64
	slots   []any
	entries int64
	flushed bool
}

func (t *Tree) Bind(branch int, data any) error {
	if branch < 0 || branch >= len(t.slots) {
		return fmt.Errorf("tree %s has no branch %d", t.name, branch)
	}
	return bindSlot(t.slots[branch], data)
}

func (t *Tree) SetLength(n int) {
	*t.length = int64(n)
}

// Fill commits the bound buffers as one entry. The writer serializes the
// values before returning, so buffers may be released afterwards.
func (t *Tree) Fill() error {
	if t.flushed {
		return fmt.Errorf("tree %s already flushed", t.name)
	}
	if _, err := t.w.Write(); err != nil {
		return fmt.Errorf("failed to write entry %d of %s: %w", t.entries, t.name, err)
	}
	t.entries++
	return nil
}

// Flush writes the tree to its file once; later calls are no-ops so the
// file never holds two revisions of the same tree.
func (t *Tree) Flush() error {
	if t.flushed {
		return nil
	}
	t.flushed = true
	if err := t.w.Close(); err != nil {
		return fmt.Errorf("failed to flush tree %s: %w", t.name, err)
	}
	return nil
}

func (t *Tree) Entries() int64 {
	return t.entries
}
