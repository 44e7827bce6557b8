// Package h5table reads PyTables tables from HDF5 files.
package h5table

import (
	"H5ROOT/internal/domain"
	"H5ROOT/internal/platform/h5probe"
	"errors"
	"fmt"

	"gonum.org/v1/hdf5"
)

type File struct {
	path   string
	f      *hdf5.File
	listed bool
	tables []*Table
}

// Open opens path read-only after checking it carries an HDF5 superblock.
func Open(path string) (*File, error) {
	if _, err := h5probe.Probe(path); err != nil {
		return nil, err
	}
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", domain.ErrContainerOpen, path, err)
	}
	return &File{path: path, f: f}, nil
}

// Opener adapts Open to the domain source factory.
func Opener(path string) (domain.Container, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Tables returns the tables of the root group. Groups, plain arrays and
// datasets that are not rank-1 compounds are skipped. The datasets are opened
// once; later calls return the same tables.
func (f *File) Tables() ([]domain.Table, error) {
	if f.listed {
		return f.domainTables(), nil
	}
	// Drop what a failed earlier listing left open.
	for _, t := range f.tables {
		t.close()
	}
	f.tables = nil

	n, err := f.f.NumObjects()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", f.path, err)
	}

	for i := uint(0); i < n; i++ {
		kind, err := f.f.ObjectTypeByIndex(i)
		if err != nil {
			return nil, fmt.Errorf("failed to get type of object %d in %s: %w", i, f.path, err)
		}
		if kind != hdf5.H5G_DATASET {
			continue
		}
		name, err := f.f.ObjectNameByIndex(i)
		if err != nil {
			return nil, fmt.Errorf("failed to get name of object %d in %s: %w", i, f.path, err)
		}

		ds, err := f.f.OpenDataset(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset %s: %w", name, err)
		}
		table, ok, err := newTable(name, ds)
		if err != nil || !ok {
			ds.Close()
			if err != nil {
				return nil, err
			}
			continue
		}
		f.tables = append(f.tables, table)
	}
	f.listed = true
	return f.domainTables(), nil
}

func (f *File) domainTables() []domain.Table {
	tables := make([]domain.Table, len(f.tables))
	for i, t := range f.tables {
		tables[i] = t
	}
	return tables
}

func (f *File) Close() error {
	var errs []error
	for _, t := range f.tables {
		if err := t.close(); err != nil {
			errs = append(errs, err)
		}
	}
	f.tables = nil
	if err := f.f.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close %s: %w", f.path, err))
	}
	return errors.Join(errs...)
}
