package domain

import "fmt"

type CopyStats struct {
	Rows       int
	Entries    int
	LastLength int
}

// ExpectedEntries is the number of records a table of rows produces: ceil(rows/chunkSize).
func ExpectedEntries(rows, chunkSize int) int {
	if chunkSize <= 0 || rows <= 0 {
		return 0
	}
	return (rows-1)/chunkSize + 1
}

// CopyChunks streams table into tree, one record per chunk of at most chunkSize rows.
// Every column buffer is cloned before it is bound, so the tree never sees
// memory the table may reuse.
func CopyChunks(table Table, tree TreeWriter, chunkSize int) (CopyStats, error) {
	if chunkSize <= 0 {
		return CopyStats{}, NewInvalidArgument("chunk size", "must be positive, got %d", chunkSize)
	}

	columns, err := table.Columns()
	if err != nil {
		return CopyStats{}, fmt.Errorf("failed to read columns of %s: %w", table.Name(), err)
	}

	var stats CopyStats
	rows := table.NumRows()
	for index, n := 0, 0; index < rows; index += n {
		n = min(chunkSize, rows-index)

		chunk, err := table.ReadChunk(index, n)
		if err != nil {
			return stats, fmt.Errorf("failed to read rows [%d, %d) of %s: %w", index, index+n, table.Name(), err)
		}
		if len(chunk.Columns) != len(columns) {
			return stats, fmt.Errorf("chunk of %s has %d columns, expected %d", table.Name(), len(chunk.Columns), len(columns))
		}

		for i, data := range chunk.Columns {
			owned, err := ownedColumn(data, columns[i], n)
			if err != nil {
				return stats, fmt.Errorf("table %s: %w", table.Name(), err)
			}
			if err := tree.Bind(i, owned); err != nil {
				return stats, fmt.Errorf("failed to bind branch %s: %w", columns[i].Name, err)
			}
		}
		tree.SetLength(n)
		if err := tree.Fill(); err != nil {
			return stats, fmt.Errorf("failed to fill %s at row %d: %w", table.Name(), index, err)
		}

		stats.Rows += n
		stats.Entries++
		stats.LastLength = n
	}

	return stats, nil
}

func ownedColumn(data any, col Column, n int) (any, error) {
	if got := ColumnDataType(data); got != col.Type {
		return nil, fmt.Errorf("column %s holds %s data, expected %s", col.Name, got, col.Type)
	}
	size, err := ColumnDataLen(data)
	if err != nil {
		return nil, err
	}
	if size != n {
		return nil, fmt.Errorf("column %s holds %d rows, expected %d", col.Name, size, n)
	}
	return CloneColumnData(data)
}
