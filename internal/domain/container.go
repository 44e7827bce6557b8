package domain

// Container is an opened source file holding tables.
type Container interface {
	// Tables returns the tables of the top-level namespace in file order.
	Tables() ([]Table, error)
	Close() error
}

type Table interface {
	Name() string
	NumRows() int
	Columns() ([]Column, error)
	// ReadChunk reads rows [start, start+n). The returned buffers may alias
	// storage owned by the table.
	ReadChunk(start, n int) (Chunk, error)
}

// Chunk holds one buffer per column, in column order, each Rows long.
type Chunk struct {
	Start   int
	Rows    int
	Columns []any
}

// Output is an opened destination file.
type Output interface {
	CreateTree(layout TreeLayout) (TreeWriter, error)
	Close() error
}

// TreeWriter fills one destination tree. A bound buffer must stay unmodified
// until the Fill that consumes it returns.
type TreeWriter interface {
	Bind(branch int, data any) error
	SetLength(n int)
	Fill() error
	// Flush finalizes the tree in its file, replacing any previous revision.
	Flush() error
}

type SourceOpener func(path string) (Container, error)

type OutputCreator func(path string) (Output, error)

// Discarder is implemented by outputs that can remove what they wrote.
type Discarder interface {
	Discard() error
}

// StoredTree is a written tree as read back from its file.
type StoredTree struct {
	Name string
	// Lengths holds the length branch value of every entry.
	Lengths  []int64
	Branches []string
}

// StoredOutput is a written destination file opened for reading.
type StoredOutput interface {
	// TreeKeys counts the stored keys of every tree.
	TreeKeys() (map[string]int, error)
	ReadTree(name string) (StoredTree, error)
	Close() error
}

type StoredOutputOpener func(path string) (StoredOutput, error)
