package memtable

import (
	"H5ROOT/internal/domain"
	"fmt"
	"sync"
)

type Container struct {
	mu     sync.Mutex
	tables []*Memtable
	closed bool
}

func NewContainer(tables ...*Memtable) *Container {
	return &Container{tables: tables}
}

func (c *Container) Tables() ([]domain.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, fmt.Errorf("container is closed")
	}
	out := make([]domain.Table, len(c.tables))
	for i, t := range c.tables {
		out[i] = t
	}
	return out, nil
}

func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Container) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Catalog maps paths to containers and opens them like files.
type Catalog struct {
	mu         sync.Mutex
	containers map[string]*Container
	opened     []string
}

func NewCatalog() *Catalog {
	return &Catalog{containers: make(map[string]*Container)}
}

func (c *Catalog) Put(path string, container *Container) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.containers[path] = container
}

// Open reopens the container stored at path; a closed container becomes readable again.
func (c *Catalog) Open(path string) (domain.Container, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	container, ok := c.containers[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no such file", domain.ErrContainerOpen, path)
	}
	container.mu.Lock()
	container.closed = false
	container.mu.Unlock()
	c.opened = append(c.opened, path)
	return container, nil
}

// Opened lists the paths passed to successful Open calls.
func (c *Catalog) Opened() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.opened))
	copy(out, c.opened)
	return out
}
