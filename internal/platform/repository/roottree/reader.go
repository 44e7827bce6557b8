package roottree

import (
	"H5ROOT/internal/domain"
	"fmt"
	"reflect"

	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

type Reader struct {
	path string
	f    *riofs.File
}

func Open(path string) (*Reader, error) {
	f, err := riofs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", domain.ErrContainerOpen, path, err)
	}
	return &Reader{path: path, f: f}, nil
}

func (r *Reader) Close() error {
	return r.f.Close()
}

type TreeInfo struct {
	Name     string
	Cycle    int
	Entries  int64
	Branches []string
}

// Trees lists every TTree key of the file, one entry per stored cycle.
func (r *Reader) Trees() ([]TreeInfo, error) {
	var infos []TreeInfo
	for _, k := range r.f.Keys() {
		if k.ClassName() != "TTree" {
			continue
		}
		obj, err := k.Object()
		if err != nil {
			return nil, fmt.Errorf("failed to load %s;%d: %w", k.Name(), k.Cycle(), err)
		}
		tree, ok := obj.(rtree.Tree)
		if !ok {
			return nil, fmt.Errorf("key %s holds %T, not a tree", k.Name(), obj)
		}
		infos = append(infos, TreeInfo{
			Name:     k.Name(),
			Cycle:    k.Cycle(),
			Entries:  tree.Entries(),
			Branches: branchNames(tree),
		})
	}
	return infos, nil
}

func branchNames(tree rtree.Tree) []string {
	branches := tree.Branches()
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name())
	}
	return names
}

// TreeData is a tree read back into columns: for every data branch the
// values of all entries concatenated in entry order.
type TreeData struct {
	Name     string
	Lengths  []int64
	Branches []string
	Columns  map[string]any
}

func (r *Reader) ReadTree(name string) (*TreeData, error) {
	obj, err := r.f.Get(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from %s: %w", name, r.path, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%s in %s is %T, not a tree", name, r.path, obj)
	}

	rvars := rtree.NewReadVars(tree)
	data := &TreeData{
		Name:    name,
		Columns: make(map[string]any, len(rvars)),
	}

	lengthIdx := -1
	acc := make([]reflect.Value, len(rvars))
	for i, rv := range rvars {
		if rv.Name == domain.LengthBranchName {
			lengthIdx = i
			continue
		}
		v := reflect.ValueOf(rv.Value).Elem()
		if v.Kind() != reflect.Slice {
			return nil, fmt.Errorf("branch %s of %s is not an array branch", rv.Name, name)
		}
		acc[i] = reflect.MakeSlice(v.Type(), 0, 0)
		data.Branches = append(data.Branches, rv.Name)
	}
	if lengthIdx < 0 {
		return nil, fmt.Errorf("tree %s has no %s branch", name, domain.LengthBranchName)
	}

	rd, err := rtree.NewReader(tree, rvars)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %s: %w", name, err)
	}
	defer rd.Close()

	err = rd.Read(func(ctx rtree.RCtx) error {
		n := reflect.ValueOf(rvars[lengthIdx].Value).Elem()
		if !n.CanInt() {
			return fmt.Errorf("entry %d: %s is %s, not an integer", ctx.Entry, domain.LengthBranchName, n.Type())
		}
		data.Lengths = append(data.Lengths, n.Int())
		for i, rv := range rvars {
			if i == lengthIdx {
				continue
			}
			acc[i] = reflect.AppendSlice(acc[i], reflect.ValueOf(rv.Value).Elem())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	for i, rv := range rvars {
		if i != lengthIdx {
			data.Columns[rv.Name] = acc[i].Interface()
		}
	}
	return data, nil
}

// storedFile exposes a Reader through the domain read-back port.
type storedFile struct {
	r *Reader
}

// OpenStored adapts Open to the domain read-back factory.
func OpenStored(path string) (domain.StoredOutput, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &storedFile{r: r}, nil
}

func (s *storedFile) TreeKeys() (map[string]int, error) {
	trees, err := s.r.Trees()
	if err != nil {
		return nil, err
	}
	keys := make(map[string]int, len(trees))
	for _, t := range trees {
		keys[t.Name]++
	}
	return keys, nil
}

func (s *storedFile) ReadTree(name string) (domain.StoredTree, error) {
	data, err := s.r.ReadTree(name)
	if err != nil {
		return domain.StoredTree{}, err
	}
	return domain.StoredTree{Name: data.Name, Lengths: data.Lengths, Branches: data.Branches}, nil
}

func (s *storedFile) Close() error {
	return s.r.Close()
}
