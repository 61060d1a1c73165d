package catalog

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Source lists and opens datasets by name.
type Source interface {
	Datasets() ([]string, error)
	Open(name string) (io.ReadCloser, error)
}

// DirSource serves the CSV files of one directory.
type DirSource struct {
	fs  afero.Fs
	dir string
}

// NewDirSource returns a Source over dir on fs. A nil fs means the OS filesystem.
func NewDirSource(fs afero.Fs, dir string) *DirSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if dir == "" {
		dir = "."
	}
	return &DirSource{fs: fs, dir: dir}
}

// Dir returns the directory served by the source.
func (s *DirSource) Dir() string {
	return s.dir
}

// Datasets returns the names of the CSV files in the directory, sorted.
func (s *DirSource) Datasets() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to list %s: %w", s.dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Open opens a dataset by its file name. Paths are rejected so callers can
// only reach files inside the directory.
func (s *DirSource) Open(name string) (io.ReadCloser, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("%w %q", ErrInvalidDatasetName, name)
	}
	file, err := s.fs.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to open %s: %w", name, err)
	}
	return file, nil
}

// LoadFrom opens name from src and parses it with schema.
func LoadFrom(src Source, name string, schema Schema) (*Catalog, error) {
	reader, err := src.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = reader.Close()
	}()

	catalog, err := Load(reader, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	catalog.Name = name
	return catalog, nil
}
