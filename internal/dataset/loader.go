package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound indicates the dataset file does not exist.
	ErrNotFound = errors.New("dataset file not found")
	// ErrEmpty indicates the file holds no header row.
	ErrEmpty = errors.New("no columns to parse from file")
)

// LoadOptions controls how a dataset file is read.
type LoadOptions struct {
	// Name is a display name; defaults to the file base name.
	Name string
	// Label is the grouping column, loaded as text.
	Label string
	// Delimiter for CSV. If 0, picked from the extension (.tsv => tab, else comma).
	Delimiter rune
	// XLSX sheet selection. SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
}

// Reader turns a file into raw records, header first.
type Reader interface {
	CanRead(filename string) bool
	Read(path string, opt LoadOptions) ([][]string, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

// Load reads the dataset at path into a Table. A missing file yields an
// error matching ErrNotFound; any other failure is a wrapped load error.
func Load(path string, opt LoadOptions) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("load %s: is a directory", path)
	}
	var rd Reader = csvReader{}
	for _, r := range registry {
		if r.CanRead(path) {
			rd = r
			break
		}
	}
	records, err := rd.Read(path, opt)
	if err != nil {
		return nil, err
	}
	name := opt.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return FromRecords(name, opt.Label, records)
}
