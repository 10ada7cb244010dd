package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

// Read parses a delimited file. Short rows are padded with blank cells;
// rows wider than the header are an error.
func (csvReader) Read(path string, opt LoadOptions) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return readDelimited(f, path, opt.Delimiter)
}

func readDelimited(src io.Reader, path string, delim rune) ([][]string, error) {
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(src)
	r.Comma = delim
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	records := [][]string{header}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records), err)
		}
		if len(rec) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("read row %d: expected %d fields in line %d, saw %d", len(records), len(header), line, len(rec))
		}
		row := make([]string, len(header))
		for i := range rec {
			row[i] = strings.TrimSpace(rec[i])
		}
		records = append(records, row)
	}
	return records, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
