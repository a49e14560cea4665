package dex

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// position locates a row in its source file.
type position struct {
	row  int // zero-based data row, header excluded
	line int
}

// ReadRows reads a header-driven CSV stream into rows. Header names are
// trimmed and lower-cased; a leading UTF-8 BOM is dropped. Rows shorter than
// the header simply lack the trailing columns. Lines that cannot be parsed
// are skipped and returned as failures; only an unreadable header or an I/O
// error fails the whole read.
func ReadRows(r io.Reader) ([]Row, []RowError, error) {
	rows, _, failed, err := readCSV(r)
	return rows, failed, err
}

func readCSV(r io.Reader) ([]Row, []position, []RowError, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var (
		rows   []Row
		pos    []position
		failed []RowError
	)
	for n := 0; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			failed = append(failed, RowError{Row: n, Line: perr.StartLine, Name: nameOf(header, rec), Err: err})
			continue
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("read row %d: %w", n, err)
		}

		row := make(Row, len(header))
		for i, v := range rec {
			if i >= len(header) {
				break
			}
			row[header[i]] = v
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, row)
		pos = append(pos, position{row: n, line: line})
	}
	return rows, pos, failed, nil
}

func nameOf(header, rec []string) string {
	for i, h := range header {
		if h == FieldName && i < len(rec) {
			return rec[i]
		}
	}
	return ""
}

// LoadCatalogFromCSV builds a catalog from the CSV file at path. Rows that
// fail to parse or validate are reported in source order, not fatal.
func LoadCatalogFromCSV(path string) (*Catalog, ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ImportReport{}, err
	}
	defer f.Close()

	rows, pos, failed, err := readCSV(f)
	if err != nil {
		return nil, ImportReport{}, fmt.Errorf("%s: %w", path, err)
	}

	c := NewCatalog()
	rep := c.Import(rows)
	for i, fe := range rep.Failures {
		p := pos[fe.Row]
		rep.Failures[i].Row = p.row
		rep.Failures[i].Line = p.line
	}
	rep.Failures = append(rep.Failures, failed...)
	sort.SliceStable(rep.Failures, func(i, j int) bool {
		return rep.Failures[i].Row < rep.Failures[j].Row
	})
	return c, rep, nil
}
