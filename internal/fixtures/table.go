// Package fixtures puts a running catalog service into a known state through
// its public HTTP API.
package fixtures

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

// Row is one product line of a fixture table. Values are kept as text and
// only interpreted when the row is sent.
type Row struct {
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	Available   string `csv:"available"`
	Category    string `csv:"category"`
}

// Payload converts the row into the JSON body POST /products expects.
func (r Row) Payload() (map[string]any, error) {
	available, err := strconv.ParseBool(r.Available)
	if err != nil {
		return nil, fmt.Errorf("row %q: available %q is not a boolean", r.Name, r.Available)
	}
	return map[string]any{
		"name":        r.Name,
		"description": r.Description,
		"price":       r.Price,
		"available":   available,
		"category":    r.Category,
	}, nil
}

// ReadTable parses a header-led CSV file or a pipe table such as
//
//	| name | description  | price | available | category |
//	| Hat  | A red fedora | 59.95 | True      | CLOTHS   |
//
// Cells are trimmed in both forms.
func ReadTable(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)

	records, err := readRecords(br)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("fixture table is empty")
	}

	var rows []Row
	if err := gocsv.UnmarshalCSV(&recordReader{records: records}, &rows); err != nil {
		return nil, fmt.Errorf("decode fixture table: %w", err)
	}
	return rows, nil
}

func readRecords(br *bufio.Reader) ([][]string, error) {
	peek, _ := br.Peek(512)
	if strings.HasPrefix(strings.TrimSpace(string(peek)), "|") {
		return readPipeTable(br)
	}

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	for _, rec := range records {
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
	}
	return records, nil
}

func readPipeTable(r io.Reader) ([][]string, error) {
	var records [][]string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") || len(line) < 2 {
			return nil, fmt.Errorf("malformed table line %q", line)
		}

		cells := strings.Split(line[1:len(line)-1], "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		records = append(records, cells)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return records, nil
}

// recordReader feeds already split records to gocsv.
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}
