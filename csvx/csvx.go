// Package csvx provides CSV parsing helpers with header-aware, typed column access.
// The stdlib [encoding/csv] package does the actual decoding; this layer removes the
// boilerplate of header indexing and per-cell string conversion.
package csvx

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/spf13/cast"
)

var (
	// ErrNoColumn is returned when a named column isn't present in the header.
	ErrNoColumn = errors.New("no such column")
	// ErrNoRow is returned when a row index is out of range.
	ErrNoRow = errors.New("no such row")
)

type config struct {
	comma     rune
	comment   rune
	hasHeader bool
	trim      bool
}

// Option customizes CSV reading.
type Option func(conf *config)

// Comma sets the field delimiter, defaulting to ','.
func Comma(comma rune) Option {
	return func(conf *config) {
		conf.comma = comma
	}
}

// Comment sets a comment character; lines beginning with it are skipped.
func Comment(comment rune) Option {
	return func(conf *config) {
		conf.comment = comment
	}
}

// Header marks the first record as a header row, enabling access by column name.
func Header() Option {
	return func(conf *config) {
		conf.hasHeader = true
	}
}

// TrimSpace trims surrounding whitespace from every cell.
func TrimSpace() Option {
	return func(conf *config) {
		conf.trim = true
	}
}

// Table holds parsed CSV records, optionally with a header for access by column name.
type Table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

// Read parses all records from r.
// Records are expected to have a consistent field count, which [encoding/csv] enforces.
func Read(r io.Reader, opts ...Option) (*Table, error) {
	conf := config{comma: ','}
	for _, opt := range opts {
		opt(&conf)
	}
	reader := csv.NewReader(r)
	reader.Comma = conf.comma
	reader.Comment = conf.comment
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if conf.trim {
		for _, row := range records {
			for i, cell := range row {
				row[i] = strings.TrimSpace(cell)
			}
		}
	}
	table := &Table{rows: records}
	if conf.hasHeader && len(records) > 0 {
		table.header = records[0]
		table.rows = records[1:]
		table.index = make(map[string]int, len(table.header))
		for i, name := range table.header {
			table.index[strings.ToLower(strings.TrimSpace(name))] = i
		}
	}
	return table, nil
}

// ReadString parses all records from an in-memory document.
func ReadString(doc string, opts ...Option) (*Table, error) {
	return Read(strings.NewReader(doc), opts...)
}

// Len reports the number of data rows, excluding any header.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the header names, or nil when the table was read without [Header].
func (t *Table) Columns() []string {
	return t.header
}

// Row returns the cells of row i.
func (t *Table) Row(i int) ([]string, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("%w: %d", ErrNoRow, i)
	}
	return t.rows[i], nil
}

// Get returns the cell at row i in the named column. Column names are case-insensitive.
func (t *Table) Get(i int, column string) (string, error) {
	row, err := t.Row(i)
	if err != nil {
		return "", err
	}
	col, ok := t.index[strings.ToLower(column)]
	if !ok || col >= len(row) {
		return "", fmt.Errorf("%w: %q", ErrNoColumn, column)
	}
	return row[col], nil
}

// GetInt returns the cell at row i in the named column as an int64.
func (t *Table) GetInt(i int, column string) (int64, error) {
	val, err := t.Get(i, column)
	if err != nil {
		return 0, err
	}
	return cast.ToInt64E(val)
}

// GetFloat returns the cell at row i in the named column as a float64.
func (t *Table) GetFloat(i int, column string) (float64, error) {
	val, err := t.Get(i, column)
	if err != nil {
		return 0, err
	}
	return cast.ToFloat64E(val)
}

// GetBool returns the cell at row i in the named column as a boolean.
func (t *Table) GetBool(i int, column string) (bool, error) {
	val, err := t.Get(i, column)
	if err != nil {
		return false, err
	}
	return cast.ToBoolE(val)
}

// Rows iterates over data rows in order.
func (t *Table) Rows() iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		for i, row := range t.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// Named iterates over data rows as column-name-to-cell maps.
// It requires the table to have been read with [Header].
func (t *Table) Named() iter.Seq2[int, map[string]string] {
	return func(yield func(int, map[string]string) bool) {
		for i, row := range t.rows {
			named := make(map[string]string, len(t.header))
			for name, col := range t.index {
				if col < len(row) {
					named[name] = row[col]
				}
			}
			if !yield(i, named) {
				return
			}
		}
	}
}
