// Package dataset reads whitespace-delimited numeric tables and splits
// them into feature and one-hot label blocks for the training engine.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrBadTable marks malformed table input: ragged rows, non-numeric
// fields, or an empty stream.
var ErrBadTable = errors.New("malformed table")

// ReadTable parses whitespace-delimited numeric rows from r into a dense
// matrix. The first non-blank row fixes the column count; any later row
// with a different width is an error. Blank lines are skipped. Row
// storage grows by amortized doubling, so the stream length does not
// need to be known up front.
func ReadTable(r io.Reader) (*mat.Dense, error) {
	scanner := bufio.NewScanner(r)

	var (
		data []float64
		cols int
		rows int
	)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if cols == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrBadTable, rows+1, len(fields), cols)
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: bad value %q",
					ErrBadTable, rows+1, field)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadTable)
	}
	return mat.NewDense(rows, cols, data[:rows*cols]), nil
}

// Load reads a whitespace-delimited table from a file.
func Load(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Split divides a table into its feature block and its trailing one-hot
// label block of numClasses columns. Both halves are copies; the label
// encoding itself is taken on faith from the file.
func Split(table *mat.Dense, numClasses int) (features, labels *mat.Dense, err error) {
	rows, cols := table.Dims()
	if numClasses <= 0 || numClasses >= cols {
		return nil, nil, fmt.Errorf("%w: cannot take %d label columns from a %d-column table",
			ErrBadTable, numClasses, cols)
	}

	split := cols - numClasses
	features = mat.DenseCopyOf(table.Slice(0, rows, 0, split))
	labels = mat.DenseCopyOf(table.Slice(0, rows, split, cols))
	return features, labels, nil
}
