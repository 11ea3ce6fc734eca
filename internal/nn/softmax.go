package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Axis selects the direction Softmax normalizes along.
type Axis int

const (
	// AxisNone divides by the grand total of the matrix.
	AxisNone Axis = iota
	// AxisRows divides each row by its own sum.
	AxisRows
	// AxisCols divides each column by its own sum.
	AxisCols
)

// Softmax exponentiates every entry of m and divides by the sum along the
// requested axis. The input is not mutated.
//
// There is no max-subtraction: entries much above ~709 overflow float64 and
// the division yields IEEE special values (Inf/Inf = NaN). Likewise an
// all-zero exponential sum divides to NaN. Malformed input has no error
// path.
func Softmax(m *mat.Dense, axis Axis) *mat.Dense {
	r, c := m.Dims()

	raised := mat.NewDense(r, c, nil)
	raised.Apply(func(_, _ int, v float64) float64 { return math.Exp(v) }, m)

	out := mat.NewDense(r, c, nil)
	switch axis {
	case AxisRows:
		for i := 0; i < r; i++ {
			row := raised.RawRowView(i)
			s := floats.Sum(row)
			dst := out.RawRowView(i)
			for j, v := range row {
				dst[j] = v / s
			}
		}
	case AxisCols:
		col := make([]float64, r)
		for j := 0; j < c; j++ {
			mat.Col(col, j, raised)
			s := floats.Sum(col)
			for i := 0; i < r; i++ {
				out.Set(i, j, col[i]/s)
			}
		}
	default:
		out.Scale(1/mat.Sum(raised), raised)
	}

	return out
}
