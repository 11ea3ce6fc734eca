package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gradnet-ml/gradnet/internal/parallel"
)

// fanout is the execution policy for the per-row parallel sites: one-hot
// row writes and the loss unit's arg-max scan. Both fan out over disjoint
// per-row memory and join before returning.
var fanout = parallel.DefaultConfig()

// ClassIndices converts a one-hot label matrix to per-row class indices.
//
// Each row's index is computed as the matrix product of the row against the
// column vector [0, 1, ..., C-1]. This is only correct when every row is a
// valid one-hot row (exactly one entry set to 1); other rows silently
// produce a number with no range check.
func ClassIndices(oneHot *mat.Dense) []int {
	r, c := oneHot.Dims()

	idx := mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		idx.SetVec(j, float64(j))
	}

	var prod mat.VecDense
	prod.MulVec(oneHot, idx)

	indices := make([]int, r)
	for i := range indices {
		indices[i] = int(prod.AtVec(i))
	}
	return indices
}

// OneHot converts class indices to a one-hot matrix with numClasses
// columns: one row per index, exactly one entry set to 1.
//
// Returns an error wrapping ErrInvalidArgument if any index is negative or
// at least numClasses. Row writes touch disjoint memory and are dispatched
// as an unordered fan-out with a synchronous join.
func OneHot(indices []int, numClasses int) (*mat.Dense, error) {
	for i, idx := range indices {
		if idx < 0 || idx >= numClasses {
			return nil, fmt.Errorf("%w: class index %d at row %d outside [0, %d)",
				ErrInvalidArgument, idx, i, numClasses)
		}
	}

	oneHot := mat.NewDense(len(indices), numClasses, nil)
	parallel.For(len(indices), func(i int) {
		oneHot.Set(i, indices[i], 1)
	}, fanout)

	return oneHot, nil
}
