package internal

import (
	"errors"
	"fmt"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoPivot is returned when the elimination runs out of pivots,
	// the parity matrix can not be paired with a systematic generator.
	ErrNoPivot = errors.New("no pivot available")
	// ErrShape is returned when H has at least as many rows as columns.
	ErrShape = errors.New("H matrix shape == (rows, cols) where rows < cols required")
)

func swapColOrder(i, j int, colIndices []int) {
	colIndices[i], colIndices[j] = colIndices[j], colIndices[i]
}

// pivotRow makes X[row][col] a one by swapping in the first lower row
// holding a one in col. Returns false when there is none.
func pivotRow(X *gf2.Matrix, row, col int) bool {
	if X.At(row, col) == 1 {
		return true
	}
	rows, _ := X.Dims()
	for r := row + 1; r < rows; r++ {
		if X.At(r, col) == 1 {
			X.SwapRows(row, r)
			return true
		}
	}
	return false
}

// lastOneInRow returns the right-most column in (from, to) with a one in row, or -1.
func lastOneInRow(X *gf2.Matrix, row, from, to int) int {
	for c := to - 1; c > from; c-- {
		if X.At(row, c) == 1 {
			return c
		}
	}
	return -1
}

// firstOneInRow returns the left-most column in [from, to) with a one in row, or -1.
func firstOneInRow(X *gf2.Matrix, row, from, to int) int {
	for c := from; c < to; c++ {
		if X.At(row, c) == 1 {
			return c
		}
	}
	return -1
}

func eliminateOtherRows(X *gf2.Matrix, row, col int) {
	for _, r := range X.ColumnNonzero(col) {
		if r != row {
			X.AddRow(r, row)
		}
	}
}

// Systematic pairs H (M x N) with a systematic generator G (K x N, K=N-M).
// It row reduces X=[H^T | I_N]: the first pass places pivots on the H^T block,
// the second on the last K columns of the identity block. Column swaps made
// in the second pass are mirrored into the returned H', so H'*G^T=0 and
// G[:, M:] is the K x K identity. order maps H' columns back to H:
// column c of H' is column order[c] of H. H is not modified.
//
// X always has rank N so both passes find a pivot by swapping columns when
// the rows run out. A rank deficient H is not an error: G still has N-M rows
// and spans a subcode of the null space of H. ErrNoPivot only guards the
// loop invariant.
func Systematic(H *gf2.Matrix) (Hp, G *gf2.Matrix, order []int, err error) {
	M, N := H.Dims()
	if M >= N {
		return nil, nil, nil, fmt.Errorf("%w: found (%v, %v)", ErrShape, M, N)
	}

	X := gf2.NewMatrix(N, M+N)
	X.SetMatrix(H.T(), 0, 0)
	X.SetMatrix(gf2.Identity(N), 0, M)

	Hp = H.Copy()
	order = make([]int, N)
	for c := range order {
		order[c] = c
	}

	for j := 0; j < M; j++ {
		if !pivotRow(X, j, j) {
			k := lastOneInRow(X, j, j, M+N)
			if k < 0 {
				return nil, nil, nil, fmt.Errorf("%w: column %v of H^T", ErrNoPivot, j)
			}
			logrus.Debugf("column swap %v <-> %v while reducing H^T", j, k)
			X.SwapColumns(j, k)
		}
		eliminateOtherRows(X, j, j)
	}

	for j := 2 * M; j < M+N; j++ {
		r := j - M
		if !pivotRow(X, r, j) {
			k := firstOneInRow(X, r, M, j)
			if k < 0 {
				k = lastOneInRow(X, r, j, M+N)
			}
			if k < 0 {
				return nil, nil, nil, fmt.Errorf("%w: column %v of the identity block", ErrNoPivot, r)
			}
			X.SwapColumns(j, k)
			Hp.SwapColumns(r, k-M)
			swapColOrder(r, k-M, order)
		}
		eliminateOtherRows(X, r, j)
	}

	G = X.Slice(M, M, N-M, N)
	logrus.Debugf("Generator Matrix complete")
	return Hp, G, order, nil
}

// CalculateRank returns the GF(2) rank of H.
func CalculateRank(H *gf2.Matrix) int {
	if H == nil {
		return -1
	}
	tmp := H.Copy()
	rows, cols := tmp.Dims()

	rank := 0
	for c := 0; c < cols && rank < rows; c++ {
		if !pivotRow(tmp, rank, c) {
			continue
		}
		for _, r := range tmp.ColumnNonzero(c) {
			if r > rank {
				tmp.AddRow(r, rank)
			}
		}
		rank++
	}
	return rank
}
