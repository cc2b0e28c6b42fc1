package gallager

import (
	"errors"
	"fmt"

	"github.com/nathanhack/ldpc/gf2"
	"golang.org/x/exp/rand"
)

var (
	// ErrInvalidParameters is returned for non positive sizes or wr <= wc.
	ErrInvalidParameters = errors.New("invalid gallager parameters")
	// ErrIrregular is returned when wr does not divide N.
	ErrIrregular = errors.New("N must be a multiple of wr")
)

// Validate checks that (n, wc, wr) describes a regular Gallager code.
func Validate(n, wc, wr int) error {
	if n <= 0 || wc <= 0 || wr <= 0 {
		return fmt.Errorf("%w: N (%v), wc (%v) and wr (%v) must be positive", ErrInvalidParameters, n, wc, wr)
	}
	if wc >= wr {
		return fmt.Errorf("%w: wc (%v) must be less than wr (%v)", ErrInvalidParameters, wc, wr)
	}
	if n%wr != 0 {
		return fmt.Errorf("%w: N (%v), wr (%v)", ErrIrregular, n, wr)
	}
	return nil
}

// ParityChecks returns M = N*wc/wr.
func ParityChecks(n, wc, wr int) int {
	return n * wc / wr
}

// BuildH stacks wc blocks of N/wr rows. The first block has row i covering
// columns [i*wr, (i+1)*wr); block b is the first block with its columns
// permuted by perms[b-1], column k of the block is column perms[b-1][k] of
// the first one.
func BuildH(n, wc, wr int, perms [][]int) (*gf2.Matrix, error) {
	if err := Validate(n, wc, wr); err != nil {
		return nil, err
	}
	if len(perms) != wc-1 {
		return nil, fmt.Errorf("%w: expected %v permutations but found %v", ErrInvalidParameters, wc-1, len(perms))
	}

	blockRows := n / wr
	H := gf2.NewMatrix(blockRows*wc, n)
	for col := 0; col < n; col++ {
		H.Set(col/wr, col, 1)
	}

	for b, perm := range perms {
		if !isPermutation(perm, n) {
			return nil, fmt.Errorf("%w: block %v is not a permutation of %v columns", ErrInvalidParameters, b+1, n)
		}
		offset := (b + 1) * blockRows
		for k, p := range perm {
			//column p of the first block has its one in row p/wr
			H.Set(offset+p/wr, k, 1)
		}
	}
	return H, nil
}

// GenerateH builds a random regular Gallager parity matrix using rng for the
// block permutations.
func GenerateH(n, wc, wr int, rng *rand.Rand) (*gf2.Matrix, error) {
	if err := Validate(n, wc, wr); err != nil {
		return nil, err
	}
	perms := make([][]int, wc-1)
	for b := range perms {
		perms[b] = permutation(n, rng)
	}
	return BuildH(n, wc, wr, perms)
}

// permutation returns a uniform Fisher-Yates shuffle of 0..n-1.
func permutation(n int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

func isPermutation(perm []int, n int) bool {
	if len(perm) != n {
		return false
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
