package internal

import (
	"errors"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/gf2"
	"golang.org/x/exp/rand"
)

func randomGallagerLike(rng *rand.Rand, n, wc, wr int) *gf2.Matrix {
	b := n / wr
	H := gf2.NewMatrix(b*wc, n)
	for s := 0; s < wc; s++ {
		perm := make([]int, n)
		for i := range perm {
			perm[i] = i
		}
		if s > 0 {
			rng.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		}
		for k, p := range perm {
			H.Set(s*b+p/wr, k, 1)
		}
	}
	return H
}

func TestSystematic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tests := []struct {
		H *gf2.Matrix
	}{
		{ //Hamming 7
			gf2.NewMatrix(3, 7,
				1, 0, 0, 1, 1, 1, 0,
				0, 1, 0, 1, 1, 0, 1,
				0, 0, 1, 0, 1, 1, 1),
		},
		{ //one linearly dependent row
			gf2.NewMatrix(4, 5,
				1, 1, 0, 0, 0,
				0, 1, 1, 0, 0,
				1, 0, 1, 0, 0,
				0, 0, 0, 1, 1),
		},
		{ //zero matrix
			gf2.NewMatrix(2, 4),
		},
		{randomGallagerLike(rng, 8, 2, 4)},
		{randomGallagerLike(rng, 24, 3, 6)},
		{randomGallagerLike(rng, 96, 3, 6)},
		{randomGallagerLike(rng, 130, 3, 5)},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			original := test.H.Copy()
			M, N := test.H.Dims()

			Hp, G, order, err := Systematic(test.H)
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}

			if !test.H.Equals(original) {
				t.Fatalf("expected the input matrix to be unchanged")
			}

			rows, cols := G.Dims()
			if rows != N-M || cols != N {
				t.Fatalf("expected (%v, %v) but found (%v, %v)", N-M, N, rows, cols)
			}

			if !ValidateHGMatrices(G, Hp) {
				t.Fatalf("expected H'*G^T == 0 for \n%v\n and \n%v\n", Hp, G)
			}

			if !G.Slice(0, M, N-M, N-M).Equals(gf2.Identity(N - M)) {
				t.Fatalf("expected systematic G but found \n%v\n", G)
			}

			if !ColumnSwapped(test.H, order).Equals(Hp) {
				t.Fatalf("expected H' to be H with columns %v", order)
			}

			seen := make(map[int]bool)
			for _, c := range order {
				seen[c] = true
			}
			if len(seen) != N {
				t.Fatalf("expected order to be a permutation but found %v", order)
			}
		})
	}
}

func TestSystematic_Shape(t *testing.T) {
	_, _, _, err := Systematic(gf2.NewMatrix(3, 3))
	if !errors.Is(err, ErrShape) {
		t.Fatalf("expected %v but found %v", ErrShape, err)
	}
}

func TestSystematic_RankDeficient(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tests := []*gf2.Matrix{
		//every block of rows sums to the all ones row
		randomGallagerLike(rng, 96, 3, 6),
		randomGallagerLike(rng, 60, 4, 5),
		//repeated and zero rows
		gf2.NewMatrix(4, 6,
			1, 1, 0, 1, 0, 0,
			1, 1, 0, 1, 0, 0,
			0, 0, 0, 0, 0, 0,
			0, 1, 1, 0, 1, 1),
	}
	for i, H := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			M, N := H.Dims()
			if rank := CalculateRank(H); rank >= M {
				t.Fatalf("expected a rank deficient H but found rank %v for %v rows", rank, M)
			}

			Hp, G, _, err := Systematic(H)
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}
			if rows, _ := G.Dims(); rows != N-M {
				t.Fatalf("expected %v but found %v", N-M, rows)
			}
			if rank := CalculateRank(G); rank != N-M {
				t.Fatalf("expected independent generator rows but found rank %v", rank)
			}
			if !ValidateHGMatrices(G, Hp) {
				t.Fatalf("expected H'*G^T == 0")
			}
		})
	}
}

func TestCalculateRank(t *testing.T) {
	tests := []struct {
		H        *gf2.Matrix
		expected int
	}{
		{gf2.Identity(5), 5},
		{gf2.NewMatrix(3, 4), 0},
		{gf2.NewMatrix(4, 5,
			1, 1, 0, 0, 0,
			0, 1, 1, 0, 0,
			1, 0, 1, 0, 0,
			0, 0, 0, 1, 1), 3},
		{gf2.NewMatrix(3, 7,
			1, 0, 0, 1, 1, 1, 0,
			0, 1, 0, 1, 1, 0, 1,
			0, 0, 1, 0, 1, 1, 1), 3},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual := CalculateRank(test.H)
			if actual != test.expected {
				t.Fatalf("expected %v but found %v", test.expected, actual)
			}
		})
	}
}
