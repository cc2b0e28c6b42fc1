package harddecision

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock/hamming"
)

func TestGallager_BitFlippingHammingCodes(t *testing.T) {
	block, err := hamming.New(3)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	tests := []struct {
		message          []uint8
		flipCodewordBits []int
		maxIter          int
	}{
		{[]uint8{1, 0, 1, 1}, []int{}, 20},
		{[]uint8{1, 0, 1, 1}, []int{0}, 20},
		{[]uint8{1, 0, 1, 1}, []int{1}, 20},
		{[]uint8{1, 0, 1, 1}, []int{2}, 20},
		{[]uint8{1, 0, 1, 1}, []int{3}, 20},
		{[]uint8{1, 0, 1, 1}, []int{4}, 20},
		{[]uint8{1, 0, 1, 1}, []int{5}, 20},
		{[]uint8{0, 1, 1, 0}, []int{6}, 20},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			alg := &Gallager{
				H: block.H,
			}

			//create codeword
			expected, err := block.Encode(test.message)
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}
			codeword := make([]uint8, len(expected))
			copy(codeword, expected)

			for _, index := range test.flipCodewordBits {
				codeword[index] ^= 1
			}

			actual, _, done := BitFlipping(alg, block.H, codeword, test.maxIter)

			if !done {
				t.Fatalf("expected a zero syndrome")
			}
			if !reflect.DeepEqual(actual, expected) {
				t.Fatalf("expected %v but found %v", expected, actual)
			}
		})
	}
}

func TestBitFlipping_MaxIter(t *testing.T) {
	h := gf2.NewMatrix(4, 6, 1, 1, 0, 1, 0, 0, 0, 1, 1, 0, 1, 0, 1, 0, 0, 0, 1, 1, 0, 0, 1, 1, 0, 1)
	input := []uint8{1, 0, 1, 0, 1, 1}
	_, iterations, done := BitFlipping(&Gallager{H: h}, h, input, 1)
	if done {
		t.Fatalf("expected a non zero syndrome after one round")
	}
	if iterations != 1 {
		t.Fatalf("expected %v but found %v", 1, iterations)
	}
}

func BenchmarkGallager_BitFlipping(b *testing.B) {
	h := gf2.NewMatrix(4, 6, 1, 1, 0, 1, 0, 0, 0, 1, 1, 0, 1, 0, 1, 0, 0, 0, 1, 1, 0, 0, 1, 1, 0, 1)
	g := &Gallager{
		H: h,
	}
	input := []uint8{1, 0, 1, 0, 1, 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BitFlipping(g, h, input, 1)
	}
}

func TestDWBF_F_SingleErrors(t *testing.T) {
	for _, p := range []int{3, 4} {
		H := hamming.ParityMatrix(p)
		_, n := H.Dims()
		for b := 0; b < n; b++ {
			t.Run(strconv.Itoa(p)+"_"+strconv.Itoa(b), func(t *testing.T) {
				alg := &DWBF_F{AlphaFactor: 0.5, H: H}
				codeword := make([]uint8, n)
				codeword[b] = 1

				actual, iterations, done := BitFlipping(alg, H, codeword, 20)
				if !done {
					t.Fatalf("expected a zero syndrome")
				}
				if iterations != 2 {
					t.Fatalf("expected %v but found %v", 2, iterations)
				}
				if !gf2.IsZeroVec(actual) {
					t.Fatalf("expected the zero codeword but found %v", actual)
				}
			})
		}
	}
}

func TestDWBF_F_BadAlpha(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for α outside (0,1)")
		}
	}()
	H := hamming.ParityMatrix(3)
	BitFlipping(&DWBF_F{AlphaFactor: 1, H: H}, H, []uint8{1, 0, 0, 0, 0, 0, 0}, 5)
}
