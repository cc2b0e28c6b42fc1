package hamming

import (
	"strconv"
	"testing"

	"github.com/nathanhack/ldpc/linearblock"
)

func TestNew(t *testing.T) {
	tests := []struct {
		paritySymbols int
	}{
		{2},
		{3},
		{4},
		{7},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual, err := New(test.paritySymbols)
			if err != nil {
				t.Fatalf("expected no error found :%v", err)
			}

			if !actual.Validate() {
				t.Fatalf("expected valid linearblock code")
			}

			n := 1<<test.paritySymbols - 1
			if actual.CodewordLength() != n || actual.MessageLength() != n-test.paritySymbols {
				t.Fatalf("expected (%v, %v) but found (%v, %v)", n, n-test.paritySymbols, actual.CodewordLength(), actual.MessageLength())
			}

			if linearblock.Count4Cycles(actual.H, test.paritySymbols) == 0 && test.paritySymbols > 2 {
				t.Fatalf("expected hamming codes to contain 4-cycles")
			}
		})
	}
}

func TestNew_TooSmall(t *testing.T) {
	_, err := New(1)
	if err == nil {
		t.Fatalf("expected an error")
	}
}
