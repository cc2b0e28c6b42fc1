package hamming

import (
	"fmt"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
)

// ParityMatrix returns the Hamming parity matrix with paritySymbols rows,
// column i-1 holds the bits of i.
func ParityMatrix(paritySymbols int) *gf2.Matrix {
	n := 1<<paritySymbols - 1
	H := gf2.NewMatrix(paritySymbols, n)

	//To make Hamming codes we make the columns the bit versions
	// of every number from 1 to and including n -> [1,n] (note they're nonzero)
	for i := 1; i <= n; i++ {
		for j := 0; j < paritySymbols; j++ {
			if i&(1<<j) > 0 {
				H.Set(j, i-1, 1)
			}
		}
	}
	return H
}

// New creates the systematic hamming code with paritySymbols number of parity symbols.
// Hamming codes can detect up to two-bit errors or correct one-bit errors without
// detection of uncorrected errors.
func New(paritySymbols int) (*linearblock.LinearBlock, error) {
	if paritySymbols < 2 {
		return nil, fmt.Errorf("hamming codes require >=2 parity symbols but found %v", paritySymbols)
	}
	return linearblock.SystematicLinearBlock(ParityMatrix(paritySymbols))
}
