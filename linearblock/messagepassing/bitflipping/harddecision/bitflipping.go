package harddecision

import (
	"github.com/nathanhack/ldpc/gf2"
)

type BitFlippingAlg interface {
	Flip(currentSyndromes []uint8, currentCodeword []uint8) (nextCodeword []uint8, done bool)
	Reset() //resets internal state for next codeword
}

// BitFlipping runs bitFlippingAlg until the syndrome is zero or maxIter rounds
// have been made. It returns the final codeword, the number of syndromes
// computed and whether the last one was zero.
func BitFlipping(bitFlippingAlg BitFlippingAlg, H *gf2.Matrix, codeword []uint8, maxIter int) (result []uint8, iterations int, done bool) {
	result = make([]uint8, len(codeword))
	copy(result, codeword)
	for iterations = 0; iterations < maxIter && !done; iterations++ {
		syndrome := H.MulVec(result)
		result, done = bitFlippingAlg.Flip(syndrome, result)
	}
	return result, iterations, done
}
