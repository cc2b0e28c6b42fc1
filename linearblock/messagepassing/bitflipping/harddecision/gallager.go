package harddecision

import (
	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
)

func argMaxInt(values []int) int {
	result := 0
	max := values[0]
	for i := 1; i < len(values); i++ {
		v := values[i]
		if max < v {
			result = i
			max = v
		}
	}
	return result
}

// Gallager flips the single bit with the most unsatisfied checks each round.
// It keeps per codeword state, use one per goroutine.
type Gallager struct {
	H        *gf2.Matrix
	e_n      []int
	rowCache [][]int
}

func (g *Gallager) Reset() {
	//nothing to do here
}

func (g *Gallager) Flip(currentSyndromes []uint8, currentCodeword []uint8) (nextCodeword []uint8, done bool) {
	if g.H == nil {
		panic("Gallager H matrix must be set before calling Algorithm")
	}
	//first we check if the syndromes was zero
	if gf2.IsZeroVec(currentSyndromes) {
		return currentCodeword, true
	}

	if g.e_n == nil {
		g.init()
	}

	//since there was errors(syndrome is not zero) we'll
	// calculate the flipping function E_n vector
	g.nextE_n(currentSyndromes)

	n := argMaxInt(g.e_n)

	// and we flip that bit
	nextCodeword = make([]uint8, len(currentCodeword))
	copy(nextCodeword, currentCodeword)
	nextCodeword[n] ^= 1

	return nextCodeword, false
}

func (g *Gallager) nextE_n(syndromes []uint8) {
	// E_n = -sum((1-2*s_m), m ∈ M(n))
	for n := 0; n < len(g.e_n); n++ {
		sum := 0
		for _, m := range g.rowCache[n] {
			sum += int(syndromes[m])
		}
		g.e_n[n] = -len(g.rowCache[n]) + 2*sum
	}
}

func (g *Gallager) init() {
	g.rowCache = linearblock.NewTanner(g.H).VarToChecks
	g.e_n = make([]int, len(g.rowCache))
}
