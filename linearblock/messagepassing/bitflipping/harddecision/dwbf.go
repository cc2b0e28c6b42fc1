package harddecision

import (
	"fmt"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	"gonum.org/v1/gonum/mat"
)

//DWBF_F is a single bit flipping hard decision alg based on the paper
//"Dynamic Weighted Bit-Flipping Decoding Algorithms for LDPC Codes"
// by Tofar C.-Y. Chang and Yu T. Su
// It keeps per codeword state, use one per goroutine.
type DWBF_F struct {
	AlphaFactor  float64 //α:  0 < α < 1
	EtaThreshold float64 //η: no requirement but frequently 0.0 is a good value
	H            *gf2.Matrix
	z            []uint8 //original codeword
	r            *mat.Dense
	e_n          []float64
	tanner       *linearblock.Tanner
}

func argMaxFloat(values []float64) int {
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

func (D *DWBF_F) init(codeword []uint8) {
	if D.AlphaFactor <= 0 || 1 <= D.AlphaFactor {
		panic(fmt.Sprintf("0<α<1 is required but found %v ", D.AlphaFactor))
	}
	D.z = make([]uint8, len(codeword))
	copy(D.z, codeword)

	if D.tanner == nil {
		D.tanner = linearblock.NewTanner(D.H)
	}

	rows, cols := D.H.Dims()
	D.r = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			D.r.Set(i, j, 1)
		}
	}
	D.e_n = make([]float64, cols)
}

func (D *DWBF_F) Reset() {
	D.z = nil
	D.r = nil
}

func (D *DWBF_F) Flip(currentSyndromes []uint8, currentCodeword []uint8) (nextCodeword []uint8, done bool) {
	if D.H == nil {
		panic("DWBF_F H matrix must be set before calling Flip")
	}
	//first we check if the syndromes was zero
	if gf2.IsZeroVec(currentSyndromes) {
		return currentCodeword, true
	}

	//internally we keep state
	// and if the first time we init()
	if D.z == nil || D.r == nil {
		D.init(currentCodeword)
	}

	// if there are errors then we calculate the
	// flipping function E_n vector and r matrix
	D.nextE_n(currentSyndromes, currentCodeword)

	// with the updated E_n we now determine the bit set
	// B = {n|n arg max_i E_i}
	n := argMaxFloat(D.e_n)

	// then let E_n = -E_n
	for i, e := range D.e_n {
		D.e_n[i] = -e
	}

	// and we flip that bit
	nextCodeword = make([]uint8, len(currentCodeword))
	copy(nextCodeword, currentCodeword)
	nextCodeword[n] ^= 1

	D.nextR()
	return nextCodeword, false
}

func bipolar(b uint8) float64 {
	return float64(1 - 2*int(b))
}

func (D *DWBF_F) nextE_n(syndromes []uint8, codeword []uint8) {
	// where l is the iteration
	// E^(l)_n = -(1-2*z_n)*(1-2*u_n)-α * sum(r^(l-1)_{mn}*(1-2*s_m), m ∈ M(n))
	for n := range D.z {
		sum := 0.0
		for _, m := range D.tanner.VarToChecks[n] {
			sum += D.r.At(m, n) * bipolar(syndromes[m])
		}
		D.e_n[n] = -bipolar(D.z[n])*bipolar(codeword[n]) - D.AlphaFactor*sum
	}
}

func (D *DWBF_F) nextR() {
	// r^(l)_{mn} = min( thresh(-E^(l)_n'), n' ∈ N(m)\n)
	for m, vars := range D.tanner.CheckToVars {
		for _, n := range vars {
			min := 0.0
			minIndex := -1
			for _, n1 := range vars {
				if n == n1 {
					continue
				}
				v := threshold(-D.e_n[n1], D.EtaThreshold)
				if minIndex == -1 || min > v {
					min = v
					minIndex = n1
				}
			}
			D.r.Set(m, n, min)
		}
	}
}

func threshold(value, thresh float64) float64 {
	if value >= thresh {
		return value - thresh
	}
	return 0
}
