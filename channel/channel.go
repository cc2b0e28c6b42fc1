package channel

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrRate is returned for code rates outside of (0, 1].
	ErrRate = errors.New("code rate must be in (0, 1]")
	// ErrModulationOrder is returned when the number of symbols is not a power of two >= 2.
	ErrModulationOrder = errors.New("number of symbols must be a power of two >= 2")
)

const likelihoodFloor = 1e-300

//Modulate converts bits to BPSK symbols, 1 -> +1 and 0 -> -1
func Modulate(bits []uint8) []float64 {
	output := make([]float64, len(bits))
	for i, b := range bits {
		if b&1 == 1 {
			output[i] = 1
		} else {
			output[i] = -1
		}
	}
	return output
}

//HardDecision converts received values to bits, values >= 0 are considered a 1
func HardDecision(received []float64) []uint8 {
	output := make([]uint8, len(received))
	for i, y := range received {
		if y >= 0 {
			output[i] = 1
		}
	}
	return output
}

// AWGN is an additive white gaussian noise channel for unit energy BPSK
// symbols carrying coded bits of the given rate.
type AWGN struct {
	EbN0dB float64
	Rate   float64
	noise  distuv.Normal
}

// Variance returns σ^2 = 1/(2*R*Eb/N0) for the linear Eb/N0 of ebN0dB.
func Variance(ebN0dB, rate float64) float64 {
	return 1 / (2 * rate * math.Pow(10, ebN0dB/10))
}

// NewAWGN creates the channel drawing its noise from src.
func NewAWGN(ebN0dB, rate float64, src rand.Source) (*AWGN, error) {
	if !(rate > 0 && rate <= 1) {
		return nil, fmt.Errorf("%w: found %v", ErrRate, rate)
	}
	return &AWGN{
		EbN0dB: ebN0dB,
		Rate:   rate,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: math.Sqrt(Variance(ebN0dB, rate)),
			Src:   src,
		},
	}, nil
}

func (a *AWGN) Variance() float64 {
	return a.noise.Sigma * a.noise.Sigma
}

// Transmit adds noise to the symbols. It is not safe for concurrent use.
func (a *AWGN) Transmit(symbols []float64) []float64 {
	output := make([]float64, len(symbols))
	for i, s := range symbols {
		output[i] = s + a.noise.Rand()
	}
	return output
}

// LLR returns log(P(1)/P(0)) = 2y/σ^2 for each received value.
func (a *AWGN) LLR(received []float64) []float64 {
	output := make([]float64, len(received))
	floats.ScaleTo(output, 2/a.Variance(), received)
	return output
}

// LLRFromLikelihoods converts symbol likelihoods into bit LLRs. pyx is E x N
// where pyx[k][i] is the likelihood of symbol k at position i, E must be a
// power of two. Bit b of symbol k is (k>>b)&1 and its LLR is stored at
// b + i*log2(E). Sums are floored at 1e-300 before taking the log.
func LLRFromLikelihoods(pyx mat.Matrix) ([]float64, error) {
	symbols, n := pyx.Dims()
	if symbols < 2 || symbols&(symbols-1) != 0 {
		return nil, fmt.Errorf("%w: found %v", ErrModulationOrder, symbols)
	}
	bitsPerSymbol := 0
	for 1<<bitsPerSymbol < symbols {
		bitsPerSymbol++
	}

	llr := make([]float64, n*bitsPerSymbol)
	for i := 0; i < n; i++ {
		for b := 0; b < bitsPerSymbol; b++ {
			p0, p1 := 0.0, 0.0
			for k := 0; k < symbols; k++ {
				if (k>>b)&1 == 1 {
					p1 += pyx.At(k, i)
				} else {
					p0 += pyx.At(k, i)
				}
			}
			llr[b+i*bitsPerSymbol] = math.Log(math.Max(p1, likelihoodFloor) / math.Max(p0, likelihoodFloor))
		}
	}
	return llr, nil
}
