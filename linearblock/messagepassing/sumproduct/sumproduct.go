package sumproduct

import (
	"errors"
	"fmt"
	"math"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
)

var (
	// ErrShape is returned when the LLR vector or K do not fit H.
	ErrShape = linearblock.ErrShape
	// ErrMaxIter is returned when maxIter < 1.
	ErrMaxIter = errors.New("max iterations must be >= 1")
)

const (
	minMagnitude = 1e-7
	maxMagnitude = 30.0
)

// Result of a decode. Message holds the last K bits of Codeword. When
// Converged is false Codeword is the decision of the last iteration and
// Iterations equals the iteration limit.
type Result struct {
	Codeword   []uint8
	Message    []uint8
	Iterations int
	Converged  bool
}

// phi is log((e^x+1)/(e^x-1)) with x clamped to [1e-7, 30].
func phi(x float64) float64 {
	if x < minMagnitude {
		x = minMagnitude
	} else if x > maxMagnitude {
		x = maxMagnitude
	}
	return math.Log1p(2 / math.Expm1(x))
}

// Decoder runs flooding sum-product decoding on the Tanner graph of H.
// LLRs are log(P(1)/P(0)). A Decoder only holds the graph, it is safe to
// use from multiple goroutines.
type Decoder struct {
	tanner *linearblock.Tanner
	// varEdges[j] are the edge indices of variable j, edges are numbered check by check
	varEdges [][]int
	edges    int
}

func NewDecoder(H *gf2.Matrix) *Decoder {
	tanner := linearblock.NewTanner(H)
	d := &Decoder{
		tanner:   tanner,
		varEdges: make([][]int, len(tanner.VarToChecks)),
	}
	for _, vars := range tanner.CheckToVars {
		for _, j := range vars {
			d.varEdges[j] = append(d.varEdges[j], d.edges)
			d.edges++
		}
	}
	return d
}

// Decode builds the Tanner graph of H and decodes llr with at most maxIter iterations.
func Decode(llr []float64, H *gf2.Matrix, K, maxIter int) (Result, error) {
	return NewDecoder(H).Decode(llr, K, maxIter)
}

func (d *Decoder) Decode(llr []float64, K, maxIter int) (Result, error) {
	n := len(d.tanner.VarToChecks)
	if len(llr) != n {
		return Result{}, fmt.Errorf("%w: LLR length == %v required but found %v", ErrShape, n, len(llr))
	}
	if K < 0 || K > n {
		return Result{}, fmt.Errorf("%w: K (%v) must be in [0, %v]", ErrShape, K, n)
	}
	if maxIter < 1 {
		return Result{}, fmt.Errorf("%w: found %v", ErrMaxIter, maxIter)
	}

	u := make([]float64, d.edges) // variable to check
	v := make([]float64, d.edges) // check to variable
	x := make([]float64, 0)
	codeword := make([]uint8, n)

	for iter := 1; iter <= maxIter; iter++ {
		e := 0
		for _, vars := range d.tanner.CheckToVars {
			x = x[:0]
			for k, j := range vars {
				x = append(x, llr[j]+u[e+k])
			}
			d.checkUpdate(x, v[e:e+len(vars)])
			e += len(vars)
		}

		for j, edges := range d.varEdges {
			total := llr[j]
			for _, edge := range edges {
				total += v[edge]
			}
			for _, edge := range edges {
				u[edge] = total - llr[j] - v[edge]
			}
			if total >= 0 {
				codeword[j] = 1
			} else {
				codeword[j] = 0
			}
		}

		if d.satisfied(codeword) {
			return d.result(codeword, K, iter, true), nil
		}
	}
	return d.result(codeword, K, maxIter, false), nil
}

// checkUpdate fills out[k] with the message from a check to its k-th
// variable given the incoming values x. The (-1)^degree factor comes from
// using log(P(1)/P(0)), it is 1 for even degree checks.
func (d *Decoder) checkUpdate(x, out []float64) {
	sign := 1.0
	if len(x)%2 == 1 {
		sign = -1.0
	}
	for k := range x {
		s := sign
		sum := 0.0
		for k2, value := range x {
			if k2 == k {
				continue
			}
			if value < 0 {
				s = -s
			}
			sum += phi(math.Abs(value))
		}
		out[k] = s * phi(sum)
	}
}

func (d *Decoder) satisfied(codeword []uint8) bool {
	for _, vars := range d.tanner.CheckToVars {
		var parity uint8
		for _, j := range vars {
			parity ^= codeword[j]
		}
		if parity != 0 {
			return false
		}
	}
	return true
}

func (d *Decoder) result(codeword []uint8, K, iterations int, converged bool) Result {
	c := make([]uint8, len(codeword))
	copy(c, codeword)
	return Result{
		Codeword:   c,
		Message:    linearblock.ExtractMessage(c, K),
		Iterations: iterations,
		Converged:  converged,
	}
}
