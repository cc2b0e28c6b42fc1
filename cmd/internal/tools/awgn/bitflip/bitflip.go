package bitflip

import (
	"fmt"
	"reflect"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/channel"
	"github.com/nathanhack/ldpc/cmd/internal/tools/awgn"
	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bitflipping/harddecision"
)

var BitflipRun = awgn.Run("bitflip", typeInfo(), correction)

func typeInfo() string {
	t := reflect.TypeOf(harddecision.Gallager{})
	return fmt.Sprintf("AWGN:%v/%v", t.PkgPath(), t.Name())
}

// correction slices the LLRs to bits and runs Gallager bit flipping on them.
func correction(l *linearblock.LinearBlock, maxIter int) benchmarking.BPSKChannelCorrection {
	return func(received []float64) benchmarking.Decoded {
		//the algorithm keeps state so each frame gets its own
		alg := &harddecision.Gallager{H: l.H}
		//BitFlipping only sees a zero syndrome on the round after the last flip,
		// so a fix made by the final allowed flip comes back with done == false
		codeword, iterations, _ := harddecision.BitFlipping(alg, l.H, channel.HardDecision(received), maxIter)
		return benchmarking.Decoded{
			Codeword:   codeword,
			Iterations: iterations,
			Converged:  gf2.IsZeroVec(l.Syndrome(codeword)),
		}
	}
}
