package spa

import (
	"fmt"
	"reflect"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools/awgn"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/sumproduct"
)

var SPARun = awgn.Run("", typeInfo(), correction)

func typeInfo() string {
	t := reflect.TypeOf(sumproduct.Decoder{})
	return fmt.Sprintf("AWGN:%v/%v", t.PkgPath(), t.Name())
}

func correction(l *linearblock.LinearBlock, maxIter int) benchmarking.BPSKChannelCorrection {
	decoder := sumproduct.NewDecoder(l.H)
	return func(received []float64) benchmarking.Decoded {
		result, err := decoder.Decode(received, l.MessageLength(), maxIter)
		if err != nil {
			panic(err)
		}
		return benchmarking.Decoded{
			Codeword:   result.Codeword,
			Iterations: result.Iterations,
			Converged:  result.Converged,
		}
	}
}
