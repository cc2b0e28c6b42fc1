package benchmarking

import (
	"context"
	"fmt"
	"testing"

	"github.com/nathanhack/ldpc/channel"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/hamming"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/sumproduct"
	"golang.org/x/exp/rand"
)

func pipeline(l *linearblock.LinearBlock, ebN0dB float64) (BinaryMessageConstructor, BPSKChannelEncoder, BPSKChannel, BPSKChannelCorrection) {
	decoder := sumproduct.NewDecoder(l.H)

	createMessage := func(trial int, rng *rand.Rand) []uint8 {
		return RandomMessage(l.MessageLength(), rng)
	}

	encode := func(message []uint8) []uint8 {
		codeword, err := l.Encode(message)
		if err != nil {
			panic(err)
		}
		return codeword
	}

	awgn := func(codeword []uint8, rng *rand.Rand) []float64 {
		c, err := channel.NewAWGN(ebN0dB, l.CodeRate(), rng)
		if err != nil {
			panic(err)
		}
		return c.LLR(c.Transmit(channel.Modulate(codeword)))
	}

	repair := func(llr []float64) Decoded {
		result, err := decoder.Decode(llr, l.MessageLength(), 20)
		if err != nil {
			panic(err)
		}
		return Decoded{Codeword: result.Codeword, Iterations: result.Iterations, Converged: result.Converged}
	}
	return createMessage, encode, awgn, repair
}

func ExampleBenchmarkBPSK() {
	linearBlock, _ := hamming.New(3)
	createMessage, encode, awgn, repair := pipeline(linearBlock, 20)

	checkpoint := func(updatedStats Stats) {}

	stats := BenchmarkBPSK(context.Background(), 64, 4, 1, createMessage, encode, awgn, repair, LinearBlockMetrics(linearBlock), checkpoint, false)

	fmt.Println("Bit Error Probability :", stats)
	//Output:
	// Bit Error Probability : {Codeword:0.00(+/-0.00), Message:0.00(+/-0.00), Parity:0.00(+/-0.00), Frames:64, FrameErrors:0, NotConverged:0}
}

func TestBenchmarkBPSKContinueStats(t *testing.T) {
	linearBlock, err := hamming.New(4)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}
	createMessage, encode, awgn, repair := pipeline(linearBlock, 0)
	metrics := LinearBlockMetrics(linearBlock)

	checkpoints := 0
	first := BenchmarkBPSK(context.Background(), 50, 2, 7, createMessage, encode, awgn, repair, metrics, func(Stats) { checkpoints++ }, false)
	if first.Frames() != 50 || checkpoints != 50 {
		t.Fatalf("expected %v frames and checkpoints but found %v and %v", 50, first.Frames(), checkpoints)
	}

	resumed := BenchmarkBPSKContinueStats(context.Background(), 120, 3, 7, createMessage, encode, awgn, repair, metrics, nil, first, false)
	if resumed.Frames() != 120 {
		t.Fatalf("expected %v but found %v", 120, resumed.Frames())
	}

	//frames are seeded by index so a single run gives the same totals
	single := BenchmarkBPSK(context.Background(), 120, 1, 7, createMessage, encode, awgn, repair, metrics, nil, false)
	if single.MessageBitErrors != resumed.MessageBitErrors || single.FrameErrors != resumed.FrameErrors || single.NotConverged != resumed.NotConverged {
		t.Fatalf("expected %v but found %v", single, resumed)
	}

	if resumed.MessageBitErrors == 0 {
		t.Fatalf("expected errors at 0dB for a hamming code")
	}
	if resumed.MessageBitErrors > resumed.CodewordBitErrors {
		t.Fatalf("expected message errors (%v) <= codeword errors (%v)", resumed.MessageBitErrors, resumed.CodewordBitErrors)
	}

	done := BenchmarkBPSKContinueStats(context.Background(), 100, 3, 7, createMessage, encode, awgn, repair, metrics, nil, resumed, false)
	if done.Frames() != 120 {
		t.Fatalf("expected %v but found %v", 120, done.Frames())
	}
}
