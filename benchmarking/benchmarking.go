package benchmarking

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/threadpool"
	"golang.org/x/exp/rand"
)

type Stats struct {
	ChannelCodewordError avgstd.AvgStd // probability of a bit error after channel errors are fixed
	ChannelMessageError  avgstd.AvgStd // probability of a bit error after channel errors are fixed
	ChannelParityError   avgstd.AvgStd // probability of a bit error after channel errors are fixed
	Iterations           avgstd.AvgStd // decoder iterations per frame

	CodewordBitErrors int
	MessageBitErrors  int
	FrameErrors       int // frames with at least one message bit error
	NotConverged      int // frames whose decoder stopped without satisfying every check
}

func (s Stats) String() string {
	return fmt.Sprintf("{Codeword:%0.02f(+/-%0.02f), Message:%0.02f(+/-%0.02f), Parity:%0.02f(+/-%0.02f), Frames:%v, FrameErrors:%v, NotConverged:%v}",
		s.ChannelCodewordError.Mean, math.Sqrt(s.ChannelCodewordError.SampledVariance()),
		s.ChannelMessageError.Mean, math.Sqrt(s.ChannelMessageError.SampledVariance()),
		s.ChannelParityError.Mean, math.Sqrt(s.ChannelParityError.SampledVariance()),
		s.Frames(), s.FrameErrors, s.NotConverged,
	)
}

// Frames returns the number of frames simulated.
func (s Stats) Frames() int {
	return s.ChannelCodewordError.Count
}

// MessageBER returns the message bit error rate over all frames.
func (s Stats) MessageBER() float64 {
	return s.ChannelMessageError.Mean
}

// CodewordBER returns the codeword bit error rate over all frames.
func (s Stats) CodewordBER() float64 {
	return s.ChannelCodewordError.Mean
}

// Decoded is the output of a channel correction.
type Decoded struct {
	Codeword   []uint8
	Iterations int
	Converged  bool
}

// FrameErrors are the bit errors remaining in one frame.
type FrameErrors struct {
	Codeword, Message, Parity          int
	CodewordLen, MessageLen, ParityLen int
}

type Checkpoints func(updatedStats Stats)

type BinaryMessageConstructor func(trial int, rng *rand.Rand) (message []uint8)

//specific to BPSK
type BPSKChannelEncoder func(message []uint8) (codeword []uint8)
type BPSKChannel func(codeword []uint8, rng *rand.Rand) (received []float64)
type BPSKChannelCorrection func(received []float64) (decoded Decoded)
type BPSKChannelMetrics func(originalMessage, originalCodeword []uint8, decoded Decoded) FrameErrors

func BenchmarkBPSK(ctx context.Context,
	trials int, threads int, seed uint64,
	createMessage BinaryMessageConstructor,
	encode BPSKChannelEncoder,
	channel BPSKChannel,
	codewordRepair BPSKChannelCorrection,
	metrics BPSKChannelMetrics,
	checkpoints Checkpoints, showProgress bool) Stats {
	return BenchmarkBPSKContinueStats(ctx, trials, threads, seed, createMessage, encode, channel, codewordRepair, metrics, checkpoints, Stats{}, showProgress)
}

// BenchmarkBPSKContinueStats runs trials previousStats.Frames() to trials-1.
// Trial i draws all of its randomness from a source seeded with seed+i.
func BenchmarkBPSKContinueStats(ctx context.Context,
	trials int, threads int, seed uint64,
	createMessage BinaryMessageConstructor,
	encode BPSKChannelEncoder,
	channel BPSKChannel,
	codewordRepair BPSKChannelCorrection,
	metrics BPSKChannelMetrics,
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) Stats {
	trialsToRun := trials - previousStats.Frames()
	if trialsToRun <= 0 {
		return previousStats
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(trialsToRun)
	}
	pool := threadpool.NewFixedSize(ctx, threads, trialsToRun)
	statsMux := sync.Mutex{}

	trial := func(i int) {
		if showProgress {
			bar.Increment()
		}
		rng := rand.New(rand.NewSource(seed + uint64(i)))

		//we create a random message
		message := createMessage(i, rng)

		// encode to get our codeword
		codeword := encode(message)

		// send through the channel to get channel induced errors
		received := channel(codeword, rng)

		// repair the codeword (if possible)
		repaired := codewordRepair(received)

		// get metrics
		errs := metrics(message, codeword, repaired)

		statsMux.Lock()
		previousStats.update(errs, repaired)
		if checkpoints != nil {
			checkpoints(previousStats) //give them the updated checkpoint
		}
		statsMux.Unlock()
	}

	for i := previousStats.Frames(); i < trials; i++ {
		tmp := i
		pool.Add(func() { trial(tmp) })
	}
	pool.Wait()
	if showProgress {
		bar.Finish()
	}
	return previousStats
}

func ratio(errors, length int) float64 {
	if length == 0 {
		return 0
	}
	return float64(errors) / float64(length)
}

func (s *Stats) update(errs FrameErrors, decoded Decoded) {
	s.ChannelCodewordError.Update(ratio(errs.Codeword, errs.CodewordLen))
	s.ChannelMessageError.Update(ratio(errs.Message, errs.MessageLen))
	s.ChannelParityError.Update(ratio(errs.Parity, errs.ParityLen))
	s.Iterations.Update(float64(decoded.Iterations))
	s.CodewordBitErrors += errs.Codeword
	s.MessageBitErrors += errs.Message
	if errs.Message > 0 {
		s.FrameErrors++
	}
	if !decoded.Converged {
		s.NotConverged++
	}
}
