package gallager

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/metrics"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

// Options controls the design search.
type Options struct {
	Trials       int    // number of trials, 0 runs until ctx is done
	Threads      int    // <=0 uses runtime.NumCPU()
	Seed         uint64 // trial t draws its permutations from a source seeded with Seed+t
	BatchSize    int    // trials scored between cancellation checks, defaults to 64
	ShowProgress bool

	// Checkpoint is called every time the best candidate improves.
	Checkpoint func(best *Candidate, stats Stats)
	// Progress is called after each batch of trials.
	Progress func(stats Stats)
}

// Stats summarizes a search.
type Stats struct {
	Trials    int           // trials scored
	Failed    int           // improving trials whose H could not be paired with a generator, expected to stay 0
	Best      int           // fewest 4-cycles of a usable candidate, -1 when none
	BestTrial int           // trial index of the best candidate
	Cycles    avgstd.AvgStd // 4-cycle counts over all trials
	Elapsed   time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("{Trials:%v, Failed:%v, Best:%v (trial %v), Average:%0.02f(+/-%0.02f), Elapsed:%v}",
		s.Trials, s.Failed, s.Best, s.BestTrial,
		s.Cycles.Mean, math.Sqrt(s.Cycles.SampledVariance()), s.Elapsed.Round(time.Millisecond))
}

// Candidate is a usable parity matrix together with its generator.
type Candidate struct {
	Trial  int
	Cycles int
	Block  *linearblock.LinearBlock
}

type trialResult struct {
	H      *gf2.Matrix
	cycles int
	err    error
	done   bool
}

// Search repeatedly generates random (n, wc, wr) Gallager parity matrices and
// keeps the one with the fewest 4-cycles that can be paired with a systematic
// generator. Ties keep the earliest trial so results only depend on the seed.
// The search stops after opts.Trials trials, when ctx is done or when a
// candidate free of 4-cycles is found.
func Search(ctx context.Context, n, wc, wr int, opts Options) (*Candidate, Stats, error) {
	stats := Stats{Best: -1, BestTrial: -1}
	if err := Validate(n, wc, wr); err != nil {
		return nil, stats, err
	}
	if opts.Trials < 0 {
		return nil, stats, fmt.Errorf("%w: trials (%v) must be >= 0", ErrInvalidParameters, opts.Trials)
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}

	var bar *pb.ProgressBar
	if opts.ShowProgress && opts.Trials > 0 {
		bar = pb.StartNew(opts.Trials)
	}

	start := time.Now()
	var best *Candidate

	for next := 0; opts.Trials == 0 || next < opts.Trials; {
		select {
		case <-ctx.Done():
			logrus.Debugf("search stopped: %v", ctx.Err())
			return finish(best, stats, start, bar)
		default:
		}

		size := batchSize
		if opts.Trials > 0 && next+size > opts.Trials {
			size = opts.Trials - next
		}
		results := runBatch(ctx, n, wc, wr, next, size, opts)

		for i, r := range results {
			trial := next + i
			if !r.done {
				continue
			}
			if r.err != nil {
				return nil, stats, r.err
			}
			stats.Trials++
			stats.Cycles.Update(float64(r.cycles))
			metrics.SearchTrials.WithLabelValues("scored").Inc()

			if best != nil && r.cycles >= best.Cycles {
				continue
			}

			lb, err := linearblock.SystematicLinearBlock(r.H)
			if err != nil {
				stats.Failed++
				metrics.SearchTrials.WithLabelValues("failed").Inc()
				logrus.Debugf("trial %v: %v", trial, err)
				continue
			}

			best = &Candidate{Trial: trial, Cycles: r.cycles, Block: lb}
			stats.Best = r.cycles
			stats.BestTrial = trial
			stats.Elapsed = time.Since(start)
			metrics.SearchTrials.WithLabelValues("improved").Inc()
			metrics.SearchBestCycles.Set(float64(r.cycles))
			logrus.Infof("trial %v: new best with %v 4-cycles", trial, r.cycles)

			if opts.Checkpoint != nil {
				opts.Checkpoint(best, stats)
			}
		}
		next += size

		if bar != nil {
			bar.Add(size)
		}
		stats.Elapsed = time.Since(start)
		if opts.Progress != nil {
			opts.Progress(stats)
		}

		if best != nil && best.Cycles == 0 {
			logrus.Debugf("found a candidate without 4-cycles after %v trials", stats.Trials)
			break
		}
	}
	return finish(best, stats, start, bar)
}

func finish(best *Candidate, stats Stats, start time.Time, bar *pb.ProgressBar) (*Candidate, Stats, error) {
	if bar != nil {
		bar.Finish()
	}
	stats.Elapsed = time.Since(start)
	if best == nil {
		return nil, stats, fmt.Errorf("failed to find a solution after %v trials", stats.Trials)
	}
	return best, stats, nil
}

// runBatch scores trials [first, first+size) in parallel.
func runBatch(ctx context.Context, n, wc, wr, first, size int, opts Options) []trialResult {
	results := make([]trialResult, size)
	pool := threadpool.NewFixedSize(ctx, opts.Threads, size)
	mux := sync.Mutex{}

	for i := 0; i < size; i++ {
		index := i
		pool.Add(func() {
			rng := rand.New(rand.NewSource(opts.Seed + uint64(first+index)))
			H, err := GenerateH(n, wc, wr, rng)
			r := trialResult{H: H, err: err, done: true}
			if err == nil {
				r.cycles = linearblock.Count4Cycles(H, wc)
			}

			mux.Lock()
			results[index] = r
			mux.Unlock()
		})
	}
	pool.Wait()
	return results
}
