package gallager

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/ldpc/gallager"
	"github.com/nathanhack/ldpc/metrics"
	"github.com/nathanhack/ldpc/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var N uint
var Wc uint
var Wr uint
var Trials uint
var Duration time.Duration
var Threads uint
var Seed uint64
var Output string
var JSONFile string
var MetricsAddr string
var Verbose bool

var GallagerRun = func(cmd *cobra.Command, args []string) {
	if Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	//seed 0 means we want something different every time
	if Seed == 0 {
		Seed = uint64(time.Now().UnixNano())
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()
	if Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, Duration)
		defer cancel()
	}

	if MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, MetricsAddr); err != nil {
				logrus.Errorf("metrics server: %v", err)
			}
		}()
	}

	n, wc, wr := int(N), int(Wc), int(Wr)
	dir := storage.Dir(Output, n, wc, wr)
	logrus.Infof("searching N=%v wc=%v wr=%v with seed %v", n, wc, wr, Seed)

	opts := gallager.Options{
		Trials:       int(Trials),
		Threads:      int(Threads),
		Seed:         Seed,
		ShowProgress: !Verbose,
		Checkpoint: func(best *gallager.Candidate, stats gallager.Stats) {
			//girth is left for the final save, it's too slow to run on every improvement
			if err := storage.Save(dir, best.Block, info(best, stats, 0)); err != nil {
				logrus.Errorf("checkpoint: %v", err)
			}
		},
	}

	best, stats, err := gallager.Search(ctx, n, wc, wr, opts)
	if err != nil {
		fmt.Println("Unable to create gallager LDPC: ", err)
		return
	}
	logrus.Infof("search finished: %v", stats)

	girth := linearblock.CalculateGirth(context.Background(), best.Block.H, int(Threads))
	err = storage.Save(dir, best.Block, info(best, stats, girth))
	if err != nil {
		fmt.Println("unable to save: ", err)
		return
	}
	logrus.Infof("saved to %v (4-cycles: %v, girth: %v)", dir, best.Cycles, girth)

	if JSONFile != "" {
		err = storage.SaveJSON(JSONFile, best.Block)
		if err != nil {
			fmt.Println("unable to write file: ", err)
		}
	}
}

func info(best *gallager.Candidate, stats gallager.Stats, girth int) storage.Info {
	lb := best.Block
	return storage.Info{
		N:             lb.CodewordLength(),
		M:             gallager.ParityChecks(int(N), int(Wc), int(Wr)),
		K:             lb.MessageLength(),
		Wc:            int(Wc),
		Wr:            int(Wr),
		Rate:          lb.CodeRate(),
		Seed:          Seed + uint64(best.Trial),
		Trials:        stats.Trials,
		FailedTrials:  stats.Failed,
		ElapsedSecs:   stats.Elapsed.Seconds(),
		BestCycles:    best.Cycles,
		AverageCycles: stats.Cycles.Mean,
		Girth:         girth,
		Rank:          lb.Rank(),
	}
}
