package awgn

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/channel"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/metrics"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var (
	EbN0dB      []float64
	Frames      uint
	MaxIter     uint
	Threads     uint
	Seed        uint64
	ResultsDir  string
	ConfigFile  string
	MetricsAddr string
	Verbose     bool
)

// CorrectionFactory returns the decoder used for every frame of l.
type CorrectionFactory func(l *linearblock.LinearBlock, maxIter int) benchmarking.BPSKChannelCorrection

// RunAWGN simulates trials frames of l over BPSK/AWGN at ebN0dB continuing from previousStats.
func RunAWGN(ctx context.Context,
	l *linearblock.LinearBlock,
	ebN0dB float64, trials, threads int, seed uint64,
	correctionAlg benchmarking.BPSKChannelCorrection,
	previousStats benchmarking.Stats,
	checkpoints benchmarking.Checkpoints,
	showProgress bool) benchmarking.Stats {

	createMessage := func(trial int, rng *rand.Rand) []uint8 {
		return benchmarking.RandomMessage(l.MessageLength(), rng)
	}

	encode := func(message []uint8) (codeword []uint8) {
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

	frameMetrics := benchmarking.LinearBlockMetrics(l)
	observed := func(originalMessage, originalCodeword []uint8, decoded benchmarking.Decoded) benchmarking.FrameErrors {
		errs := frameMetrics(originalMessage, originalCodeword, decoded)
		metrics.ObserveDecode(decoded.Iterations, decoded.Converged)
		metrics.BitErrors.WithLabelValues("message").Add(float64(errs.Message))
		metrics.BitErrors.WithLabelValues("codeword").Add(float64(errs.Codeword))
		return errs
	}

	return benchmarking.BenchmarkBPSKContinueStats(ctx, trials, threads, seed, createMessage, encode, awgn, correctionAlg, observed, checkpoints, previousStats, showProgress)
}

// Run returns the cobra run function of a simulator using the decoder made by
// factory. Its results go to ResultsDir/subdir.
func Run(subdir, typeInfo string, factory CorrectionFactory) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		if Verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}

		if ConfigFile != "" {
			config, err := LoadConfig(ConfigFile)
			if err != nil {
				fmt.Println(err)
				return
			}
			config.apply()
		}

		//first get the ECC to use
		ecc, err := tools.LoadLinearBlockECC(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}

		wc, wr := ecc.H.ColumnWeight(0), ecc.H.RowWeight(0)
		csvFile := tools.BERFileName(filepath.Join(ResultsDir, subdir), ecc.CodewordLength(), wc, wr, int(MaxIter))
		resultsFile := strings.TrimSuffix(csvFile, ".csv") + ".json"
		if len(args) > 1 {
			resultsFile = args[1]
		}

		//next we see if the results exists if so we load it and validate we're running it against the right thing
		data, err := tools.LoadResults(resultsFile)
		if err != nil {
			fmt.Println(err)
			return
		}

		//if data is nil then we create it
		if data == nil {
			data = &tools.SimulationStats{
				RunID:    uuid.NewString(),
				TypeInfo: typeInfo,
				ECCInfo:  tools.Md5Sum(ecc.H),
				MaxIter:  int(MaxIter),
				Stats:    make(map[float64]benchmarking.Stats),
			}
		}

		//in either case lets validate it
		if data.TypeInfo != typeInfo {
			fmt.Printf("results loaded do not match the same type expected %v but found %v\n", typeInfo, data.TypeInfo)
			return
		}
		if data.ECCInfo != tools.Md5Sum(ecc.H) {
			fmt.Println("results loaded do not match the ECC")
			return
		}
		if data.MaxIter != int(MaxIter) {
			fmt.Printf("results loaded were made with %v max iterations but found %v\n", data.MaxIter, MaxIter)
			return
		}
		logrus.Infof("run %v: N=%v K=%v rate=%0.3f", data.RunID, ecc.CodewordLength(), ecc.MessageLength(), ecc.CodeRate())

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

		if MetricsAddr != "" {
			go func() {
				if err := metrics.Serve(ctx, MetricsAddr); err != nil {
					logrus.Errorf("metrics server: %v", err)
				}
			}()
		}

		runSimulation(ctx, data, ecc, factory(ecc, int(MaxIter)), resultsFile)

		err = tools.SaveResults(resultsFile, data)
		if err != nil {
			fmt.Println(err)
		}
		err = tools.WriteBERCSV(csvFile, data)
		if err != nil {
			fmt.Println(err)
			return
		}
		logrus.Infof("BER results written to %v", csvFile)
	}
}

func runSimulation(ctx context.Context, data *tools.SimulationStats, ecc *linearblock.LinearBlock, correctionAlg benchmarking.BPSKChannelCorrection, outputFilename string) {
	checkpointMux := sync.Mutex{}
	checkpointCount := 0

	numberOfThread := int(Threads)
	if numberOfThread == 0 {
		numberOfThread = runtime.NumCPU()
	}

	trialsPerIter := numberOfThread * 10
	bar := pb.StartNew(int(Frames) * len(EbN0dB))
trialLoops:
	for t := trialsPerIter; t < int(Frames)+trialsPerIter; t += trialsPerIter {
		select {
		case <-ctx.Done():
			break trialLoops
		default:
		}

		for _, p := range EbN0dB {
			point := p
			checkpoint := func(stats benchmarking.Stats) {
				//we want to save the checkpoint
				checkpointMux.Lock()
				defer checkpointMux.Unlock()

				data.Stats[point] = stats

				if checkpointCount%trialsPerIter == 0 {
					err := tools.SaveResults(outputFilename, data)
					if err != nil {
						fmt.Println(err)
					}
				}
				checkpointCount++
			}
			before := data.Stats[point].Frames()
			data.Stats[point] = RunAWGN(ctx, ecc, point, min(t, int(Frames)), numberOfThread, Seed, correctionAlg, data.Stats[point], checkpoint, false)
			bar.Add(data.Stats[point].Frames() - before)
		}
	}
	bar.Finish()

	for _, p := range EbN0dB {
		logrus.Infof("Eb/N0 %0.2f dB: %v", p, data.Stats[p])
	}
}
