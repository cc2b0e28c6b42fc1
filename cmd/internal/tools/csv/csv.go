package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var OutputFile string
var CodewordError bool
var ParityError bool

var CSVRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	stats := make([]*tools.SimulationStats, len(args))
	var err error
	for i, resultFile := range args {
		stats[i], err = tools.LoadResults(resultFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		if stats[i] == nil {
			fmt.Printf("%v does not exist\n", resultFile)
			return
		}
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	names := make([]string, len(args))
	for i, a := range args {
		names[i] = strings.TrimSuffix(a, filepath.Ext(a))
	}

	err = Write(f, names, stats, value)
	if err != nil {
		fmt.Println(err)
	}
}

func value(s benchmarking.Stats) float64 {
	switch {
	case CodewordError:
		return s.ChannelCodewordError.Mean
	case ParityError:
		return s.ChannelParityError.Mean
	default:
		return s.ChannelMessageError.Mean
	}
}

// Write writes one row per results file and one column per Eb/N0 point
// found in any of them. Missing points are left empty.
func Write(writer io.Writer, names []string, stats []*tools.SimulationStats, value func(benchmarking.Stats) float64) error {
	pointSet := make(map[float64]bool)
	for _, s := range stats {
		for p := range s.Stats {
			pointSet[p] = true
		}
	}
	points := make([]float64, 0, len(pointSet))
	for p := range pointSet {
		points = append(points, p)
	}
	sort.Float64s(points)

	w := csv.NewWriter(writer)

	//first write headers
	header := []string{"Results File"}
	for _, p := range points {
		header = append(header, fmt.Sprintf("%.2f", p))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, s := range stats {
		record := make([]string, len(header))
		record[0] = names[i]

		for j, p := range points {
			v, has := s.Stats[p]
			if has {
				record[j+1] = fmt.Sprintf("%v", value(v))
			}
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
