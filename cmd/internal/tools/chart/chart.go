package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/spf13/cobra"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var OutputFile string
var Codeword bool

var ChartRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	// loop through all the results files and collect data needed for displaying
	stats := make([]*tools.SimulationStats, len(args))
	var err error
	points := make(map[float64]bool)
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
		for p := range stats[i].Stats {
			points[p] = true
		}
	}

	xvalues, xnames := xAxisAndValues(points)

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	subtitle := "Message BER"
	if Codeword {
		subtitle = "Codeword BER"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Results",
			Subtitle: subtitle,
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right:  "0",
			Top:    "top",
			Type:   "scroll",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Eb/N0 (dB)",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "BER",
			Type:      "log",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	line.SetXAxis(xnames)
	for i, s := range stats {
		line.AddSeries(strings.TrimSuffix(filepath.Base(args[i]), filepath.Ext(args[i])), series(s, xvalues, Codeword))
	}

	err = line.Render(f)
	if err != nil {
		fmt.Println(err)
	}
}

func xAxisAndValues(points map[float64]bool) ([]float64, []string) {
	nums := make([]float64, 0, len(points))
	strs := make([]string, 0, len(points))
	for k := range points {
		nums = append(nums, k)
	}

	sort.Float64s(nums)

	for _, n := range nums {
		strs = append(strs, fmt.Sprintf("%.2f", n))
	}

	return nums, strs
}

// series has one value per x value, nil where stat has no point or the BER
// is zero since a log axis can't show it.
func series(stat *tools.SimulationStats, values []float64, codeword bool) []opts.LineData {
	results := make([]opts.LineData, len(values))
	for i, v := range values {
		x, has := stat.Stats[v]
		if !has {
			results[i] = opts.LineData{Value: nil}
			continue
		}

		ber := berOf(x, codeword)
		if ber == 0 {
			results[i] = opts.LineData{Value: nil}
			continue
		}
		results[i] = opts.LineData{Value: ber}
	}
	return results
}

func berOf(s benchmarking.Stats, codeword bool) float64 {
	if codeword {
		return s.CodewordBER()
	}
	return s.MessageBER()
}
