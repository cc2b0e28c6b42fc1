package cmd

import (
	"github.com/nathanhack/ldpc/cmd/internal/tools/awgn"
	"github.com/nathanhack/ldpc/cmd/internal/tools/awgn/bitflip"
	"github.com/nathanhack/ldpc/cmd/internal/tools/awgn/dwbf"
	"github.com/nathanhack/ldpc/cmd/internal/tools/awgn/spa"
	"github.com/nathanhack/ldpc/cmd/internal/tools/chart"
	"github.com/nathanhack/ldpc/cmd/internal/tools/csv"

	"github.com/spf13/cobra"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"t"},
	Short:   "Tools for ECCs",
	Long:    `Tools for ECCs`,
}

// toolsChansimCmd represents the chansim command
var toolsChansimCmd = &cobra.Command{
	Use:     "chansim",
	Aliases: []string{"cs", "c"},
	Short:   "Channel simulators",
	Long:    `Channel simulators for linearblock ECCs`,
}

// toolsLinearblockCmd represents the linearblock command
var toolsLinearblockCmd = &cobra.Command{
	Use:     "linearblock",
	Aliases: []string{"lb", "l"},
	Short:   "Linearblock channel simulators",
	Long:    `Channel simulators for linearblock ECCs`,
}

// toolsAwgnCmd represents the awgn command
var toolsAwgnCmd = &cobra.Command{
	Use:     "awgn",
	Aliases: []string{"a"},
	Short:   "A BPSK over AWGN channel simulator",
	Long: `A BPSK over additive white gaussian noise channel simulator for linearblock ECCs. Results are
saved as JSON (resumable) and as a CSV of the bit error rate per Eb/N0.`,
}

// toolsSpaCmd represents the spa command
var toolsSpaCmd = &cobra.Command{
	Use:     "spa ECC_DIR_OR_JSON [RESULT_JSON]",
	Aliases: []string{"s"},
	Short:   "A linearblock AWGN simulator with sum-product decoding",
	Long:    `A linearblock AWGN simulator with sum-product (belief propagation) decoding`,
	Args:    cobra.RangeArgs(1, 2),
	Run:     spa.SPARun,
}

// toolsBitflipCmd represents the bitflip command
var toolsBitflipCmd = &cobra.Command{
	Use:     "bitflip ECC_DIR_OR_JSON [RESULT_JSON]",
	Aliases: []string{"b"},
	Short:   "A linearblock AWGN simulator with gallager bit flipping on hard decisions",
	Long:    `A linearblock AWGN simulator with gallager based bit flipping on hard decisions`,
	Args:    cobra.RangeArgs(1, 2),
	Run:     bitflip.BitflipRun,
}

// toolsDwbfCmd represents the dwbf command
var toolsDwbfCmd = &cobra.Command{
	Use:     "dwbf ECC_DIR_OR_JSON [RESULT_JSON]",
	Aliases: []string{"d"},
	Short:   "A linearblock AWGN simulator with dwbf based bit flipping on hard decisions",
	Long:    `A linearblock AWGN simulator with dwbf based bit flipping on hard decisions`,
	Args:    cobra.RangeArgs(1, 2),
	Run:     dwbf.DwbfRun,
}

// toolsResultsCmd represents the results command
var toolsResultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "A tool to organize results for graphing and comparison",
	Long:    `A tool to organize results for graphing and comparison`,
}

// toolsCSVCmd represents the csv command
var toolsCSVCmd = &cobra.Command{
	Use:     "csv RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"c"},
	Short:   "Export to a CSV file",
	Long:    `Export to a CSV file`,
	Args:    cobra.MinimumNArgs(1),
	Run:     csv.CSVRun,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:     "chart RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"ch"},
	Short:   "Export to a HTML chart",
	Long:    `Export the BER curves to a HTML line chart`,
	Args:    cobra.MinimumNArgs(1),
	Run:     chart.ChartRun,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsChansimCmd)
	toolsCmd.AddCommand(toolsResultsCmd)

	toolsChansimCmd.AddCommand(toolsLinearblockCmd)
	toolsLinearblockCmd.AddCommand(toolsAwgnCmd)

	flags := toolsAwgnCmd.PersistentFlags()
	flags.Float64SliceVarP(&awgn.EbN0dB, "ebn0", "e", []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5}, "Eb/N0 values in dB to simulate")
	flags.UintVarP(&awgn.Frames, "frames", "f", 10_000, "the number of frames per Eb/N0")
	flags.UintVarP(&awgn.MaxIter, "iters", "i", 50, "max number of iterations the decoder is allowed")
	flags.UintVar(&awgn.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	flags.Uint64VarP(&awgn.Seed, "seed", "s", 0, "frame i of every Eb/N0 uses seed+i")
	flags.StringVarP(&awgn.ResultsDir, "results", "o", "results", "the directory for the results CSV (and JSON when RESULT_JSON is not given)")
	flags.StringVar(&awgn.ConfigFile, "config", "", "a YAML file overriding these flags")
	flags.StringVar(&awgn.MetricsAddr, "metrics", "", "serve prometheus metrics on this address (ex: :2112)")
	flags.BoolVarP(&awgn.Verbose, "verbose", "v", false, "enable verbose info")

	toolsAwgnCmd.AddCommand(toolsSpaCmd)
	toolsAwgnCmd.AddCommand(toolsBitflipCmd)
	toolsAwgnCmd.AddCommand(toolsDwbfCmd)
	toolsDwbfCmd.Flags().Float64VarP(&dwbf.Alpha, "alpha", "a", .5, "hyperparameter 0<α<1")
	toolsDwbfCmd.Flags().Float64Var(&dwbf.EtaThreshold, "eta", 0.0, "hyperparameter η threshold: no requirement but frequently 0.0 is a good value")

	toolsResultsCmd.AddCommand(toolsCSVCmd)
	toolsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "results.csv", "filename of the combined csv")
	toolsCSVCmd.Flags().BoolVarP(&csv.CodewordError, "codeword", "c", false, "outputs the CodewordError instead of MessageError or ParityError")
	toolsCSVCmd.Flags().BoolVarP(&csv.ParityError, "parity", "p", false, "outputs the ParityError instead of MessageError or CodewordError")

	toolsResultsCmd.AddCommand(toolsChartCmd)
	toolsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "results.html", "filename of the chart")
	toolsChartCmd.Flags().BoolVarP(&chart.Codeword, "codeword", "c", false, "chart the codeword BER instead of the message BER")
}
