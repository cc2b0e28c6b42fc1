package cmd

import (
	"github.com/nathanhack/ldpc/cmd/internal/create/gallager"
	"github.com/nathanhack/ldpc/cmd/internal/create/hamming"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "used to create a new ECC",
	Long:    `create provides the ability to make a new ECC and save it so it can be used later by the tools.`,
}

// createlinearblockCmd represents the linearblock command
var createlinearblockCmd = &cobra.Command{
	Use:     "linearblock",
	Aliases: []string{"lb", "l"},
	Short:   "creates linearblock ECCs",
	Long:    `Creates linearblock ECCs.`,
}

// createldpcCmd represents the ldpc command
var createldpcCmd = &cobra.Command{
	Use:     "ldpc",
	Aliases: []string{"l"},
	Short:   "creates LDPC",
	Long:    `Creates linearblock ECCs known as Low Density Parity Check (LDPC)`,
}

// createGallagerCmd represents the gallager command
var createGallagerCmd = &cobra.Command{
	Use:     "gallager",
	Aliases: []string{"g"},
	Short:   "Searches for a regular Gallager LDPC",
	Long: `Searches random regular Gallager parity check matrices for the one with the fewest 4-cycles that
has a systematic generator. The best one found is saved as H.csv, G.csv and info.txt under OUTPUT/N{n}_wc{c}_wr{r}
every time it improves.`,
	Args: cobra.NoArgs,
	Run:  gallager.GallagerRun,
}

// createHammingCmd represents the Hamming command
var createHammingCmd = &cobra.Command{
	Use:     "hamming OUTPUT_DIR",
	Aliases: []string{"h", "ham"},
	Short:   "Creates a new Hamming code based ECC",
	Long:    `Creates a new Hamming code based ECC. With --json OUTPUT_DIR is a JSON file instead.`,
	Args:    cobra.ExactArgs(1),
	Run:     hamming.HammingRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createlinearblockCmd)
	createlinearblockCmd.AddCommand(createldpcCmd)

	createldpcCmd.AddCommand(createGallagerCmd)
	createGallagerCmd.Flags().UintVarP(&gallager.N, "codeword", "n", 1024, "the number of bits in the codeword (multiple of row)")
	createGallagerCmd.Flags().UintVarP(&gallager.Wc, "column", "c", 3, "the column weight (number of ones in the H matrix column)")
	createGallagerCmd.Flags().UintVarP(&gallager.Wr, "row", "r", 6, "the row weight (number of ones in the H matrix row) (column < row)")
	createGallagerCmd.Flags().UintVarP(&gallager.Trials, "trials", "i", 10000, "the number of random matrices to try; note 0 means search until interrupted")
	createGallagerCmd.Flags().DurationVarP(&gallager.Duration, "duration", "d", 0, "stop the search after this long; note 0 means no limit")
	createGallagerCmd.Flags().UintVarP(&gallager.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")
	createGallagerCmd.Flags().Uint64VarP(&gallager.Seed, "seed", "s", 0, "the search seed; note 0 means seed from the clock")
	createGallagerCmd.Flags().StringVarP(&gallager.Output, "output", "o", "matrices", "the root directory to save matrices in")
	createGallagerCmd.Flags().StringVar(&gallager.JSONFile, "json", "", "also save the ECC as a JSON file")
	createGallagerCmd.Flags().StringVar(&gallager.MetricsAddr, "metrics", "", "serve prometheus metrics on this address (ex: :2112)")
	createGallagerCmd.Flags().BoolVarP(&gallager.Verbose, "verbose", "v", false, "enable verbose info")

	createlinearblockCmd.AddCommand(createHammingCmd)
	createHammingCmd.Flags().UintVarP(&hamming.ParityBits, "parity", "p", 4, "the parity >=2, sets codeword size (cs) == 2^parity-1 and message size == cs-parity")
	createHammingCmd.Flags().BoolVar(&hamming.JSON, "json", false, "save as a JSON file instead of a matrix directory")
	createHammingCmd.Flags().BoolVarP(&hamming.Verbose, "verbose", "v", false, "enable verbose info")
}
