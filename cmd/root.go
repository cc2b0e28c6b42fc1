package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ldpc",
	Short: "Gallager LDPC design and simulation",
	Long: `ldpc searches for regular Gallager LDPC codes with few short cycles and
simulates them over a BPSK/AWGN channel.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
