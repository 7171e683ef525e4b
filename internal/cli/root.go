package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the HTTP server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "offer-ledger",
	Short: "offer-ledger - marketplace offer ledger",
	Long: `offer-ledger keeps user wallets, their per-currency assets and the sell
offers listed against them. Configuration is read from the environment.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
