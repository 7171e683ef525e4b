package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	app "offer-ledger/internal"
	"offer-ledger/internal/seed"
)

var resetBeforeSeed bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo users, wallets, currencies and assets",
	Long: `Insert the demo data set in one transaction. With --reset every ledger
table is truncated first; restart any running server afterwards, since its
user and currency caches still hold the removed rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.NewApplication()
		if err := application.Connect(cmd.Context()); err != nil {
			return err
		}
		defer application.Shutdown(cmd.Context())

		res, err := application.Seed(cmd.Context(), resetBeforeSeed)
		if err != nil {
			return err
		}
		for i, id := range res.Users {
			fmt.Fprintf(cmd.OutOrStdout(), "user %s\t%s\n", id, seed.Users[i])
		}
		for i, id := range res.Wallets {
			fmt.Fprintf(cmd.OutOrStdout(), "wallet %s\towner %s\n", id, res.Users[seed.Wallets[i]])
		}
		for i, id := range res.Currencies {
			fmt.Fprintf(cmd.OutOrStdout(), "currency %s\t%s\n", id, seed.Currencies[i])
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&resetBeforeSeed, "reset", false, "truncate every ledger table first")
	rootCmd.AddCommand(seedCmd)
}
