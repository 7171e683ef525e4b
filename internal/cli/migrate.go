package cli

import (
	"github.com/spf13/cobra"

	app "offer-ledger/internal"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Create the ledger tables and indexes if they do not exist. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application := app.NewApplication()
		if err := application.Connect(cmd.Context()); err != nil {
			return err
		}
		defer application.Shutdown(cmd.Context())

		return application.Migrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
