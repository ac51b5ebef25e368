package main

import (
	"github.com/spf13/cobra"

	"github.com/iliyamo/artistlink/internal/database"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the MySQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(database.Schema))
			return err
		},
	}
}
