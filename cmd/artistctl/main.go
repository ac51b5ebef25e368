// Command artistctl performs operator tasks that have no HTTP surface:
// creating dashboard accounts and printing the database schema.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "artistctl",
		Short:         "Administer the artist directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newOperatorCmd(), newSchemaCmd())
	return root
}
