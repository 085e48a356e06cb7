package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbook/pkg/wordbook"
)

const modulePath = "github.com/mesh-intelligence/wordbook"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wordbook version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "wordbook v%s\nmodule: %s\n", wordbook.Version, modulePath)
			return nil
		},
	}
}
