package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errDeleteTarget = errors.New("specify an id or --all, not both")

func newDeleteCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "delete [<id> | --all]",
		Short: "Delete one vocabulary entry, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return userError(errDeleteTarget)
			}
			return a.withSession(func(s *session) error {
				if all {
					if err := s.repo.DeleteAll(cmd.Context()); err != nil {
						return classify("delete all", err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Deleted all vocabulary")
					return nil
				}
				if err := s.repo.Delete(cmd.Context(), args[0]); err != nil {
					return classify("delete", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "delete every entry")
	return cmd
}
