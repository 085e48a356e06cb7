package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a vocabulary entry completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				v, err := lookup(cmd.Context(), s, args[0])
				if err != nil {
					return err
				}
				if err := s.repo.Complete(cmd.Context(), v); err != nil {
					return classify("complete", err)
				}
				return a.report(cmd.OutOrStdout(), "Completed", v.AsCompleted())
			})
		},
	}
}

func newActivateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id>",
		Short: "Mark a vocabulary entry active again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				v, err := lookup(cmd.Context(), s, args[0])
				if err != nil {
					return err
				}
				if err := s.repo.Activate(cmd.Context(), v); err != nil {
					return classify("activate", err)
				}
				return a.report(cmd.OutOrStdout(), "Activated", v.AsActive())
			})
		},
	}
}

func newClearCompletedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove every completed vocabulary entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if err := s.repo.ClearCompleted(cmd.Context()); err != nil {
					return classify("clear completed", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared completed vocabulary")
				return nil
			})
		},
	}
}
