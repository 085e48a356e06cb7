package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbook/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one vocabulary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				v, err := lookup(cmd.Context(), s, args[0])
				if err != nil {
					return err
				}
				return a.writeDetail(cmd.OutOrStdout(), v)
			})
		},
	}
}

// lookup fetches id through the repository. A missing entry is a user error.
func lookup(ctx context.Context, s *session, id string) (types.Vocabulary, error) {
	got, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Vocabulary{}, classify("get", err)
	}
	v, ok := got.Get()
	if !ok {
		return types.Vocabulary{}, userError(fmt.Errorf("vocabulary %s not found", id))
	}
	return v, nil
}
