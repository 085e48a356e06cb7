package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbook/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var refresh, active, completed bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vocabulary entries",
		Long: `List prints every entry. The local store answers when it has entries;
otherwise the remote service does. --refresh reads the remote service
regardless of what is cached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				if refresh {
					s.repo.Refresh()
				}
				items, err := s.repo.List(cmd.Context())
				if err != nil {
					return classify("list", err)
				}
				return a.writeList(cmd.OutOrStdout(), filterItems(items, active, completed))
			})
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload from the remote service")
	cmd.Flags().BoolVar(&active, "active", false, "only entries not completed")
	cmd.Flags().BoolVar(&completed, "completed", false, "only completed entries")
	cmd.MarkFlagsMutuallyExclusive("active", "completed")
	return cmd
}

func filterItems(items []types.Vocabulary, active, completed bool) []types.Vocabulary {
	if !active && !completed {
		return items
	}
	out := make([]types.Vocabulary, 0, len(items))
	for _, v := range items {
		if (active && v.IsActive()) || (completed && v.Completed) {
			out = append(out, v)
		}
	}
	return out
}
