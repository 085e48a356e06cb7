package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbook/pkg/types"
)

var errEmptyVocabulary = errors.New("title and description must not both be empty")

func newAddCmd(a *app) *cobra.Command {
	var title, description, typ, pronounce string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a vocabulary entry",
		Example: `  wordbook add --title laconic --description "using few words"
  wordbook add --title ephemeral --type adjective --pronounce ih-FEM-er-ul`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := types.NewFullVocabulary(types.NewID(), title, description, typ, pronounce, false)
			if v.IsEmpty() {
				return userError(errEmptyVocabulary)
			}
			return a.withSession(func(s *session) error {
				if err := s.repo.Save(cmd.Context(), v); err != nil {
					return classify("save", err)
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), v)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", v.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "word or phrase")
	cmd.Flags().StringVar(&description, "description", "", "meaning or notes")
	cmd.Flags().StringVar(&typ, "type", "", "part of speech")
	cmd.Flags().StringVar(&pronounce, "pronounce", "", "pronunciation hint")
	return cmd
}
