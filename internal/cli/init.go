package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbook/pkg/sqlite"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize wordbook storage",
		Long:  "Create the configuration and data directories, then initialize the local store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.settings.storeConfig(a.dataDir)
			if err := cfg.Validate(); err != nil {
				return userError(fmt.Errorf("invalid config: %w", err))
			}

			// Attach then Detach creates the data directory and an empty JSONL file.
			local := sqlite.NewBackend()
			if err := local.Attach(cfg); err != nil {
				return sysError(fmt.Errorf("initialize storage: %w", err))
			}
			if err := local.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			out := cmd.OutOrStdout()
			if a.jsonMode {
				return writeJSON(out, map[string]string{
					"config_dir": a.configDir,
					"data_dir":   a.dataDir,
				})
			}
			fmt.Fprintf(out, "Wordbook initialized\nconfig: %s\ndata:   %s\n", a.configDir, a.dataDir)
			return nil
		},
	}
}
