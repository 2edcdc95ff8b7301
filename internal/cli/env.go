package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/nhl-season/internal/config"
)

func newEnvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables nhl-season reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(a.stdout, config.Usage())
			return err
		},
	}
}
