package commands

import (
	"fmt"

	"github.com/perilune/inocli/internal/build"
	"github.com/spf13/cobra"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application and arduino-cli versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "inocli version %s\n", build.Version)

			toolVersion, err := c.app.ToolVersion(cmd.Context())
			if err != nil {
				_, _ = fmt.Fprintln(w, "arduino-cli: unavailable")
				return nil
			}
			_, _ = fmt.Fprintln(w, toolVersion)
			return nil
		},
	}
}
