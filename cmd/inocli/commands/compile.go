package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/spf13/cobra"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <sketch>",
		Short: "Compile a sketch for a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fqbn, _ := cmd.Flags().GetString("fqbn")

			out, err := c.app.Compile(cmd.Context(), args[0], fqbn)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Success {
				_, _ = color.New(color.FgRed, color.Bold).Fprintln(w, "compile failed ("+out.Category+")")
				_, _ = fmt.Fprintln(w, out.Error)
				for _, d := range out.Diagnoses {
					_, _ = color.New(color.FgYellow).Fprintln(w, "hint: "+d.Suggestion)
				}
				return domain.ErrToolFailed
			}

			_, _ = color.New(color.FgGreen).Fprintln(w, "compile ok")
			if out.FromCache {
				_, _ = color.New(color.FgCyan).Fprintln(w, "served from cache")
			}
			if out.HexPath != "" {
				_, _ = fmt.Fprintln(w, "image: "+out.HexPath)
			}
			return nil
		},
	}
	cmd.Flags().StringP("fqbn", "b", "", "Fully qualified board name (defaults to the configured board)")
	return cmd
}
