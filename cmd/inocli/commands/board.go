package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *CLI) newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Inspect and prepare boards and platforms",
	}
	cmd.AddCommand(c.newBoardListCmd())
	cmd.AddCommand(c.newBoardPlatformsCmd())
	cmd.AddCommand(c.newBoardInstallCmd())
	cmd.AddCommand(c.newBoardAddURLCmd())
	return cmd
}

func (c *CLI) newBoardListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards attached to serial ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			boards, err := c.app.Boards(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(boards) == 0 {
				_, _ = fmt.Fprintln(w, "no boards detected")
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "PORT\tBOARD\tFQBN")
			for _, b := range boards {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Port, b.Name, b.FQBN)
			}
			return tw.Flush()
		},
	}
}

func (c *CLI) newBoardPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List installed platform cores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			platforms, err := c.app.Platforms(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, id := range platforms {
				_, _ = fmt.Fprintln(w, id)
			}
			return nil
		},
	}
}

func (c *CLI) newBoardInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <platform>",
		Short: "Install a platform core such as arduino:avr",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.InstallPlatform(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "installed "+args[0])
			return nil
		},
	}
}

func (c *CLI) newBoardAddURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-url <url>",
		Short: "Register an additional board manager URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.AddBoardURL(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "added "+args[0])
			return nil
		},
	}
}
