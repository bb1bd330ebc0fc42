package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newSketchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sketch",
		Short: "Manage sketches in the workspace",
	}
	cmd.AddCommand(c.newSketchNewCmd())
	cmd.AddCommand(c.newSketchListCmd())
	cmd.AddCommand(c.newSketchReadCmd())
	cmd.AddCommand(c.newSketchWriteCmd())
	return cmd
}

func (c *CLI) newSketchNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a sketch skeleton in the workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := "void setup() {\n}\n\nvoid loop() {\n}\n"
			if from, _ := cmd.Flags().GetString("from"); from != "" {
				data, err := os.ReadFile(from)
				if err != nil {
					return err
				}
				code = string(data)
			}

			path, err := c.app.NewSketch(args[0], code)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().String("from", "", "Seed the sketch from an existing .ino file")
	return cmd
}

func (c *CLI) newSketchReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <path>",
		Short: "Print a workspace file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, ok, err := c.app.ReadSketchFile(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no such file: %s", args[0])
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
}

func (c *CLI) newSketchWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Write a workspace file from a file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content []byte
			var err error
			if from, _ := cmd.Flags().GetString("from"); from != "" {
				content, err = os.ReadFile(from)
			} else {
				content, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			path, err := c.app.WriteSketchFile(args[0], string(content))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().String("from", "", "Copy the content from an existing file")
	return cmd
}

func (c *CLI) newSketchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sketch projects found under the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := c.app.Sketches(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, p := range projects {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", p.Name, p.SketchPath)
			}
			return nil
		},
	}
}
