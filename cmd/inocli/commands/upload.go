package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/engine/toolchain"
	"github.com/spf13/cobra"
)

func (c *CLI) newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Flash a board from a sketch or a prebuilt hex image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, _ := cmd.Flags().GetString("port")
			fqbn, _ := cmd.Flags().GetString("fqbn")
			sketchPath, _ := cmd.Flags().GetString("sketch")
			hexPath, _ := cmd.Flags().GetString("hex")

			if sketchPath == "" && hexPath == "" {
				return fmt.Errorf("either --sketch or --hex is required")
			}

			out, err := c.app.Upload(cmd.Context(), domain.Request{
				SketchPath: sketchPath,
				HexPath:    hexPath,
				Port:       port,
				FQBN:       fqbn,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Success {
				_, _ = color.New(color.FgRed, color.Bold).Fprintln(w, "upload failed")
				_, _ = fmt.Fprintln(w, out.Error)
				return domain.ErrToolFailed
			}
			_, _ = color.New(color.FgGreen).Fprintln(w, "upload ok on "+out.Port)
			return nil
		},
	}
	cmd.Flags().StringP("port", "p", "", "Serial port of the board")
	cmd.Flags().StringP("fqbn", "b", "", "Fully qualified board name")
	cmd.Flags().StringP("sketch", "s", "", "Sketch to compile and upload")
	cmd.Flags().StringP("hex", "i", "", "Prebuilt hex image to upload as-is")
	_ = cmd.MarkFlagRequired("port")
	return cmd
}

func (c *CLI) newFlashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flash <sketch>",
		Short: "Compile a sketch and upload it in one pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")
			fqbn, _ := cmd.Flags().GetString("fqbn")

			out, err := c.app.Flash(cmd.Context(), args[0], fqbn, port)
			if err != nil {
				return err
			}
			return printFlashOutput(cmd, out)
		},
	}
	cmd.Flags().StringP("port", "p", "", "Serial port of the board")
	cmd.Flags().StringP("fqbn", "b", "", "Fully qualified board name")
	_ = cmd.MarkFlagRequired("port")
	return cmd
}

func (c *CLI) newBlinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blink",
		Short: "Create, compile and flash the canonical blink sketch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, _ := cmd.Flags().GetString("port")
			fqbn, _ := cmd.Flags().GetString("fqbn")
			pin, _ := cmd.Flags().GetInt("pin")
			delayMS, _ := cmd.Flags().GetInt("delay")

			out, err := c.app.Blink(cmd.Context(), port, fqbn, pin, delayMS)
			if err != nil {
				return err
			}
			return printFlashOutput(cmd, out)
		},
	}
	cmd.Flags().StringP("port", "p", "", "Serial port of the board")
	cmd.Flags().StringP("fqbn", "b", "", "Fully qualified board name")
	cmd.Flags().Int("pin", 13, "LED pin to blink")
	cmd.Flags().Int("delay", 1000, "Blink delay in milliseconds")
	_ = cmd.MarkFlagRequired("port")
	return cmd
}

func printFlashOutput(cmd *cobra.Command, out toolchain.FlashOutput) error {
	w := cmd.OutOrStdout()
	if !out.Compile.Success {
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(w, "compile failed ("+out.Compile.Category+")")
		_, _ = fmt.Fprintln(w, out.Compile.Error)
		return domain.ErrToolFailed
	}
	_, _ = color.New(color.FgGreen).Fprintln(w, "compile ok")
	if !out.Upload.Success {
		_, _ = color.New(color.FgRed, color.Bold).Fprintln(w, "upload failed")
		_, _ = fmt.Fprintln(w, out.Upload.Error)
		return domain.ErrToolFailed
	}
	_, _ = color.New(color.FgGreen).Fprintln(w, "upload ok on "+out.Upload.Port)
	return nil
}
