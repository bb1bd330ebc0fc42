package commands

import (
	"io"
	"strings"

	"github.com/perilune/inocli/internal/core/domain"
	"github.com/spf13/cobra"
)

func (c *CLI) newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <args...>",
		Short: "Return the stored result for an arduino-cli command",
		Long: "Returns the cached result for a logical arduino-cli command. The " +
			"command is never spawned here: when no result has been stored yet, " +
			"the sentinel output asks you to run it in a terminal and record it " +
			"with the store command.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := c.app.Exec(strings.Join(args, " "))
			printResult(cmd.OutOrStdout(), result)
			if !result.Success {
				return domain.ErrToolFailed
			}
			return nil
		},
	}
}

func (c *CLI) newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store <args...>",
		Short: "Record the outcome of a command run out-of-band",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			success, _ := cmd.Flags().GetBool("ok")
			stderr, _ := cmd.Flags().GetString("stderr")

			// Stdout of the recorded command arrives on our stdin so shell
			// pipelines compose: arduino-cli version | inocli store --ok version
			var stdout string
			if data, err := io.ReadAll(cmd.InOrStdin()); err == nil {
				stdout = string(data)
			}

			_, err := c.app.StoreResult(strings.Join(args, " "), stdout, stderr, success)
			return err
		},
	}
	cmd.Flags().Bool("ok", false, "Mark the recorded command as successful")
	cmd.Flags().String("stderr", "", "Stderr output of the recorded command")
	return cmd
}

func (c *CLI) newMonitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Attach to a board's serial output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, _ := cmd.Flags().GetString("port")
			baud, _ := cmd.Flags().GetInt("baud")
			timeoutSec, _ := cmd.Flags().GetInt("timeout")

			output, err := c.app.Monitor(cmd.Context(), port, baud, timeoutSec)
			if err != nil {
				return err
			}
			_, _ = cmd.OutOrStdout().Write([]byte(output))
			return nil
		},
	}
	cmd.Flags().StringP("port", "p", "", "Serial port of the board")
	cmd.Flags().Int("baud", 9600, "Baud rate")
	cmd.Flags().Int("timeout", 10, "Seconds to keep the monitor attached")
	_ = cmd.MarkFlagRequired("port")
	return cmd
}
