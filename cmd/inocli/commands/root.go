// Package commands implements the CLI commands for inocli.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/perilune/inocli/internal/build"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/engine/toolchain"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for inocli.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Compile(ctx context.Context, sketchPath, fqbn string) (toolchain.CompileOutput, error)
	Upload(ctx context.Context, req domain.Request) (toolchain.UploadOutput, error)
	Flash(ctx context.Context, sketchPath, fqbn, port string) (toolchain.FlashOutput, error)
	Blink(ctx context.Context, port, fqbn string, ledPin, delayMS int) (toolchain.FlashOutput, error)
	Boards(ctx context.Context) ([]domain.Board, error)
	Platforms(ctx context.Context) ([]string, error)
	InstallPlatform(ctx context.Context, platformID string) error
	AddBoardURL(ctx context.Context, url string) error
	ToolVersion(ctx context.Context) (string, error)
	Monitor(ctx context.Context, port string, baud, timeoutSec int) (string, error)
	NewSketch(name, code string) (string, error)
	ReadSketchFile(path string) (string, bool, error)
	WriteSketchFile(path, content string) (string, error)
	Sketches(ctx context.Context) ([]domain.Project, error)
	Exec(logical string) domain.CommandResult
	StoreResult(logical, stdout, stderr string, success bool) (domain.CommandResult, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "inocli",
		Short:         "A caching wrapper around arduino-cli",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newUploadCmd())
	rootCmd.AddCommand(c.newFlashCmd())
	rootCmd.AddCommand(c.newBlinkCmd())
	rootCmd.AddCommand(c.newBoardCmd())
	rootCmd.AddCommand(c.newSketchCmd())
	rootCmd.AddCommand(c.newMonitorCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newStoreCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the input stream for the root command. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

func printResult(out io.Writer, result domain.CommandResult) {
	if result.Stdout != "" {
		_, _ = fmt.Fprintln(out, result.Stdout)
	}
	if result.Stderr != "" {
		_, _ = fmt.Fprintln(out, result.Stderr)
	}
}
