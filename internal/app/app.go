// Package app implements the application layer for inocli.
package app

import (
	"context"

	"github.com/perilune/inocli/internal/adapters/sketch"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
	"github.com/perilune/inocli/internal/engine/toolchain"
	"go.trai.ch/zerr"
)

// App represents the main application logic. It fronts the toolchain engine
// and the sketch workspace for the CLI layer.
type App struct {
	engine   *toolchain.Service
	sketches *sketch.Manager
	logger   ports.Logger
}

// New creates a new App instance.
func New(engine *toolchain.Service, sketches *sketch.Manager, logger ports.Logger) *App {
	return &App{
		engine:   engine,
		sketches: sketches,
		logger:   logger,
	}
}

// Compile compiles a sketch for a board.
func (a *App) Compile(ctx context.Context, sketchPath, fqbn string) (toolchain.CompileOutput, error) {
	return a.engine.Compile(ctx, sketchPath, fqbn)
}

// Upload flashes a board from a sketch or a prebuilt hex image.
func (a *App) Upload(ctx context.Context, req domain.Request) (toolchain.UploadOutput, error) {
	return a.engine.Upload(ctx, req)
}

// Flash compiles a sketch and uploads the result in one pass.
func (a *App) Flash(ctx context.Context, sketchPath, fqbn, port string) (toolchain.FlashOutput, error) {
	return a.engine.CompileAndUpload(ctx, sketchPath, fqbn, port)
}

// Blink provisions the canonical blink sketch in the workspace, compiles it
// and flashes it to the board on the given port. It is the end-to-end smoke
// test for a fresh board setup.
func (a *App) Blink(ctx context.Context, port, fqbn string, ledPin, delayMS int) (toolchain.FlashOutput, error) {
	path, err := a.sketches.Create("blink", sketch.Blink(ledPin, delayMS))
	if err != nil {
		return toolchain.FlashOutput{}, zerr.Wrap(err, "failed to create blink sketch")
	}
	a.logger.Info("created blink sketch at " + path)
	return a.engine.CompileAndUpload(ctx, path, fqbn, port)
}

// Boards lists the boards currently attached to serial ports.
func (a *App) Boards(ctx context.Context) ([]domain.Board, error) {
	return a.engine.ListBoards(ctx)
}

// Platforms lists the installed cores.
func (a *App) Platforms(ctx context.Context) ([]string, error) {
	return a.engine.Platforms(ctx)
}

// InstallPlatform installs a core and verifies it afterwards.
func (a *App) InstallPlatform(ctx context.Context, platformID string) error {
	return a.engine.InstallPlatform(ctx, platformID)
}

// AddBoardURL registers an additional board manager URL.
func (a *App) AddBoardURL(ctx context.Context, url string) error {
	return a.engine.AddBoardURL(ctx, url)
}

// ToolVersion reports the wrapped arduino-cli version.
func (a *App) ToolVersion(ctx context.Context) (string, error) {
	return a.engine.Version(ctx)
}

// Monitor attaches to a board's serial output.
func (a *App) Monitor(ctx context.Context, port string, baud, timeoutSec int) (string, error) {
	return a.engine.Monitor(ctx, port, baud, timeoutSec)
}

// NewSketch creates a named sketch in the workspace and returns its path.
func (a *App) NewSketch(name, code string) (string, error) {
	return a.sketches.Create(name, code)
}

// ReadSketchFile returns the content of a workspace file. The boolean
// reports whether the file exists.
func (a *App) ReadSketchFile(path string) (string, bool, error) {
	return a.sketches.ReadFile(path)
}

// WriteSketchFile writes content to a workspace file and returns the
// resolved path.
func (a *App) WriteSketchFile(path, content string) (string, error) {
	return a.sketches.WriteFile(path, content)
}

// Sketches lists the sketch projects found under the workspace.
func (a *App) Sketches(ctx context.Context) ([]domain.Project, error) {
	return a.sketches.Discover(ctx, "")
}

// Exec returns the stored result for a logical command, or the unexecuted
// sentinel when it has never been run and stored.
func (a *App) Exec(logical string) domain.CommandResult {
	return a.engine.Execute(logical)
}

// StoreResult records the outcome of a command the user ran out-of-band.
func (a *App) StoreResult(logical, stdout, stderr string, success bool) (domain.CommandResult, error) {
	return a.engine.StoreResult(logical, stdout, stderr, success)
}
