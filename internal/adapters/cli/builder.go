// Package cli builds arduino-cli argument vectors from logical operations.
package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder maps an operation plus request parameters to an InvocationSpec.
// Building is idempotent for a fixed directory state: the same operation and
// parameters always yield the same argument vector.
type Builder struct {
	settings *domain.Settings
	logger   ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(settings *domain.Settings, logger ports.Logger) *Builder {
	return &Builder{settings: settings, logger: logger}
}

// Build renders the argument vector, the logical command string and any
// per-invocation environment overrides for the given operation.
func (b *Builder) Build(op domain.Operation, req domain.Request) (domain.InvocationSpec, error) {
	args, err := b.operationArgs(op, req)
	if err != nil {
		return domain.InvocationSpec{}, err
	}
	args = append(args, req.ExtraArgs...)

	spec := domain.InvocationSpec{
		Logical: strings.Join(args, " "),
		WorkDir: b.settings.Workdir,
		Env:     map[string]string{},
	}

	if op.IsCompile() {
		if err := b.injectBuildPath(&args, &spec, req); err != nil {
			return domain.InvocationSpec{}, err
		}
	}

	spec.Args = append([]string{b.settings.Binary}, args...)
	return spec, nil
}

func (b *Builder) operationArgs(op domain.Operation, req domain.Request) ([]string, error) {
	switch op {
	case domain.OpCompile:
		fqbn := req.FQBN
		if fqbn == "" {
			fqbn = b.settings.DefaultFQBN
		}
		args := []string{"compile", "-b", fqbn, req.SketchPath}
		if b.settings.Verbose {
			args = append(args, "-v")
		}
		return args, nil

	case domain.OpUpload:
		args := []string{"upload", "-p", req.Port}
		if req.HexPath != "" {
			args = append(args, "-i", req.HexPath)
		} else {
			args = append(args, req.SketchPath)
		}
		if req.FQBN != "" {
			args = append(args, "--fqbn", req.FQBN)
		}
		return args, nil

	case domain.OpMonitor:
		baud := req.BaudRate
		if baud == 0 {
			baud = 9600
		}
		args := []string{"monitor", "-p", req.Port, "-c", "baudrate=" + strconv.Itoa(baud)}
		if req.TimeoutSec > 0 {
			args = append(args, "--timeout", strconv.Itoa(req.TimeoutSec))
		}
		return args, nil

	case domain.OpBoardList:
		return []string{"board", "list"}, nil

	case domain.OpBoardListAll:
		args := []string{"board", "listall"}
		if req.PlatformID != "" {
			args = append(args, req.PlatformID)
		}
		return args, nil

	case domain.OpCoreList:
		return []string{"core", "list"}, nil

	case domain.OpCoreInstall:
		return []string{"core", "install", req.PlatformID}, nil

	case domain.OpCoreUpdateIndex:
		return []string{"core", "update-index"}, nil

	case domain.OpConfigInit:
		return []string{"config", "init"}, nil

	case domain.OpConfigAdd:
		return []string{"config", "add", req.ConfigKey, req.Value}, nil

	case domain.OpVersion:
		return []string{"version"}, nil
	}

	return nil, zerr.With(zerr.New("unknown operation"), "operation", string(op))
}

// injectBuildPath ensures every compile invocation has an explicit build
// directory. The directory is derived from the sketch name under the
// workspace and created up front; without it arduino-cli scatters artifacts
// into its own temp locations and the hex scan fallback has nothing to scan.
func (b *Builder) injectBuildPath(args *[]string, spec *domain.InvocationSpec, req domain.Request) error {
	// The flag may arrive as two tokens or in equals form; both mean the
	// caller chose the directory.
	for _, arg := range *args {
		if arg == "--build-path" || strings.HasPrefix(arg, "--build-path=") {
			return nil
		}
	}

	buildDir := BuildDir(b.settings.Workdir, req.SketchPath)
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create build directory"), "build_dir", buildDir)
	}

	*args = append(*args, "--build-path", buildDir)

	// Point the tool's temp handling at the build dir as well; its default
	// temp location is the usual source of transient compile failures.
	spec.Env["TMPDIR"] = buildDir
	spec.Env["TMP"] = buildDir
	spec.Env["TEMP"] = buildDir

	b.logger.Info("using build directory " + buildDir)
	return nil
}

// BuildDir is the per-sketch build directory under the workspace. Compile
// artifacts for a sketch always land here.
func BuildDir(workdir, sketchPath string) string {
	return filepath.Join(workdir, "build_"+SketchName(sketchPath))
}

// SketchName derives the sketch name from a sketch path. By Arduino
// convention the .ino file lives in a directory of the same name, so the
// parent directory is authoritative.
func SketchName(sketchPath string) string {
	return filepath.Base(filepath.Dir(sketchPath))
}

// LogicalCompile renders the short compile command string used as a cache
// key, matching what a user would type for this sketch and board.
func LogicalCompile(fqbn, sketchPath string) string {
	return "compile -b " + fqbn + " " + SketchName(sketchPath)
}
