package toolchain_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/perilune/inocli/internal/adapters/cli"
	"github.com/perilune/inocli/internal/adapters/sketch"
	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
	"github.com/perilune/inocli/internal/core/ports/mocks"
	"github.com/perilune/inocli/internal/engine/toolchain"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceTestMocks struct {
	runner     *mocks.MockRunner
	classifier *mocks.MockClassifier
	store      *mocks.MockResultStore
	temps      *mocks.MockTempResolver
	logger     *mocks.MockLogger

	// Returned by the Resolve stub; tests reassign them to simulate a
	// resolved scratch dir.
	tempDir string
	tempEnv map[string]string
}

// setupServiceTest wires a Service against mocks plus a real builder and
// sketch manager rooted in a throwaway workspace.
func setupServiceTest(t *testing.T) (*toolchain.Service, *serviceTestMocks, *domain.Settings) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &serviceTestMocks{
		runner:     mocks.NewMockRunner(ctrl),
		classifier: mocks.NewMockClassifier(ctrl),
		store:      mocks.NewMockResultStore(ctrl),
		temps:      mocks.NewMockTempResolver(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
	}

	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()
	m.temps.EXPECT().Resolve(gomock.Any()).DoAndReturn(
		func(string) (string, map[string]string) {
			return m.tempDir, m.tempEnv
		},
	).AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End(gomock.Any()).AnyTimes()
	span.EXPECT().Cached().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()

	settings := &domain.Settings{
		Workdir:     t.TempDir(),
		Binary:      "arduino-cli",
		DefaultFQBN: "arduino:avr:uno",
	}
	builder := cli.NewBuilder(settings, m.logger)
	sketches := sketch.NewManager(settings, m.logger)

	svc := toolchain.NewService(
		settings, builder, m.runner, m.classifier, m.store, m.temps, sketches, tracer, m.logger)
	return svc, m, settings
}

// writeSketch drops a valid sketch into the workspace and returns its path.
func writeSketch(t *testing.T, settings *domain.Settings, name string) string {
	t.Helper()
	dir := filepath.Join(settings.Workdir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name+".ino")
	require.NoError(t, os.WriteFile(path, []byte("void setup() {}\nvoid loop() {}\n"), 0o644))
	return path
}

func TestService_Execute_ReturnsStoredResult(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	stored := domain.CommandResult{Command: "arduino-cli version", Success: true, Stdout: "1.0.4"}
	m.store.EXPECT().Get("version").Return(&stored, nil)

	got := svc.Execute("version")
	require.True(t, got.Success)
	require.Equal(t, "1.0.4", got.Stdout)
}

func TestService_Execute_UnexecutedSentinel(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	m.store.EXPECT().Get("board list").Return(nil, nil)

	got := svc.Execute("board list")
	require.False(t, got.Success)
	require.Contains(t, got.Stderr, "not yet executed")
}

func TestService_StoreResult_Persists(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	m.store.EXPECT().Save("version", gomock.Any()).Return(nil)

	result, err := svc.StoreResult("version", "1.0.4", "", true)
	require.NoError(t, err)
	require.Equal(t, "arduino-cli version", result.Command)
	require.True(t, result.Success)
}

func TestService_Run_WritesThroughCache(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.InvocationSpec) (domain.CommandResult, error) {
			require.Equal(t, []string{"arduino-cli", "version"}, spec.Args)
			return domain.CommandResult{Command: "arduino-cli version", Success: true, Stdout: "1.0.4"}, nil
		})
	m.store.EXPECT().Save("version", gomock.Any()).Return(nil)

	result, err := svc.Run(context.Background(), domain.OpVersion, domain.Request{})
	require.NoError(t, err)
	require.True(t, result.Success)
}

func TestService_Run_MergesTempEnvironment(t *testing.T) {
	svc, m, settings := setupServiceTest(t)

	scratch := filepath.Join(settings.Workdir, "inocli_tmp")
	m.tempDir = scratch
	m.tempEnv = map[string]string{"TMPDIR": scratch, "TMP": scratch, "TEMP": scratch}

	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.InvocationSpec) (domain.CommandResult, error) {
			require.Equal(t, scratch, spec.Env["TMPDIR"])
			return domain.CommandResult{Success: true}, nil
		})
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Run(context.Background(), domain.OpBoardList, domain.Request{})
	require.NoError(t, err)
}

func TestService_Run_RecordsSpanAttributes(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	store := mocks.NewMockResultStore(ctrl)
	temps := mocks.NewMockTempResolver(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	temps.EXPECT().Resolve(gomock.Any()).Return("", nil)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.CommandResult{Success: true}, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	settings := &domain.Settings{Workdir: t.TempDir(), Binary: "arduino-cli", DefaultFQBN: "arduino:avr:uno"}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().SetAttribute("binary", "arduino-cli")
	span.EXPECT().SetAttribute("workdir", settings.Workdir)
	span.EXPECT().End(nil)
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), "version").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		},
	)

	svc := toolchain.NewService(
		settings, cli.NewBuilder(settings, logger), runner, mocks.NewMockClassifier(ctrl),
		store, temps, sketch.NewManager(settings, logger), tracer, logger)

	_, err := svc.Run(context.Background(), domain.OpVersion, domain.Request{})
	require.NoError(t, err)
}

func TestService_Run_ScratchDirOverridesBuilderEnv(t *testing.T) {
	svc, m, settings := setupServiceTest(t)

	// A compile invocation arrives with TMPDIR pointed at the build dir; the
	// resolved scratch dir is applied last and wins.
	scratch := filepath.Join(settings.Workdir, "inocli_tmp")
	m.tempDir = scratch
	m.tempEnv = map[string]string{"TMPDIR": scratch, "TMP": scratch, "TEMP": scratch}

	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.InvocationSpec) (domain.CommandResult, error) {
			require.Equal(t, scratch, spec.Env["TMPDIR"])
			require.Equal(t, scratch, spec.Env["TMP"])
			require.Equal(t, scratch, spec.Env["TEMP"])
			return domain.CommandResult{Success: true}, nil
		})
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	sketchPath := filepath.Join(settings.Workdir, "blink", "blink.ino")
	_, err := svc.Run(context.Background(), domain.OpCompile, domain.Request{SketchPath: sketchPath})
	require.NoError(t, err)
}

func TestService_BuildAndRun_ClassifiesOutcome(t *testing.T) {
	svc, m, _ := setupServiceTest(t)

	result := domain.CommandResult{Success: false, Stderr: "Error: unknown FQBN"}
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(result, nil)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	m.classifier.EXPECT().Classify(result, domain.OpBoardList).Return(domain.ClassifiedOutcome{
		Success:  false,
		Category: domain.CategoryUnsupportedBoard,
	})

	outcome, err := svc.BuildAndRun(context.Background(), domain.OpBoardList, domain.Request{})
	require.NoError(t, err)
	require.Equal(t, domain.CategoryUnsupportedBoard, outcome.Category)
}

func TestService_Compile_Success(t *testing.T) {
	svc, m, settings := setupServiceTest(t)
	path := writeSketch(t, settings, "blink")

	// A hex in the build dir exercises the scan fallback.
	buildDir := cli.BuildDir(settings.Workdir, path)
	require.NoError(t, os.MkdirAll(buildDir, 0o755))
	hexPath := filepath.Join(buildDir, "blink.ino.hex")
	require.NoError(t, os.WriteFile(hexPath, []byte(":00000001FF\n"), 0o644))

	success := domain.CommandResult{Success: true, Stdout: "Sketch uses 924 bytes"}
	m.store.EXPECT().Get("compile -b arduino:avr:uno blink").Return(nil, nil)
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(success, nil)
	// Write-through under the full argv key plus the short compile key.
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.classifier.EXPECT().Classify(success, domain.OpCompile).Return(domain.ClassifiedOutcome{Success: true})

	out, err := svc.Compile(context.Background(), path, "")
	require.NoError(t, err)
	require.True(t, out.Success)
	require.Equal(t, "arduino:avr:uno", out.FQBN)
	require.Equal(t, hexPath, out.HexPath)
	require.False(t, out.FromCache)
}

func TestService_Compile_FailureCarriesDiagnosis(t *testing.T) {
	svc, m, settings := setupServiceTest(t)
	path := writeSketch(t, settings, "broken")

	failed := domain.CommandResult{
		Success: false,
		Stderr:  "fatal error: Servo.h: No such file or directory",
	}
	m.store.EXPECT().Get(gomock.Any()).Return(nil, nil)
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(failed, nil)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.classifier.EXPECT().Classify(failed, domain.OpCompile).Return(domain.ClassifiedOutcome{
		Success:  false,
		Category: domain.CategoryMissingDependency,
	})
	m.classifier.EXPECT().Diagnose(failed.Stderr).Return([]domain.Diagnosis{
		{Kind: domain.DiagnosisMissingInclude, Detail: "Servo.h"},
	})

	out, err := svc.Compile(context.Background(), path, "esp32:esp32:esp32")
	require.NoError(t, err)
	require.False(t, out.Success)
	require.Equal(t, string(domain.CategoryMissingDependency), out.Category)
	require.Len(t, out.Diagnoses, 1)
}

func TestService_Compile_SubstitutesCachedResultOnTransientFailure(t *testing.T) {
	svc, m, settings := setupServiceTest(t)
	path := writeSketch(t, settings, "blink")

	cached := domain.CommandResult{Success: true, Stdout: "Sketch uses 924 bytes"}
	transient := domain.CommandResult{
		Success: false,
		Stderr:  "unable to create a temporary file",
	}
	m.store.EXPECT().Get("compile -b arduino:avr:uno blink").Return(&cached, nil)
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(transient, nil)
	// Only the live run's argv-keyed write happens; the failed result must
	// not replace the cached success under the compile key.
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	m.classifier.EXPECT().Classify(cached, domain.OpCompile).Return(domain.ClassifiedOutcome{Success: true})

	out, err := svc.Compile(context.Background(), path, "arduino:avr:uno")
	require.NoError(t, err)
	require.True(t, out.Success)
	require.True(t, out.FromCache)
}

func TestService_Compile_RejectsMissingSketch(t *testing.T) {
	svc, _, settings := setupServiceTest(t)

	_, err := svc.Compile(context.Background(), filepath.Join(settings.Workdir, "ghost", "ghost.ino"), "")
	require.ErrorIs(t, err, domain.ErrSketchNotFound)
}

func TestService_Upload_RejectsMissingHex(t *testing.T) {
	svc, _, settings := setupServiceTest(t)

	_, err := svc.Upload(context.Background(), domain.Request{
		HexPath: filepath.Join(settings.Workdir, "nope.hex"),
		Port:    "/dev/ttyUSB0",
	})
	require.ErrorIs(t, err, domain.ErrHexNotFound)
}

func TestService_Upload_FlashesHex(t *testing.T) {
	svc, m, settings := setupServiceTest(t)

	hexPath := filepath.Join(settings.Workdir, "blink.ino.hex")
	require.NoError(t, os.WriteFile(hexPath, []byte(":00000001FF\n"), 0o644))

	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.InvocationSpec) (domain.CommandResult, error) {
			require.Contains(t, spec.Args, "-i")
			require.Contains(t, spec.Args, hexPath)
			return domain.CommandResult{Success: true, Stdout: "flashed"}, nil
		})
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	out, err := svc.Upload(context.Background(), domain.Request{HexPath: hexPath, Port: "/dev/ttyUSB0"})
	require.NoError(t, err)
	require.True(t, out.Success)
	require.Equal(t, "/dev/ttyUSB0", out.Port)
}

func TestService_CompileAndUpload_StopsOnCompileFailure(t *testing.T) {
	svc, m, settings := setupServiceTest(t)
	path := writeSketch(t, settings, "broken")

	failed := domain.CommandResult{Success: false, Stderr: "expected ';' before '}' token"}
	m.store.EXPECT().Get(gomock.Any()).Return(nil, nil)
	// The runner must only see the compile; no upload follows.
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(failed, nil).Times(1)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.classifier.EXPECT().Classify(failed, domain.OpCompile).Return(domain.ClassifiedOutcome{
		Success:  false,
		Category: domain.CategorySyntax,
	})
	m.classifier.EXPECT().Diagnose(gomock.Any()).Return(nil)

	out, err := svc.CompileAndUpload(context.Background(), path, "", "/dev/ttyUSB0")
	require.NoError(t, err)
	require.False(t, out.Compile.Success)
	require.False(t, out.Upload.Success)
}
