package domain

// Operation identifies a logical arduino-cli operation.
type Operation string

const (
	// OpCompile compiles a sketch for a target board.
	OpCompile Operation = "compile"
	// OpUpload flashes a sketch or hex file to a connected board.
	OpUpload Operation = "upload"
	// OpBoardList lists connected boards.
	OpBoardList Operation = "board list"
	// OpBoardListAll lists every board known to the installed platforms.
	OpBoardListAll Operation = "board listall"
	// OpCoreList lists installed core platforms.
	OpCoreList Operation = "core list"
	// OpCoreInstall installs a core platform.
	OpCoreInstall Operation = "core install"
	// OpCoreUpdateIndex refreshes the platform index.
	OpCoreUpdateIndex Operation = "core update-index"
	// OpConfigInit initializes the arduino-cli configuration file.
	OpConfigInit Operation = "config init"
	// OpConfigAdd appends a value to an arduino-cli configuration key.
	OpConfigAdd Operation = "config add"
	// OpMonitor attaches to a serial port.
	OpMonitor Operation = "monitor"
	// OpVersion reports the arduino-cli version.
	OpVersion Operation = "version"
)

// IsCompile reports whether the operation is a compile-style operation,
// i.e. one that produces build artifacts and needs a build directory.
func (o Operation) IsCompile() bool {
	return o == OpCompile
}

// Request carries the caller-supplied parameters for one operation.
// Paths are expected to be already resolved to absolute form by the caller.
type Request struct {
	SketchPath string
	HexPath    string
	FQBN       string
	Port       string
	PlatformID string
	ConfigKey  string
	Value      string
	BaudRate   int
	TimeoutSec int
	// ExtraArgs are appended verbatim after the generated arguments.
	ExtraArgs []string
}

// InvocationSpec is a fully formed child-process invocation. It is built
// fresh per call and never mutated after handoff to the runner; the runner
// works on its own copy of Args when the retry workaround applies.
type InvocationSpec struct {
	// Args is the complete argument vector, Args[0] being the binary.
	Args []string
	// Env holds per-invocation environment overrides in KEY=VALUE form.
	Env map[string]string
	// Logical is the human-readable command string used as the cache key.
	Logical string
	// WorkDir is the directory the child process runs in.
	WorkDir string
}
