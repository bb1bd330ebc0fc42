package domain

// Settings is the resolved wrapper configuration.
type Settings struct {
	// Workdir is the workspace root for sketches, build output and scratch
	// directories. Always absolute after loading.
	Workdir string
	// Binary is the arduino-cli executable to invoke.
	Binary string
	// DefaultFQBN is used by compile and upload when the caller gives none.
	DefaultFQBN string
	// CacheDir is where durable command results are stored.
	CacheDir string
	// CacheCapacity bounds the in-memory result cache.
	CacheCapacity int
	// Verbose enables extra diagnostic output from the wrapped tool.
	Verbose bool
}
