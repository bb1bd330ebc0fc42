package ports

// TempResolver selects a writable scratch directory for an invocation and
// the temp-dir environment overrides pointing at it.
//
//go:generate mockgen -source=tempdir.go -destination=mocks/mock_tempdir.go -package=mocks
type TempResolver interface {
	// Resolve tries each candidate scratch directory in its fixed priority
	// order and returns the chosen directory plus TMPDIR-style overrides.
	//
	// When no candidate is usable it returns an empty directory and an
	// empty override map; the external tool then falls back to its own
	// default. That is deliberately not an error.
	Resolve(workdir string) (dir string, env map[string]string)
}
