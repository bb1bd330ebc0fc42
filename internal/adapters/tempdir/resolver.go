// Package tempdir selects a writable scratch directory for tool invocations.
//
// arduino-cli occasionally fails when its default temp location is not
// writable (sandboxed environments, read-only homes). The resolver tries a
// fixed priority list of scratch directories and points TMPDIR at the first
// usable one.
package tempdir

import (
	"os"
	"path/filepath"

	"github.com/perilune/inocli/internal/core/ports"
)

// Resolver implements ports.TempResolver with a fixed candidate ordering:
// project-local scratch dir, hidden project-local dir, user-home scratch dir.
type Resolver struct {
	logger ports.Logger
	// home overrides os.UserHomeDir for tests.
	home func() (string, error)
}

var _ ports.TempResolver = (*Resolver)(nil)

// NewResolver creates a new Resolver.
func NewResolver(logger ports.Logger) *Resolver {
	return &Resolver{logger: logger, home: os.UserHomeDir}
}

// Resolve tries each candidate in order: create if absent, normalize
// permissions, probe writability. The first success is returned along with
// TMPDIR/TMP/TEMP overrides. When every candidate fails the overrides are
// empty and the tool falls back to its own default temp handling; that is
// logged but never an error.
func (r *Resolver) Resolve(workdir string) (string, map[string]string) {
	for _, dir := range r.candidates(workdir) {
		if err := prepare(dir); err != nil {
			r.logger.Warn("scratch dir unusable: " + dir + ": " + err.Error())
			continue
		}
		return dir, map[string]string{
			"TMPDIR": dir,
			"TMP":    dir,
			"TEMP":   dir,
		}
	}

	r.logger.Warn("no usable scratch dir, deferring to tool default temp handling")
	return "", map[string]string{}
}

func (r *Resolver) candidates(workdir string) []string {
	dirs := []string{
		filepath.Join(workdir, "inocli_tmp"),
		filepath.Join(workdir, ".ino_tmp"),
	}
	if home, err := r.home(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".inocli_tmp"))
	}
	return dirs
}

// prepare creates the directory if needed, normalizes its permissions and
// verifies it is actually writable with a probe file. Stat-based mode checks
// lie on some filesystems, so we write for real.
func prepare(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.Chmod(dir, 0o755); err != nil {
		return err
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
