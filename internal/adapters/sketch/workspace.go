// Package sketch manages sketch files and projects inside the workspace.
package sketch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Manager provides sketch and file bookkeeping rooted at the workspace.
type Manager struct {
	workdir string
	logger  ports.Logger
}

// NewManager creates a new Manager.
func NewManager(settings *domain.Settings, logger ports.Logger) *Manager {
	return &Manager{workdir: settings.Workdir, logger: logger}
}

// Create writes a new sketch as <workdir>/<name>/<name>.ino, the directory
// layout arduino-cli requires, and returns the sketch file path.
func (m *Manager) Create(name, code string) (string, error) {
	dir := filepath.Join(m.workdir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create sketch directory"), "dir", dir)
	}

	path := filepath.Join(dir, name+".ino")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write sketch"), "path", path)
	}

	m.logger.Info("created sketch " + path)
	return path, nil
}

// ReadFile reads a file, resolving relative paths against the workspace.
// A missing file returns empty content and ok=false, not an error.
func (m *Manager) ReadFile(path string) (content string, ok bool, err error) {
	path = m.resolve(path)

	data, err := os.ReadFile(path) //nolint:gosec // workspace file access on behalf of the caller
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return string(data), true, nil
}

// WriteFile writes a file, resolving relative paths against the workspace
// and creating parent directories as needed.
func (m *Manager) WriteFile(path, content string) (string, error) {
	path = m.resolve(path)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to create directory"), "dir", dir)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return path, nil
}

// Validate normalizes a sketch path and checks it names a real, non-empty
// .ino file. Relative paths are tried against the workspace first.
func (m *Manager) Validate(path string) (string, error) {
	if path == "" {
		return "", domain.ErrSketchNotFound
	}

	path = m.resolve(path)

	if !strings.HasSuffix(path, ".ino") {
		return "", zerr.With(domain.ErrNotASketch, "path", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(domain.ErrSketchNotFound, "path", path)
	}
	if info.Size() == 0 {
		return "", zerr.With(domain.ErrEmptySketch, "path", path)
	}
	return path, nil
}

// Find walks dir recursively and returns every .ino file. Directory
// subtrees are scanned concurrently; results come back sorted.
func (m *Manager) Find(ctx context.Context, dir string) ([]string, error) {
	if dir == "" {
		dir = m.workdir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read directory"), "dir", dir)
	}

	var (
		mu    sync.Mutex
		found []string
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if !entry.IsDir() {
			if strings.HasSuffix(entry.Name(), ".ino") {
				found = append(found, path)
			}
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.HasSuffix(d.Name(), ".ino") {
					mu.Lock()
					found = append(found, p)
					mu.Unlock()
				}
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "sketch scan failed")
	}

	sort.Strings(found)
	return found, nil
}

// Discover returns the projects found under dir, one per sketch file.
func (m *Manager) Discover(ctx context.Context, dir string) ([]domain.Project, error) {
	files, err := m.Find(ctx, dir)
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(files))
	for _, file := range files {
		parent := filepath.Dir(file)
		projects = append(projects, domain.Project{
			SketchPath: file,
			Dir:        parent,
			Name:       filepath.Base(parent),
		})
	}
	return projects, nil
}

func (m *Manager) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.workdir, path)
}
