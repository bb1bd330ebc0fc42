// Package config provides the configuration loader for inocli.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/perilune/inocli/internal/core/domain"
	"github.com/perilune/inocli/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filename is the default configuration file name.
const Filename = "inocli.yaml"

// defaultCacheCapacity bounds the in-memory result cache when the config
// does not say otherwise.
const defaultCacheCapacity = 256

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Filename string
	logger   ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader reading the default file name.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Filename: Filename, logger: logger}
}

// Load reads the configuration from the given working directory. A missing
// config file is not an error: every field has a usable default.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	path := filepath.Join(cwd, l.Filename)

	var file File
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Info("no " + l.Filename + " found, using defaults")
	case err != nil:
		return nil, zerr.Wrap(err, "failed to read config file")
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, zerr.Wrap(err, "failed to parse config file")
		}
	}

	return resolve(cwd, file)
}

// resolve maps the raw file onto Settings, filling defaults and making the
// workspace paths absolute.
func resolve(cwd string, file File) (*domain.Settings, error) {
	workdir := file.Workdir
	if workdir == "" {
		workdir = cwd
	}
	workdir, err := filepath.Abs(workdir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve workdir")
	}

	binary := file.Binary
	if binary == "" {
		binary = "arduino-cli"
	}

	cacheDir := file.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(workdir, ".inocli", "results")
	} else if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(workdir, cacheDir)
	}

	capacity := file.CacheCapacity
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}

	return &domain.Settings{
		Workdir:       workdir,
		Binary:        binary,
		DefaultFQBN:   file.DefaultFQBN,
		CacheDir:      cacheDir,
		CacheCapacity: capacity,
		Verbose:       file.Verbose,
	}, nil
}
