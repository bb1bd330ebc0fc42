package config

// File represents the structure of the inocli.yaml configuration file.
type File struct {
	Version       string `yaml:"version"`
	Workdir       string `yaml:"workdir"`
	Binary        string `yaml:"binary"`
	DefaultFQBN   string `yaml:"defaultFqbn"`
	CacheDir      string `yaml:"cacheDir"`
	CacheCapacity int    `yaml:"cacheCapacity"`
	Verbose       bool   `yaml:"verbose"`
}
