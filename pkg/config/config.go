// Package config holds the settings of a gitdeps run.
//
// A [Config] is built once at startup from defaults, an optional TOML file,
// and command-line flags, in that order. It is passed by value to the
// packages that need it and is not changed afterwards.
//
// Example file:
//
//	library_dir = "third_party"
//	dependency_file = "dependency.txt"
//
//	[policy]
//	ignore_pull = true
//	clean = false
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/matzehuels/gitdeps/pkg/deps"
	"github.com/matzehuels/gitdeps/pkg/errors"
)

const (
	// AppName is the directory name used below the XDG config home.
	AppName = "gitdeps"

	// FileName is the per-project config file looked up in the work directory.
	FileName = ".gitdeps.toml"

	// DefaultLibraryDir is where libraries are cloned to.
	DefaultLibraryDir = "./libraries"

	// DefaultDependencyFile is the declaration file name.
	DefaultDependencyFile = "dependency.txt"
)

// configHome returns the user config directory. Replaced in tests.
var configHome = func() string { return xdg.ConfigHome }

// Policy holds the behavior switches.
type Policy struct {
	// IgnoreCurrentPath skips the declaration file of the work directory.
	IgnoreCurrentPath bool `toml:"ignore_current_path"`

	// IgnoreHeader accepts declaration files without the header line.
	IgnoreHeader bool `toml:"ignore_header"`

	// IgnorePull leaves libraries that are already present untouched.
	IgnorePull bool `toml:"ignore_pull"`

	// Clean hard-resets present libraries before pulling them.
	Clean bool `toml:"clean"`

	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`
}

// Config is the effective configuration of a run.
type Config struct {
	LibraryDir     string `toml:"library_dir"`
	DependencyFile string `toml:"dependency_file"`
	Policy         Policy `toml:"policy"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LibraryDir:     DefaultLibraryDir,
		DependencyFile: DefaultDependencyFile,
	}
}

// Load decodes the TOML file at path over the defaults.
//
// Returns an [errors.ErrCodeInvalidConfig] error when the file cannot be
// read or parsed, or when it contains keys gitdeps does not know.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Locate returns the config file to load, or "" when there is none.
//
// An explicit path must exist. Otherwise FileName in workDir is used when
// present, then config.toml below the XDG config home.
func Locate(explicit, workDir string) (string, error) {
	if explicit != "" {
		if !isRegular(explicit) {
			return "", errors.New(errors.ErrCodeInvalidConfig, "config file not found: %s", explicit)
		}
		return explicit, nil
	}

	candidates := []string{filepath.Join(AppName, "config.toml")}
	if home := configHome(); home != "" {
		candidates[0] = filepath.Join(home, candidates[0])
	} else {
		candidates = nil
	}
	if workDir != "" {
		candidates = append([]string{filepath.Join(workDir, FileName)}, candidates...)
	}

	for _, p := range candidates {
		if isRegular(p) {
			return p, nil
		}
	}
	return "", nil
}

// Validate checks the library directory and declaration file name.
func (c Config) Validate() error {
	if err := errors.ValidateLibraryDir(c.LibraryDir); err != nil {
		return err
	}
	return errors.ValidateDeclarationFilename(c.DependencyFile)
}

// ResolveOptions returns the resolution options for a run started in
// workDir. A relative library directory is taken relative to workDir.
func (c Config) ResolveOptions(workDir string) deps.Options {
	dir := c.LibraryDir
	if workDir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(workDir, dir)
	}
	return deps.Options{
		LibraryDir:     dir,
		Filename:       c.DependencyFile,
		WorkDir:        workDir,
		IncludeWorkDir: !c.Policy.IgnoreCurrentPath,
		IgnoreHeader:   c.Policy.IgnoreHeader,
	}
}

// WriteTOML encodes c to w.
func (c Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
