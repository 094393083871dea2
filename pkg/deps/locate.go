package deps

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitdeps/pkg/errors"
	"github.com/matzehuels/gitdeps/pkg/observability"
)

// File is a declaration file that passed header validation.
type File struct {
	// Path is the location of the file.
	Path string `json:"path" yaml:"path"`

	// Library is the name of the library directory holding the file, or
	// empty for the work directory file.
	Library string `json:"library,omitempty" yaml:"library,omitempty"`

	// Overridden reports the file was accepted without a valid header.
	Overridden bool `json:"overridden,omitempty" yaml:"overridden,omitempty"`
}

// Locator finds declaration files below a library root.
//
// The zero value is not usable; Filename must be set.
type Locator struct {
	// Filename is the declaration file name looked up in every directory.
	Filename string

	// WorkDir is checked last when IncludeWorkDir is set.
	WorkDir string

	// IncludeWorkDir enables the work directory lookup.
	IncludeWorkDir bool

	// IgnoreHeader accepts files without the header sentinel.
	IgnoreHeader bool

	// Logger receives scan progress. Nil means log.Default().
	Logger *log.Logger
}

// PrepareRoot makes sure root is usable as a library root and returns its
// canonical path. A missing root is created with its parents.
//
// Returns an [errors.ErrCodeInvalidLibraryRoot] error when root exists but
// is not a directory, or when it cannot be created or canonicalized.
func PrepareRoot(root string) (string, error) {
	info, err := os.Stat(root)
	switch {
	case err == nil && !info.IsDir():
		return "", errors.New(errors.ErrCodeInvalidLibraryRoot, "library path is not a directory: %s", root)
	case os.IsNotExist(err):
		if err := os.MkdirAll(root, 0o755); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidLibraryRoot, err, "create library path %s", root)
		}
	case err != nil:
		return "", errors.Wrap(errors.ErrCodeInvalidLibraryRoot, err, "stat library path %s", root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidLibraryRoot, err, "resolve library path %s", root)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidLibraryRoot, err, "resolve library path %s", root)
	}
	return canonical, nil
}

// Locate returns the valid declaration files for root.
//
// Immediate subdirectories of root are checked in directory order, then the
// work directory file is appended last. A failure to enumerate root is
// logged and yields no library files; the work directory is still checked.
// The only returned error is [errors.ErrCodeInvalidLibraryRoot], in which
// case no files are returned.
func (l *Locator) Locate(ctx context.Context, root string) ([]File, error) {
	start := time.Now()
	logger := l.logger()

	dir, err := PrepareRoot(root)
	if err != nil {
		logger.Debug("library path is not valid", "path", root, "err", err)
		observability.Scan().OnLocate(ctx, root, 0, time.Since(start), err)
		return nil, err
	}

	var files []File

	entries, err := os.ReadDir(dir)
	if err != nil {
		scanErr := errors.Wrap(errors.ErrCodeFilesystemEnumeration, err, "scan %s", dir)
		logger.Error("failed to find dependency list", "path", dir, "err", scanErr)
		entries = nil
	}

	for _, e := range entries {
		sub := filepath.Join(dir, e.Name())
		if !isDir(sub) {
			continue
		}
		path := filepath.Join(sub, l.Filename)
		if !isRegular(path) {
			continue
		}
		logger.Debug("found dependency file", "path", path)

		if f, ok := l.accept(path, e.Name()); ok {
			files = append(files, f)
		}
	}

	if l.IncludeWorkDir && l.WorkDir != "" {
		logger.Debug("searching for current path dependencies", "dir", l.WorkDir)
		path := filepath.Join(l.WorkDir, l.Filename)
		if isRegular(path) {
			if f, ok := l.accept(path, ""); ok {
				files = append(files, f)
			}
		}
	}

	observability.Scan().OnLocate(ctx, dir, len(files), time.Since(start), nil)
	return files, nil
}

// accept validates the header of path and builds its File entry.
func (l *Locator) accept(path, library string) (File, bool) {
	logger := l.logger()

	check, err := ValidateFile(path, l.IgnoreHeader)
	if err != nil {
		logger.Warn("cannot read dependency file", "path", path, "err", err)
		return File{}, false
	}
	if !check.Valid {
		logger.Debug("skipping file without header", "path", path, "header", Header)
		return File{}, false
	}
	if check.Overridden {
		logger.Warn("including a dependency list which might be invalid", "path", path)
	}
	return File{Path: path, Library: library, Overridden: check.Overridden}, true
}

func (l *Locator) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
