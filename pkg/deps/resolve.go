package deps

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitdeps/pkg/errors"
)

// Options configures a resolution pass.
type Options struct {
	// LibraryDir is the library root; created when missing.
	LibraryDir string

	// Filename is the declaration file name (e.g. "dependency.txt").
	Filename string

	// WorkDir is the directory whose declaration file is merged last.
	WorkDir string

	// IncludeWorkDir enables the WorkDir lookup.
	IncludeWorkDir bool

	// IgnoreHeader accepts declaration files without the header sentinel.
	IgnoreHeader bool

	// Logger receives progress. Nil means log.Default().
	Logger *log.Logger
}

// Resolution is the result of one pass.
type Resolution struct {
	// Root is the canonical library root.
	Root string

	// Files are the declaration files that were read, in merge order.
	Files []File

	// Set holds the merged records.
	Set *Set
}

// Libraries maps every record in the set onto its library directory.
func (r *Resolution) Libraries() []Library {
	if r == nil || r.Set == nil {
		return nil
	}
	libs := make([]Library, 0, r.Set.Len())
	for _, rec := range r.Set.Records() {
		libs = append(libs, NewLibrary(r.Root, rec))
	}
	return libs
}

// Resolve runs one resolution pass: it prepares the library root, locates
// the declaration files, and merges their records.
//
// Returns an [errors.ErrCodeInvalidLibraryRoot] error when the root is
// unusable and an [errors.ErrCodeNoDependencies] error together with the
// (empty) resolution when no record was found. Both end the operation
// without work.
func Resolve(ctx context.Context, opts Options) (*Resolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := PrepareRoot(opts.LibraryDir)
	if err != nil {
		return nil, err
	}

	loc := &Locator{
		Filename:       opts.Filename,
		WorkDir:        opts.WorkDir,
		IncludeWorkDir: opts.IncludeWorkDir,
		IgnoreHeader:   opts.IgnoreHeader,
		Logger:         opts.Logger,
	}
	files, err := loc.Locate(ctx, root)
	if err != nil {
		return nil, err
	}

	b := &Builder{IgnoreHeader: opts.IgnoreHeader, Logger: opts.Logger}
	res := &Resolution{Root: root, Files: files, Set: b.Build(ctx, files)}
	if res.Set.Len() == 0 {
		return res, errors.New(errors.ErrCodeNoDependencies, "no dependencies found")
	}
	return res, nil
}
