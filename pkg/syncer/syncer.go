package syncer

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gitdeps/pkg/deps"
	"github.com/matzehuels/gitdeps/pkg/errors"
	"github.com/matzehuels/gitdeps/pkg/observability"
)

// Synchronizer performs the version-control operations the driver needs.
// *git.Client satisfies it.
type Synchronizer interface {
	// Version checks that the synchronizer is available.
	Version(ctx context.Context) error
	// Clone clones url at ref into dest, including submodules.
	Clone(ctx context.Context, url, ref, dest string) error
	// Pull updates the working copy at dest.
	Pull(ctx context.Context, dest string) error
	// Reset discards local changes in the working copy at dest.
	Reset(ctx context.Context, dest string) error
}

// Options configures a synchronization run.
type Options struct {
	// Resolve configures every resolution pass.
	Resolve deps.Options

	// IgnorePull skips updating libraries that are already present.
	IgnorePull bool

	// Clean resets present libraries before they are pulled.
	Clean bool
}

type mode int

const (
	initial mode = iota
	recursing
)

// Driver runs synchronization passes with a Synchronizer.
type Driver struct {
	sync   Synchronizer
	logger *log.Logger
}

// New returns a Driver. A nil logger means log.Default().
func New(s Synchronizer, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{sync: s, logger: logger}
}

// Run synchronizes the library root until a pass clones nothing new.
//
// The synchronizer is checked before any scanning; when it is unavailable
// Run returns an [errors.ErrCodeSynchronizerMissing] error and does nothing
// else. An empty dependency set or an unusable library root ends the run
// with Report.Empty set and no error. Failed operations are collected in
// the report; the returned error is non-nil only for a missing
// synchronizer or a cancelled context.
func (d *Driver) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	logger := d.logger.With("run", report.RunID[:8])
	opts.Resolve.Logger = d.resolveLogger(opts.Resolve.Logger)

	if err := d.sync.Version(ctx); err != nil {
		if !errors.Is(err, errors.ErrCodeSynchronizerMissing) {
			err = errors.Wrap(errors.ErrCodeSynchronizerMissing, err, "synchronizer is not available")
		}
		return report, err
	}

	attempted := make(map[string]bool)
	hooks := observability.Sync()

	for m := initial; ; m = recursing {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Passes++
		start := time.Now()
		hooks.OnPassStart(ctx, report.Passes)
		logger.Debug("starting pass", "pass", report.Passes, "recursing", m == recursing)

		res, err := deps.Resolve(ctx, opts.Resolve)
		switch {
		case errors.Is(err, errors.ErrCodeNoDependencies):
			logger.Debug("no dependencies found", "pass", report.Passes)
			report.Empty = report.Passes == 1
			return report, nil
		case errors.Is(err, errors.ErrCodeInvalidLibraryRoot):
			logger.Error("invalid library path", "path", opts.Resolve.LibraryDir, "err", err)
			report.Empty = true
			return report, nil
		case err != nil:
			return report, err
		}

		introduced := 0
		for _, lib := range res.Libraries() {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if err := validate(lib); err != nil {
				if !attempted[lib.Path] {
					attempted[lib.Path] = true
					logger.Warn("skipping dependency", "url", lib.Record.URL, "ref", lib.Record.Ref, "err", err)
					report.fail(lib, OpValidate, err)
				}
				continue
			}

			if isDir(lib.Path) {
				if m == initial && !opts.IgnorePull {
					d.update(ctx, logger, report, lib, opts.Clean)
				}
				continue
			}

			if attempted[lib.Path] {
				continue
			}
			attempted[lib.Path] = true
			introduced++
			d.clone(ctx, logger, report, lib)
		}

		hooks.OnPassComplete(ctx, report.Passes, introduced, time.Since(start))
		if introduced == 0 {
			logger.Debug("no new libraries", "passes", report.Passes)
			return report, nil
		}
	}
}

func (d *Driver) update(ctx context.Context, logger *log.Logger, report *Report, lib deps.Library, clean bool) {
	if clean {
		logger.Debug("resetting", "library", lib.Name)
		if err := d.do(ctx, OpReset, lib, func() error { return d.sync.Reset(ctx, lib.Path) }); err != nil {
			logger.Warn("reset failed", "library", lib.Name, "err", err)
			report.fail(lib, OpReset, err)
		} else {
			report.Reset = append(report.Reset, lib)
		}
	}

	logger.Debug("updating", "library", lib.Name)
	if err := d.do(ctx, OpPull, lib, func() error { return d.sync.Pull(ctx, lib.Path) }); err != nil {
		logger.Warn("pull failed", "library", lib.Name, "err", err)
		report.fail(lib, OpPull, err)
		return
	}
	report.Updated = append(report.Updated, lib)
}

func (d *Driver) clone(ctx context.Context, logger *log.Logger, report *Report, lib deps.Library) {
	logger.Debug("cloning", "url", lib.Record.URL, "ref", lib.Record.Ref, "path", lib.Path)
	err := d.do(ctx, OpClone, lib, func() error {
		return d.sync.Clone(ctx, lib.Record.URL, lib.Record.Ref, lib.Path)
	})
	if err != nil {
		logger.Warn("clone failed", "library", lib.Name, "err", err)
		report.fail(lib, OpClone, err)
		return
	}
	report.Cloned = append(report.Cloned, lib)
}

func (d *Driver) do(ctx context.Context, op Op, lib deps.Library, fn func() error) error {
	start := time.Now()
	err := fn()
	observability.Sync().OnOperation(ctx, op.String(), lib.Name, time.Since(start), err)
	return err
}

// validate rejects records that must never reach the synchronizer.
func validate(lib deps.Library) error {
	if err := errors.ValidateSourceURL(lib.Record.URL); err != nil {
		return err
	}
	return errors.ValidateLibraryName(lib.Name)
}

func (d *Driver) resolveLogger(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return d.logger
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
