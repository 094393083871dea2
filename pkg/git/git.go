// Package git runs the git command-line client on behalf of the
// synchronization driver.
//
// Every operation is a blocking subprocess call. Output is captured and
// logged at debug level; a non-zero exit status becomes an
// [errors.ExitStatusError] wrapped in an [errors.ErrCodeSynchronizer] error.
package git

import (
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitdeps/pkg/errors"
	"github.com/matzehuels/gitdeps/pkg/observability"
)

// DefaultBinary is the command name used when Client.Binary is empty.
const DefaultBinary = "git"

// Runner executes name with args and returns its exit status and combined
// output. A non-nil error means the process could not run at all.
type Runner func(ctx context.Context, name string, args ...string) (status int, output []byte, err error)

// ExecRunner is the Runner backed by os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) (int, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return 0, out, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode(), out, nil
	}
	return -1, out, err
}

// Client performs clone, pull, and reset operations with git.
type Client struct {
	// Binary is the git executable. Empty means DefaultBinary.
	Binary string

	// Run executes commands. Nil means ExecRunner.
	Run Runner

	// Logger receives command lines and output. Nil means log.Default().
	Logger *log.Logger
}

// New returns a Client that runs the git found on PATH.
func New(logger *log.Logger) *Client {
	return &Client{Binary: DefaultBinary, Run: ExecRunner, Logger: logger}
}

// Version checks that git can be executed.
//
// Returns an [errors.ErrCodeSynchronizerMissing] error when it cannot.
func (c *Client) Version(ctx context.Context) error {
	c.logger().Debug("determining git version")
	if err := c.exec(ctx, "--version"); err != nil {
		return errors.Wrap(errors.ErrCodeSynchronizerMissing, err,
			"could not find %s - install git and add it to your PATH", c.binary())
	}
	return nil
}

// Clone clones url at ref into dest, including submodules.
// An empty ref clones the remote's default branch. url and dest follow
// "--" so git never reads them as options.
func (c *Client) Clone(ctx context.Context, url, ref, dest string) error {
	args := []string{"clone"}
	if ref != "" {
		args = append(args, "-b", ref)
	}
	args = append(args, "--recurse-submodules", "--", url, dest)
	if err := c.exec(ctx, args...); err != nil {
		return errors.Wrap(errors.ErrCodeSynchronizer, err, "clone %s", url)
	}
	return nil
}

// Pull fetches and merges upstream changes into the working copy at dest.
func (c *Client) Pull(ctx context.Context, dest string) error {
	if err := c.exec(ctx, "-C", dest, "pull"); err != nil {
		return errors.Wrap(errors.ErrCodeSynchronizer, err, "pull %s", dest)
	}
	return nil
}

// Reset discards local changes in the working copy at dest.
func (c *Client) Reset(ctx context.Context, dest string) error {
	if err := c.exec(ctx, "-C", dest, "reset", "--hard", "HEAD"); err != nil {
		return errors.Wrap(errors.ErrCodeSynchronizer, err, "reset %s", dest)
	}
	return nil
}

func (c *Client) exec(ctx context.Context, args ...string) error {
	name := c.binary()
	line := name + " " + strings.Join(args, " ")
	logger := c.logger()
	logger.Debug("exec", "cmd", line)

	run := c.Run
	if run == nil {
		run = ExecRunner
	}

	start := time.Now()
	status, out, err := run(ctx, name, args...)
	observability.Command().OnCommand(ctx, name, args, status, time.Since(start))

	output := strings.TrimSpace(string(out))
	if output != "" {
		logger.Debug("output", "cmd", line, "text", output)
	}
	if err != nil {
		return err
	}
	if status != 0 {
		return &errors.ExitStatusError{Command: line, Status: status, Output: output}
	}
	return nil
}

func (c *Client) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

func (c *Client) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}
