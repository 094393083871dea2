package syncer

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gitdeps/pkg/deps"
	"github.com/matzehuels/gitdeps/pkg/errors"
)

// Op names a synchronizer operation.
type Op string

const (
	OpClone    Op = "clone"
	OpPull     Op = "pull"
	OpReset    Op = "reset"
	OpValidate Op = "validate"
)

// Failure is one failed operation on a library.
type Failure struct {
	Library deps.Library `json:"library" yaml:"library"`
	Op      Op           `json:"op" yaml:"op"`
	Err     error        `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Op, f.Library.Name, f.Err)
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error { return f.Err }

// Report summarizes one synchronization run.
type Report struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id" yaml:"run_id"`

	// Passes is the number of resolution passes that were started.
	Passes int `json:"passes" yaml:"passes"`

	// Cloned lists libraries that were cloned successfully.
	Cloned []deps.Library `json:"cloned,omitempty" yaml:"cloned,omitempty"`

	// Updated lists libraries that were pulled successfully.
	Updated []deps.Library `json:"updated,omitempty" yaml:"updated,omitempty"`

	// Reset lists libraries whose working copy was reset before the pull.
	Reset []deps.Library `json:"reset,omitempty" yaml:"reset,omitempty"`

	// Failed lists every failed operation in execution order.
	Failed []Failure `json:"failed,omitempty" yaml:"failed,omitempty"`

	// Empty reports that no dependency was found and nothing was done.
	Empty bool `json:"empty,omitempty" yaml:"empty,omitempty"`
}

// OK reports whether every operation succeeded.
func (r *Report) OK() bool { return len(r.Failed) == 0 }

// Err returns an [errors.ErrCodeSynchronizer] error listing the failed
// operations, or nil when there were none.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		msgs[i] = f.Op.String() + " " + f.Library.Name
	}
	return errors.Wrap(errors.ErrCodeSynchronizer, r.Failed[0].Err,
		"%d operation(s) failed: %s", len(r.Failed), strings.Join(msgs, ", "))
}

func (o Op) String() string { return string(o) }

func (r *Report) fail(lib deps.Library, op Op, err error) {
	r.Failed = append(r.Failed, Failure{Library: lib, Op: op, Err: err})
}
