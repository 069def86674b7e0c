// Package clerr defines the error taxonomy shared by git-cl's commands.
//
// Every command returns an error that is either nil, one of the sentinels
// below (optionally wrapped with extra context via fmt.Errorf("...: %w",
// ...)), or a *GitFailed. cmd/git-cl maps these to exit codes; nothing
// else in the tree needs to know about exit codes.
package clerr

import (
	"errors"
	"fmt"
)

// Sentinel errors, checked with errors.Is. Exit code 1 unless noted.
var (
	// ErrNotARepository means no Git checkout was found at or above cwd.
	ErrNotARepository = errors.New("not a git repository")
	// ErrNotFound means a named changelist is absent from the store it was
	// looked up in.
	ErrNotFound = errors.New("changelist not found")
	// ErrInvalidName means a changelist name failed clname.Validate.
	ErrInvalidName = errors.New("invalid changelist name")
	// ErrInvalidPath means a path escaped the repository or was otherwise
	// unsafe to normalize.
	ErrInvalidPath = errors.New("invalid or unsafe path")
	// ErrUsage means the command was invoked with missing or contradictory
	// arguments. Exit code 2.
	ErrUsage = errors.New("usage error")
	// ErrAborted means a destructive command's confirmation callback
	// returned false.
	ErrAborted = errors.New("aborted")
)

// GitFailed wraps a non-zero exit from the git binary together with its
// captured output, so the caller can print git's own diagnostic verbatim.
type GitFailed struct {
	Args   []string
	Code   int
	Output string
}

func (e *GitFailed) Error() string {
	return fmt.Sprintf("git %v failed (exit %d): %s", e.Args, e.Code, e.Output)
}

// ExitCode maps an error returned by a clcmd function to a process exit
// code: 0 success, 1 operational failure, 2 usage error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrUsage) {
		return 2
	}
	return 1
}
