package clcmd

import (
	"fmt"

	"github.com/BHFock/git-cl/clerr"
)

// Commit stages the tracked paths of changelist name and commits them
// with msg (or the contents of msgFile when msg == ""). If no tracked
// paths remain, it makes no commit and returns success with a message.
// Default: delete the changelist after a successful commit; keep
// inverts that, the opposite default of Stage.
func Commit(ctx *Context, name, msg, msgFile string, keep bool) (string, error) {
	if !ctx.Active.Has(name) {
		return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
	}
	if msg == "" && msgFile == "" {
		return "", fmt.Errorf("%w: commit requires -m <msg> or -F <file>", clerr.ErrUsage)
	}

	entries, err := ctx.Repo.StatusPorcelain()
	if err != nil {
		return "", err
	}
	tracked := trackedPaths(entries, ctx.Active.Paths(name))
	if len(tracked) == 0 {
		return fmt.Sprintf("No tracked files to commit in '%s'\n", name), nil
	}

	if err := ctx.Repo.Commit(msg, msgFile, tracked); err != nil {
		return "", err
	}

	if !keep {
		ctx.Active.Delete(name)
		if err := ctx.saveActive(); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Committed %d file(s) from '%s'\n", len(tracked), name), nil
}
