package clcmd

import (
	"fmt"

	"github.com/BHFock/git-cl/clerr"
)

// Unstage runs "git reset HEAD" on every path in changelist name. The
// changelist is kept unless del is set.
func Unstage(ctx *Context, name string, del bool) (string, error) {
	if !ctx.Active.Has(name) {
		return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
	}
	paths := ctx.Active.Paths(name)
	if err := ctx.Repo.Reset(paths); err != nil {
		return "", err
	}

	if del {
		ctx.Active.Delete(name)
		if err := ctx.saveActive(); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Unstaged %d file(s) from '%s'\n", len(paths), name), nil
}
