package clcmd

import (
	"fmt"

	"github.com/BHFock/git-cl/clerr"
	"github.com/BHFock/git-cl/status"
)

// Status renders a report grouped by changelist, optionally restricted to
// the given changelist names.
func Status(ctx *Context, names []string, includeNoCL bool) (string, error) {
	for _, name := range names {
		if !ctx.Active.Has(name) {
			return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
		}
	}
	entries, err := ctx.Repo.StatusPorcelain()
	if err != nil {
		return "", err
	}
	return status.Render(ctx.Active, ctx.Stashed, entries, ctx.Repo.Root(), ctx.CWD, status.Options{
		Names:       names,
		IncludeNoCL: includeNoCL,
	}), nil
}
