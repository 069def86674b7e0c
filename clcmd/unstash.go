package clcmd

import (
	"fmt"

	"github.com/BHFock/git-cl/clerr"
)

// Unstash pops the stash entry backing changelist name (or every stashed
// changelist, in insertion order, when all is set) and moves it back to
// the active store. A pop that conflicts leaves the stash entry and both
// stores untouched and returns git's own conflict message.
func Unstash(ctx *Context, name string, all bool) (string, error) {
	if all {
		var out string
		for _, n := range ctx.Stashed.Names() {
			o, err := unstashOne(ctx, n)
			out += o
			if err != nil {
				return out, err
			}
		}
		return out, nil
	}
	if !ctx.Stashed.Has(name) {
		return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
	}
	return unstashOne(ctx, name)
}

func unstashOne(ctx *Context, name string) (string, error) {
	entry, ok := ctx.Stashed.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
	}

	if err := ctx.Repo.StashPop(entry.StashRef); err != nil {
		return "", err
	}

	ctx.Stashed.Take(name)
	ctx.Active.Put(name, entry.Paths)

	if err := ctx.saveStashed(); err != nil {
		return "", err
	}
	if err := ctx.saveActive(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Restored changelist '%s'\n", name), nil
}
