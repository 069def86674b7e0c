package clcmd

import (
	"fmt"
	"time"

	"github.com/BHFock/git-cl/clerr"
	"github.com/BHFock/git-cl/store"
)

// Stash moves changelist name (or every active changelist, when all is
// set) out of the active store and into the stashed store, reverting its
// paths in the working tree via "git stash push". A failure partway
// through an --all run stops the batch; changelists already stashed stay
// stashed.
func Stash(ctx *Context, name string, all bool) (string, error) {
	if all {
		var out string
		for _, n := range ctx.Active.Names() {
			o, err := stashOne(ctx, n)
			out += o
			if err != nil {
				return out, err
			}
		}
		return out, nil
	}
	if !ctx.Active.Has(name) {
		return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
	}
	return stashOne(ctx, name)
}

// stashOne performs the single-changelist stash primitive: push, migrate,
// persist both stores.
func stashOne(ctx *Context, name string) (string, error) {
	paths := ctx.Active.Paths(name)
	ref, err := ctx.Repo.StashPush(name, paths)
	if err != nil {
		return "", err
	}

	ctx.Active.Take(name)
	ctx.Stashed.Put(name, store.StashedEntry{
		Paths:     paths,
		StashRef:  ref,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		FileCount: len(paths),
	})

	if err := ctx.saveActive(); err != nil {
		return "", err
	}
	if err := ctx.saveStashed(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Stashing %s...\n", name), nil
}
