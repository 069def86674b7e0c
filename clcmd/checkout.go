package clcmd

import (
	"fmt"
	"strings"

	"github.com/BHFock/git-cl/clerr"
)

// Checkout reverts working-tree modifications to HEAD for the union of
// paths in the named changelists. Without force, it asks ctx.Confirm
// first and aborts on no. With del, the changelists are also dropped from
// the active store.
func Checkout(ctx *Context, names []string, force, del bool) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("%w: usage: git cl checkout <names...>", clerr.ErrUsage)
	}
	for _, name := range names {
		if !ctx.Active.Has(name) {
			return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
		}
	}

	var union []string
	seen := map[string]bool{}
	for _, name := range names {
		for _, p := range ctx.Active.Paths(name) {
			if !seen[p] {
				seen[p] = true
				union = append(union, p)
			}
		}
	}

	if !force {
		prompt := fmt.Sprintf("Revert %d file(s) in %s to HEAD?", len(union), strings.Join(names, ", "))
		if ctx.Confirm == nil || !ctx.Confirm(prompt) {
			return "", clerr.ErrAborted
		}
	}

	entries, err := ctx.Repo.StatusPorcelain()
	if err != nil {
		return "", err
	}
	untracked := map[string]bool{}
	for _, e := range entries {
		if e.XY == "??" {
			untracked[e.Path] = true
		}
	}
	if err := ctx.Repo.CheckoutPaths(union, untracked); err != nil {
		return "", err
	}

	if del {
		for _, name := range names {
			ctx.Active.Delete(name)
		}
		if err := ctx.saveActive(); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("Reverted %d file(s) in %s\n", len(union), strings.Join(names, ", ")), nil
}
