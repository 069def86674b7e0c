package clcmd

import (
	"fmt"

	"github.com/BHFock/git-cl/clerr"
	"github.com/BHFock/git-cl/gitscm"
)

// trackedPaths returns the subset of candidate paths that are not
// currently untracked ("??"), the shared notion of "tracked" that
// stage and commit both use to decide what to hand to git.
func trackedPaths(entries []gitscm.StatusEntry, candidates []string) []string {
	untracked := map[string]bool{}
	for _, e := range entries {
		if e.XY == "??" {
			untracked[e.Path] = true
		}
	}
	var out []string
	for _, p := range candidates {
		if !untracked[p] {
			out = append(out, p)
		}
	}
	return out
}

// Stage runs "git add" on the tracked paths of changelist name, leaving
// untracked paths alone. The changelist is kept unless del is set, the
// opposite default of Commit.
func Stage(ctx *Context, name string, del bool) (string, error) {
	if !ctx.Active.Has(name) {
		return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
	}
	entries, err := ctx.Repo.StatusPorcelain()
	if err != nil {
		return "", err
	}
	tracked := trackedPaths(entries, ctx.Active.Paths(name))
	if err := ctx.Repo.Add(tracked); err != nil {
		return "", err
	}

	if del {
		ctx.Active.Delete(name)
		if err := ctx.saveActive(); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("Staged %d file(s) from '%s'\n", len(tracked), name), nil
}
