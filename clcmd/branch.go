package clcmd

import (
	"fmt"

	"github.com/BHFock/git-cl/clerr"
)

// Branch stashes every active changelist other than name, then creates
// branchName rooted at base (the current HEAD when base is empty) and
// switches to it. name itself is never stashed, so its working-tree edits
// travel onto the new branch untouched. branchName defaults to name when
// empty; if a branch of that name already exists, creation fails. The
// stash-then-create order is
// mandatory: if branch creation fails after some
// changelists were stashed, those stay stashed with no automatic
// rollback, and the error is reported as-is.
func Branch(ctx *Context, name, branchName, base string) (string, error) {
	if !ctx.Active.Has(name) {
		return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
	}
	if branchName == "" {
		branchName = name
	}

	var out string
	for _, other := range ctx.Active.Names() {
		if other == name {
			continue
		}
		out += fmt.Sprintf("Stashing %s...\n", other)
		if _, err := stashOne(ctx, other); err != nil {
			return out, err
		}
	}

	out += fmt.Sprintf("Creating branch %s...\n", branchName)
	if err := ctx.Repo.BranchCreate(branchName, base); err != nil {
		return out, err
	}
	out += fmt.Sprintf("Switched to branch '%s'\n", branchName)

	out += fmt.Sprintf("Restored changelist '%s'\n", name)
	out += fmt.Sprintf("Ready to work on %s\n", name)
	return out, nil
}
