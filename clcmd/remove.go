package clcmd

import (
	"fmt"

	"github.com/BHFock/git-cl/clerr"
	"github.com/BHFock/git-cl/clpath"
)

// Remove drops rawPaths from changelist name, if present; paths not
// currently in the changelist are silently ignored. The changelist is
// kept even if it becomes empty.
func Remove(ctx *Context, name string, rawPaths []string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: usage: git cl remove <name> <paths...>", clerr.ErrUsage)
	}
	if !ctx.Active.Has(name) {
		return "", fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
	}

	var normalized []string
	for _, raw := range rawPaths {
		rel, err := clpath.Normalize(ctx.Repo.Root(), ctx.CWD, raw)
		if err != nil {
			continue
		}
		normalized = append(normalized, rel)
	}

	ctx.Active.Remove(name, normalized)
	if err := ctx.saveActive(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Removed %d file(s) from '%s'\n", len(normalized), name), nil
}
