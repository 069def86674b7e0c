package clcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BHFock/git-cl/clerr"
	"github.com/BHFock/git-cl/clname"
	"github.com/BHFock/git-cl/clpath"
)

// Add validates name, normalizes each of rawPaths (skipping invalid ones
// with a warning, warning but still adding non-existent ones), and
// reassigns the resulting set onto the named changelist.
func Add(ctx *Context, name string, rawPaths []string) (string, error) {
	if name == "" || len(rawPaths) == 0 {
		return "", fmt.Errorf("%w: usage: git cl add <name> <paths...>", clerr.ErrUsage)
	}
	if err := clname.Validate(name); err != nil {
		return "", fmt.Errorf("%w: %s", clerr.ErrInvalidName, name)
	}

	var out strings.Builder
	var normalized []string
	for _, raw := range rawPaths {
		rel, err := clpath.Normalize(ctx.Repo.Root(), ctx.CWD, raw)
		if err != nil {
			fmt.Fprintf(&out, "invalid or unsafe path: %s\n", raw)
			continue
		}
		if _, statErr := os.Stat(filepath.Join(ctx.Repo.Root(), filepath.FromSlash(rel))); statErr != nil {
			fmt.Fprintf(&out, "warning: %s does not exist\n", clpath.Display(ctx.Repo.Root(), ctx.CWD, rel))
		}
		normalized = append(normalized, rel)
	}
	normalized = clpath.Dedup(normalized)

	if len(normalized) == 0 {
		return out.String(), fmt.Errorf("%w: no valid paths given", clerr.ErrInvalidPath)
	}

	ctx.Active.Reassign(name, normalized)
	if err := ctx.saveActive(); err != nil {
		return out.String(), err
	}

	fmt.Fprintf(&out, "Added to '%s': %d file(s)\n", name, len(normalized))
	return out.String(), nil
}
