package clcmd

import (
	"fmt"
	"strings"

	"github.com/BHFock/git-cl/clerr"
)

// Diff concatenates "git diff [--staged] -- <paths>" for each of names,
// in order. A missing changelist stops the command with an error.
func Diff(ctx *Context, names []string, staged bool) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("%w: usage: git cl diff [--staged] <names...>", clerr.ErrUsage)
	}
	var out strings.Builder
	for _, name := range names {
		if !ctx.Active.Has(name) {
			return out.String(), fmt.Errorf("%w: '%s'", clerr.ErrNotFound, name)
		}
		paths := ctx.Active.Paths(name)
		if len(paths) == 0 {
			continue
		}
		d, err := ctx.Repo.Diff(staged, paths)
		if err != nil {
			return out.String(), err
		}
		out.WriteString(d)
	}
	return out.String(), nil
}
