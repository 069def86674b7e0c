package clcmd

import (
	"fmt"
	"strings"

	"github.com/BHFock/git-cl/clerr"
)

// Delete drops each of names from the active store. A name that does not
// exist produces a per-name error line but does not stop the others; the
// overall command succeeds if at least one deletion happened. all drops
// every active changelist and always succeeds, even if the store was
// already empty.
func Delete(ctx *Context, names []string, all bool) (string, error) {
	if all {
		names = ctx.Active.Names()
	} else if len(names) == 0 {
		return "", fmt.Errorf("%w: usage: git cl delete <names...> | --all", clerr.ErrUsage)
	}

	var out strings.Builder
	deleted := 0
	for _, name := range names {
		if ctx.Active.Delete(name) {
			deleted++
			fmt.Fprintf(&out, "Deleted '%s'\n", name)
		} else {
			fmt.Fprintf(&out, "Changelist '%s' not found\n", name)
		}
	}

	if err := ctx.saveActive(); err != nil {
		return out.String(), err
	}

	if deleted == 0 && !all {
		return out.String(), fmt.Errorf("%w: no changelist deleted", clerr.ErrNotFound)
	}
	return out.String(), nil
}
