// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package status merges git's porcelain status with the active-changelist
// assignment into a report grouped by changelist.
package status

import (
	"fmt"
	"strings"

	"github.com/BHFock/git-cl/clpath"
	"github.com/BHFock/git-cl/gitscm"
	"github.com/BHFock/git-cl/store"
)

// Options controls which sections Render includes, per the filtering
// rules of "status <name...> [--include-no-cl]".
type Options struct {
	// Names restricts the report to these changelists; nil/empty means
	// all active changelists.
	Names []string
	// IncludeNoCL forces the "No Changelist:" section even when Names is
	// non-empty (it is always shown when Names is empty).
	IncludeNoCL bool
}

// Render produces the full multi-section report: one section per selected
// active changelist, the "No Changelist:" section, and the stashed-
// changelists footer.
func Render(active *store.ActiveStore, stashed *store.StashedStore, entries []gitscm.StatusEntry, root, cwd string, opts Options) string {
	codeByPath := map[string]string{}
	for _, e := range entries {
		codeByPath[e.Path] = e.XY
	}

	names := opts.Names
	filtered := len(names) > 0
	if !filtered {
		names = active.Names()
	}

	var b strings.Builder
	for _, name := range names {
		if !active.Has(name) {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", name)
		for _, p := range active.Paths(name) {
			code, ok := codeByPath[p]
			if !ok {
				code = "  "
			}
			fmt.Fprintf(&b, "  [%s] %s\n", code, clpath.Display(root, cwd, p))
		}
	}

	if !filtered || opts.IncludeNoCL {
		b.WriteString("No Changelist:\n")
		for _, e := range entries {
			if isClean(e.XY) {
				continue
			}
			if active.Owner(e.Path) != "" {
				continue
			}
			fmt.Fprintf(&b, "  [%s] %s\n", e.XY, clpath.Display(root, cwd, e.Path))
		}
	}

	b.WriteString("Stashed Changelists:\n")
	for _, name := range stashed.Names() {
		e, _ := stashed.Get(name)
		fmt.Fprintf(&b, "  %s  %d file(s), %s\n", name, e.FileCount, e.CreatedAt)
	}

	return b.String()
}

func isClean(xy string) bool {
	return xy == "  " || xy == ""
}
