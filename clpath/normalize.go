// Package clpath normalizes user-supplied file paths into repo-root
// relative, POSIX-style strings, and renders them back for display.
package clpath

import (
	"fmt"
	pathpkg "path"
	"path/filepath"
	"strings"

	"github.com/BHFock/git-cl/clerr"
)

// Normalize converts a user-supplied path p, interpreted relative to cwd
// (or absolute), into a repo-root-relative POSIX path string.
//
// It rejects paths that escape root with an error wrapping
// clerr.ErrInvalidPath. It does not check whether p exists on disk: a
// non-existent path normalizes successfully.
func Normalize(root, cwd, p string) (string, error) {
	var abs string
	if filepath.IsAbs(p) {
		abs = filepath.Clean(p)
	} else {
		abs = filepath.Clean(filepath.Join(cwd, p))
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", clerr.ErrInvalidPath, p)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", clerr.ErrInvalidPath, p)
	}
	if rel == "." {
		return "", fmt.Errorf("%w: %s", clerr.ErrInvalidPath, p)
	}

	return filepath.ToSlash(rel), nil
}

// Display renders a repo-root-relative POSIX path relPath as the shortest
// path relative to cwd, using "../" prefixes as needed, for user-facing
// output (the inverse of Normalize).
func Display(root, cwd, relPath string) string {
	abs := filepath.Join(root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(cwd, abs)
	if err != nil {
		return relPath
	}
	return filepath.ToSlash(rel)
}

// Dedup removes duplicate paths while preserving first-occurrence order.
func Dedup(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = pathpkg.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
