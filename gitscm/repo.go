// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gitscm implements the thin, synchronous wrapper around the git
// binary that the rest of git-cl is built on.
//
// Every exported method runs git as a child process via
// github.com/BHFock/git-cl/internal/gitproc and never panics on a
// non-zero exit. Most failures come back as a *clerr.GitFailed carrying
// git's own output; Open returns clerr.ErrNotARepository, and GitDir and
// StashPush return plain errors.
package gitscm

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/BHFock/git-cl/clerr"
	"github.com/BHFock/git-cl/internal/gitproc"
)

// Repo is an opened Git checkout, anchored at its root directory.
type Repo struct {
	root string
}

// Open finds the repository containing wd and returns a Repo rooted there.
//
// It fails with clerr.ErrNotARepository when wd is not inside a Git
// checkout, mirroring scm.getRepo's use of "git rev-parse --show-cdup".
func Open(wd string) (*Repo, error) {
	out, code, err := gitproc.CaptureTrim(wd, nil, "git", "rev-parse", "--show-toplevel")
	if err != nil || code != 0 {
		return nil, clerr.ErrNotARepository
	}
	root, absErr := filepath.Abs(out)
	if absErr != nil {
		return nil, clerr.ErrNotARepository
	}
	return &Repo{root: root}, nil
}

// Root returns the repository's root directory, the canonical anchor for
// path normalization (clpath.Normalize).
func (r *Repo) Root() string {
	return r.root
}

// GitDir returns the directory holding Git's own metadata (normally
// "<root>/.git", but can differ under GIT_DIR or in a submodule), the
// directory git-cl's two JSON stores live under.
func (r *Repo) GitDir() (string, error) {
	out, code, err := r.capture(nil, "rev-parse", "--git-dir")
	if err != nil || code != 0 {
		return "", fmt.Errorf("failed to find .git dir: %s", out)
	}
	if filepath.IsAbs(out) {
		return out, nil
	}
	return filepath.Clean(filepath.Join(r.root, out)), nil
}

// HasHead reports whether the repository has at least one commit.
func (r *Repo) HasHead() bool {
	_, code, err := r.capture(nil, "rev-parse", "--verify", "HEAD")
	return err == nil && code == 0
}

// CurrentBranch returns the checked-out branch name, or "" when HEAD is
// detached, mirroring scm.git.Ref.
func (r *Repo) CurrentBranch() (string, error) {
	out, code, err := r.capture(nil, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", nil
	}
	return out, nil
}

// StatusEntry is one line of "git status --porcelain=v1 -uall -z" output.
type StatusEntry struct {
	// XY is the two-character porcelain code, e.g. " M", "M ", "??".
	XY string
	// Path is the (current) path the entry refers to.
	Path string
	// OrigPath is set for rename/copy entries (X or Y == 'R' or 'C') to the
	// path the file was renamed or copied from.
	OrigPath string
}

// StatusPorcelain returns the working tree status in the order git prints
// it, tracked and untracked alike.
func (r *Repo) StatusPorcelain() ([]StatusEntry, error) {
	out, code, err := r.capture(nil, "status", "--porcelain=v1", "-uall", "-z")
	if err != nil || code != 0 {
		return nil, &clerr.GitFailed{Args: []string{"status"}, Code: code, Output: out}
	}
	return parsePorcelainZ(out), nil
}

func parsePorcelainZ(out string) []StatusEntry {
	var entries []StatusEntry
	records := splitNUL(out)
	for i := 0; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 3 {
			continue
		}
		xy := rec[:2]
		path := rec[3:]
		e := StatusEntry{XY: xy, Path: path}
		if xy[0] == 'R' || xy[0] == 'C' || xy[1] == 'R' || xy[1] == 'C' {
			i++
			if i < len(records) {
				e.OrigPath = records[i]
			}
		}
		entries = append(entries, e)
	}
	return entries
}

func splitNUL(s string) []string {
	var out []string
	for {
		i := strings.IndexByte(s, 0)
		if i < 0 {
			break
		}
		out = append(out, s[:i])
		s = s[i+1:]
	}
	return out
}

// StagedPaths returns the paths currently in the index relative to HEAD.
func (r *Repo) StagedPaths() ([]string, error) {
	return r.captureList(nil, "diff", "--cached", "--name-only", "-z")
}

// Add stages paths.
func (r *Repo) Add(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return r.run(append([]string{"add", "--"}, paths...)...)
}

// Reset removes paths from the index without touching the working tree.
// On a repository with no HEAD yet, it falls back to "git rm --cached".
func (r *Repo) Reset(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if !r.HasHead() {
		return r.run(append([]string{"rm", "--cached", "-q", "--"}, paths...)...)
	}
	return r.run(append([]string{"reset", "-q", "HEAD", "--"}, paths...)...)
}

// CheckoutPaths reverts tracked paths to their HEAD content and removes
// untracked paths from disk, since "git checkout" cannot restore a file
// that was never committed.
func (r *Repo) CheckoutPaths(paths []string, untracked map[string]bool) error {
	var tracked []string
	for _, p := range paths {
		if untracked[p] {
			_ = os.Remove(filepath.Join(r.root, filepath.FromSlash(p)))
			continue
		}
		tracked = append(tracked, p)
	}
	if len(tracked) == 0 {
		return nil
	}
	return r.run(append([]string{"checkout", "-q", "HEAD", "--"}, tracked...)...)
}

// Commit stages exactly paths (never "-a") and commits with msg, or with
// the contents of msgFile when msg == "" and msgFile != "".
func (r *Repo) Commit(msg, msgFile string, paths []string) error {
	if len(paths) != 0 {
		if err := r.Add(paths); err != nil {
			return err
		}
	}
	if msg == "" && msgFile != "" {
		return r.run("commit", "-F", msgFile)
	}
	return r.run("commit", "-m", msg)
}

// Diff returns "git diff [--staged] -- <paths>" output, unmodified.
func (r *Repo) Diff(staged bool, paths []string) (string, error) {
	args := []string{"diff", "--no-color"}
	if staged {
		args = append(args, "--staged")
	}
	args = append(args, "--")
	args = append(args, paths...)
	out, code, err := gitproc.Capture(r.root, nil, append([]string{"git"}, args...)...)
	if err != nil || code != 0 {
		return "", &clerr.GitFailed{Args: args, Code: code, Output: out}
	}
	return out, nil
}

// StashPush reverts exactly paths from the working tree (index included),
// storing their state as a stash entry, and returns a ref sufficient to
// StashPop it later. Adapted from scm.git.Stash's old/new refs/stash
// comparison, since "stash push" alone does not print the ref on all
// supported git versions. When the push saves nothing (none of paths has
// a change), refs/stash does not move and an error is returned.
//
// An empty paths returns "", nil without invoking git: "stash push --
// <pathspec>" with no pathspec after "--" is not a no-op, it stashes the
// entire working tree, which would sweep in every other changelist's
// untouched edits (the same reason Add and Reset guard len(paths) == 0
// above).
func (r *Repo) StashPush(name string, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}
	old, _, _ := r.capture(nil, "rev-parse", "-q", "--verify", "refs/stash")
	args := append([]string{"stash", "push", "--include-untracked", "-m", "git-cl:" + name, "--"}, paths...)
	if err := r.run(args...); err != nil {
		return "", err
	}
	ref, code, err := r.capture(nil, "rev-parse", "-q", "--verify", "refs/stash")
	if err != nil || code != 0 || ref == old {
		return "", fmt.Errorf("stash push for %q did not create a stash entry", name)
	}
	return ref, nil
}

// StashPop reapplies and drops the stash entry ref. An empty ref (the
// value StashPush returns for an empty path set) is a no-op: there is no
// stash entry to pop.
func (r *Repo) StashPop(ref string) error {
	if ref == "" {
		return nil
	}
	// "git stash pop" only accepts stash@{n} references, not the commit id
	// StashPush records, so look up the entry's current position.
	list, code, err := r.capture(nil, "stash", "list", "--format=%H")
	if err != nil || code != 0 {
		return &clerr.GitFailed{Args: []string{"stash", "list"}, Code: code, Output: list}
	}
	for i, h := range strings.Split(list, "\n") {
		if h == ref {
			return r.run("stash", "pop", fmt.Sprintf("stash@{%d}", i))
		}
	}
	return r.run("stash", "pop", ref)
}

// BranchCreate creates and switches to branch, rooted at base (the
// current HEAD when base == "").
func (r *Repo) BranchCreate(branch, base string) error {
	args := []string{"checkout", "-q", "-b", branch}
	if base != "" {
		args = append(args, base)
	}
	return r.run(args...)
}

// Switch checks out an existing branch.
func (r *Repo) Switch(branch string) error {
	return r.run("checkout", "-q", branch)
}

func (r *Repo) run(args ...string) error {
	out, code, err := r.capture(nil, args...)
	if err != nil || code != 0 {
		return &clerr.GitFailed{Args: args, Code: code, Output: out}
	}
	return nil
}

func (r *Repo) capture(env []string, args ...string) (string, int, error) {
	return gitproc.CaptureTrim(r.root, env, append([]string{"git"}, args...)...)
}

// captureList runs a git command that prints a NUL-separated list of
// paths and returns them split, or nil on any failure.
func (r *Repo) captureList(env []string, args ...string) ([]string, error) {
	out, code, err := r.capture(env, args...)
	if err != nil || code != 0 {
		return nil, &clerr.GitFailed{Args: args, Code: code, Output: out}
	}
	list := splitNUL(out)
	log.Printf("captureList(%v) = %d entries", args, len(list))
	return list, nil
}
