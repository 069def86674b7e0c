// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gitscm

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/maruel/ut"

	"github.com/BHFock/git-cl/internal/gitproc"
)

func TestOpenAndStatusSlow(t *testing.T) {
	t.Parallel()
	tmpDir, err := ioutil.TempDir("", "git-cl-gitscm")
	ut.AssertEqual(t, nil, err)
	defer os.RemoveAll(tmpDir)

	setup(t, tmpDir)
	r, err := Open(tmpDir)
	ut.AssertEqual(t, nil, err)
	abs, err := filepath.EvalSymlinks(tmpDir)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, abs, r.Root())
	ut.AssertEqual(t, false, r.HasHead())

	write(t, tmpDir, "file1.go", "package x\n")
	entries, err := r.StatusPorcelain()
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, 1, len(entries))
	ut.AssertEqual(t, "??", entries[0].XY)
	ut.AssertEqual(t, "file1.go", entries[0].Path)

	ut.AssertEqual(t, nil, r.Add([]string{"file1.go"}))
	ut.AssertEqual(t, nil, r.Commit("initial commit", "", nil))
	ut.AssertEqual(t, true, r.HasHead())

	branch, err := r.CurrentBranch()
	ut.AssertEqual(t, nil, err)
	if branch == "" {
		t.Fatalf("expected a branch name after the initial commit")
	}
}

func TestStashPushPop(t *testing.T) {
	t.Parallel()
	tmpDir, err := ioutil.TempDir("", "git-cl-gitscm")
	ut.AssertEqual(t, nil, err)
	defer os.RemoveAll(tmpDir)

	setup(t, tmpDir)
	r, err := Open(tmpDir)
	ut.AssertEqual(t, nil, err)

	write(t, tmpDir, "file1.go", "v1\n")
	ut.AssertEqual(t, nil, r.Add([]string{"file1.go"}))
	ut.AssertEqual(t, nil, r.Commit("initial", "", nil))

	write(t, tmpDir, "file1.go", "v2\n")
	ref, err := r.StashPush("feature", []string{"file1.go"})
	ut.AssertEqual(t, nil, err)
	if ref == "" {
		t.Fatalf("expected a non-empty stash ref")
	}
	ut.AssertEqual(t, "v1\n", read(t, tmpDir, "file1.go"))

	ut.AssertEqual(t, nil, r.StashPop(ref))
	ut.AssertEqual(t, "v2\n", read(t, tmpDir, "file1.go"))
}

func TestStashPushEmptyPathsDoesNotTouchWorkingTree(t *testing.T) {
	t.Parallel()
	tmpDir, err := ioutil.TempDir("", "git-cl-gitscm")
	ut.AssertEqual(t, nil, err)
	defer os.RemoveAll(tmpDir)

	setup(t, tmpDir)
	r, err := Open(tmpDir)
	ut.AssertEqual(t, nil, err)

	write(t, tmpDir, "file1.go", "v1\n")
	ut.AssertEqual(t, nil, r.Add([]string{"file1.go"}))
	ut.AssertEqual(t, nil, r.Commit("initial", "", nil))

	// An empty pathspec after "--" is not a no-op for "git stash push": it
	// stashes the whole working tree. An empty-paths changelist must not
	// invoke git at all.
	write(t, tmpDir, "file1.go", "dirty and untouched\n")
	ref, err := r.StashPush("empty", nil)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, "", ref)
	ut.AssertEqual(t, "dirty and untouched\n", read(t, tmpDir, "file1.go"))

	ut.AssertEqual(t, nil, r.StashPop(ref))
	ut.AssertEqual(t, "dirty and untouched\n", read(t, tmpDir, "file1.go"))
}

func TestParsePorcelainZRename(t *testing.T) {
	t.Parallel()
	out := "R  new.go\x00old.go\x00?? other.go\x00"
	entries := parsePorcelainZ(out)
	ut.AssertEqual(t, 2, len(entries))
	ut.AssertEqual(t, "R ", entries[0].XY)
	ut.AssertEqual(t, "new.go", entries[0].Path)
	ut.AssertEqual(t, "old.go", entries[0].OrigPath)
	ut.AssertEqual(t, "??", entries[1].XY)
	ut.AssertEqual(t, "other.go", entries[1].Path)
}

// Private stuff.

func setup(t *testing.T, tmpDir string) {
	_, code, err := gitproc.Capture(tmpDir, nil, "git", "init", "-q")
	ut.AssertEqual(t, 0, code)
	ut.AssertEqual(t, nil, err)
	_, _, _ = gitproc.Capture(tmpDir, nil, "git", "-C", tmpDir, "config", "user.email", "nobody@localhost")
	_, _, _ = gitproc.Capture(tmpDir, nil, "git", "-C", tmpDir, "config", "user.name", "nobody")
}

func write(t *testing.T, tmpDir, name, content string) {
	ut.AssertEqual(t, nil, ioutil.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0600))
}

func read(t *testing.T, tmpDir, name string) string {
	content, err := ioutil.ReadFile(filepath.Join(tmpDir, name))
	ut.AssertEqual(t, nil, err)
	return string(content)
}
