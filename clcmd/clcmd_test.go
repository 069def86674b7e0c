package clcmd

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/maruel/ut"

	"github.com/BHFock/git-cl/clerr"
	"github.com/BHFock/git-cl/internal/gitproc"
)

func TestAddRemoveDeleteSlow(t *testing.T) {
	t.Parallel()
	tmpDir := setup(t)
	defer os.RemoveAll(tmpDir)

	ctx := newContext(t, tmpDir)
	write(t, tmpDir, "a.go", "package a\n")
	write(t, tmpDir, "b.go", "package b\n")

	out, err := Add(ctx, "feature", []string{"a.go", "b.go"})
	ut.AssertEqual(t, nil, err)
	if out == "" {
		t.Fatalf("expected a confirmation message")
	}
	ut.AssertEqual(t, []string{"a.go", "b.go"}, ctx.Active.Paths("feature"))

	_, err = Remove(ctx, "feature", []string{"b.go"})
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, []string{"a.go"}, ctx.Active.Paths("feature"))

	_, err = Delete(ctx, []string{"feature"}, false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, false, ctx.Active.Has("feature"))
}

func TestAddRejectsInvalidName(t *testing.T) {
	t.Parallel()
	tmpDir := setup(t)
	defer os.RemoveAll(tmpDir)

	ctx := newContext(t, tmpDir)
	write(t, tmpDir, "a.go", "package a\n")
	_, err := Add(ctx, "HEAD", []string{"a.go"})
	if err == nil {
		t.Fatalf("Add with reserved name should fail")
	}
}

func TestStageCommitSlow(t *testing.T) {
	t.Parallel()
	tmpDir := setup(t)
	defer os.RemoveAll(tmpDir)

	ctx := newContext(t, tmpDir)
	// Stage/commit only ever touch already-tracked paths (porcelain code
	// not "??"), so establish a baseline commit directly through the repo
	// before exercising the clcmd layer.
	write(t, tmpDir, "a.go", "package a\n")
	ut.AssertEqual(t, nil, ctx.Repo.Add([]string{"a.go"}))
	ut.AssertEqual(t, nil, ctx.Repo.Commit("initial", "", nil))

	write(t, tmpDir, "a.go", "package a\n\nfunc x() {}\n")
	_, err := Add(ctx, "feature", []string{"a.go"})
	ut.AssertEqual(t, nil, err)

	_, err = Stage(ctx, "feature", false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, true, ctx.Active.Has("feature"))
	staged, err := ctx.Repo.StagedPaths()
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, []string{"a.go"}, staged)

	_, err = Commit(ctx, "feature", "add x()", "", false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, false, ctx.Active.Has("feature"))
}

func TestCommitSkipsUntrackedSlow(t *testing.T) {
	t.Parallel()
	tmpDir := setup(t)
	defer os.RemoveAll(tmpDir)

	ctx := newContext(t, tmpDir)
	write(t, tmpDir, "tracked.txt", "v1\n")
	ut.AssertEqual(t, nil, ctx.Repo.Add([]string{"tracked.txt"}))
	ut.AssertEqual(t, nil, ctx.Repo.Commit("initial", "", nil))

	write(t, tmpDir, "tracked.txt", "v2\n")
	write(t, tmpDir, "untracked.txt", "new\n")
	_, err := Add(ctx, "mix", []string{"tracked.txt", "untracked.txt"})
	ut.AssertEqual(t, nil, err)

	_, err = Commit(ctx, "mix", "commit tracked only", "", false)
	ut.AssertEqual(t, nil, err)

	entries, err := ctx.Repo.StatusPorcelain()
	ut.AssertEqual(t, nil, err)
	var untrackedCode string
	for _, e := range entries {
		if e.Path == "untracked.txt" {
			untrackedCode = e.XY
		}
	}
	ut.AssertEqual(t, "??", untrackedCode)
}

func TestStashUnstashSlow(t *testing.T) {
	t.Parallel()
	tmpDir := setup(t)
	defer os.RemoveAll(tmpDir)

	ctx := newContext(t, tmpDir)
	write(t, tmpDir, "a.go", "v1\n")
	ut.AssertEqual(t, nil, ctx.Repo.Add([]string{"a.go"}))
	ut.AssertEqual(t, nil, ctx.Repo.Commit("initial", "", nil))

	write(t, tmpDir, "a.go", "v2\n")
	_, err := Add(ctx, "feature", []string{"a.go"})
	ut.AssertEqual(t, nil, err)

	_, err = Stash(ctx, "feature", false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, false, ctx.Active.Has("feature"))
	ut.AssertEqual(t, true, ctx.Stashed.Has("feature"))
	ut.AssertEqual(t, "v1\n", read(t, tmpDir, "a.go"))

	_, err = Unstash(ctx, "feature", false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, true, ctx.Active.Has("feature"))
	ut.AssertEqual(t, false, ctx.Stashed.Has("feature"))
	ut.AssertEqual(t, "v2\n", read(t, tmpDir, "a.go"))
}

func TestCheckoutRequiresConfirmation(t *testing.T) {
	t.Parallel()
	tmpDir := setup(t)
	defer os.RemoveAll(tmpDir)

	ctx := newContext(t, tmpDir)
	write(t, tmpDir, "a.go", "v1\n")
	ut.AssertEqual(t, nil, ctx.Repo.Add([]string{"a.go"}))
	ut.AssertEqual(t, nil, ctx.Repo.Commit("initial", "", nil))
	_, err := Add(ctx, "feature", []string{"a.go"})
	ut.AssertEqual(t, nil, err)

	write(t, tmpDir, "a.go", "v2\n")
	ctx.Confirm = func(string) bool { return false }
	_, err = Checkout(ctx, []string{"feature"}, false, false)
	if !errors.Is(err, clerr.ErrAborted) {
		t.Fatalf("Checkout without confirmation = %v, want clerr.ErrAborted", err)
	}
	ut.AssertEqual(t, "v2\n", read(t, tmpDir, "a.go"))

	_, err = Checkout(ctx, []string{"feature"}, true, false)
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, "v1\n", read(t, tmpDir, "a.go"))
}

func TestBranchMovesOnlyNamedChangelist(t *testing.T) {
	t.Parallel()
	tmpDir := setup(t)
	defer os.RemoveAll(tmpDir)

	ctx := newContext(t, tmpDir)
	write(t, tmpDir, "base.go", "package base\n")
	ut.AssertEqual(t, nil, ctx.Repo.Add([]string{"base.go"}))
	ut.AssertEqual(t, nil, ctx.Repo.Commit("initial", "", nil))

	write(t, tmpDir, "a.go", "feature work\n")
	write(t, tmpDir, "b.go", "other work\n")
	_, err := Add(ctx, "feature", []string{"a.go"})
	ut.AssertEqual(t, nil, err)
	_, err = Add(ctx, "other", []string{"b.go"})
	ut.AssertEqual(t, nil, err)

	_, err = Branch(ctx, "feature", "feature-branch", "")
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, true, ctx.Active.Has("feature"))
	ut.AssertEqual(t, false, ctx.Active.Has("other"))
	ut.AssertEqual(t, true, ctx.Stashed.Has("other"))

	branch, err := ctx.Repo.CurrentBranch()
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, "feature-branch", branch)
	ut.AssertEqual(t, "feature work\n", read(t, tmpDir, "a.go"))
}

func TestBranchWithEmptyOtherChangelistDoesNotStashTargetEdits(t *testing.T) {
	t.Parallel()
	tmpDir := setup(t)
	defer os.RemoveAll(tmpDir)

	ctx := newContext(t, tmpDir)
	write(t, tmpDir, "base.go", "package base\n")
	ut.AssertEqual(t, nil, ctx.Repo.Add([]string{"base.go"}))
	ut.AssertEqual(t, nil, ctx.Repo.Commit("initial", "", nil))

	write(t, tmpDir, "a.go", "feature work\n")
	_, err := Add(ctx, "feature", []string{"a.go"})
	ut.AssertEqual(t, nil, err)

	// "empty" is reachable via exactly the add/add/add reassignment
	// sequence in spec.md §8 scenario 2, and store.Remove keeps an
	// emptied changelist rather than pruning it.
	_, err = Add(ctx, "empty", []string{"a.go"})
	ut.AssertEqual(t, nil, err)
	_, err = Add(ctx, "feature", []string{"a.go"})
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, true, ctx.Active.Has("empty"))
	ut.AssertEqual(t, []string{}, ctx.Active.Paths("empty"))

	_, err = Branch(ctx, "feature", "feature-branch", "")
	ut.AssertEqual(t, nil, err)
	ut.AssertEqual(t, true, ctx.Stashed.Has("empty"))
	ut.AssertEqual(t, true, ctx.Active.Has("feature"))
	ut.AssertEqual(t, "feature work\n", read(t, tmpDir, "a.go"))
}

// Private stuff.

func setup(t *testing.T) string {
	tmpDir, err := ioutil.TempDir("", "git-cl-clcmd")
	ut.AssertEqual(t, nil, err)
	_, code, err := gitproc.Capture(tmpDir, nil, "git", "init", "-q")
	ut.AssertEqual(t, 0, code)
	ut.AssertEqual(t, nil, err)
	_, _, _ = gitproc.Capture(tmpDir, nil, "git", "-C", tmpDir, "config", "user.email", "nobody@localhost")
	_, _, _ = gitproc.Capture(tmpDir, nil, "git", "-C", tmpDir, "config", "user.name", "nobody")
	return tmpDir
}

func newContext(t *testing.T, tmpDir string) *Context {
	ctx, err := NewContext(tmpDir, func(string) bool { return true })
	ut.AssertEqual(t, nil, err)
	return ctx
}

func write(t *testing.T, tmpDir, name, content string) {
	ut.AssertEqual(t, nil, ioutil.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0600))
}

func read(t *testing.T, tmpDir, name string) string {
	content, err := ioutil.ReadFile(filepath.Join(tmpDir, name))
	ut.AssertEqual(t, nil, err)
	return string(content)
}
