// Package clcmd implements the git-cl operations: add, remove, delete,
// status, diff, stage, unstage, commit, checkout, stash, unstash, branch.
//
// Each operation is a function taking a *Context and returning the text to
// print plus an error from the clerr taxonomy. A Context bundles the
// opened repository, the two loaded stores, and a Confirm callback for
// destructive commands — composed the way main.go's command functions
// (cmdInstall, cmdRun, cmdRunHook) compose scm.Repo and checks.Config.
package clcmd

import (
	"github.com/BHFock/git-cl/gitscm"
	"github.com/BHFock/git-cl/store"
)

// Context is the shared state every command operates on.
type Context struct {
	Repo    *gitscm.Repo
	GitDir  string
	CWD     string
	Active  *store.ActiveStore
	Stashed *store.StashedStore

	// Confirm asks the user a yes/no question for destructive commands
	// (checkout without --force). It is injected so clcmd never touches a
	// terminal directly.
	Confirm func(prompt string) bool
}

// NewContext opens repo at wd, loads both stores, and returns a ready
// Context. confirm may be nil, in which case Checkout without force behaves
// as if the user answered no; Checkout with force never calls confirm.
func NewContext(wd string, confirm func(string) bool) (*Context, error) {
	if err := gitscm.CheckPrerequisite(); err != nil {
		return nil, err
	}
	repo, err := gitscm.Open(wd)
	if err != nil {
		return nil, err
	}
	gitDir, err := repo.GitDir()
	if err != nil {
		return nil, err
	}
	active, err := store.LoadActive(gitDir)
	if err != nil {
		return nil, err
	}
	stashed, err := store.LoadStashed(gitDir)
	if err != nil {
		return nil, err
	}
	return &Context{
		Repo:    repo,
		GitDir:  gitDir,
		CWD:     wd,
		Active:  active,
		Stashed: stashed,
		Confirm: confirm,
	}, nil
}

func (c *Context) saveActive() error {
	return store.SaveActive(c.GitDir, c.Active)
}

func (c *Context) saveStashed() error {
	return store.SaveStashed(c.GitDir, c.Stashed)
}
