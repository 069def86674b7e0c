// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gitscm

import (
	"testing"

	"github.com/maruel/ut"
)

func TestCheckPrerequisiteParsesRealGit(t *testing.T) {
	t.Parallel()
	// The test environment is assumed to carry a recent git, same
	// assumption the rest of the "Slow" tests in this package make.
	ut.AssertEqual(t, nil, CheckPrerequisite())
}

func TestReGitVersionMatches(t *testing.T) {
	t.Parallel()
	m := reGitVersion.FindStringSubmatch("git version 2.39.2")
	ut.AssertEqual(t, 3, len(m))
	ut.AssertEqual(t, "2", m[1])
	ut.AssertEqual(t, "39", m[2])
}
