// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gitscm

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/BHFock/git-cl/internal/gitproc"
)

// minMajor/minMinor is the oldest git known to support everything git-cl
// needs: "stash push -- <pathspec>" (2.13) and "status --porcelain=v1"
// (ancient), with 2.20 as a round, comfortably supported floor.
const (
	minMajor = 2
	minMinor = 20
)

var reGitVersion = regexp.MustCompile(`git version (\d+)\.(\d+)`)

// CheckPrerequisite is the probe every git-cl command runs before touching
// a repository: is `git` on PATH, and is it new enough. Adapted from the
// teacher's checks/definitions.CheckPrerequisite.IsPresent, which ran a
// help command and compared its exit code; here the probe parses `git
// --version` since the signal we need is a version floor, not presence
// alone.
func CheckPrerequisite() error {
	out, code, err := gitproc.Capture("", nil, "git", "--version")
	if err != nil || code != 0 {
		return fmt.Errorf("git binary not found on PATH")
	}
	m := reGitVersion.FindStringSubmatch(out)
	if m == nil {
		// Some distributions patch the banner; do not block on a parse miss.
		return nil
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	if major < minMajor || (major == minMajor && minor < minMinor) {
		return fmt.Errorf("git %d.%d or newer is required, found %d.%d", minMajor, minMinor, major, minor)
	}
	return nil
}
