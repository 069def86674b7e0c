// Package clname validates the syntax of changelist names.
package clname

import (
	"fmt"
	"strings"

	"github.com/BHFock/git-cl/clerr"
)

// MaxLength is the longest a changelist name may be.
const MaxLength = 100

// reserved is the set of names a changelist may never take. Comparison is
// case-sensitive: "head" is fine, "HEAD" is not.
var reserved = map[string]bool{
	"HEAD": true,
}

// forbidden holds the individual characters a name may never contain,
// beyond ASCII whitespace and control characters which are checked
// separately.
const forbidden = "/\\@:~^*?["

// Validate reports whether name is usable as a changelist name.
// On failure it returns an error wrapping clerr.ErrInvalidName
// whose message names the offending name.
func Validate(name string) error {
	if len(name) < 1 || len(name) > MaxLength {
		return invalid(name)
	}
	if reserved[name] {
		return invalid(name)
	}
	if isDotsOnly(name) {
		return invalid(name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return invalid(name)
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			return invalid(name)
		}
		if strings.ContainsRune(forbidden, r) {
			return invalid(name)
		}
	}
	return nil
}

func isDotsOnly(name string) bool {
	for _, r := range name {
		if r != '.' {
			return false
		}
	}
	return true
}

func invalid(name string) error {
	return fmt.Errorf("%w: %q", clerr.ErrInvalidName, name)
}
