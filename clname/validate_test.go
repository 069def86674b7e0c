package clname

import (
	"errors"
	"strings"
	"testing"

	"github.com/maruel/ut"

	"github.com/BHFock/git-cl/clerr"
)

func TestValidateOk(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"feature-x", "bugfix_123", "a", "..hidden", strings.Repeat("x", MaxLength)} {
		ut.AssertEqual(t, nil, Validate(name))
	}
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"", "HEAD", ".", "..", "...", strings.Repeat("x", MaxLength+1), "a/b", "a b", "a\tb", "a@b", "a:b", "a~b", "a^b", "a*b", "a?b", "a[b", "a\\b"} {
		err := Validate(name)
		if err == nil {
			t.Fatalf("Validate(%q) = nil, want error", name)
		}
		if !errors.Is(err, clerr.ErrInvalidName) {
			t.Fatalf("Validate(%q) = %v, want wrapping clerr.ErrInvalidName", name, err)
		}
	}
}
