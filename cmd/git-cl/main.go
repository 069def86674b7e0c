// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// git-cl: manage named changelists inside a single Git working tree.
//
// See https://github.com/BHFock/git-cl for more details.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/BHFock/git-cl/clcmd"
	"github.com/BHFock/git-cl/clerr"
)

const version = "1.0"

var helpText = `git-cl: manage named changelists inside a single Git working tree.

Supported commands are:
  add <name> <paths...>              - add paths to a changelist
  remove <name> <paths...>           - remove paths from a changelist (rm, r)
  delete <names...> | --all          - delete changelists (del)
  status [--include-no-cl] [names...]
                                      - show changelists and their files (st)
  diff [--staged] <names...>         - show diffs for a changelist
  stage [--delete] <name>            - git add the changelist's tracked files
  unstage [--delete] <name>          - git reset the changelist's tracked files
  commit (-m <msg> | -F <file>) [--keep] <name>
                                      - commit the changelist's tracked files (ci)
  checkout [--force] [--delete] <names...>
                                      - revert the changelists to HEAD (co)
  stash <name> | --all               - stash a changelist's working-tree state (sh)
  unstash <name> | --all             - restore a stashed changelist (us)
  branch [--from <base>] <name> [branch_name]
                                      - move a changelist onto its own branch (br)
  version                            - print the tool version number

Flags go before the positional arguments: parsing stops at the first
non-flag argument, and everything after it is taken as a name or path.

Supported flags:
{{.Usage}}
`

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// newFlagSet returns a FlagSet pre-registered with the -verbose flag every
// command accepts.
func newFlagSet(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "enables verbose logging output")
	return fs, verbose
}

func applyVerbose(verbose bool) {
	if verbose {
		log.SetOutput(os.Stderr)
	}
}

func cmdHelp(fs *flag.FlagSet) error {
	fmt.Println(strings.Replace(helpText, "{{.Usage}}", "", 1))
	fs.PrintDefaults()
	return nil
}

func mainImpl() error {
	cmd := ""
	if len(os.Args) == 1 {
		cmd = "help"
	} else {
		cmd = os.Args[1]
		copy(os.Args[1:], os.Args[2:])
		os.Args = os.Args[:len(os.Args)-1]
	}

	switch cmd {
	case "help", "-help", "-h":
		fs := flag.NewFlagSet("help", flag.ContinueOnError)
		return cmdHelp(fs)

	case "version":
		fmt.Println(version)
		return nil
	}

	log.SetFlags(log.Lmicroseconds)
	log.SetOutput(nopWriter{})

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	ctx, err := clcmd.NewContext(cwd, confirm)
	if err != nil {
		return err
	}

	var out string
	switch cmd {
	case "add":
		fs, verbose := newFlagSet("add")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		args := fs.Args()
		if len(args) < 1 {
			return fmt.Errorf("%w: usage: git cl add <name> <paths...>", clerr.ErrUsage)
		}
		out, err = clcmd.Add(ctx, args[0], args[1:])

	case "remove", "rm", "r":
		fs, verbose := newFlagSet("remove")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		args := fs.Args()
		if len(args) < 1 {
			return fmt.Errorf("%w: usage: git cl remove <name> <paths...>", clerr.ErrUsage)
		}
		out, err = clcmd.Remove(ctx, args[0], args[1:])

	case "delete", "del":
		fs, verbose := newFlagSet("delete")
		all := fs.Bool("all", false, "delete every active changelist")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		out, err = clcmd.Delete(ctx, fs.Args(), *all)

	case "status", "st":
		fs, verbose := newFlagSet("status")
		includeNoCL := fs.Bool("include-no-cl", false, "show the No Changelist section even when names are given")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		out, err = clcmd.Status(ctx, fs.Args(), *includeNoCL)

	case "diff":
		fs, verbose := newFlagSet("diff")
		staged := fs.Bool("staged", false, "diff the index instead of the working tree")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		out, err = clcmd.Diff(ctx, fs.Args(), *staged)

	case "stage":
		fs, verbose := newFlagSet("stage")
		del := fs.Bool("delete", false, "delete the changelist after staging")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		args := fs.Args()
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: git cl stage <name>", clerr.ErrUsage)
		}
		out, err = clcmd.Stage(ctx, args[0], *del)

	case "unstage":
		fs, verbose := newFlagSet("unstage")
		del := fs.Bool("delete", false, "delete the changelist after unstaging")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		args := fs.Args()
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: git cl unstage <name>", clerr.ErrUsage)
		}
		out, err = clcmd.Unstage(ctx, args[0], *del)

	case "commit", "ci":
		fs, verbose := newFlagSet("commit")
		msg := fs.String("m", "", "commit message")
		msgFile := fs.String("F", "", "read the commit message from file")
		keep := fs.Bool("keep", false, "keep the changelist after committing")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		args := fs.Args()
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: git cl commit -m <msg> <name>", clerr.ErrUsage)
		}
		out, err = clcmd.Commit(ctx, args[0], *msg, *msgFile, *keep)

	case "checkout", "co":
		fs, verbose := newFlagSet("checkout")
		force := fs.Bool("force", false, "skip the confirmation prompt")
		del := fs.Bool("delete", false, "delete the changelists after checkout")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		out, err = clcmd.Checkout(ctx, fs.Args(), *force, *del)

	case "stash", "sh":
		fs, verbose := newFlagSet("stash")
		all := fs.Bool("all", false, "stash every active changelist")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		args := fs.Args()
		name := ""
		if len(args) == 1 {
			name = args[0]
		} else if !*all {
			return fmt.Errorf("%w: usage: git cl stash <name> | --all", clerr.ErrUsage)
		}
		out, err = clcmd.Stash(ctx, name, *all)

	case "unstash", "us":
		fs, verbose := newFlagSet("unstash")
		all := fs.Bool("all", false, "restore every stashed changelist")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		args := fs.Args()
		name := ""
		if len(args) == 1 {
			name = args[0]
		} else if !*all {
			return fmt.Errorf("%w: usage: git cl unstash <name> | --all", clerr.ErrUsage)
		}
		out, err = clcmd.Unstash(ctx, name, *all)

	case "branch", "br":
		fs, verbose := newFlagSet("branch")
		from := fs.String("from", "", "base ref the new branch is rooted at; defaults to HEAD")
		fs.Parse(os.Args[1:])
		applyVerbose(*verbose)
		args := fs.Args()
		if len(args) < 1 {
			return fmt.Errorf("%w: usage: git cl branch [--from <base>] <name> [branch_name]", clerr.ErrUsage)
		}
		name := args[0]
		branchName := ""
		if len(args) > 1 {
			branchName = args[1]
		}
		out, err = clcmd.Branch(ctx, name, branchName, *from)

	default:
		return fmt.Errorf("%w: unknown command %q, try 'help'", clerr.ErrUsage, cmd)
	}

	if out != "" {
		fmt.Print(out)
	}
	return err
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func main() {
	// Color rendering is out of scope (spec §1); NO_COLOR is accepted and
	// ignored for compatibility with callers that set it unconditionally.
	_ = os.Getenv("NO_COLOR")
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "git-cl: %s\n", err)
		os.Exit(clerr.ExitCode(err))
	}
}
