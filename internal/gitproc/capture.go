// Copyright 2015 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gitproc runs child processes and captures their combined output.
//
// It is the single place in git-cl that touches os/exec; every other
// package that needs to talk to the git binary goes through Capture.
package gitproc

import (
	"log"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// Capture runs args[0] with args[1:] from directory wd (the current
// directory if wd is empty), with extra environment variables env appended
// to the current process environment (nil or empty to inherit only).
//
// It returns the combined stdout+stderr, the process exit code, and an
// error. The error is only set when the process could not be started or
// its exit status could not be determined; a non-zero exit code on a
// process that ran to completion is reported via exitCode, not err.
func Capture(wd string, env []string, args ...string) (string, int, error) {
	exitCode := -1
	log.Printf("gitproc.Capture(%s, %s)", wd, args)
	c := exec.Command(args[0], args[1:]...)
	if wd != "" {
		c.Dir = wd
	}
	if len(env) != 0 {
		c.Env = append(os.Environ(), env...)
	}
	out, err := c.CombinedOutput()
	if c.ProcessState != nil {
		if waitStatus, ok := c.ProcessState.Sys().(syscall.WaitStatus); ok {
			exitCode = waitStatus.ExitStatus()
			if exitCode != 0 {
				err = nil
			}
		}
	}
	return string(out), exitCode, err
}

// CaptureTrim is Capture with the result's trailing CR/LF stripped, the
// common case when the caller wants a single value out of git (a hash, a
// branch name, a path).
func CaptureTrim(wd string, env []string, args ...string) (string, int, error) {
	out, code, err := Capture(wd, env, args...)
	return strings.TrimRight(out, "\n\r"), code, err
}
