// Package runner invokes external diagnostic and management utilities.
package runner

import (
	"os/exec"
	"strings"

	"github.com/cenkalti/log"
)

// RunFunc runs an external tool and returns its stdout as text. Stderr is
// discarded. A tool that is absent, not executable or exits non-zero yields
// empty output; callers must treat "empty output" and "tool absent" the same.
type RunFunc func(name string, args ...string) string

// Run executes the named tool with the given arguments. Output is decoded
// permissively: invalid byte sequences are replaced, never reported as an
// error. No timeout is enforced; a hung subprocess blocks the caller.
func Run(name string, args ...string) string {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		log.Debugf("%s failed: %s\n", name, err.Error())
	}
	return strings.ToValidUTF8(string(out), "�")
}
