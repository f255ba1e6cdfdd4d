// Package killer terminates processes and stops containers after
// interactive confirmation.
package killer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/eyalev/apps-ports/docker"
	"github.com/eyalev/apps-ports/types"
)

// Killer walks a set of records in order and, one confirmation at a time,
// kills the owning process or stops the container behind a docker-proxy.
type Killer struct {
	In  io.Reader
	Out io.Writer

	Correlator *docker.Correlator
	DockerBin  string

	execTool func(name string, args ...string) error
	reader   *bufio.Reader
}

// NewKiller creates a Killer wired to stdin/stdout.
func NewKiller(correlator *docker.Correlator, dockerBin string) *Killer {
	k := new(Killer)
	k.In = os.Stdin
	k.Out = os.Stdout
	k.Correlator = correlator
	if dockerBin == "" {
		dockerBin = "docker"
	}
	k.DockerBin = dockerBin
	k.execTool = runTool
	return k
}

// KillByPort handles every record bound to the port, in merge order. With
// stopContainer set, docker-proxy records get a container stop/remove offer
// first; declining it falls through to the regular process prompt.
func (k *Killer) KillByPort(records []types.Record, port string, stopContainer bool) {
	for _, r := range records {
		if stopContainer && docker.IsProxy(r.Command) {
			id, ok := k.Correlator.ContainerID(r.Command)
			if ok {
				fmt.Fprintf(k.Out, "Kill Docker container %s (running on port %s)? [y/N]: ", id, port)
				if k.confirm() {
					k.stopContainer(id)
					continue
				}
			} else {
				fmt.Fprintln(k.Out, "Could not extract container ID from docker-proxy command")
			}
		}

		fmt.Fprintf(k.Out, "Kill process %s (PID: %s)? [y/N]: ", r.ProcessName, r.Pid)
		if !k.confirm() {
			fmt.Fprintf(k.Out, "Skipped killing process %s (PID: %s)\n", r.ProcessName, r.Pid)
			continue
		}
		k.killProcess(r)
	}
}

// killProcess sends a plain kill and, when that fails, offers one retry
// through sudo.
func (k *Killer) killProcess(r types.Record) {
	err := k.execTool("kill", r.Pid)
	if err == nil {
		fmt.Fprintf(k.Out, "Killed process %s (PID: %s)\n", r.ProcessName, r.Pid)
		return
	}
	fmt.Fprintf(k.Out, "Failed to kill process %s: %s\n", r.Pid, err)
	fmt.Fprintf(k.Out, "Try with elevated privileges? [y/N]: ")
	if !k.confirm() {
		return
	}
	if err := k.execTool("sudo", "kill", r.Pid); err != nil {
		fmt.Fprintf(k.Out, "Failed to kill process %s even with sudo: %s\n", r.Pid, err)
		return
	}
	fmt.Fprintf(k.Out, "Killed process %s (PID: %s) with sudo\n", r.ProcessName, r.Pid)
}

// stopContainer stops a container and, on success, offers to remove it.
func (k *Killer) stopContainer(id string) {
	fmt.Fprintf(k.Out, "Stopping Docker container: %s\n", id)
	if err := k.execTool(k.DockerBin, "stop", id); err != nil {
		fmt.Fprintf(k.Out, "Failed to stop container %s: %s\n", id, err)
		return
	}
	fmt.Fprintf(k.Out, "Stopped Docker container %s\n", id)
	fmt.Fprintf(k.Out, "Remove the stopped container? [y/N]: ")
	if !k.confirm() {
		return
	}
	if err := k.execTool(k.DockerBin, "rm", id); err != nil {
		fmt.Fprintf(k.Out, "Failed to remove container %s: %s\n", id, err)
		return
	}
	fmt.Fprintf(k.Out, "Removed Docker container %s\n", id)
}

// confirm reads one line; only y or yes, case-insensitive, accept.
func (k *Killer) confirm() bool {
	if k.reader == nil {
		k.reader = bufio.NewReader(k.In)
	}
	line, err := k.reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

func runTool(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err == nil {
		return nil
	}
	msg := strings.TrimSpace(string(out))
	if msg != "" {
		return fmt.Errorf("%w: %s", err, msg)
	}
	return err
}
