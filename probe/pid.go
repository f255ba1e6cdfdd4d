package probe

import (
	"strconv"
	"strings"

	gopsutilProcess "github.com/shirou/gopsutil/v4/process"

	"github.com/eyalev/apps-ports/runner"
)

// commandByPid resolves a PID to its full command line, natively first and
// through ps for PIDs gopsutil cannot open.
func commandByPid(run runner.RunFunc, pid string) string {
	if process := openProcess(pid); process != nil {
		if cmdline, err := process.Cmdline(); err == nil && cmdline != "" {
			return cmdline
		}
	}
	out := strings.TrimSpace(run("ps", "-p", pid, "-o", "cmd", "--no-headers"))
	if out == "" {
		return "Unknown"
	}
	return out
}

// nameByPid resolves a PID to its short process name.
func nameByPid(run runner.RunFunc, pid string) string {
	if process := openProcess(pid); process != nil {
		if name, err := process.Name(); err == nil && name != "" {
			return name
		}
	}
	out := strings.TrimSpace(run("ps", "-p", pid, "-o", "comm", "--no-headers"))
	if out == "" {
		return "unknown"
	}
	return out
}

func openProcess(pid string) *gopsutilProcess.Process {
	p, err := strconv.ParseInt(pid, 10, 32)
	if err != nil {
		return nil
	}
	process, err := gopsutilProcess.NewProcess(int32(p))
	if err != nil {
		return nil
	}
	return process
}
