// Package probe discovers processes bound to listening TCP ports by querying
// several system utilities and merging their results.
package probe

import (
	"github.com/cenkalti/log"

	"github.com/eyalev/apps-ports/runner"
	"github.com/eyalev/apps-ports/types"
)

// prober produces records from one discovery tool.
type prober interface {
	produce() []types.Record
}

// CorrelateFunc resolves a full command line to a docker container ID and
// image. Both results are empty for non-proxy commands.
type CorrelateFunc func(command string) (containerID, image string)

// Engine runs source probes in priority order and merges their records.
// ss is the primary source; netstat, lsof and a native socket enumeration
// fill in whatever it misses. No single tool is installed and privileged
// everywhere, so coverage comes from the union.
type Engine struct {
	run       runner.RunFunc
	correlate CorrelateFunc
	probers   []prober
}

// NewEngine creates an Engine. correlate may be nil when docker resolution
// is not wanted.
func NewEngine(run runner.RunFunc, correlate CorrelateFunc) *Engine {
	e := new(Engine)
	e.run = run
	if correlate == nil {
		correlate = func(string) (string, string) { return "", "" }
	}
	e.correlate = correlate
	e.probers = []prober{
		&ssProbe{e},
		&netstatProbe{e},
		&lsofProbe{e},
		&psutilProbe{e},
	}
	return e
}

// DiscoverAll returns one record per listening (pid, port) pair. A later
// probe never replaces a record an earlier probe already produced.
func (e *Engine) DiscoverAll() []types.Record {
	var records []types.Record
	seen := make(map[string]bool)
	for _, p := range e.probers {
		for _, r := range p.produce() {
			if seen[r.Key()] {
				continue
			}
			seen[r.Key()] = true
			records = append(records, r)
		}
	}
	log.Debugf("Discovered %d records\n", len(records))
	return records
}

// DiscoverPort returns the records of DiscoverAll bound to the given port.
func (e *Engine) DiscoverPort(port string) []types.Record {
	var matched []types.Record
	for _, r := range e.DiscoverAll() {
		if r.Port == port {
			matched = append(matched, r)
		}
	}
	return matched
}

// newRecord builds a record, filling the docker fields from the command line.
func (e *Engine) newRecord(port, pid, name, command string) types.Record {
	containerID, image := e.correlate(command)
	return types.Record{
		Port:              port,
		Pid:               pid,
		ProcessName:       name,
		Command:           command,
		DockerContainerID: containerID,
		DockerImage:       image,
	}
}
