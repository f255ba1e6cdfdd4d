package probe

import (
	"strings"

	"github.com/cenkalti/log"

	"github.com/eyalev/apps-ports/types"
)

// ssProbe is the primary source. It asks ss for listening TCP sockets with
// numeric addresses and, on the first attempt, process ownership info.
type ssProbe struct {
	e *Engine
}

// ssArgs holds the attempts in order: some environments reject --processes
// outright, so a run that yields nothing is retried without it.
var ssArgs = [][]string{
	{"--tcp", "--listening", "--numeric", "--processes"},
	{"--tcp", "--listening", "--numeric"},
}

func (p *ssProbe) produce() []types.Record {
	for _, args := range ssArgs {
		records := p.runOnce(args)
		if len(records) > 0 {
			return records
		}
	}
	return nil
}

func (p *ssProbe) runOnce(args []string) []types.Record {
	out := p.e.run("ss", args...)
	var records []types.Record
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			// header
			continue
		}
		r, ok := p.parse(line)
		if !ok {
			continue
		}
		records = append(records, r)
	}
	return records
}

// parse turns one ss line into a record. Lines carrying a users: block yield
// full process info. Lines without one come from an unprivileged run; the
// port is looked up directly, and if that fails too a degraded record is
// emitted so the binding still shows up in listings.
func (p *ssProbe) parse(line string) (types.Record, bool) {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return types.Record{}, false
	}
	port, ok := portOfAddress(parts[3])
	if !ok {
		return types.Record{}, false
	}

	if strings.Contains(line, "users:") {
		pid, ok := pidField(line)
		name, ok2 := quotedField(line)
		if ok && ok2 {
			return p.e.newRecord(port, pid, name, commandByPid(p.e.run, pid)), true
		}
	}

	if r, ok := p.e.FindByPort(port); ok {
		return r, true
	}

	log.Debugf("No process info for port %s\n", port)
	r := p.e.newRecord(port, types.HiddenPid, "(elevated privileges required)", "Run with 'sudo' to see process details")
	r.Degraded = true
	return r, true
}
