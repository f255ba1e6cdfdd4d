package probe

import (
	"strings"

	"github.com/eyalev/apps-ports/types"
)

// netstatProbe is the fallback for hosts that still ship net-tools.
type netstatProbe struct {
	e *Engine
}

func (p *netstatProbe) produce() []types.Record {
	out := p.e.run("netstat", "-tlnp")
	var records []types.Record
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "LISTEN") {
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

// parse turns one netstat line into a record. The PID/Program column is "-"
// when netstat ran unprivileged; such lines are skipped rather than degraded,
// since ss has normally already reported the same socket.
func (p *netstatProbe) parse(line string) (types.Record, bool) {
	parts := strings.Fields(line)
	if len(parts) < 7 {
		return types.Record{}, false
	}
	port, ok := portOfAddress(parts[3])
	if !ok {
		return types.Record{}, false
	}
	pidInfo := parts[6]
	if pidInfo == "-" {
		return types.Record{}, false
	}
	pidParts := strings.SplitN(pidInfo, "/", 2)
	if len(pidParts) < 2 {
		return types.Record{}, false
	}
	pid, name := pidParts[0], pidParts[1]
	return p.e.newRecord(port, pid, name, commandByPid(p.e.run, pid)), true
}
