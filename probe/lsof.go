package probe

import (
	"strings"

	"github.com/eyalev/apps-ports/types"
)

// lsofProbe covers hosts where neither ss nor netstat is usable. Its parser
// is also reused for single-port point lookups.
type lsofProbe struct {
	e *Engine
}

func (p *lsofProbe) produce() []types.Record {
	out := p.e.run("lsof", "-i", "-P", "-n", "-sTCP:LISTEN")
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

// parse turns one lsof line into a record. The NAME column looks like
// *:3000(LISTEN); the state annotation is stripped from the port.
func (p *lsofProbe) parse(line string) (types.Record, bool) {
	parts := strings.Fields(line)
	if len(parts) < 9 {
		return types.Record{}, false
	}
	name := parts[0]
	pid := parts[1]
	portPart, ok := portOfAddress(parts[8])
	if !ok {
		return types.Record{}, false
	}
	port := strings.SplitN(portPart, "(", 2)[0]
	return p.e.newRecord(port, pid, name, commandByPid(p.e.run, pid)), true
}
