package probe

import (
	"strconv"
	"strings"

	"github.com/cenkalti/log"

	"github.com/eyalev/apps-ports/types"
)

// FindByPort looks up the process bound to a single port: lsof scoped to the
// port first, then fuser. An empty result means no discoverable process owns
// the port right now.
func (e *Engine) FindByPort(port string) (types.Record, bool) {
	lp := &lsofProbe{e}
	out := e.run("lsof", "-i", ":"+port, "-P", "-n")
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			continue
		}
		if !strings.Contains(line, "LISTEN") {
			continue
		}
		return lp.parse(line)
	}

	// fuser prints owning PIDs as bare tokens.
	out = e.run("fuser", port+"/tcp")
	for _, word := range strings.Fields(out) {
		if _, err := strconv.ParseUint(word, 10, 32); err != nil {
			continue
		}
		return e.newRecord(port, word, nameByPid(e.run, word), commandByPid(e.run, word)), true
	}

	log.Debugf("Port %s has no discoverable owner\n", port)
	return types.Record{}, false
}
