package probe

import (
	"strconv"

	"github.com/cenkalti/log"
	gopsutilNet "github.com/shirou/gopsutil/v4/net"

	"github.com/eyalev/apps-ports/types"
)

// psutilProbe enumerates listening sockets natively. It runs last, so it
// only fills (pid, port) gaps on hosts where none of the command-line tools
// is installed.
type psutilProbe struct {
	e *Engine
}

func (p *psutilProbe) produce() []types.Record {
	conns, err := gopsutilNet.Connections("tcp")
	if err != nil {
		log.Debugf("Native connection listing failed: %s\n", err.Error())
		return nil
	}
	var records []types.Record
	for _, conn := range conns {
		if conn.Status != "LISTEN" || conn.Pid <= 0 {
			continue
		}
		pid := strconv.FormatInt(int64(conn.Pid), 10)
		port := strconv.FormatUint(uint64(conn.Laddr.Port), 10)
		records = append(records, p.e.newRecord(port, pid, nameByPid(p.e.run, pid), commandByPid(p.e.run, pid)))
	}
	return records
}
