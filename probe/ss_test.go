package probe

import (
	"regexp"
	"testing"

	"github.com/eyalev/apps-ports/types"
)

const ssHeader = "State   Recv-Q  Send-Q  Local Address:Port  Peer Address:Port  Process"

func TestParseSSLineWithUsers(t *testing.T) {
	e := newTestEngine(map[string]string{
		"ps -p 9999991 -o cmd --no-headers": "/usr/bin/node /srv/app/server.js\n",
	})
	p := &ssProbe{e}

	line := `LISTEN  0  511  0.0.0.0:8080  0.0.0.0:*  users:(("node",pid=9999991,fd=23))`
	r, ok := p.parse(line)
	if !ok {
		t.Fatal("line did not parse")
	}
	if r.Port != "8080" {
		t.Errorf("port = %q, want 8080", r.Port)
	}
	if r.Pid != "9999991" {
		t.Errorf("pid = %q, want 9999991", r.Pid)
	}
	if r.ProcessName != "node" {
		t.Errorf("process name = %q, want node", r.ProcessName)
	}
	if r.Command != "/usr/bin/node /srv/app/server.js" {
		t.Errorf("command = %q", r.Command)
	}
	if r.Degraded {
		t.Error("record with users block should not be degraded")
	}
}

// Field helpers must agree with what a regex over the users block extracts.
func TestFieldHelpersMatchRegex(t *testing.T) {
	pidRe := regexp.MustCompile(`pid=(\d+),`)
	nameRe := regexp.MustCompile(`"([^"]*)"`)

	lines := []string{
		`users:(("node",pid=12345,fd=10))`,
		`LISTEN 0 128 127.0.0.1:6379 0.0.0.0:* users:(("redis-server",pid=881,fd=6))`,
		`LISTEN 0 4096 [::1]:631 [::]:* users:(("cupsd",pid=1,fd=7),("cupsd",pid=2,fd=7))`,
	}
	for _, line := range lines {
		pid, ok := pidField(line)
		if !ok {
			t.Fatalf("pidField failed on %q", line)
		}
		if want := pidRe.FindStringSubmatch(line)[1]; pid != want {
			t.Errorf("pidField(%q) = %q, want %q", line, pid, want)
		}
		name, ok := quotedField(line)
		if !ok {
			t.Fatalf("quotedField failed on %q", line)
		}
		if want := nameRe.FindStringSubmatch(line)[1]; name != want {
			t.Errorf("quotedField(%q) = %q, want %q", line, name, want)
		}
	}
}

func TestParseSSLineDegraded(t *testing.T) {
	// No users block, and both point lookups come back empty.
	e := newTestEngine(nil)
	p := &ssProbe{e}

	r, ok := p.parse("LISTEN  0  128  0.0.0.0:22  0.0.0.0:*")
	if !ok {
		t.Fatal("privilege-degraded line must still yield a record")
	}
	if r.Pid != types.HiddenPid {
		t.Errorf("pid = %q, want %q", r.Pid, types.HiddenPid)
	}
	if r.ProcessName == "" {
		t.Error("degraded record needs a visible process name placeholder")
	}
	if r.Command == "" {
		t.Error("degraded record needs a visible command placeholder")
	}
	if !r.Degraded {
		t.Error("degraded record not tagged")
	}
}

func TestParseSSLineFallsBackToPortLookup(t *testing.T) {
	e := newTestEngine(map[string]string{
		"lsof -i :3000 -P -n": "COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME\n" +
			"node 9999995 app 23u IPv4 123 0t0 TCP *:3000(LISTEN)\n",
		"ps -p 9999995 -o cmd --no-headers": "node server.js\n",
	})
	p := &ssProbe{e}

	r, ok := p.parse("LISTEN  0  128  0.0.0.0:3000  0.0.0.0:*")
	if !ok {
		t.Fatal("line did not parse")
	}
	if r.Pid != "9999995" || r.ProcessName != "node" {
		t.Errorf("point lookup not used: pid=%q name=%q", r.Pid, r.ProcessName)
	}
	if r.Degraded {
		t.Error("record resolved by point lookup must not be degraded")
	}
}

func TestParseSSLineUnparseable(t *testing.T) {
	e := newTestEngine(nil)
	p := &ssProbe{e}

	for _, line := range []string{
		"",
		"LISTEN 0 128",
		// Column 3 without a colon is not parseable.
		"LISTEN 0 128 nocolon rest",
	} {
		if _, ok := p.parse(line); ok {
			t.Errorf("line %q should not parse", line)
		}
	}
}

func TestSSProbeRetriesWithoutProcessesFlag(t *testing.T) {
	withFlag := "ss --tcp --listening --numeric --processes"
	withoutFlag := "ss --tcp --listening --numeric"
	e := newTestEngine(map[string]string{
		withFlag: "",
		withoutFlag: ssHeader + "\n" +
			`LISTEN  0  511  0.0.0.0:8080  0.0.0.0:*  users:(("node",pid=9999991,fd=23))` + "\n",
		"ps -p 9999991 -o cmd --no-headers": "node server.js\n",
	})
	p := &ssProbe{e}

	records := p.produce()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 from the retry without --processes", len(records))
	}
	if records[0].Port != "8080" {
		t.Errorf("port = %q, want 8080", records[0].Port)
	}
}
