// Package docker resolves docker-proxy processes to the container behind
// them by matching the proxy's target IP against running containers.
package docker

import (
	"strings"

	"github.com/cenkalti/log"

	"github.com/eyalev/apps-ports/runner"
)

const proxyMarker = "docker-proxy"

// IsProxy reports whether a command line belongs to a container
// port-forwarding proxy process.
func IsProxy(command string) bool {
	return strings.Contains(command, proxyMarker)
}

// Correlator resolves docker-proxy command lines to containers via the
// container management CLI. Every step is best-effort: an absent tool, a
// missing match or empty output yields empty results, never an error.
type Correlator struct {
	run runner.RunFunc
	bin string
}

// NewCorrelator creates a Correlator. bin overrides the docker binary, for
// podman-style shims; empty means "docker".
func NewCorrelator(run runner.RunFunc, bin string) *Correlator {
	c := new(Correlator)
	c.run = run
	if bin == "" {
		bin = "docker"
	}
	c.bin = bin
	return c
}

// Correlate returns the full container ID and image behind a docker-proxy
// command line. Both are empty for non-proxy commands and failed resolutions.
func (c *Correlator) Correlate(command string) (containerID, image string) {
	if !IsProxy(command) {
		return "", ""
	}
	id, ok := c.ContainerID(command)
	if !ok {
		return "", ""
	}
	return id, c.containerImage(id)
}

// ContainerID resolves a docker-proxy command line to the untruncated ID of
// the container it forwards to.
func (c *Correlator) ContainerID(command string) (string, bool) {
	ip, ok := containerIP(command)
	if !ok {
		return "", false
	}
	return c.findByIP(ip)
}

// containerIP extracts the -container-ip flag value: the proxy's target IP
// inside the container network.
func containerIP(command string) (string, bool) {
	parts := strings.Fields(command)
	for i, part := range parts {
		if part == "-container-ip" && i+1 < len(parts) {
			return parts[i+1], true
		}
	}
	return "", false
}

// findByIP lists running containers and returns the first whose inspected
// network IP equals ip.
func (c *Correlator) findByIP(ip string) (string, bool) {
	out := c.run(c.bin, "ps", "--format", "{{.ID}} {{.Names}}", "--no-trunc")
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		id := parts[0]
		if c.inspectIP(id) == ip {
			return id, true
		}
	}
	log.Debugf("No running container has IP %s\n", ip)
	return "", false
}

func (c *Correlator) inspectIP(id string) string {
	out := c.run(c.bin, "inspect", "-f", "{{range.NetworkSettings.Networks}}{{.IPAddress}}{{end}}", id)
	return strings.TrimSpace(out)
}

// containerImage returns the configured image of a container, or "unknown"
// when inspection yields nothing.
func (c *Correlator) containerImage(id string) string {
	out := strings.TrimSpace(c.run(c.bin, "inspect", "-f", "{{.Config.Image}}", id))
	if out == "" {
		return "unknown"
	}
	return out
}
