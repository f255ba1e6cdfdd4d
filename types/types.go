package types

// Record is one observed binding of a process to a listening TCP port.
// Port and Pid stay as text: downstream tools emit non-numeric placeholders
// and the "hidden" sentinel when ownership info is unavailable.
type Record struct {
	Port              string `json:"port"`
	Pid               string `json:"pid"`
	ProcessName       string `json:"process_name"`
	Command           string `json:"command"`
	DockerContainerID string `json:"docker_container_id"`
	DockerImage       string `json:"docker_image"`

	// Degraded marks records emitted without process details because the
	// owning tool required elevated privileges.
	Degraded bool `json:"degraded,omitempty"`
}

// HiddenPid is the Pid value of a degraded record.
const HiddenPid = "hidden"

// Key identifies a record within one discovery run. Two tools reporting the
// same (pid, port) pair are reporting the same binding.
func (r Record) Key() string {
	return r.Pid + "/" + r.Port
}
