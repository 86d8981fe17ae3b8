package types

import "fmt"

// Mode selects which Ollama endpoint the storybook client talks to.
type Mode string

const (
	// ModeLocal points the client at the daemon on loopback.
	ModeLocal Mode = "local"
	// ModeServer points the client at the shared classroom server.
	ModeServer Mode = "server"
)

// ParseMode validates a user-supplied mode token.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal:
		return ModeLocal, nil
	case ModeServer:
		return ModeServer, nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected local or server)", s)
	}
}

// ServiceStatus is the read-only view produced by the access controller.
// Running and FirewallOpen are independent observations; neither implies
// the other.
type ServiceStatus struct {
	// Systemd unit the daemon runs under.
	Unit string `json:"unit"`
	// Whether the daemon process is active right now.
	Running bool `json:"running"`
	// Whether the unit is enabled to start at boot.
	BootEnabled bool `json:"boot_enabled"`
	// Whether an allow rule for the daemon port is present.
	FirewallOpen bool `json:"firewall_open"`
	// The matching firewall rule line, if any.
	FirewallRule string `json:"firewall_rule,omitempty"`
	// Daemon TCP port the firewall rule is scoped to.
	Port int `json:"port"`
	// Whether a liveness probe was attempted (only when Running).
	ProbeAttempted bool `json:"probe_attempted"`
	// Probe outcome; meaningful only when ProbeAttempted.
	ProbeOK bool `json:"probe_ok"`
	// Probe failure detail, empty on success.
	ProbeError string `json:"probe_error,omitempty"`
	// Time of the observation in unix seconds.
	CheckedAtUnix int64 `json:"checked_at_unix"`
}

// ModeReport describes a device's endpoint selection after a read or switch.
type ModeReport struct {
	Mode Mode `json:"mode"`
	// Fully qualified base URL the client uses for daemon calls.
	Endpoint string `json:"endpoint"`
	// Path of the client config file the values were read from or written to.
	ConfigPath string `json:"config_path"`
}

// ModelInfo is one installed model as reported by the model repository.
type ModelInfo struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
	Size string `json:"size,omitempty"`
}
