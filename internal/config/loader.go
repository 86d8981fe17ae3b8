package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters shared by ollamactl and modectl.
// Zero values mean "unspecified" and are replaced by Default's values.
type Config struct {
	// TCP port the Ollama daemon listens on.
	Port int `json:"port" yaml:"port" toml:"port"`
	// Remote server address used in server mode (host, host:port, or URL).
	ServerAddr string `json:"server_addr" yaml:"server_addr" toml:"server_addr"`
	// Optional source CIDR the firewall allow rule is scoped to. Empty opens
	// the port to any source.
	AllowCIDR string `json:"allow_cidr" yaml:"allow_cidr" toml:"allow_cidr"`
	// Health path probed on loopback for liveness.
	HealthPath string `json:"health_path" yaml:"health_path" toml:"health_path"`
	// Systemd unit name of the daemon.
	DaemonUnit string `json:"daemon_unit" yaml:"daemon_unit" toml:"daemon_unit"`
	// Systemd unit name of the storybook client application.
	ClientUnit string `json:"client_unit" yaml:"client_unit" toml:"client_unit"`
	// Path of the client config file rewritten on mode switches.
	ClientConfig string `json:"client_config" yaml:"client_config" toml:"client_config"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Port:         11434,
		HealthPath:   "/api/tags",
		DaemonUnit:   "ollama",
		ClientUnit:   "storybook",
		ClientConfig: "~/storybook/config.py",
	}
}

// Load reads a configuration file based on its extension, layered over
// Default. Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
