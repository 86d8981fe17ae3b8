package clientcfg

import (
	"fmt"
	"net/url"
	"strings"

	"storyctl/pkg/types"
)

// EndpointFor resolves the fixed mode→endpoint mapping. Local mode always
// lands on loopback; server mode uses the configured server address,
// normalized to a full base URL.
func EndpointFor(mode types.Mode, port int, serverAddr string) (string, error) {
	switch mode {
	case types.ModeLocal:
		return fmt.Sprintf("http://localhost:%d", port), nil
	case types.ModeServer:
		if serverAddr == "" {
			return "", fmt.Errorf("server mode requires a server address (set server_addr)")
		}
		return normalizeServerURL(serverAddr, port)
	default:
		return "", fmt.Errorf("invalid mode %q", mode)
	}
}

// normalizeServerURL accepts a bare host, host:port, or full URL and returns
// a base URL with scheme and port.
func normalizeServerURL(addr string, defaultPort int) (string, error) {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("server address %q: %w", addr, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("server address %q: missing host", addr)
	}
	if u.Port() == "" {
		u.Host = fmt.Sprintf("%s:%d", u.Hostname(), defaultPort)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String(), nil
}
