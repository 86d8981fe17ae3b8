package firewall

import (
	"context"
	"strings"
	"testing"

	"storyctl/internal/execx"
)

const ufwStatusOpen = `Status: active

To                         Action      From
--                         ------      ----
22/tcp                     ALLOW       Anywhere
11434/tcp                  ALLOW       192.168.1.0/24
22/tcp (v6)                ALLOW       Anywhere (v6)
`

const ufwStatusDenied = `Status: active

To                         Action      From
--                         ------      ----
11434/tcp                  DENY        Anywhere
`

func TestParseStatus(t *testing.T) {
	open, line, err := parseStatus(ufwStatusOpen, 11434)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !open {
		t.Fatalf("expected open")
	}
	if !strings.Contains(line, "192.168.1.0/24") {
		t.Fatalf("rule line: %q", line)
	}

	open, line, err = parseStatus(ufwStatusDenied, 11434)
	if err != nil || open {
		t.Fatalf("expected denied, got open=%v err=%v", open, err)
	}
	if !strings.Contains(line, "DENY") {
		t.Fatalf("rule line: %q", line)
	}

	open, line, err = parseStatus("Status: active\n", 11434)
	if err != nil || open || line != "" {
		t.Fatalf("expected absent rule, got %v %q %v", open, line, err)
	}
}

func recordUFW() (*UFW, *[][]string) {
	var calls [][]string
	u := &UFW{
		run: func(_ context.Context, c execx.Cmd) error {
			calls = append(calls, append([]string{c.Path}, c.Args...))
			return nil
		},
		out: func(_ context.Context, c execx.Cmd) (string, error) {
			calls = append(calls, append([]string{c.Path}, c.Args...))
			return ufwStatusOpen, nil
		},
	}
	return u, &calls
}

func hasCall(calls [][]string, want string) bool {
	for _, c := range calls {
		if strings.Contains(strings.Join(c, " "), want) {
			return true
		}
	}
	return false
}

func TestAllowUnscoped(t *testing.T) {
	u, calls := recordUFW()
	if err := u.Allow(context.Background(), Rule{Port: 11434}); err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !hasCall(*calls, "allow 11434/tcp") {
		t.Fatalf("calls: %v", *calls)
	}
}

func TestAllowScoped(t *testing.T) {
	u, calls := recordUFW()
	if err := u.Allow(context.Background(), Rule{Port: 11434, FromCIDR: "192.168.1.0/24"}); err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !hasCall(*calls, "allow from 192.168.1.0/24 to any port 11434 proto tcp") {
		t.Fatalf("calls: %v", *calls)
	}
}

func TestDenyRemovesAllowFirst(t *testing.T) {
	u, calls := recordUFW()
	if err := u.Deny(context.Background(), Rule{Port: 11434}); err != nil {
		t.Fatalf("deny: %v", err)
	}
	if !hasCall(*calls, "delete allow 11434/tcp") || !hasCall(*calls, "deny 11434/tcp") {
		t.Fatalf("calls: %v", *calls)
	}
}

func TestRuleString(t *testing.T) {
	if got := (Rule{Port: 11434}).String(); got != "11434/tcp" {
		t.Fatalf("got %q", got)
	}
	if got := (Rule{Port: 11434, FromCIDR: "10.0.0.0/8"}).String(); got != "11434/tcp from 10.0.0.0/8" {
		t.Fatalf("got %q", got)
	}
}
