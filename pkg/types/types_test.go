package types

import "testing"

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("local"); err != nil || m != ModeLocal {
		t.Fatalf("local: %v %v", m, err)
	}
	if m, err := ParseMode("server"); err != nil || m != ModeServer {
		t.Fatalf("server: %v %v", m, err)
	}
	for _, bad := range []string{"", "Local", "remote", "bogus"} {
		if _, err := ParseMode(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
