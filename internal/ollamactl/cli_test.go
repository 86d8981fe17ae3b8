package ollamactl

import (
	"context"
	"errors"
	"testing"
	"time"
)

// withStubs replaces the fn* actions and restores them on cleanup.
func withStubs(t *testing.T, stubs func()) {
	t.Helper()
	oldEnable := fnEnable
	oldDisable := fnDisable
	oldStatus := fnStatus
	oldServe := fnServeStatus
	oldList := fnModelsList
	oldPull := fnModelsPull
	t.Cleanup(func() {
		fnEnable = oldEnable
		fnDisable = oldDisable
		fnStatus = oldStatus
		fnServeStatus = oldServe
		fnModelsList = oldList
		fnModelsPull = oldPull
	})
	stubs()
	t.Setenv("STORYCTL_CONFIG", "")
}

func TestMainNoArgsIsUsage(t *testing.T) {
	withStubs(t, func() {})
	if code := MainWithArgs(nil); code != ExitUsage {
		t.Fatalf("exit code: %d", code)
	}
}

func TestMainUnknownCommandIsUsage(t *testing.T) {
	withStubs(t, func() {})
	if code := MainWithArgs([]string{"explode"}); code != ExitUsage {
		t.Fatalf("exit code: %d", code)
	}
}

func TestMainDispatchesEnable(t *testing.T) {
	called := false
	withStubs(t, func() {
		fnEnable = func(context.Context, *Options) error { called = true; return nil }
	})
	if code := MainWithArgs([]string{"enable"}); code != ExitOK {
		t.Fatalf("exit code: %d", code)
	}
	if !called {
		t.Fatalf("enable action not called")
	}
}

func TestMainDispatchesDisable(t *testing.T) {
	called := false
	withStubs(t, func() {
		fnDisable = func(context.Context, *Options) error { called = true; return nil }
	})
	if code := MainWithArgs([]string{"disable"}); code != ExitOK {
		t.Fatalf("exit code: %d", code)
	}
	if !called {
		t.Fatalf("disable action not called")
	}
}

func TestMainDispatchesStatus(t *testing.T) {
	var gotJSON bool
	withStubs(t, func() {
		fnStatus = func(_ context.Context, opts *Options) error {
			gotJSON = opts.JSON
			return nil
		}
	})
	if code := MainWithArgs([]string{"status", "--json"}); code != ExitOK {
		t.Fatalf("exit code: %d", code)
	}
	if !gotJSON {
		t.Fatalf("--json flag not propagated")
	}
}

func TestMainStatusListenServes(t *testing.T) {
	var gotAddr string
	var gotInterval time.Duration
	withStubs(t, func() {
		fnServeStatus = func(_ context.Context, _ *Options, addr string, interval time.Duration) error {
			gotAddr, gotInterval = addr, interval
			return nil
		}
	})
	if code := MainWithArgs([]string{"status", "--listen", ":9188", "--interval", "10s"}); code != ExitOK {
		t.Fatalf("exit code: %d", code)
	}
	if gotAddr != ":9188" || gotInterval != 10*time.Second {
		t.Fatalf("addr=%q interval=%v", gotAddr, gotInterval)
	}
}

func TestMainOperationFailureExitsOne(t *testing.T) {
	withStubs(t, func() {
		fnEnable = func(context.Context, *Options) error {
			return errors.New("systemctl start ollama: permission denied")
		}
	})
	if code := MainWithArgs([]string{"enable"}); code != ExitError {
		t.Fatalf("exit code: %d", code)
	}
}

func TestMainModelsRequiresSubcommand(t *testing.T) {
	withStubs(t, func() {})
	if code := MainWithArgs([]string{"models"}); code != ExitUsage {
		t.Fatalf("exit code: %d", code)
	}
}

func TestMainModelsPull(t *testing.T) {
	var gotName string
	withStubs(t, func() {
		fnModelsPull = func(_ context.Context, _ *Options, name string) error {
			gotName = name
			return nil
		}
	})
	if code := MainWithArgs([]string{"models", "pull", "llama3.2:3b"}); code != ExitOK {
		t.Fatalf("exit code: %d", code)
	}
	if gotName != "llama3.2:3b" {
		t.Fatalf("name: %q", gotName)
	}
	// missing name is a usage error
	if code := MainWithArgs([]string{"models", "pull"}); code != ExitUsage {
		t.Fatalf("exit code without name: %d", code)
	}
}

func TestMainHelpExitsZero(t *testing.T) {
	withStubs(t, func() {})
	if code := MainWithArgs([]string{"--help"}); code != ExitOK {
		t.Fatalf("exit code: %d", code)
	}
}
