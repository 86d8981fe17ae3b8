package execx

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Unified command runner shared by the supervisor, firewall, and model
// repository adapters.
type Cmd struct {
	Path   string
	Args   []string
	Env    map[string]string // additional env vars
	Dir    string            // working directory
	Stream bool              // if true, stream stdout/err line by line
}

// Run executes c, inheriting the parent environment. Stdout/stderr go to the
// terminal (streamed or attached directly).
func Run(ctx context.Context, c Cmd) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	if c.Stream {
		stdout, _ := cmd.StdoutPipe()
		stderr, _ := cmd.StderrPipe()
		if err := cmd.Start(); err != nil {
			return err
		}
		go stream(stdout)
		go stream(stderr)
		return cmd.Wait()
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Output executes c and captures trimmed stdout. The captured text is
// returned even when the command exits nonzero, so callers can interpret
// status words like "inactive" that tools report alongside a failure code.
func Output(ctx context.Context, c Cmd) (string, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return strings.TrimSpace(out.String()), err
}

// MaybeSudo prepends sudo to c when not already root and sudo is available.
// Privileged surfaces (systemctl mutation, ufw) go through this.
func MaybeSudo(c Cmd) Cmd {
	if os.Geteuid() == 0 {
		return c
	}
	if _, err := exec.LookPath("sudo"); err != nil {
		return c
	}
	c.Args = append([]string{c.Path}, c.Args...)
	c.Path = "sudo"
	return c
}

func stream(r ioReader) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		fmt.Println(s.Text())
	}
}

type ioReader interface {
	Read(p []byte) (n int, err error)
}
