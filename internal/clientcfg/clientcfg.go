// Package clientcfg reads and rewrites the storybook client's config file.
// Only the MODE and OLLAMA_SERVER assignment lines are touched; every other
// line is preserved byte for byte, and saves go through an atomic rename so
// a concurrent reader never sees a half-written file.
package clientcfg

import (
	"fmt"
	"os"
	"strings"

	"storyctl/internal/common/fsutil"
	"storyctl/pkg/types"
)

const (
	keyMode   = "MODE"
	keyServer = "OLLAMA_SERVER"
)

// File is one loaded client config file.
type File struct {
	Path string

	lines    []string
	trailing bool // original file ended with a newline

	Mode     types.Mode
	Endpoint string
}

// Load parses the file at path. Missing MODE/OLLAMA_SERVER lines are
// tolerated; Set appends them on the next save.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client config: %w", err)
	}
	text := string(b)
	f := &File{Path: path, trailing: strings.HasSuffix(text, "\n")}
	f.lines = strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for _, line := range f.lines {
		switch key, val, ok := parseAssignment(line); {
		case !ok:
		case key == keyMode:
			f.Mode = types.Mode(val)
		case key == keyServer:
			f.Endpoint = val
		}
	}
	return f, nil
}

// Set updates both fields together. The mode/endpoint pair must always come
// from the fixed mapping; callers never set one without the other.
func (f *File) Set(mode types.Mode, endpoint string) {
	f.Mode = mode
	f.Endpoint = endpoint
	f.setLine(keyMode, string(mode))
	f.setLine(keyServer, endpoint)
}

// Save persists the file via temp-write-then-rename.
func (f *File) Save() error {
	text := strings.Join(f.lines, "\n")
	if f.trailing || text == "" {
		text += "\n"
	}
	info, err := os.Stat(f.Path)
	perm := os.FileMode(0o644)
	if err == nil {
		perm = info.Mode().Perm()
	}
	return fsutil.WriteFileAtomic(f.Path, []byte(text), perm)
}

// setLine rewrites the quoted value of an existing `KEY = "..."` line in
// place, keeping indentation and trailing comments, or appends a fresh line
// when the key is absent.
func (f *File) setLine(key, val string) {
	for i, line := range f.lines {
		if k, _, ok := parseAssignment(line); !ok || k != key {
			continue
		}
		eq := strings.Index(line, "=")
		rest := line[eq+1:]
		open := strings.Index(rest, `"`)
		if open >= 0 {
			if close := strings.Index(rest[open+1:], `"`); close >= 0 {
				f.lines[i] = line[:eq+1] + rest[:open+1] + val + rest[open+1+close:]
				return
			}
		}
		f.lines[i] = fmt.Sprintf("%s = %q", key, val)
		return
	}
	f.lines = append(f.lines, fmt.Sprintf("%s = %q", key, val))
}

// parseAssignment recognizes `KEY = "value"` lines by exact key match,
// ignoring leading whitespace and trailing comments.
func parseAssignment(line string) (key, val string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	eq := strings.Index(trimmed, "=")
	if eq < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(trimmed[:eq])
	if key != keyMode && key != keyServer {
		return "", "", false
	}
	rest := trimmed[eq+1:]
	open := strings.Index(rest, `"`)
	if open < 0 {
		return key, strings.TrimSpace(rest), true
	}
	close := strings.Index(rest[open+1:], `"`)
	if close < 0 {
		return key, strings.TrimSpace(rest), true
	}
	return key, rest[open+1 : open+1+close], true
}
