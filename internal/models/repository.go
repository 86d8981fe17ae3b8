// Package models is the model repository collaborator: pull a model by name
// and list what is installed. The repository itself (download, storage,
// dedup) belongs to the Ollama tooling; only its pull/list surface is
// wrapped here.
package models

import (
	"context"
	"fmt"
	"strings"

	"storyctl/internal/execx"
	"storyctl/pkg/types"
)

// Repository is the pull/list surface of the model store.
type Repository interface {
	Pull(ctx context.Context, name string) error
	List(ctx context.Context) ([]types.ModelInfo, error)
}

// OllamaCLI shells out to the ollama binary.
type OllamaCLI struct {
	run func(ctx context.Context, c execx.Cmd) error
	out func(ctx context.Context, c execx.Cmd) (string, error)
}

func NewOllamaCLI() *OllamaCLI {
	return &OllamaCLI{run: execx.Run, out: execx.Output}
}

func (o *OllamaCLI) Pull(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("model name required")
	}
	if err := o.run(ctx, execx.Cmd{Path: "ollama", Args: []string{"pull", name}, Stream: true}); err != nil {
		return fmt.Errorf("ollama pull %s: %w", name, err)
	}
	return nil
}

func (o *OllamaCLI) List(ctx context.Context) ([]types.ModelInfo, error) {
	text, err := o.out(ctx, execx.Cmd{Path: "ollama", Args: []string{"list"}})
	if err != nil {
		return nil, fmt.Errorf("ollama list: %w", err)
	}
	return parseList(text), nil
}

// parseList reads `ollama list` tabular output: NAME ID SIZE MODIFIED.
func parseList(text string) []types.ModelInfo {
	var out []types.ModelInfo
	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if i == 0 && strings.EqualFold(fields[0], "NAME") {
			continue
		}
		m := types.ModelInfo{Name: fields[0]}
		if len(fields) > 1 {
			m.ID = fields[1]
		}
		if len(fields) > 3 {
			m.Size = fields[2] + " " + fields[3]
		}
		out = append(out, m)
	}
	return out
}
