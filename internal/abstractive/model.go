// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package abstractive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/book-summarizer/internal/container"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

// ErrNoModel is returned when no model runtime is configured.
var ErrNoModel = errors.New("no abstractive model configured")

// modelMount is where the pretrained model directory appears inside the
// container.
const modelMount = "/model"

// Model turns prepared input, one segment per line, into tokenized summary
// lines.
type Model interface {
	Summarize(ctx context.Context, in io.Reader, out io.Writer) error
}

// ContainerModel runs a pointer-generator image with the pretrained model
// directory mounted read-only.
type ContainerModel struct {
	Runtime  container.Runtime
	Image    string
	ModelDir string
}

// Summarize implements Model.
func (m *ContainerModel) Summarize(ctx context.Context, in io.Reader, out io.Writer) error {
	spec := container.RunSpec{Image: m.Image}
	if m.ModelDir != "" {
		dir, err := filepath.Abs(m.ModelDir)
		if err != nil {
			return fmt.Errorf("resolving model directory: %w", err)
		}
		spec.Mounts = append(spec.Mounts, container.Mount{Source: dir, Target: modelMount, ReadOnly: true})
		spec.Env = map[string]string{"MODEL_DIR": modelMount}
	}
	return m.Runtime.Run(ctx, spec, in, out)
}

// CommandModel runs a local program that reads segments on stdin and
// writes summaries on stdout.
type CommandModel struct {
	Command []string
}

// Summarize implements Model.
func (m *CommandModel) Summarize(ctx context.Context, in io.Reader, out io.Writer) error {
	if len(m.Command) == 0 {
		return ErrNoModel
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, m.Command[0], m.Command[1:]...)
	cmd.Stdin = in
	cmd.Stdout = out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s: %w: %s", m.Command[0], err, msg)
		}
		return fmt.Errorf("running %s: %w", m.Command[0], err)
	}
	return nil
}

// NewModel builds the Model selected by cfg. The container runtime is
// detected on the host and the image must already be present.
func NewModel(cfg types.AbstractiveConfig) (Model, error) {
	switch cfg.Runtime {
	case types.RuntimeCommand:
		if len(cfg.Command) == 0 {
			return nil, fmt.Errorf("%w: command runtime needs a command", ErrNoModel)
		}
		return &CommandModel{Command: cfg.Command}, nil
	case "", types.RuntimeContainer:
		if cfg.Image == "" {
			return nil, fmt.Errorf("%w: container runtime needs an image", ErrNoModel)
		}
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		if err := rt.ImageExists(cfg.Image); err != nil {
			return nil, err
		}
		return &ContainerModel{Runtime: rt, Image: cfg.Image, ModelDir: cfg.ModelDir}, nil
	default:
		return nil, fmt.Errorf("unknown model runtime %q", cfg.Runtime)
	}
}
