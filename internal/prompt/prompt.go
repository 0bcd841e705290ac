// Package prompt implements a masked single-line input prompt.
//
// The prompt renders "prefix label ****" live while the user types, validates
// the value on Enter and either resolves with the raw text or shows the
// validation message under the line, keeping what was typed.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultLabel asks for a GitHub classic personal access token.
const DefaultLabel = "Personal access tokens (classic): "

// DefaultMaskChar is rendered once per typed character.
const DefaultMaskChar = '*'

// ErrInterrupted is returned when the user aborts with Ctrl+C or Esc.
var ErrInterrupted = errors.New("prompt interrupted")

// Validator checks a candidate. Return nil to accept, ErrInvalid to reject
// with the default message, or any other error to reject with its message.
type Validator func(ctx context.Context, candidate string) error

// Config describes one prompt.
type Config struct {
	Label    string
	Validate Validator
	Theme    Theme
	MaskChar rune
}

func (c Config) withDefaults() Config {
	if c.Label == "" {
		c.Label = DefaultLabel
	}
	if c.MaskChar == 0 {
		c.MaskChar = DefaultMaskChar
	}
	c.Theme = c.Theme.withDefaults()
	return c
}

type options struct {
	input  io.Reader
	output io.Writer
}

// Option configures where the prompt reads keys and draws.
type Option func(*options)

// WithInput sets the key source. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(o *options) {
		o.input = r
	}
}

// WithOutput sets the render target. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// Run shows the prompt and blocks until a value is accepted, the user aborts,
// or ctx is done. The returned string is the raw accepted input.
func Run(ctx context.Context, cfg Config, opts ...Option) (string, error) {
	cfg = cfg.withDefaults()

	o := options{
		input:  os.Stdin,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := newModel(ctx, cfg)
	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(o.input),
		tea.WithOutput(o.output),
	)

	if _, err := program.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("running prompt: %w", err)
	}

	if m.err != nil {
		return "", m.err
	}
	if m.session.Status() != StatusAccepted {
		return "", ErrInterrupted
	}
	return m.result, nil
}
