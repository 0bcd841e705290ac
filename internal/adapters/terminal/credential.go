package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"stardrain/internal/domain"
	"stardrain/internal/prompt"
)

// TokenEnvVar is read when stdin is not a terminal.
const TokenEnvVar = "GITHUB_TOKEN"

// ErrNoCredential is returned when there is no terminal to prompt on and no
// token in the environment.
var ErrNoCredential = errors.New("cannot read token: non-interactive terminal and " + TokenEnvVar + " is not set")

var _ domain.CredentialReader = (*Adapter)(nil)

// Adapter collects the personal access token from the terminal.
type Adapter struct {
	stdin  io.Reader
	stderr io.Writer
	getenv func(string) string
}

// NewAdapter creates a new terminal adapter.
func NewAdapter(stdin io.Reader, stderr io.Writer) *Adapter {
	return &Adapter{
		stdin:  stdin,
		stderr: stderr,
		getenv: os.Getenv,
	}
}

// ReadCredential prompts for a token on an interactive terminal. Otherwise it
// falls back to $GITHUB_TOKEN, which must pass the same validation.
func (a *Adapter) ReadCredential(
	ctx context.Context,
	label string,
	validate domain.CredentialValidator,
) (string, error) {
	// Check if context is cancelled
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if a.IsInteractive() {
		return prompt.Run(ctx, prompt.Config{
			Label:    label,
			Validate: prompt.Validator(validate),
		}, prompt.WithInput(a.stdin), prompt.WithOutput(a.stderr))
	}

	token := strings.TrimSpace(a.getenv(TokenEnvVar))
	if token == "" {
		return "", ErrNoCredential
	}
	if validate != nil {
		if err := validate(ctx, token); err != nil {
			return "", fmt.Errorf("%s rejected: %w", TokenEnvVar, err)
		}
	}
	return token, nil
}

// IsInteractive returns true if the terminal is interactive.
func (a *Adapter) IsInteractive() bool {
	if file, ok := a.stdin.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
