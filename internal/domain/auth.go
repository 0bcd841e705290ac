package domain

import "context"

// CredentialValidator checks a candidate token. A nil error accepts it; any
// other error is shown to the user and the prompt stays open.
type CredentialValidator func(ctx context.Context, candidate string) error

// CredentialReader collects the personal access token from the user.
type CredentialReader interface {
	ReadCredential(ctx context.Context, label string, validate CredentialValidator) (string, error)
	IsInteractive() bool
}
