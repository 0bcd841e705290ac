package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"stardrain/internal/domain"
	"stardrain/internal/services/drain"
	"stardrain/internal/services/github"
)

// DrainCommand asks for a token and removes every star of the account it
// authenticates.
type DrainCommand struct {
	credentialReader domain.CredentialReader
	clientFactory    domain.APIClientFactory
	logger           *slog.Logger
}

// NewDrainCommand creates a new drain command.
func NewDrainCommand(
	credentialReader domain.CredentialReader,
	clientFactory domain.APIClientFactory,
	logger *slog.Logger,
) *DrainCommand {
	return &DrainCommand{
		credentialReader: credentialReader,
		clientFactory:    clientFactory,
		logger:           logger,
	}
}

// DrainRequest contains the parameters for the drain command.
type DrainRequest struct {
	Label   string
	PerPage int
	Options drain.Options
}

// Execute runs the prompt and then the drain loop. Item failures end the
// loop according to the stop policy and are not returned as errors.
func (c *DrainCommand) Execute(ctx context.Context, req DrainRequest) (*drain.Stats, error) {
	validate := github.TokenValidator(c.clientFactory, c.logger)

	token, err := c.credentialReader.ReadCredential(ctx, req.Label, validate)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	logger := c.logger.With("run", uuid.NewString())
	service := github.NewService(c.clientFactory.NewClient(token), req.PerPage, logger)
	drainer := drain.New[domain.Repository](req.Options, logger)

	logger.InfoContext(ctx, "Removing starred repositories")

	stats, err := drainer.Run(ctx, service.StarredPage, service.Unstar)
	if err != nil {
		return &stats, err
	}

	logger.InfoContext(ctx, "Drain finished",
		"reason", string(stats.Reason),
		"pages", stats.Pages,
		"unstarred", stats.Succeeded,
		"failed", stats.Failed)

	return &stats, nil
}
