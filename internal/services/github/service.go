package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"stardrain/internal/domain"
	apperrors "stardrain/internal/errors"
)

const (
	routeStarred = "GET /user/starred"
	routeUnstar  = "DELETE /user/starred/{owner}/{repo}"
	routeViewer  = "GET /user"

	// DefaultPerPage matches the GitHub default page size.
	DefaultPerPage = 30
	// MaxPerPage is the largest page size GitHub accepts.
	MaxPerPage = 100
)

var _ domain.StarService = (*Service)(nil)

// ErrUnusablePage is returned when the first page still holds stars but none
// of them can be addressed for unstarring.
var ErrUnusablePage = errors.New("starred page has no usable entries")

// Service handles the starred-repository operations of the GitHub REST API.
type Service struct {
	client  domain.APIClient
	perPage int
	logger  *slog.Logger
}

// NewService creates a star service on an authenticated client.
func NewService(client domain.APIClient, perPage int, logger *slog.Logger) *Service {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return &Service{
		client:  client,
		perPage: perPage,
		logger:  logger,
	}
}

// StarredPage fetches the first page of the user's starred repositories.
// Unstarred repositories drop off the front, so the first page is always
// the next batch to process.
func (s *Service) StarredPage(ctx context.Context) ([]domain.Repository, error) {
	resp, err := s.client.Request(ctx, routeStarred, domain.RequestParams{
		Query: map[string]string{
			"per_page": strconv.Itoa(s.perPage),
			"page":     "1",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list starred repositories: %w", err)
	}

	var repos []domain.Repository
	if decodeErr := json.Unmarshal(resp.Body, &repos); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode starred repositories: %w", decodeErr)
	}

	valid := repos[:0]
	for _, repo := range repos {
		if repo.Owner.Login == "" || repo.Name == "" {
			s.logger.WarnContext(ctx, "Skipping starred entry without owner or name",
				"fullName", repo.FullName)
			continue
		}
		valid = append(valid, repo)
	}

	if len(valid) == 0 && len(repos) > 0 {
		return nil, fmt.Errorf("%w: %d starred entries on the first page have no owner or name",
			ErrUnusablePage, len(repos))
	}

	s.logger.DebugContext(ctx, "Fetched starred repositories", "count", len(valid))

	return valid, nil
}

// Unstar removes the star from repo. Failures are logged and reported as false.
func (s *Service) Unstar(ctx context.Context, repo domain.Repository) bool {
	s.logger.InfoContext(ctx, "Unstarring repository", "repo", repo.Slug())

	resp, err := s.client.Request(ctx, routeUnstar, domain.RequestParams{
		Path: map[string]string{
			"owner": repo.Owner.Login,
			"repo":  repo.Name,
		},
	})
	if err != nil {
		var reqErr *apperrors.RequestError
		if !errors.As(err, &reqErr) {
			s.logger.ErrorContext(ctx, "Failed to unstar repository",
				"repo", repo.Slug(),
				"error", err)
			return false
		}

		attrs := []any{"repo", repo.Slug(), "status", reqErr.StatusCode}
		if apperrors.IsRateLimited(err) {
			attrs = append(attrs, "hint", "rate limited; lower workers or raise delay")
		}
		s.logger.ErrorContext(ctx, reqErr.Message, attrs...)
		return false
	}

	if resp.StatusCode == http.StatusNoContent {
		s.logger.InfoContext(ctx, "Unstarred", "repo", repo.Slug())
	}
	return true
}

// Viewer returns the account the token authenticates as.
func (s *Service) Viewer(ctx context.Context) (domain.User, error) {
	resp, err := s.client.Request(ctx, routeViewer, domain.RequestParams{})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to fetch authenticated user: %w", err)
	}

	var user domain.User
	if decodeErr := json.Unmarshal(resp.Body, &user); decodeErr != nil {
		return domain.User{}, fmt.Errorf("failed to decode authenticated user: %w", decodeErr)
	}
	if user.Login == "" {
		return domain.User{}, errors.New("authenticated user response had no login")
	}
	return user, nil
}

// TokenValidator returns a prompt validator that accepts a token only when
// GitHub recognizes it.
func TokenValidator(factory domain.APIClientFactory, logger *slog.Logger) domain.CredentialValidator {
	return func(ctx context.Context, candidate string) error {
		if strings.TrimSpace(candidate) == "" {
			return apperrors.NewValidationError("token", "Token is required")
		}

		svc := NewService(factory.NewClient(candidate), DefaultPerPage, logger)
		user, err := svc.Viewer(ctx)
		if err != nil {
			var reqErr *apperrors.RequestError
			if errors.As(err, &reqErr) {
				return apperrors.NewValidationError("token", reqErr.Message)
			}
			return err
		}

		logger.DebugContext(ctx, "Token accepted", "login", user.Login)
		return nil
	}
}
