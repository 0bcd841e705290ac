package domain

import "context"

// Owner is the account that owns a repository.
type Owner struct {
	Login string `json:"login"`
}

// Repository is one starred repository, keyed by owner login and name.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    Owner  `json:"owner"`
}

// Slug returns "owner/name".
func (r Repository) Slug() string {
	return r.Owner.Login + "/" + r.Name
}

// User is the authenticated GitHub account.
type User struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// StarLister fetches the current front page of starred repositories.
type StarLister interface {
	StarredPage(ctx context.Context) ([]Repository, error)
}

// Unstarrer removes one star. It never fails: errors are logged and reported as false.
type Unstarrer interface {
	Unstar(ctx context.Context, repo Repository) bool
}

// ViewerFetcher returns the account the token belongs to.
type ViewerFetcher interface {
	Viewer(ctx context.Context) (User, error)
}

// StarService groups the GitHub operations the drain command needs.
type StarService interface {
	StarLister
	Unstarrer
	ViewerFetcher
}
