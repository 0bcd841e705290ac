package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "stardrain/internal/adapters/http"
	"stardrain/internal/domain"
	apperrors "stardrain/internal/errors"
	"stardrain/internal/mocks"
	"stardrain/internal/testutil"
)

func repo(owner, name string) domain.Repository {
	return domain.Repository{Name: name, FullName: owner + "/" + name, Owner: domain.Owner{Login: owner}}
}

func TestNewService_PerPageBounds(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{0, DefaultPerPage},
		{-5, DefaultPerPage},
		{50, 50},
		{500, MaxPerPage},
	}

	for _, tt := range tests {
		svc := NewService(nil, tt.input, testutil.Logger())
		assert.Equal(t, tt.want, svc.perPage)
	}
}

func TestService_StarredPage(t *testing.T) {
	client := mocks.NewMockAPIClient(t)
	client.On("Request", mock.Anything, "GET /user/starred", domain.RequestParams{
		Query: map[string]string{"per_page": "100", "page": "1"},
	}).Return(&domain.APIResponse{
		StatusCode: http.StatusOK,
		Body: []byte(`[
			{"name":"hello","full_name":"octo/hello","owner":{"login":"octo"}},
			{"name":"","full_name":"broken","owner":{"login":"octo"}},
			{"name":"world","full_name":"cat/world","owner":{"login":"cat"}}
		]`),
	}, nil)

	svc := NewService(client, 100, testutil.Logger())
	repos, err := svc.StarredPage(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Repository{repo("octo", "hello"), repo("cat", "world")}, repos)
}

func TestService_StarredPage_Empty(t *testing.T) {
	client := mocks.NewMockAPIClient(t)
	client.On("Request", mock.Anything, "GET /user/starred", mock.Anything).
		Return(&domain.APIResponse{StatusCode: http.StatusOK, Body: []byte(`[]`)}, nil)

	svc := NewService(client, 0, testutil.Logger())
	repos, err := svc.StarredPage(context.Background())

	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestService_StarredPage_Errors(t *testing.T) {
	t.Run("request error is wrapped", func(t *testing.T) {
		reqErr := apperrors.NewRequestError(http.StatusUnauthorized, "GET", "/user/starred", "Bad credentials")
		client := mocks.NewMockAPIClient(t)
		client.On("Request", mock.Anything, "GET /user/starred", mock.Anything).Return(nil, reqErr)

		_, err := NewService(client, 0, testutil.Logger()).StarredPage(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(err))
	})

	t.Run("undecodable body", func(t *testing.T) {
		client := mocks.NewMockAPIClient(t)
		client.On("Request", mock.Anything, "GET /user/starred", mock.Anything).
			Return(&domain.APIResponse{StatusCode: http.StatusOK, Body: []byte(`{"not":"a list"}`)}, nil)

		_, err := NewService(client, 0, testutil.Logger()).StarredPage(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode starred repositories")
	})
}

func TestService_StarredPage_NoUsableEntries(t *testing.T) {
	client := mocks.NewMockAPIClient(t)
	client.On("Request", mock.Anything, "GET /user/starred", mock.Anything).
		Return(&domain.APIResponse{
			StatusCode: http.StatusOK,
			Body:       []byte(`[{"name":"","full_name":"broken"},{"name":"x","owner":{"login":""}}]`),
		}, nil)

	repos, err := NewService(client, 0, testutil.Logger()).StarredPage(context.Background())

	require.ErrorIs(t, err, ErrUnusablePage)
	assert.Nil(t, repos)
	assert.Contains(t, err.Error(), "2 starred entries")
}

func TestService_Unstar_PlainRequestErrorHasNoHint(t *testing.T) {
	client := mocks.NewMockAPIClient(t)
	client.On("Request", mock.Anything, "DELETE /user/starred/{owner}/{repo}", mock.Anything).
		Return(nil, apperrors.NewRequestError(http.StatusNotFound, "DELETE", "/user/starred/octo/hello", "Not Found"))

	logger, buf := testutil.CaptureLogger()
	NewService(client, 0, logger).Unstar(context.Background(), repo("octo", "hello"))

	assert.NotContains(t, buf.String(), "hint=")
}

func TestService_Unstar(t *testing.T) {
	tests := []struct {
		name    string
		resp    *domain.APIResponse
		err     error
		want    bool
		wantLog []string
	}{
		{
			name:    "no content",
			resp:    &domain.APIResponse{StatusCode: http.StatusNoContent},
			want:    true,
			wantLog: []string{"Unstarring repository", "repo=octo/hello", "Unstarred"},
		},
		{
			name:    "request error",
			err:     apperrors.NewRequestError(http.StatusNotFound, "DELETE", "/user/starred/octo/hello", "Not Found"),
			want:    false,
			wantLog: []string{"Not Found", "status=404"},
		},
		{
			name:    "rate limited",
			err:     apperrors.NewRequestError(http.StatusTooManyRequests, "DELETE", "/user/starred/octo/hello", "API rate limit exceeded"),
			want:    false,
			wantLog: []string{"API rate limit exceeded", "status=429", "lower workers or raise delay"},
		},
		{
			name:    "other error",
			err:     errors.New("boom"),
			want:    false,
			wantLog: []string{"Failed to unstar repository", "error=boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockAPIClient(t)
			client.On("Request", mock.Anything, "DELETE /user/starred/{owner}/{repo}", domain.RequestParams{
				Path: map[string]string{"owner": "octo", "repo": "hello"},
			}).Return(tt.resp, tt.err)

			logger, buf := testutil.CaptureLogger()
			got := NewService(client, 0, logger).Unstar(context.Background(), repo("octo", "hello"))

			assert.Equal(t, tt.want, got)
			for _, s := range tt.wantLog {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestService_Viewer(t *testing.T) {
	client := mocks.NewMockAPIClient(t)
	client.On("Request", mock.Anything, "GET /user", domain.RequestParams{}).
		Return(&domain.APIResponse{StatusCode: http.StatusOK, Body: []byte(`{"login":"octocat","name":"The Octocat"}`)}, nil)

	user, err := NewService(client, 0, testutil.Logger()).Viewer(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.User{Login: "octocat", Name: "The Octocat"}, user)
}

func TestService_Viewer_NoLogin(t *testing.T) {
	client := mocks.NewMockAPIClient(t)
	client.On("Request", mock.Anything, "GET /user", mock.Anything).
		Return(&domain.APIResponse{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil)

	_, err := NewService(client, 0, testutil.Logger()).Viewer(context.Background())

	require.Error(t, err)
}

func TestTokenValidator(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		factory := mocks.NewMockAPIClientFactory(t)

		err := TokenValidator(factory, testutil.Logger())(context.Background(), "   ")

		require.Error(t, err)
		assert.Equal(t, "Token is required", err.Error())
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejected by github", func(t *testing.T) {
		client := mocks.NewMockAPIClient(t)
		client.On("Request", mock.Anything, "GET /user", mock.Anything).
			Return(nil, apperrors.NewRequestError(http.StatusUnauthorized, "GET", "/user", "Bad credentials"))
		factory := mocks.NewMockAPIClientFactory(t)
		factory.On("NewClient", "ghp_bad").Return(client)

		err := TokenValidator(factory, testutil.Logger())(context.Background(), "ghp_bad")

		require.Error(t, err)
		assert.Equal(t, "Bad credentials", err.Error())
	})

	t.Run("accepted", func(t *testing.T) {
		client := mocks.NewMockAPIClient(t)
		client.On("Request", mock.Anything, "GET /user", mock.Anything).
			Return(&domain.APIResponse{StatusCode: http.StatusOK, Body: []byte(`{"login":"octocat"}`)}, nil)
		factory := mocks.NewMockAPIClientFactory(t)
		factory.On("NewClient", "ghp_good").Return(client)

		err := TokenValidator(factory, testutil.Logger())(context.Background(), "ghp_good")

		require.NoError(t, err)
	})
}

// TestService_AgainstServer drives the service through the real transport.
func TestService_AgainstServer(t *testing.T) {
	starred := []string{`{"name":"hello","full_name":"octo/hello","owner":{"login":"octo"}}`}
	var (
		mu      sync.Mutex
		deleted []string
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/starred", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ghp_live", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		mu.Lock()
		defer mu.Unlock()
		if len(deleted) > 0 {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte("[" + starred[0] + "]"))
	})
	mux.HandleFunc("DELETE /user/starred/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		deleted = append(deleted, r.PathValue("owner")+"/"+r.PathValue("repo"))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := httpadapter.NewClient("ghp_live", httpadapter.ClientOptions{BaseURL: server.URL}, testutil.Logger())
	svc := NewService(client, 0, testutil.Logger())
	ctx := context.Background()

	page, err := svc.StarredPage(ctx)
	require.NoError(t, err)
	require.Len(t, page, 1)

	assert.True(t, svc.Unstar(ctx, page[0]))
	mu.Lock()
	assert.Equal(t, []string{"octo/hello"}, deleted)
	mu.Unlock()

	page, err = svc.StarredPage(ctx)
	require.NoError(t, err)
	assert.Empty(t, page)
}
