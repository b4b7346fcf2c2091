package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanbermudez/linear-cli/internal/auth"
)

// recordedRequest is a GraphQL request captured by the fake server
type recordedRequest struct {
	Header    http.Header
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// fakeLinear records every request and hands it to handler
type fakeLinear struct {
	t        *testing.T
	server   *httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func newFakeLinear(t *testing.T, handler http.HandlerFunc) *fakeLinear {
	t.Helper()

	f := &fakeLinear{t: t, handler: handler}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req recordedRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		req.Header = r.Header.Clone()
		r.Body = io.NopCloser(bytes.NewReader(body))

		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()

		f.handler(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

// requestQuery decodes the query text of a request inside a handler
func requestQuery(r *http.Request) string {
	var req recordedRequest
	json.NewDecoder(r.Body).Decode(&req)
	return req.Query
}

// respondJSON returns a handler writing status and body
func respondJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func (f *fakeLinear) client() *Client {
	return NewClientWithToken("lin_api_test", WithEndpoint(f.server.URL))
}

func (f *fakeLinear) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.requests)
	return f.requests[len(f.requests)-1]
}

func (f *fakeLinear) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func TestDoSendsHeaders(t *testing.T) {
	t.Parallel()

	f := newFakeLinear(t, respondJSON(http.StatusOK, `{"data":{"viewer":{"id":"u1","name":"Ada","email":"ada@example.com"}}}`))

	viewer, err := f.client().GetViewer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", viewer.Name)

	req := f.last()
	assert.Equal(t, "lin_api_test", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, UserAgent, req.Header.Get("User-Agent"))
	assert.Contains(t, req.Query, "viewer")
}

func TestDoErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name:    "unauthorized",
			handler: respondJSON(http.StatusUnauthorized, `{"errors":[{"message":"Authentication required"}]}`),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrUnauthorized)
				assert.Equal(t, ExitAuth, ExitCode(err))
			},
		},
		{
			name: "rate limited with header",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "17")
				w.WriteHeader(http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error) {
				var rl *RateLimitError
				require.ErrorAs(t, err, &rl)
				assert.Equal(t, 17, rl.RetryAfter)
				assert.Equal(t, ExitRateLimited, ExitCode(err))
			},
		},
		{
			name:    "rate limited without header",
			handler: respondJSON(http.StatusTooManyRequests, ``),
			check: func(t *testing.T, err error) {
				var rl *RateLimitError
				require.ErrorAs(t, err, &rl)
				assert.Equal(t, DefaultRetryAfter, rl.RetryAfter)
			},
		},
		{
			name:    "errors alongside data",
			handler: respondJSON(http.StatusOK, `{"data":{"viewer":{"id":"u1","name":"Ada","email":""}},"errors":[{"message":"first"},{"message":"second"}]}`),
			check: func(t *testing.T, err error) {
				var gqlErr *GraphQLError
				require.ErrorAs(t, err, &gqlErr)
				assert.Equal(t, "first, second", err.Error())
				assert.Equal(t, ExitError, ExitCode(err))
			},
		},
		{
			name:    "null data",
			handler: respondJSON(http.StatusOK, `{"data":null}`),
			check: func(t *testing.T, err error) {
				var gqlErr *GraphQLError
				require.ErrorAs(t, err, &gqlErr)
				assert.Equal(t, "no data in response", err.Error())
			},
		},
		{
			name:    "bad request with errors body",
			handler: respondJSON(http.StatusBadRequest, `{"errors":[{"message":"Cannot query field \"nope\""}]}`),
			check: func(t *testing.T, err error) {
				var gqlErr *GraphQLError
				require.ErrorAs(t, err, &gqlErr)
				assert.Contains(t, err.Error(), "Cannot query field")
			},
		},
		{
			name:    "server error without body",
			handler: respondJSON(http.StatusBadGateway, `<html>bad gateway</html>`),
			check: func(t *testing.T, err error) {
				var netErr *NetworkError
				require.ErrorAs(t, err, &netErr)
				assert.Contains(t, err.Error(), "502")
			},
		},
		{
			name:    "malformed body",
			handler: respondJSON(http.StatusOK, `{"data":`),
			check: func(t *testing.T, err error) {
				var netErr *NetworkError
				require.ErrorAs(t, err, &netErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFakeLinear(t, tt.handler)
			_, err := f.client().GetViewer(context.Background())
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, 1, f.count(), "requests are never retried")
		})
	}
}

func TestDoConnectionFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	_, err := NewClientWithToken("lin_api_test", WithEndpoint(endpoint)).GetViewer(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "Network error", ErrorLabel(err))
	assert.Equal(t, "NETWORK_ERROR", ErrorCode(err))
}

func TestNewClientWithoutCredentials(t *testing.T) {
	t.Parallel()

	manager := auth.NewManager(
		auth.WithStorage(emptyStorage{}),
		auth.WithGetenv(func(string) string { return "" }),
	)
	_, err := NewClient(context.Background(), manager)
	require.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.Equal(t, ExitAuth, ExitCode(err))
	assert.Equal(t, "Missing credentials", ErrorLabel(err))
}

type emptyStorage struct{}

func (emptyStorage) GetAPIKey() (string, error) { return "", nil }
func (emptyStorage) SetAPIKey(string) error     { return nil }
func (emptyStorage) DeleteAPIKey() error        { return nil }

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{errors.New("boom"), ExitError},
		{&GraphQLError{Messages: []string{"x"}}, ExitError},
		{&NetworkError{Err: errors.New("dial")}, ExitError},
		{ErrUnauthorized, ExitAuth},
		{auth.ErrNotAuthenticated, ExitAuth},
		{&NotFoundError{Resource: "issue", ID: "ENG-1"}, ExitNotFound},
		{&RateLimitError{RetryAfter: 5}, ExitRateLimited},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "issue 'ENG-1' not found", (&NotFoundError{Resource: "issue", ID: "ENG-1"}).Error())
	assert.Equal(t, "rate limited, retry after 60 seconds", (&RateLimitError{RetryAfter: 60}).Error())
	assert.Equal(t, "NOT_FOUND", ErrorCode(&NotFoundError{}))
	assert.Equal(t, "API_ERROR", ErrorCode(&GraphQLError{}))
	assert.Equal(t, "ERROR", ErrorCode(errors.New("x")))
}
