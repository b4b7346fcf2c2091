package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hasura/go-graphql-client"
	"github.com/sirupsen/logrus"

	"github.com/juanbermudez/linear-cli/internal/auth"
)

const (
	// LinearAPIEndpoint is the Linear GraphQL API endpoint
	LinearAPIEndpoint = "https://api.linear.app/graphql"

	// UserAgent is sent with every request
	UserAgent = "linear-cli"
)

// Client is the Linear API client. It issues one request at a time and is
// not safe for concurrent use.
type Client struct {
	graphql   *graphql.Client
	transport *statusTransport
	endpoint  string
	log       *logrus.Entry
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	endpoint string
	base     http.RoundTripper
	timeout  time.Duration
	log      *logrus.Entry
}

// WithEndpoint overrides the GraphQL endpoint
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) {
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithTransport sets the underlying round tripper
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.base = rt
	}
}

// WithTimeout sets the overall request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(log *logrus.Entry) Option {
	return func(o *clientOptions) {
		o.log = log
	}
}

// NewClient creates a new Linear API client using the auth manager
func NewClient(ctx context.Context, manager *auth.Manager, opts ...Option) (*Client, error) {
	token, _, err := manager.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	return NewClientWithToken(token, opts...), nil
}

// NewClientWithToken creates a new Linear API client with a specific token
func NewClientWithToken(token string, opts ...Option) *Client {
	o := &clientOptions{
		endpoint: LinearAPIEndpoint,
		base:     http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		o.log = logrus.NewEntry(silent)
	}

	transport := &statusTransport{
		token: token,
		base:  o.base,
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   o.timeout,
	}

	return &Client{
		graphql:   graphql.NewClient(o.endpoint, httpClient),
		transport: transport,
		endpoint:  o.endpoint,
		log:       o.log,
	}
}

// Endpoint returns the GraphQL endpoint the client talks to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// statusTransport adds the Authorization header to all requests and turns
// HTTP-level failures into typed errors. The graphql client flattens
// transport errors into strings, so the classified error is kept here and
// read back by Do.
type statusTransport struct {
	token string
	base  http.RoundTripper
	err   error
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", t.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.err = &NetworkError{Err: err}
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		t.err = ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		t.err = &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		t.err = classifyStatus(resp)
	}

	return resp, nil
}

// classifyStatus inspects an unexpected status. Linear answers invalid
// queries with 400 and a regular errors array, which is surfaced as a
// GraphQL error; anything else is a network error.
func classifyStatus(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return &NetworkError{Err: err}
	}

	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return &GraphQLError{Messages: messages}
	}

	return &NetworkError{Err: fmt.Errorf("unexpected HTTP status %s", resp.Status)}
}

func parseRetryAfter(value string) int {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return DefaultRetryAfter
	}
	return seconds
}

// Do executes a GraphQL document and decodes the data object into out
func (c *Client) Do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if variables == nil {
		variables = map[string]interface{}{}
	}

	c.transport.err = nil
	c.log.WithField("variables", variables).Debugf("POST %s %s", c.endpoint, operationName(query))

	data, err := c.graphql.ExecRaw(ctx, query, variables)
	if c.transport.err != nil {
		c.log.WithError(c.transport.err).Debug("request failed")
		return c.transport.err
	}
	if err != nil {
		c.log.WithError(err).Debug("request failed")
		return classifyGraphQLError(err)
	}

	if len(data) == 0 || string(data) == "null" {
		return newGraphQLError("no data in response")
	}

	c.log.Debugf("response: %d bytes", len(data))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

// classifyGraphQLError separates errors reported by the server from errors
// raised by the graphql client itself while sending or decoding.
func classifyGraphQLError(err error) error {
	var gqlErrs graphql.Errors
	if !errors.As(err, &gqlErrs) || len(gqlErrs) == 0 {
		return &NetworkError{Err: err}
	}

	messages := make([]string, 0, len(gqlErrs))
	for _, e := range gqlErrs {
		if isClientErrorCode(e.Extensions) {
			return &NetworkError{Err: err}
		}
		messages = append(messages, e.Message)
	}

	return &GraphQLError{Messages: messages}
}

// Extension codes the graphql client attaches to its own failures
const (
	codeRequestError = "request_error"
	codeJSONEncode   = "json_encode_error"
	codeJSONDecode   = "json_decode_error"
)

func isClientErrorCode(extensions map[string]interface{}) bool {
	code, _ := extensions["code"].(string)
	switch code {
	case codeRequestError, codeJSONEncode, codeJSONDecode:
		return true
	}
	return false
}

// operationName extracts "query Name" / "mutation Name" for logging
func operationName(query string) string {
	fields := strings.Fields(query)
	if len(fields) >= 2 && (fields[0] == "query" || fields[0] == "mutation") {
		name := fields[1]
		if i := strings.IndexAny(name, "({"); i >= 0 {
			name = name[:i]
		}
		return fields[0] + " " + name
	}
	return "query"
}
