// Package graph is a minimal Microsoft Graph client for SharePoint sites, lists, columns and items.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"salestrack/internal/core/apperror"
	"salestrack/pkg/logger"
)

var tracer = otel.Tracer("salestrack/graph")

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL string        // e.g. https://graph.microsoft.com/v1.0
	Timeout time.Duration // per request, enforced by http.Client
}

// Client talks to Graph with an elevated token (Sites.Manage.All or Sites.FullControl.All).
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient creates a Client without checking credentials.
func NewClient(cfg ClientConfig, tokens TokenSource) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// NewAdminClient creates a Client and verifies a credential is available.
// A missing or expired session yields an AUTH_ERROR; callers must not retry.
func NewAdminClient(ctx context.Context, cfg ClientConfig, tokens TokenSource) (*Client, error) {
	if tokens == nil {
		return nil, apperror.NewAuth(fmt.Errorf("no token source configured"))
	}
	if _, err := tokens.Token(ctx); err != nil {
		return nil, apperror.NewAuth(err)
	}
	return NewClient(cfg, tokens), nil
}

// do performs one Graph call. path is relative to BaseURL unless it is an
// absolute @odata.nextLink. in is JSON-encoded when non-nil; out is decoded when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		target = c.baseURL + path
	}

	ctx, span := tracer.Start(ctx, "graph "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("graph.path", path),
		))
	defer span.End()

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "token")
		return apperror.NewAuth(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	logger.Debug(ctx, "graph call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 300 {
		remote := &RemoteError{Status: resp.StatusCode, Method: method, Path: path}
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &eb) == nil {
			remote.Code = eb.Error.Code
			remote.Message = eb.Error.Message
		}
		span.SetStatus(codes.Error, remote.Code)

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return apperror.NewAuth(remote)
		}
		return remote
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// getAll follows @odata.nextLink until the collection is exhausted.
func getAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T
	for next := path; next != ""; {
		var p page[T]
		if err := c.do(ctx, http.MethodGet, next, nil, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Value...)
		next = p.NextLink
	}
	return all, nil
}

// IsStatus reports whether err is a RemoteError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Status == status
	}
	return false
}
