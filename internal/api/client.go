// Package api is the typed gateway to the CA$HIFY REST API.
//
// Every remote operation has one method. Calls are independent, never
// retried, and bounded only by the configured http.Client and the caller's
// context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cashify/internal/core"
	"cashify/internal/log"
	"cashify/internal/metrics"
)

const maxErrorBody = 64 << 10

// Client talks JSON to the REST API rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	loc     *time.Location
	logger  *log.Logger
}

// New returns a client for baseURL. A nil httpClient means http.DefaultClient.
// Wall clock timestamps are read and written in loc; nil means local time.
func New(baseURL string, httpClient *http.Client, loc *time.Location, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse API base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API base URL %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    httpClient,
		loc:     loc,
		logger:  logger.WithComponent(log.ComponentAPI),
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Location is the zone of the API's wall clock timestamps.
func (c *Client) Location() *time.Location {
	return c.loc
}

// do performs one call. in is sent as JSON when non-nil; out is filled from
// a 2xx body when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, op, method, path, query, in, out)
	elapsed := time.Since(start)

	metrics.UpstreamCount.WithLabelValues(op, metrics.Outcome(status)).Inc()
	metrics.UpstreamDuration.WithLabelValues(op).Observe(elapsed.Seconds())

	fields := []any{
		log.FieldUpstream, op,
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldUpstreamCode, status,
		log.FieldDuration, elapsed.Milliseconds(),
	}
	if err != nil {
		c.logger.WarnContext(ctx, "Upstream call failed", append(fields, log.FieldError, err)...)
		return err
	}
	c.logger.DebugContext(ctx, "Upstream call", fields...)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, query url.Values, in, out any) (int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return resp.StatusCode, &Error{Op: op, Status: resp.StatusCode, Message: eb.text()}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return resp.StatusCode, fmt.Errorf("%s: empty response body", op)
		}
		return resp.StatusCode, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) periodQuery(p core.Period) url.Values {
	return url.Values{
		"fechaInicio": {p.Start.In(c.loc).Format(TimestampLayout)},
		"fechaFin":    {p.End.In(c.loc).Format(TimestampLayout)},
	}
}

// idPath fills the %s verbs of format with escaped ids.
func idPath(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
