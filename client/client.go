// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/voting"
)

const defaultTimeout = 10 * time.Second

var ErrEmptyEndpoint = errors.New("endpoint URL is empty")

// Client talks to a voting endpoint. It satisfies voting.Remote.
type Client struct {
	endpoint string
	mode     voting.Mode
	http     *http.Client

	mu       sync.Mutex
	deadline time.Time
}

var _ voting.Remote = (*Client)(nil)

type Option func(*Client)

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for endpoint, the URL that serves GET and POST /voting.
func New(endpoint string, mode voting.Mode, opts ...Option) (*Client, error) {
	endpoint = strings.TrimRight(endpoint, "/")
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}
	if mode == "" {
		mode = voting.ModeNested
	}

	c := &Client{
		endpoint: endpoint,
		mode:     mode,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch loads the ballot and the caller's votes.
func (c *Client) Fetch(ctx context.Context) (voting.State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return voting.State{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return voting.State{}, fmt.Errorf("failed to fetch nominations: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return voting.State{}, fmt.Errorf("failed to fetch nominations: %w", readRejection(res))
	}

	var resp models.StateResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return voting.State{}, fmt.Errorf("failed to decode nominations: %w", err)
	}
	if err := models.ValidateBallot(resp.Nominations); err != nil {
		return voting.State{}, err
	}
	if err := models.Validate(resp); err != nil {
		return voting.State{}, err
	}

	if resp.Deadline != nil {
		c.mu.Lock()
		c.deadline = *resp.Deadline
		c.mu.Unlock()
	}

	return resp.ToState(c.mode), nil
}

// Deadline returns the deadline reported by the last Fetch, or the zero time.
func (c *Client) Deadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadline
}

// SubmitVote posts one vote. A refusal by the server is a *voting.RejectedError.
// Non-2xx replies without an {"error": ...} body are returned as plain errors.
func (c *Client) SubmitVote(ctx context.Context, target int64) error {
	body := models.VoteRequest{CandidateID: target}
	if c.mode == voting.ModeFlat {
		body = models.VoteRequest{NominationID: target}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode vote: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit vote: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return readRejection(res)
	}
	io.Copy(io.Discard, res.Body)
	return nil
}

// Results fetches the server-side ranking from <endpoint>/results.
func (c *Client) Results(ctx context.Context) (models.ResultsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/results", nil)
	if err != nil {
		return models.ResultsResponse{}, fmt.Errorf("failed to build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return models.ResultsResponse{}, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return models.ResultsResponse{}, fmt.Errorf("failed to fetch results: %w", readRejection(res))
	}

	var resp models.ResultsResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return models.ResultsResponse{}, fmt.Errorf("failed to decode results: %w", err)
	}
	return resp, nil
}

// readRejection turns a non-2xx response into a RejectedError when the body
// carries the server's {"error": ...} message. Anything else (a proxy page,
// an empty body) is a plain error, reported to voters as a connectivity problem.
func readRejection(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))

	var e models.ErrorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.Error != "" {
		return &voting.RejectedError{StatusCode: res.StatusCode, Message: e.Error}
	}
	return fmt.Errorf("unexpected status %d", res.StatusCode)
}
