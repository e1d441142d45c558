// Package anki is the HTTP client for the local flashcard sink
// (AnkiConnect protocol).
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/starford/laguz/internal/apperr"
)

const protocolVersion = 6

// Client talks to the flashcard sink at a fixed local endpoint.
type Client struct {
	endpoint       string
	allowDuplicate bool
	httpClient     *http.Client
}

// NewClient creates a sink client. timeout bounds each HTTP round trip.
func NewClient(endpoint string, allowDuplicate bool, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:       endpoint,
		allowDuplicate: allowDuplicate,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

type noteParams struct {
	Note note `json:"note"`
}

type note struct {
	DeckName  string      `json:"deckName"`
	ModelName string      `json:"modelName"`
	Fields    noteFields  `json:"fields"`
	Options   noteOptions `json:"options"`
}

type noteFields struct {
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

type noteOptions struct {
	AllowDuplicate bool `json:"allowDuplicate"`
}

// Ping is the cheap pre-flight check used before any per-term work. It
// issues the protocol's version action and reports ErrSinkUnavailable on
// any transport failure.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.call(ctx, request{Action: "version", Version: protocolVersion}); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrSinkUnavailable, err)
	}
	return nil
}

// AddNote sends one front/back card to the given deck. A sink-reported
// duplicate surfaces as ErrDuplicateCard so the caller can count it as
// skipped rather than failed.
func (c *Client) AddNote(ctx context.Context, front, back, deck string) error {
	resp, err := c.call(ctx, request{
		Action:  "addNote",
		Version: protocolVersion,
		Params: noteParams{Note: note{
			DeckName:  deck,
			ModelName: "Basic",
			Fields:    noteFields{Front: front, Back: back},
			Options:   noteOptions{AllowDuplicate: c.allowDuplicate},
		}},
	})
	if err != nil {
		return err
	}
	if resp.Error != nil {
		if strings.Contains(strings.ToLower(*resp.Error), "duplicate") {
			return apperr.ErrDuplicateCard
		}
		return fmt.Errorf("anki: addNote: %s", *resp.Error)
	}
	return nil
}

func (c *Client) call(ctx context.Context, req request) (*response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("anki: marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anki: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anki: %s: %w", req.Action, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anki: %s: unexpected status %d", req.Action, httpResp.StatusCode)
	}

	var resp response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("anki: decode response: %w", err)
	}
	return &resp, nil
}
