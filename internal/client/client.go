// Package client talks to a snow globe server from the drawing pad.
package client

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

	"snowglobe/internal/server"
	"snowglobe/internal/state"
	"snowglobe/internal/store"
	"snowglobe/internal/treecodec"
)

// ErrNotFound is returned when the server has no submission for a short id.
var ErrNotFound = errors.New("client: submission not found")

// APIError is a failed API call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: server returned %d", e.Status)
	}
	return fmt.Sprintf("client: server returned %d: %s", e.Status, e.Message)
}

// Client calls the submission API at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client with a bounded request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Payload is a finished design ready to submit.
type Payload struct {
	Points    []state.Point
	Ornaments []state.Ornament
	Engraving state.Engraving
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) call(ctx context.Context, method, path string, body any) (*server.Response, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var out server.Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &APIError{Status: res.StatusCode, Message: "unreadable response: " + err.Error()}
	}
	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, out.Error)
	}
	if res.StatusCode != http.StatusOK || !out.OK {
		return nil, &APIError{Status: res.StatusCode, Message: out.Error}
	}
	return &out, nil
}

// Submit serializes the design in the compact format, stores it and returns
// the new submission with its share link.
func (c *Client) Submit(ctx context.Context, p Payload) (*store.Submission, string, error) {
	tree, err := treecodec.SerializeJSON(p.Points, p.Ornaments)
	if err != nil {
		return nil, "", err
	}
	out, err := c.call(ctx, http.MethodPost, "/api/submission", server.CreateRequest{Tree: tree, Engraving: p.Engraving})
	if err != nil {
		return nil, "", err
	}
	if out.Submission == nil {
		return nil, "", &APIError{Status: http.StatusOK, Message: "response without submission"}
	}
	return out.Submission, out.URL, nil
}

// Fetch returns a stored submission.
func (c *Client) Fetch(ctx context.Context, shortID string) (*store.Submission, error) {
	out, err := c.call(ctx, http.MethodGet, "/api/submission/"+url.PathEscape(shortID), nil)
	if err != nil {
		return nil, err
	}
	return out.Submission, nil
}

// FetchTree returns a stored submission with its tree decoded.
func (c *Client) FetchTree(ctx context.Context, shortID string) (*store.Submission, treecodec.Tree, error) {
	sub, err := c.Fetch(ctx, shortID)
	if err != nil {
		return nil, treecodec.Tree{}, err
	}
	tree, err := treecodec.DeserializeJSON(sub.Tree)
	if err != nil {
		return nil, treecodec.Tree{}, err
	}
	return sub, tree, nil
}

// SendEmail records the recipient address and asks the server to mail the
// share link.
func (c *Client) SendEmail(ctx context.Context, shortID, email string) error {
	_, err := c.call(ctx, http.MethodPost, "/api/submission/email/"+url.PathEscape(shortID), server.EmailRequest{Email: email})
	return err
}
