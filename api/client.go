// Package api talks to a running `datetime serve` instance.
package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/honganh1206/datetime/history"
	"github.com/honganh1206/datetime/server"
)

const DefaultURL = "http://localhost:11436"

var ErrNoMatch = errors.New("no known format matches the input")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

func (c *Client) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/health", nil, nil)
}

// Parse returns an *HTTPError carrying the server's diagnostic when the input
// does not match the pattern.
func (c *Client) Parse(ctx context.Context, req server.ParseRequest) (*server.ParseResponse, error) {
	var resp server.ParseResponse
	if err := c.doRequest(ctx, http.MethodPost, "/parse", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Guess(ctx context.Context, input string) (*server.GuessResponse, error) {
	var resp server.GuessResponse
	err := c.doRequest(ctx, http.MethodPost, "/guess", server.GuessRequest{Input: input}, &resp)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Diagnostic.Kind == "no_match" {
			return nil, ErrNoMatch
		}
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Formats(ctx context.Context) ([]string, error) {
	var resp server.FormatsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/formats", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Formats, nil
}

func (c *Client) History(ctx context.Context, limit int) ([]*history.Record, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var records []*history.Record
	if err := c.doRequest(ctx, http.MethodGet, "/history?"+q.Encode(), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) HistoryRecord(ctx context.Context, id string) (*history.Record, error) {
	var record history.Record
	if err := c.doRequest(ctx, http.MethodGet, "/history/"+url.PathEscape(id), nil, &record); err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, history.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}
