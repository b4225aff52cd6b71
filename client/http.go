package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

type Response struct {
	Status     string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func toResponse(r *http.Response) (*Response, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		Status:     r.Status,
		StatusCode: r.StatusCode,
		Header:     r.Header,
		Body:       body,
	}, nil
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	return toResponse(resp)
}

// Post makes an HTTP POST request to a path on the server
func (c *Client) Post(ctx context.Context, path string, headers map[string]string, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req)
}

// Get makes an HTTP GET request to a path on the server
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req)
}
