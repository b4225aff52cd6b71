// Package client talks to a verification center served over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tinfoilsh/verification-center/bridge"
	"github.com/tinfoilsh/verification-center/verification"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrNotModified      = errors.New("document not modified")
	ErrNoDocument       = errors.New("no verification document received")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPinnedCertificate only accepts a server whose leaf certificate has the given SHA-256 fingerprint
func WithPinnedCertificate(certFP []byte) Option {
	return func(c *Client) {
		base := c.httpClient.Transport
		c.httpClient = &http.Client{
			Transport: &TLSBoundRoundTripper{ExpectedCertFP: certFP, Base: base},
			Timeout:   c.httpClient.Timeout,
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func decodeError(resp *Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(resp.Body, &body)

	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("%w: %s", bridge.ErrVersionNotAllowed, body.Error)
	}
	if body.Error != "" {
		return fmt.Errorf("%w: %s: %s", ErrUnexpectedStatus, resp.Status, body.Error)
	}
	return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.Get(ctx, path, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Send delivers a message to the center and returns the center's replies
func (c *Client) Send(ctx context.Context, msg bridge.Message) ([]bridge.Message, error) {
	body, err := bridge.Encode(msg)
	if err != nil {
		return nil, err
	}

	resp, err := c.Post(ctx, "/v1/messages", nil, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var out struct {
		Outbox []bridge.Message `json:"outbox"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("decoding outbox: %w", err)
	}
	return out.Outbox, nil
}

// PushDocument replaces the center's current document
func (c *Client) PushDocument(ctx context.Context, doc *verification.Document, verifierVersion string) error {
	_, err := c.Send(ctx, bridge.DocumentMessage(doc, verifierVersion))
	return err
}

func (c *Client) Status(ctx context.Context, loading bool) (*verification.VerificationStatus, error) {
	var status verification.VerificationStatus
	path := "/v1/status?" + url.Values{"loading": {strconv.FormatBool(loading)}}.Encode()
	if err := c.getJSON(ctx, path, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Badge(ctx context.Context, fallback verification.BadgeState) (*verification.BadgeStatus, error) {
	var badge verification.BadgeStatus
	path := "/v1/badge?" + url.Values{"fallback": {string(fallback)}}.Encode()
	if err := c.getJSON(ctx, path, &badge); err != nil {
		return nil, err
	}
	return &badge, nil
}

// Document fetches the center's current document and its digest tag.
// Passing the tag of a previous fetch returns ErrNotModified if the document has not changed.
func (c *Client) Document(ctx context.Context, etag string) (*verification.Document, string, error) {
	var headers map[string]string
	if etag != "" {
		headers = map[string]string{"If-None-Match": etag}
	}

	resp, err := c.Get(ctx, "/v1/document", headers)
	if err != nil {
		return nil, "", err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotModified:
		return nil, etag, ErrNotModified
	case http.StatusNotFound:
		return nil, "", ErrNoDocument
	default:
		return nil, "", decodeError(resp)
	}

	doc, err := verification.Parse(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return doc, resp.Header.Get("ETag"), nil
}
