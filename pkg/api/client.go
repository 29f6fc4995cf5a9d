// Package api is the HTTP client for the cutting-path backend.
//
// Every graph-returning call yields a full canonical snapshot. Edge shapes
// and the readiness tuple are normalized here so nothing past this package
// sees the wire format.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/graph"
)

// RequestIDHeader carries the per-request id sent with every call.
const RequestIDHeader = "X-Request-Id"

// Example layouts the backend can generate.
const (
	ExampleRectangle = "retangular"
	ExampleStar      = "estrela"
	ExampleGrid      = "grade"
)

// Client talks to the backend. It has no timeout and never retries; callers
// bound calls with their context.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Graph fetches the canonical graph.
func (c *Client) Graph(ctx context.Context) (graph.Snapshot, error) {
	var resp graphResponse
	if err := c.do(ctx, http.MethodGet, "/api/grafo", nil, &resp); err != nil {
		return graph.Snapshot{}, err
	}
	return resp.snapshot(), nil
}

// CreateVertex adds a vertex. An empty id lets the backend name it.
func (c *Client) CreateVertex(ctx context.Context, id string, at geometry.Point) (graph.Snapshot, error) {
	var resp graphResponse
	body := vertexRequest{Name: id, X: at.X, Y: at.Y}
	if err := c.do(ctx, http.MethodPost, "/api/vertice", body, &resp); err != nil {
		return graph.Snapshot{}, err
	}
	return resp.snapshot(), nil
}

// DeleteVertex removes a vertex and, on the backend, every edge touching it.
func (c *Client) DeleteVertex(ctx context.Context, id string) (graph.Snapshot, error) {
	var resp graphResponse
	if err := c.do(ctx, http.MethodDelete, "/api/vertice/"+url.PathEscape(id), nil, &resp); err != nil {
		return graph.Snapshot{}, err
	}
	return resp.snapshot(), nil
}

// CreateEdge connects two vertices.
func (c *Client) CreateEdge(ctx context.Context, from, to string) (graph.Snapshot, error) {
	var resp graphResponse
	if err := c.do(ctx, http.MethodPost, "/api/aresta", edgeRequest{From: from, To: to}, &resp); err != nil {
		return graph.Snapshot{}, err
	}
	return resp.snapshot(), nil
}

// Optimize asks the backend for an optimized traversal of the current graph.
func (c *Client) Optimize(ctx context.Context, p Params) (*Result, error) {
	var res Result
	body := optimizeRequest{Speed: p.Speed, SetupTime: p.SetupTime}
	if err := c.do(ctx, http.MethodPost, "/api/otimizar", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Clear removes every vertex and edge on the backend.
func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/limpar", nil, nil)
}

// Example asks the backend for a ready-made layout. The backend replaces its
// graph with the example; callers re-create it against the live canvas.
func (c *Client) Example(ctx context.Context, kind string) (graph.Snapshot, error) {
	var resp graphResponse
	if err := c.do(ctx, http.MethodPost, "/api/exemplo/"+url.PathEscape(kind), nil, &resp); err != nil {
		return graph.Snapshot{}, err
	}
	return resp.snapshot(), nil
}

// do performs one request. Non-success statuses become *Error carrying the
// backend's message; everything else that goes wrong is a transport error.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	log.Printf("[api] %s %s (%s)", method, path, reqID)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[api] %s %s (%s) failed: %v", method, path, reqID, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			switch {
			case eb.Erro != "":
				apiErr.Message = eb.Erro
			case eb.Message != "":
				apiErr.Message = eb.Message
			}
		}
		log.Printf("[api] %s %s (%s) rejected: %d %s", method, path, reqID, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
