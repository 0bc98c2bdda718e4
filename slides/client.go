package slides

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Service is the remote presentation document boundary: fetch a current
// snapshot, apply an ordered mutation batch, create a new document.
type Service interface {
	Presentation(ctx context.Context, id string) (*Presentation, error)
	BatchUpdate(ctx context.Context, id string, reqs []*Request) (*BatchUpdateResponse, error)
	Create(ctx context.Context, title string) (*Presentation, error)
}

// Client implements Service over a Slides shaped HTTP endpoint with bearer
// token authorization.
type Client struct {
	endpoint string
	token    string
	hc       *http.Client
	log      *zap.Logger
}

// NewClient creates a service client. The timeout bounds every individual
// remote call on top of whatever deadline the passed context carries.
func NewClient(endpoint, token string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		hc:       &http.Client{Timeout: timeout},
		log:      log.Named("slides"),
	}
}

// Presentation fetches a current snapshot of the document.
func (c *Client) Presentation(ctx context.Context, id string) (*Presentation, error) {
	var p Presentation
	if err := c.call(ctx, http.MethodGet, "/v1/presentations/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return nil, fmt.Errorf("unable to fetch presentation %q: %w", id, err)
	}
	c.log.Debug("Fetched snapshot",
		zap.String("id", p.PresentationID),
		zap.Int("slides", len(p.Slides)),
		zap.Int("layouts", len(p.Layouts)),
		zap.Int("masters", len(p.Masters)))
	return &p, nil
}

// BatchUpdate applies reqs to the document in order as one atomic call.
func (c *Client) BatchUpdate(ctx context.Context, id string, reqs []*Request) (*BatchUpdateResponse, error) {
	if len(reqs) == 0 {
		return &BatchUpdateResponse{PresentationID: id}, nil
	}

	start := time.Now()
	body := struct {
		Requests []*Request `json:"requests"`
	}{Requests: reqs}

	var resp BatchUpdateResponse
	if err := c.call(ctx, http.MethodPost, "/v1/presentations/"+url.PathEscape(id)+":batchUpdate", reqs, body, &resp); err != nil {
		return nil, err
	}
	c.log.Debug("Applied batch",
		zap.String("id", id),
		zap.Int("requests", len(reqs)),
		zap.Duration("elapsed", time.Since(start)))
	return &resp, nil
}

// Create makes a new presentation with the given title and returns its first
// snapshot.
func (c *Client) Create(ctx context.Context, title string) (*Presentation, error) {
	body := struct {
		Title string `json:"title,omitempty"`
	}{Title: title}

	var p Presentation
	if err := c.call(ctx, http.MethodPost, "/v1/presentations", nil, body, &p); err != nil {
		return nil, fmt.Errorf("unable to create presentation: %w", err)
	}
	c.log.Info("Created presentation", zap.String("id", p.PresentationID), zap.String("title", p.Title))
	return &p, nil
}

// call performs one HTTP round trip. reqs, when not nil, lets error
// classification resolve batch failure positions back to request payloads.
func (c *Client) call(ctx context.Context, method, path string, reqs []*Request, in, out any) error {

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("unable to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("unable to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("remote call failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("unable to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var we wireError
		if err := json.Unmarshal(data, &we); err != nil || we.Error.Code == 0 && len(we.Error.Message) == 0 {
			return rawError(resp.StatusCode, data)
		}
		return classifyError(resp.StatusCode, &we, reqs)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("unable to decode response: %w", err)
		}
	}
	return nil
}
