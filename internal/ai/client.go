package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carlosmendieta/resumeforge-backend/pkg/config"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
)

// Client talks to the external AI service. All calls are plain JSON POSTs
// with a bounded retry on transport errors and 5xx answers.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds an AI client from configuration.
func NewClient(cfg config.AIConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ai base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type generateRequest struct {
	Type    string         `json:"type"`
	Context map[string]any `json:"context"`
}

type generateResponse struct {
	Text string `json:"text"`
}

type scoreRequest struct {
	Document types.ResumeDocument `json:"document"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

// Generate asks the AI service for one piece of text of the given kind.
func (c *Client) Generate(ctx context.Context, kind string, promptContext map[string]any) (string, error) {
	body, err := json.Marshal(generateRequest{Type: kind, Context: promptContext})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode ai request")
	}

	var out generateResponse
	if err := c.postJSON(ctx, "/v1/generate", body, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

// Score asks the external scorer to rate the document for ATS compatibility.
func (c *Client) Score(ctx context.Context, document types.ResumeDocument) (int, error) {
	body, err := json.Marshal(scoreRequest{Document: document})
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode ai request")
	}

	var out scoreResponse
	if err := c.postJSON(ctx, "/v1/score", body, &out); err != nil {
		return 0, err
	}
	if out.Score < 0 || out.Score > 100 {
		return 0, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("ai service returned score %d outside 0..100", out.Score))
	}
	return out.Score, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte, out any) error {
	resp, err := c.doWithRetry(ctx, path, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call ai service")
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read ai response")
	}
	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("ai service answered %d", resp.StatusCode))
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode ai response")
	}
	return nil
}

func (c *Client) doWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	const attempts = 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}
		if err == nil {
			lastErr = fmt.Errorf("ai service answered %d", resp.StatusCode)
			_ = resp.Body.Close()
		} else {
			lastErr = err
		}

		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
