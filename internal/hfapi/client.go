// Package hfapi provides a client for HuggingFace-style text inference APIs:
// per-class classification models and abstractive summarization models.
package hfapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Sentinel errors for inference backend failures. Callers treat all of them
// as soft failures and fall back to local analysis.
var (
	ErrUnreachable = errors.New("inference backend unreachable")
	ErrTimeout     = errors.New("inference request timeout")
	ErrBadStatus   = errors.New("inference backend returned non-2xx status")
	ErrMalformed   = errors.New("inference backend returned malformed payload")
)

// ClassScore is one class probability from a classification model.
type ClassScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SummarizeParams bound the length of a generated summary.
type SummarizeParams struct {
	MaxLength int
	MinLength int
}

// Client is the interface for calling text inference models.
type Client interface {
	// TextClassification runs a classification model and returns the
	// per-class probabilities, flattened from the API's nested shape.
	TextClassification(ctx context.Context, model, text string) ([]ClassScore, error)
	// Summarize runs a summarization model and returns the generated text.
	Summarize(ctx context.Context, model, text string, params SummarizeParams) (string, error)
}

// HTTPClient implements Client against the HuggingFace inference HTTP API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates an inference client with a bounded per-call timeout.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type inferenceRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

func (c *HTTPClient) TextClassification(ctx context.Context, model, text string) ([]ClassScore, error) {
	body, err := c.post(ctx, model, inferenceRequest{
		Inputs:     text,
		Parameters: map[string]any{"return_all_scores": true},
	})
	if err != nil {
		return nil, err
	}

	// Classification results arrive as [[{label,score},...]] for a single
	// input; some deployments return the inner array directly.
	var nested [][]ClassScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}
	var flat []ClassScore
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, fmt.Errorf("%w: no class scores in response", ErrMalformed)
}

func (c *HTTPClient) Summarize(ctx context.Context, model, text string, params SummarizeParams) (string, error) {
	req := inferenceRequest{
		Inputs: text,
		Parameters: map[string]any{
			"do_sample": false,
		},
	}
	if params.MaxLength > 0 {
		req.Parameters["max_length"] = params.MaxLength
	}
	if params.MinLength > 0 {
		req.Parameters["min_length"] = params.MinLength
	}

	body, err := c.post(ctx, model, req)
	if err != nil {
		return "", err
	}

	var out []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.Unmarshal(body, &out); err != nil || len(out) == 0 || out[0].SummaryText == "" {
		return "", fmt.Errorf("%w: no summary_text in response", ErrMalformed)
	}

	return out[0].SummaryText, nil
}

func (c *HTTPClient) post(ctx context.Context, model string, payload inferenceRequest) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
