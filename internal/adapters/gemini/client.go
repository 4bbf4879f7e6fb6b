// Package gemini implements the intent classifier and report summarizer
// collaborators over the generativelanguage generateContent REST API.
package gemini

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

	"github.com/TaniCatat/tani_catat_app/internal/apperrors"
	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	"github.com/TaniCatat/tani_catat_app/internal/dto"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-pro"
	defaultTimeout = 15 * time.Second

	responseBodyReadLimit int64 = 1 << 20

	// noAnswerReply is returned when the model produced no candidates at all.
	noAnswerReply = "Tidak ada jawaban dari model."
)

var errAPIKeyRequired = errors.New("gemini api key is required")

// Client wraps the Gemini generateContent API for intent classification and
// report summarization.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(model)
		if trimmed != "" {
			c.model = trimmed
		}
	}
}

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the Gemini client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Classify sends the prompt together with the declared bookkeeping function
// schemas and returns the model's text and structured calls in order.
func (c *Client) Classify(ctx context.Context, prompt string) (dto.ClassifierResult, error) {
	req := generateContentRequest{
		SystemInstruction: &content{Parts: []part{{Text: classifierInstruction}}},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		Tools: []tool{{FunctionDeclarations: intentDeclarations()}},
	}

	resp, err := c.generateContent(ctx, req)
	if err != nil {
		return dto.ClassifierResult{}, err
	}

	result := dto.ClassifierResult{}
	if len(resp.Candidates) == 0 {
		result.Text = noAnswerReply
		return result, nil
	}

	var texts []string
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.FunctionCall != nil {
			result.Calls = append(result.Calls, dto.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			})
		}
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	result.Text = strings.TrimSpace(strings.Join(texts, "\n"))
	if result.Text == "" && len(result.Calls) == 0 {
		result.Text = noAnswerReply
	}
	return result, nil
}

// Summarize asks the model to answer the question strictly from the
// supplied line items. The full filtered set plus the current date is
// embedded in the system instruction so the model has everything needed to
// answer without fabrication.
func (c *Client) Summarize(ctx context.Context, question string, lines []domain.ReportLine, asOf time.Time) (string, error) {
	req := generateContentRequest{
		SystemInstruction: &content{Parts: []part{{Text: summarizerInstruction(lines, asOf)}}},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: question}}},
		},
	}

	resp, err := c.generateContent(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return noAnswerReply, nil
	}

	var texts []string
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	answer := strings.TrimSpace(strings.Join(texts, "\n"))
	if answer == "" {
		return noAnswerReply, nil
	}
	return answer, nil
}

func (c *Client) generateContent(ctx context.Context, payload generateContentRequest) (*generateContentResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstream, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", apperrors.ErrUpstream, err)
	}

	var resp generateContentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", apperrors.ErrUpstream, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		message := "Gemini API error"
		if resp.Error != nil && resp.Error.Message != "" {
			message = resp.Error.Message
		}
		return nil, fmt.Errorf("%w: %s (status %d)", apperrors.ErrUpstream, message, httpResp.StatusCode)
	}

	return &resp, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
