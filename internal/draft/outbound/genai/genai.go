// Package genai calls the Google generative-language REST API to produce
// email subject and body text from a prompt.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/retry"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 30 * time.Second

	maxAttempts = 3
	retryDelay  = time.Second
)

var (
	// ErrAPIKeyMissing indicates the generation API key is not configured.
	// It is returned before any request is made and is never retried.
	ErrAPIKeyMissing = errors.New("generation api key is not configured")
	// ErrEmptyResponse indicates the API returned no usable candidate text.
	ErrEmptyResponse = errors.New("generation api returned no content")
)

// APIError is a non-2xx response from the generation API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("generation api error (status %d): %s", e.StatusCode, e.Message)
}

// Config configures the generation client.
type Config struct {
	// APIKey authenticates requests; checked at Generate time.
	APIKey string
	// BaseURL overrides the API base URL, mainly for tests.
	BaseURL string
	// Model overrides the model name.
	Model string
	// Timeout bounds a single HTTP request.
	Timeout time.Duration
}

// Client generates email content with a bounded retry policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	policy     retry.Policy
	ins        instrument.Instrumentation
}

func NewClient(cfg Config, ins instrument.Instrumentation) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     cfg.APIKey,
		policy:     retry.Policy{MaxAttempts: maxAttempts, Delay: retry.Linear(retryDelay)},
		ins:        ins,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate produces email content for the given prompt. Transport failures
// and unparsable responses each consume one of the retry attempts; on
// exhaustion the returned error is a *retry.ExhaustedError.
func (c *Client) Generate(ctx context.Context, prompt, recipientName, additionalContext string) (entity.GeneratedContent, error) {
	ctx, span := c.ins.Tracer("draft.outbound.genai").Start(ctx, "Generate")
	defer span.End()

	if c.apiKey == "" {
		span.SetStatus(codes.Error, ErrAPIKeyMissing.Error())
		return entity.GeneratedContent{}, ErrAPIKeyMissing
	}

	instruction := buildPrompt(prompt, recipientName, additionalContext)

	out, err := retry.Do(ctx, c.policy, func(ctx context.Context) (entity.GeneratedContent, error) {
		text, errCall := c.generateText(ctx, instruction)
		if errCall != nil {
			slog.WarnContext(ctx, "generation attempt failed", "error", errCall)
			return entity.GeneratedContent{}, errCall
		}

		return parseGenerated(text, prompt)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return entity.GeneratedContent{}, err
	}

	return out, nil
}

func buildPrompt(prompt, recipientName, additionalContext string) string {
	if recipientName == "" {
		recipientName = "Recipient"
	}
	if additionalContext == "" {
		additionalContext = "None"
	}

	var sb strings.Builder
	sb.WriteString("Generate a professional email with the following requirements:\n\n")
	fmt.Fprintf(&sb, "Context: %s\n", prompt)
	fmt.Fprintf(&sb, "Recipient Name: %s\n", recipientName)
	fmt.Fprintf(&sb, "Additional Context: %s\n\n", additionalContext)
	sb.WriteString("Please format the response with:\n")
	sb.WriteString("1. A clear subject line\n")
	sb.WriteString("2. Proper greeting\n")
	sb.WriteString("3. Professional body content\n")
	sb.WriteString("4. Appropriate closing\n\n")
	sb.WriteString("Return the result in plain text format with a clear \"Subject:\" line followed by the email body.")

	return sb.String()
}

func (c *Client) generateText(ctx context.Context, instruction string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: instruction}}}},
		GenerationConfig: &generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1000,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var decoded generateResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if errJSON := json.Unmarshal(body, &decoded); errJSON == nil && decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", err
	}

	if len(decoded.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}

	return sb.String(), nil
}
