package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/retry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, instrument.NewNoop())
	c.policy = retry.Policy{MaxAttempts: 3}
	return c
}

func candidateResponse(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return b
}

func TestClient_Generate(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(candidateResponse("Subject: Project Kickoff\nHi Ada,\n\nLet's begin.\nBest"))
	})

	out, err := c.Generate(context.Background(), "kick off the project", "Ada", "keep it short")
	require.NoError(t, err)
	require.Equal(t, "Project Kickoff", out.Subject)
	require.Equal(t, "Hi Ada,\n\nLet's begin.\nBest", out.Body)
	require.Equal(t, "kick off the project", out.PromptUsed)

	require.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	require.Equal(t, "test-key", gotKey)
	require.Len(t, gotReq.Contents, 1)
	require.Contains(t, gotReq.Contents[0].Parts[0].Text, "Context: kick off the project")
	require.Contains(t, gotReq.Contents[0].Parts[0].Text, "Recipient Name: Ada")
	require.Contains(t, gotReq.Contents[0].Parts[0].Text, "Additional Context: keep it short")
	require.NotNil(t, gotReq.GenerationConfig)
	require.InDelta(t, 0.7, gotReq.GenerationConfig.Temperature, 0.001)
	require.Equal(t, 40, gotReq.GenerationConfig.TopK)
	require.Equal(t, 1000, gotReq.GenerationConfig.MaxOutputTokens)
}

func TestClient_GenerateMissingAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL}, instrument.NewNoop())

	_, err := c.Generate(context.Background(), "hello", "", "")
	require.ErrorIs(t, err, ErrAPIKeyMissing)
	require.False(t, called)
}

func TestClient_GenerateRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(candidateResponse("Subject: Hello\nBody text"))
	})

	out, err := c.Generate(context.Background(), "hello", "", "")
	require.NoError(t, err)
	require.Equal(t, "Hello", out.Subject)
	require.Equal(t, 2, attempts)
}

func TestClient_GenerateExhaustsAttempts(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Generate(context.Background(), "hello", "", "")
	require.Equal(t, 3, attempts)

	var exhausted *retry.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, 3, exhausted.Attempts)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestClient_GenerateAuthFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	})

	_, err := c.Generate(context.Background(), "hello", "", "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "API key not valid")
}

func TestClient_GenerateUnparsableConsumesAttempts(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		// subject line present but body empty: unparsable
		w.Write(candidateResponse("Subject: Only a subject"))
	})

	_, err := c.Generate(context.Background(), "hello", "", "")
	require.Equal(t, 3, attempts)
	require.ErrorIs(t, err, errUnparsable)
}

func TestParseGenerated(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantSubject string
		wantBody    string
		wantErr     bool
	}{
		{
			name:        "subject line with colon",
			text:        "Subject: Weekly Report\nHi team,\nNumbers attached.",
			wantSubject: "Weekly Report",
			wantBody:    "Hi team,\nNumbers attached.",
		},
		{
			name:        "subject line not first",
			text:        "Here is your email\nSubject: Follow Up\nHello there",
			wantSubject: "Follow Up",
			wantBody:    "Hello there",
		},
		{
			name:        "lowercase subject prefix without colon",
			text:        "subject Weekly Report\nHi team",
			wantSubject: fallbackSubject,
			wantBody:    "Hi team",
		},
		{
			name:        "no subject line uses first line",
			text:        "Quarterly numbers look great\nHi team,\nWell done.",
			wantSubject: "Quarterly numbers look great",
			wantBody:    "Hi team,\nWell done.",
		},
		{
			name:        "single line without subject gets placeholder body",
			text:        "Just one line",
			wantSubject: "Just one line",
			wantBody:    fallbackBody,
		},
		{
			name:        "empty text gets placeholders",
			text:        "\n\n",
			wantSubject: fallbackSubject,
			wantBody:    fallbackBody,
		},
		{
			name:    "subject line with empty body fails",
			text:    "Subject: Alone",
			wantErr: true,
		},
		{
			name:        "empty subject after colon gets placeholder",
			text:        "Subject:\nBody here",
			wantSubject: fallbackSubject,
			wantBody:    "Body here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := parseGenerated(tt.text, "the prompt")
			if tt.wantErr {
				require.ErrorIs(t, err, errUnparsable)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantSubject, out.Subject)
			require.Equal(t, tt.wantBody, out.Body)
			require.Equal(t, "the prompt", out.PromptUsed)
		})
	}
}
