package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/draft/outbound/genai"
	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/retry"
)

type GenerateInput struct {
	Prompt            string `validate:"required"`
	RecipientName     string
	AdditionalContext string
}

// Generate produces email content from a prompt via the generation API.
// Transient upstream failures are retried by the outbound client; this layer
// only translates the terminal error into a user-facing one.
func (s *Usecase) Generate(ctx context.Context, in GenerateInput) (*entity.GeneratedContent, error) {
	ctx, span := s.startSpan(ctx, "Generate")
	defer span.End()

	in.Prompt = strings.TrimSpace(in.Prompt)
	in.RecipientName = strings.TrimSpace(in.RecipientName)
	in.AdditionalContext = strings.TrimSpace(in.AdditionalContext)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	out, err := s.repoGenAI.Generate(ctx, in.Prompt, in.RecipientName, in.AdditionalContext)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate email content", "error", err)
		return nil, mapGenerateError(err)
	}

	return &out, nil
}

func mapGenerateError(err error) error {
	if errors.Is(err, genai.ErrAPIKeyMissing) {
		return goerror.NewBusiness("Email generation is not configured: missing API key", goerror.CodeInternal)
	}

	var exhausted *retry.ExhaustedError
	if errors.As(err, &exhausted) {
		var apiErr *genai.APIError
		if errors.As(exhausted.Last, &apiErr) &&
			(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return goerror.NewBusiness("Invalid or unauthorized generation API key", goerror.CodeUnauthorized)
		}

		msg := fmt.Sprintf("Failed to generate email content after %d attempts: %v", exhausted.Attempts, exhausted.Last)
		return goerror.NewBusiness(msg, goerror.CodeInternal)
	}

	return goerror.NewServer(err)
}
