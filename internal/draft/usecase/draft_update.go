package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/uid"
)

// DraftUpdateInput carries a partial update: nil pointers leave the field as
// is. Status and SentAt are deliberately absent; only the send workflow may
// change them.
type DraftUpdateInput struct {
	ID             string
	Subject        *string
	Body           *string
	PromptUsed     *string
	RecipientName  *string
	RecipientEmail *string
	RecipientIDs   []string
}

func (s *Usecase) DraftUpdate(ctx context.Context, in DraftUpdateInput) (*DraftOutput, error) {
	ctx, span := s.startSpan(ctx, "DraftUpdate")
	defer span.End()

	if !uid.IsObjectID(in.ID) {
		return nil, goerror.NewInvalidFormat("Invalid email ID format")
	}

	for _, id := range in.RecipientIDs {
		if !uid.IsObjectID(id) {
			return nil, goerror.NewInvalidFormat("Invalid recipient ID format")
		}
	}

	current, err := s.repoDB.GetByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Email not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get draft", "id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	updated := *current
	if in.Subject != nil {
		if strings.TrimSpace(*in.Subject) == "" {
			return nil, goerror.NewInvalidInput(nil, "subject", "subject cannot be empty")
		}
		updated.Subject = strings.TrimSpace(*in.Subject)
	}
	if in.Body != nil {
		if strings.TrimSpace(*in.Body) == "" {
			return nil, goerror.NewInvalidInput(nil, "body", "body cannot be empty")
		}
		updated.Body = strings.TrimSpace(*in.Body)
	}
	if in.PromptUsed != nil {
		if strings.TrimSpace(*in.PromptUsed) == "" {
			return nil, goerror.NewInvalidInput(nil, "prompt_used", "promptUsed cannot be empty")
		}
		updated.PromptUsed = strings.TrimSpace(*in.PromptUsed)
	}
	if in.RecipientName != nil {
		updated.RecipientName = strings.TrimSpace(*in.RecipientName)
	}
	if in.RecipientEmail != nil {
		updated.RecipientEmail = strings.TrimSpace(strings.ToLower(*in.RecipientEmail))
	}
	if in.RecipientIDs != nil {
		recs, errResolve := s.resolveRecipients(ctx, in.RecipientIDs)
		if errResolve != nil {
			slog.ErrorContext(ctx, "failed to repo list recipients by ids", "ids", in.RecipientIDs, "error", errResolve)
			return nil, goerror.NewServer(errResolve)
		}
		if len(recs) != len(in.RecipientIDs) {
			return nil, goerror.NewBusiness("One or more recipient IDs do not exist", goerror.CodeInvalidInput)
		}
		updated.Recipients = in.RecipientIDs
	}
	updated.UpdatedAt = s.clock.Now()

	if err := s.repoDB.Update(ctx, updated); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Email not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo update draft", "id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	recs, err := s.resolveRecipients(ctx, updated.Recipients)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list draft recipients", "id", updated.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DraftOutput{Draft: updated, Recipients: recs}, nil
}
