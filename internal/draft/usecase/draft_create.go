package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/uid"
)

type DraftCreateInput struct {
	Subject        string `validate:"required"`
	Body           string `validate:"required"`
	PromptUsed     string `validate:"required"`
	RecipientName  string
	RecipientEmail string `validate:"omitempty,email"`
	RecipientIDs   []string
}

func (s *Usecase) DraftCreate(ctx context.Context, in DraftCreateInput) (*DraftOutput, error) {
	ctx, span := s.startSpan(ctx, "DraftCreate")
	defer span.End()

	in.Subject = strings.TrimSpace(in.Subject)
	in.Body = strings.TrimSpace(in.Body)
	in.PromptUsed = strings.TrimSpace(in.PromptUsed)
	in.RecipientName = strings.TrimSpace(in.RecipientName)
	in.RecipientEmail = strings.TrimSpace(strings.ToLower(in.RecipientEmail))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	for _, id := range in.RecipientIDs {
		if !uid.IsObjectID(id) {
			return nil, goerror.NewInvalidFormat("Invalid recipient ID format")
		}
	}

	recs, err := s.resolveRecipients(ctx, in.RecipientIDs)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list recipients by ids", "ids", in.RecipientIDs, "error", err)
		return nil, goerror.NewServer(err)
	}
	if len(recs) != len(in.RecipientIDs) {
		return nil, goerror.NewBusiness("One or more recipient IDs do not exist", goerror.CodeInvalidInput)
	}

	now := s.clock.Now()
	d := entity.Draft{
		ID:             s.uid.Generate(),
		Subject:        in.Subject,
		Body:           in.Body,
		PromptUsed:     in.PromptUsed,
		Status:         entity.StatusDraft,
		RecipientName:  in.RecipientName,
		RecipientEmail: in.RecipientEmail,
		Recipients:     in.RecipientIDs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repoDB.Create(ctx, d); err != nil {
		slog.ErrorContext(ctx, "failed to repo create draft", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DraftOutput{Draft: d, Recipients: recs}, nil
}
