package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/uid"
	"github.com/draftwise/draftwise/internal/recipient/entity"
)

type RecipientUpdateInput struct {
	ID    string `validate:"required,objectid"`
	Name  string `validate:"omitempty,min=1,max=100"`
	Email string `validate:"omitempty,email"`
}

func (s *Usecase) RecipientUpdate(ctx context.Context, in RecipientUpdateInput) (*entity.Recipient, error) {
	ctx, span := s.startSpan(ctx, "RecipientUpdate")
	defer span.End()

	if !uid.IsObjectID(in.ID) {
		return nil, goerror.NewInvalidFormat("Invalid recipient ID format")
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Name == "" && in.Email == "" {
		return nil, goerror.NewBusiness("Name or email is required for update", goerror.CodeInvalidInput)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	current, err := s.repoDB.GetByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Recipient not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get recipient", "id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	updated := *current
	if in.Name != "" {
		updated.Name = in.Name
	}
	if in.Email != "" {
		updated.Email = in.Email
	}
	updated.UpdatedAt = s.clock.Now()

	if err := s.repoDB.Update(ctx, updated); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "recipient email already taken", "email", updated.Email)
			return nil, goerror.NewBusiness("Another recipient with this email already exists", goerror.CodeConflict)
		}
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Recipient not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo update recipient", "id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &updated, nil
}
