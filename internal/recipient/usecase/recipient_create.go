package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/recipient/entity"
)

type RecipientCreateInput struct {
	Name  string `validate:"required,min=1,max=100"`
	Email string `validate:"required,email"`
}

func (s *Usecase) RecipientCreate(ctx context.Context, in RecipientCreateInput) (*entity.Recipient, error) {
	ctx, span := s.startSpan(ctx, "RecipientCreate")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	rec := entity.Recipient{
		ID:        s.uid.Generate(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repoDB.Create(ctx, rec); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "recipient email already exists", "email", in.Email)
			return nil, goerror.NewBusiness("Recipient with this email already exists", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo create recipient", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &rec, nil
}
