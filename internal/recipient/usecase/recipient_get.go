package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/uid"
	"github.com/draftwise/draftwise/internal/recipient/entity"
)

func (s *Usecase) RecipientGet(ctx context.Context, id string) (*entity.Recipient, error) {
	ctx, span := s.startSpan(ctx, "RecipientGet")
	defer span.End()

	if !uid.IsObjectID(id) {
		return nil, goerror.NewInvalidFormat("Invalid recipient ID format")
	}

	rec, err := s.repoDB.GetByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Recipient not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get recipient", "id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return rec, nil
}

func (s *Usecase) RecipientList(ctx context.Context) ([]entity.Recipient, error) {
	ctx, span := s.startSpan(ctx, "RecipientList")
	defer span.End()

	recs, err := s.repoDB.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list recipients", "error", err)
		return nil, goerror.NewServer(err)
	}

	return recs, nil
}
