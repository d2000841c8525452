package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/uid"
)

func (s *Usecase) DraftDelete(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "DraftDelete")
	defer span.End()

	if !uid.IsObjectID(id) {
		return goerror.NewInvalidFormat("Invalid email ID format")
	}

	err := s.repoDB.Delete(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Email not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete draft", "id", id, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
