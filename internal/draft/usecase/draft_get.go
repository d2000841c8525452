package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/uid"
)

func (s *Usecase) DraftGet(ctx context.Context, id string) (*DraftOutput, error) {
	ctx, span := s.startSpan(ctx, "DraftGet")
	defer span.End()

	if !uid.IsObjectID(id) {
		return nil, goerror.NewInvalidFormat("Invalid email ID format")
	}

	d, err := s.repoDB.GetByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Email not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get draft", "id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	recs, err := s.resolveRecipients(ctx, d.Recipients)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list draft recipients", "id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DraftOutput{Draft: *d, Recipients: recs}, nil
}

func (s *Usecase) DraftList(ctx context.Context) ([]DraftOutput, error) {
	ctx, span := s.startSpan(ctx, "DraftList")
	defer span.End()

	drafts, err := s.repoDB.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list drafts", "error", err)
		return nil, goerror.NewServer(err)
	}

	out := make([]DraftOutput, 0, len(drafts))
	for _, d := range drafts {
		recs, errResolve := s.resolveRecipients(ctx, d.Recipients)
		if errResolve != nil {
			slog.ErrorContext(ctx, "failed to repo list draft recipients", "id", d.ID, "error", errResolve)
			return nil, goerror.NewServer(errResolve)
		}
		out = append(out, DraftOutput{Draft: d, Recipients: recs})
	}

	return out, nil
}
