package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/goroutine"
	"github.com/draftwise/draftwise/internal/pkg/mail"
	"github.com/draftwise/draftwise/internal/pkg/uid"
	recipentity "github.com/draftwise/draftwise/internal/recipient/entity"
)

// DraftSendInput identifies the draft to dispatch and optional recipient
// overrides. RecipientIDs takes precedence over the single-recipient fields.
type DraftSendInput struct {
	ID             string
	RecipientEmail string
	RecipientName  string
	RecipientIDs   []string
}

type DraftSendOutput struct {
	Draft      entity.Draft
	Recipients []recipentity.Recipient
	MessageID  string
}

// DraftSend dispatches a draft to one or many recipients. Multi-recipient
// sends fan out concurrently and the draft only becomes sent when every
// dispatch succeeds; any dispatch failure marks the draft failed.
func (s *Usecase) DraftSend(ctx context.Context, in DraftSendInput) (*DraftSendOutput, error) {
	ctx, span := s.startSpan(ctx, "DraftSend")
	defer span.End()

	if !uid.IsObjectID(in.ID) {
		return nil, goerror.NewInvalidFormat("Invalid email ID format")
	}

	for _, id := range in.RecipientIDs {
		if !uid.IsObjectID(id) {
			return nil, goerror.NewInvalidFormat("Invalid recipient ID format")
		}
	}

	draft, err := s.repoDB.GetByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Email not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get draft", "id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	htmlBody := strings.ReplaceAll(draft.Body, "\n", "<br>")

	if len(in.RecipientIDs) > 0 {
		return s.sendToMany(ctx, *draft, in.RecipientIDs, htmlBody)
	}

	return s.sendToOne(ctx, *draft, in, htmlBody)
}

func (s *Usecase) sendToMany(ctx context.Context, draft entity.Draft, ids []string, htmlBody string) (*DraftSendOutput, error) {
	recs, err := s.repoRecipient.ListByIDs(ctx, ids)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list recipients by ids", "ids", ids, "error", err)
		return nil, goerror.NewServer(err)
	}
	if len(recs) == 0 {
		s.markFailed(ctx, draft.ID)
		return nil, goerror.NewBusiness("No valid recipients found with the provided IDs", goerror.CodeInvalidInput)
	}

	results := make([]mail.DispatchResult, len(recs))
	mgr := goroutine.NewManager(len(recs))
	for i, rec := range recs {
		i, rec := i, rec
		mgr.Go(ctx, func(ctx context.Context) error {
			results[i] = s.repoMailer.Dispatch(ctx, rec.Email, draft.Subject, htmlBody)
			return nil
		})
	}
	if err := mgr.Wait(); err != nil {
		slog.ErrorContext(ctx, "dispatch workers reported errors", "error", err)
	}

	var failures []string
	for i, res := range results {
		if !res.Success {
			failures = append(failures, fmt.Sprintf("%s: %s", recs[i].Email, res.Error))
		}
	}
	if len(failures) > 0 {
		s.markFailed(ctx, draft.ID)
		return nil, goerror.NewBusiness("Failed to send some emails: "+strings.Join(failures, ", "), goerror.CodeInternal)
	}

	now := s.clock.Now()
	resolved := make([]string, 0, len(recs))
	for _, rec := range recs {
		resolved = append(resolved, rec.ID)
	}
	draft.Status = entity.StatusSent
	draft.SentAt = &now
	draft.Recipients = resolved
	draft.UpdatedAt = now

	if err := s.repoDB.Update(ctx, draft); err != nil {
		slog.ErrorContext(ctx, "failed to repo update sent draft", "id", draft.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DraftSendOutput{Draft: draft, Recipients: recs, MessageID: results[0].MessageID}, nil
}

func (s *Usecase) sendToOne(ctx context.Context, draft entity.Draft, in DraftSendInput, htmlBody string) (*DraftSendOutput, error) {
	to := strings.TrimSpace(strings.ToLower(in.RecipientEmail))
	if to == "" {
		to = draft.RecipientEmail
	}
	if to == "" {
		s.markFailed(ctx, draft.ID)
		return nil, goerror.NewBusiness("Recipient email is required", goerror.CodeInvalidInput)
	}

	name := strings.TrimSpace(in.RecipientName)
	if name == "" {
		name = draft.RecipientName
	}

	res := s.repoMailer.Dispatch(ctx, to, draft.Subject, htmlBody)
	if !res.Success {
		s.markFailed(ctx, draft.ID)
		return nil, goerror.NewBusiness("Failed to send email: "+res.Error, goerror.CodeInternal)
	}

	now := s.clock.Now()
	draft.RecipientEmail = to
	draft.RecipientName = name
	draft.Status = entity.StatusSent
	draft.SentAt = &now
	draft.UpdatedAt = now

	if err := s.repoDB.Update(ctx, draft); err != nil {
		slog.ErrorContext(ctx, "failed to repo update sent draft", "id", draft.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	recs, err := s.resolveRecipients(ctx, draft.Recipients)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list draft recipients", "id", draft.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DraftSendOutput{Draft: draft, Recipients: recs, MessageID: res.MessageID}, nil
}

// markFailed records the failed status best effort; dispatch errors are
// already on their way to the caller, so a persistence failure here only logs.
func (s *Usecase) markFailed(ctx context.Context, id string) {
	if err := s.repoDB.UpdateStatus(ctx, id, entity.StatusFailed, s.clock.Now()); err != nil {
		slog.ErrorContext(ctx, "failed to mark draft as failed", "id", id, "error", err)
	}
}
