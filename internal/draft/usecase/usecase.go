package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/pkg/clock"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/mail"
	"github.com/draftwise/draftwise/internal/pkg/uid"
	"github.com/draftwise/draftwise/internal/pkg/validator"
	recipentity "github.com/draftwise/draftwise/internal/recipient/entity"
)

type repoDB interface {
	Create(ctx context.Context, d entity.Draft) error
	GetByID(ctx context.Context, id string) (*entity.Draft, error)
	List(ctx context.Context) ([]entity.Draft, error)
	Update(ctx context.Context, d entity.Draft) error
	UpdateStatus(ctx context.Context, id string, status entity.DraftStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type repoRecipient interface {
	ListByIDs(ctx context.Context, ids []string) ([]recipentity.Recipient, error)
}

type repoMailer interface {
	Dispatch(ctx context.Context, to, subject, htmlBody string) mail.DispatchResult
}

type repoGenAI interface {
	Generate(ctx context.Context, prompt, recipientName, additionalContext string) (entity.GeneratedContent, error)
}

type Usecase struct {
	repoDB        repoDB
	repoRecipient repoRecipient
	repoMailer    repoMailer
	repoGenAI     repoGenAI
	uid           uid.StringID
	clock         clock.Clocker
	validator     validator.Validator
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoRecipient repoRecipient
	RepoMailer    repoMailer
	RepoGenAI     repoGenAI
	UID           uid.StringID
	Clock         clock.Clocker
	Validator     validator.Validator
	Instrument    instrument.Instrumentation
}

func NewDraft(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoRecipient: dep.RepoRecipient,
		repoMailer:    dep.RepoMailer,
		repoGenAI:     dep.RepoGenAI,
		uid:           dep.UID,
		clock:         dep.Clock,
		validator:     dep.Validator,
		ins:           dep.Instrument,
	}
}

// DraftOutput pairs a draft with its referenced recipients resolved inline.
type DraftOutput struct {
	Draft      entity.Draft
	Recipients []recipentity.Recipient
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("draft.usecase").Start(ctx, name)
}

func (s *Usecase) resolveRecipients(ctx context.Context, ids []string) ([]recipentity.Recipient, error) {
	if len(ids) == 0 {
		return []recipentity.Recipient{}, nil
	}
	return s.repoRecipient.ListByIDs(ctx, ids)
}
