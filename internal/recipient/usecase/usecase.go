package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/draftwise/draftwise/internal/pkg/clock"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/uid"
	"github.com/draftwise/draftwise/internal/pkg/validator"
	"github.com/draftwise/draftwise/internal/recipient/entity"
)

type repoDB interface {
	Create(ctx context.Context, rec entity.Recipient) error
	GetByID(ctx context.Context, id string) (*entity.Recipient, error)
	List(ctx context.Context) ([]entity.Recipient, error)
	Update(ctx context.Context, rec entity.Recipient) error
	Delete(ctx context.Context, id string) error
}

type Usecase struct {
	repoDB    repoDB
	uid       uid.StringID
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	UID        uid.StringID
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewRecipient(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		uid:       dep.UID,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("recipient.usecase").Start(ctx, name)
}
