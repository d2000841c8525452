package inbound

import (
	"context"

	"github.com/draftwise/draftwise/internal/recipient/entity"
	"github.com/draftwise/draftwise/internal/recipient/usecase"
)

type uc interface {
	RecipientCreate(ctx context.Context, in usecase.RecipientCreateInput) (*entity.Recipient, error)
	RecipientGet(ctx context.Context, id string) (*entity.Recipient, error)
	RecipientList(ctx context.Context) ([]entity.Recipient, error)
	RecipientUpdate(ctx context.Context, in usecase.RecipientUpdateInput) (*entity.Recipient, error)
	RecipientDelete(ctx context.Context, id string) error
}
