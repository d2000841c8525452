package inbound

import (
	"context"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/draft/usecase"
)

type uc interface {
	DraftCreate(ctx context.Context, in usecase.DraftCreateInput) (*usecase.DraftOutput, error)
	DraftGet(ctx context.Context, id string) (*usecase.DraftOutput, error)
	DraftList(ctx context.Context) ([]usecase.DraftOutput, error)
	DraftUpdate(ctx context.Context, in usecase.DraftUpdateInput) (*usecase.DraftOutput, error)
	DraftDelete(ctx context.Context, id string) error
	DraftSend(ctx context.Context, in usecase.DraftSendInput) (*usecase.DraftSendOutput, error)
	Generate(ctx context.Context, in usecase.GenerateInput) (*entity.GeneratedContent, error)
}
