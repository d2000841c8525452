package db

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	conn, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, conn.Close()) })

	return NewDB(conn, instrument.NewNoop())
}

func testDraft(id string, createdAt time.Time) entity.Draft {
	return entity.Draft{
		ID:         id,
		Subject:    "Quarterly update",
		Body:       "Hello,\n\nHere is the update.",
		PromptUsed: "write a quarterly update",
		Status:     entity.StatusDraft,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestDB_CreateAndGetByID(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	d := testDraft("64f1b2c3d4e5f60718293a4b", time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, store.Create(ctx, d))

	got, err := store.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, d, *got)
}

func TestDB_GetByIDNotFound(t *testing.T) {
	store := newTestDB(t)

	_, err := store.GetByID(context.Background(), "64f1b2c3d4e5f60718293a4b")
	require.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestDB_ListNewestFirst(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, store.Create(ctx, testDraft("64f1b2c3d4e5f60718293a4b", base.Add(-2*time.Hour))))
	require.NoError(t, store.Create(ctx, testDraft("64f1b2c3d4e5f60718293a4c", base)))
	require.NoError(t, store.Create(ctx, testDraft("64f1b2c3d4e5f60718293a4d", base.Add(-time.Hour))))

	drafts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 3)
	require.Equal(t, "64f1b2c3d4e5f60718293a4c", drafts[0].ID)
	require.Equal(t, "64f1b2c3d4e5f60718293a4d", drafts[1].ID)
	require.Equal(t, "64f1b2c3d4e5f60718293a4b", drafts[2].ID)
}

func TestDB_Update(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	d := testDraft("64f1b2c3d4e5f60718293a4b", time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, store.Create(ctx, d))

	sentAt := time.Now().UTC().Truncate(time.Millisecond)
	d.Status = entity.StatusSent
	d.SentAt = &sentAt
	d.Recipients = []string{"64f1b2c3d4e5f60718293a4c"}
	require.NoError(t, store.Update(ctx, d))

	got, err := store.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, entity.StatusSent, got.Status)
	require.NotNil(t, got.SentAt)
	require.Equal(t, []string{"64f1b2c3d4e5f60718293a4c"}, got.Recipients)
}

func TestDB_UpdateNotFound(t *testing.T) {
	store := newTestDB(t)

	err := store.Update(context.Background(), testDraft("64f1b2c3d4e5f60718293a4b", time.Now()))
	require.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestDB_UpdateStatus(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	d := testDraft("64f1b2c3d4e5f60718293a4b", time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, store.Create(ctx, d))

	at := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, store.UpdateStatus(ctx, d.ID, entity.StatusFailed, at))

	got, err := store.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, entity.StatusFailed, got.Status)
	require.Equal(t, at, got.UpdatedAt)
	require.Equal(t, d.Subject, got.Subject)
}

func TestDB_Delete(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	d := testDraft("64f1b2c3d4e5f60718293a4b", time.Now())
	require.NoError(t, store.Create(ctx, d))
	require.NoError(t, store.Delete(ctx, d.ID))

	_, err := store.GetByID(ctx, d.ID)
	require.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestDB_DeleteNotFound(t *testing.T) {
	store := newTestDB(t)

	err := store.Delete(context.Background(), "64f1b2c3d4e5f60718293a4b")
	require.ErrorIs(t, err, goerror.ErrNotFound)
}
