package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/validator"
	"github.com/draftwise/draftwise/internal/recipient/entity"
)

const recipientID = "64f1a2b3c4d5e6f708192b01"

var testNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedUID struct{ id string }

func (u fixedUID) Generate() string { return u.id }

type fakeRepo struct {
	recipients map[string]entity.Recipient
	emails     map[string]string
}

func newFakeRepo(recs ...entity.Recipient) *fakeRepo {
	r := &fakeRepo{
		recipients: make(map[string]entity.Recipient),
		emails:     make(map[string]string),
	}
	for _, rec := range recs {
		r.recipients[rec.ID] = rec
		r.emails[rec.Email] = rec.ID
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, rec entity.Recipient) error {
	if _, taken := r.emails[rec.Email]; taken {
		return goerror.ErrConflict
	}
	r.recipients[rec.ID] = rec
	r.emails[rec.Email] = rec.ID
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*entity.Recipient, error) {
	rec, ok := r.recipients[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeRepo) List(_ context.Context) ([]entity.Recipient, error) {
	out := make([]entity.Recipient, 0, len(r.recipients))
	for _, rec := range r.recipients {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, rec entity.Recipient) error {
	current, ok := r.recipients[rec.ID]
	if !ok {
		return goerror.ErrNotFound
	}
	if owner, taken := r.emails[rec.Email]; taken && owner != rec.ID {
		return goerror.ErrConflict
	}
	delete(r.emails, current.Email)
	r.recipients[rec.ID] = rec
	r.emails[rec.Email] = rec.ID
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	rec, ok := r.recipients[id]
	if !ok {
		return goerror.ErrNotFound
	}
	delete(r.recipients, id)
	delete(r.emails, rec.Email)
	return nil
}

func newTestUsecase(t *testing.T, recs ...entity.Recipient) (*Usecase, *fakeRepo) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	repo := newFakeRepo(recs...)
	uc := NewRecipient(Dependency{
		RepoDB:     repo,
		UID:        fixedUID{id: recipientID},
		Clock:      fixedClock{now: testNow},
		Validator:  v10,
		Instrument: instrument.NewNoop(),
	})

	return uc, repo
}

func requireBusinessError(t *testing.T, err error, code goerror.Code, msg string) {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code())
	require.Equal(t, msg, gerr.Msg())
}

func TestRecipientCreate(t *testing.T) {
	t.Run("creates recipient with normalized email", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		rec, err := uc.RecipientCreate(context.Background(), RecipientCreateInput{
			Name:  "  Ana  ",
			Email: "Ana@Example.com",
		})
		require.NoError(t, err)
		require.Equal(t, recipientID, rec.ID)
		require.Equal(t, "Ana", rec.Name)
		require.Equal(t, "ana@example.com", rec.Email)
		require.Equal(t, testNow, rec.CreatedAt)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.RecipientCreate(context.Background(), RecipientCreateInput{Name: "Ana", Email: "nope"})
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		require.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		uc, _ := newTestUsecase(t, entity.Recipient{
			ID: "64f1a2b3c4d5e6f708192b02", Name: "Ben", Email: "ben@example.com",
		})

		_, err := uc.RecipientCreate(context.Background(), RecipientCreateInput{Name: "Ben 2", Email: "BEN@example.com"})
		requireBusinessError(t, err, goerror.CodeConflict, "Recipient with this email already exists")
	})
}

func TestRecipientGet(t *testing.T) {
	t.Run("returns stored recipient", func(t *testing.T) {
		uc, _ := newTestUsecase(t, entity.Recipient{ID: recipientID, Name: "Ana", Email: "ana@example.com"})

		rec, err := uc.RecipientGet(context.Background(), recipientID)
		require.NoError(t, err)
		require.Equal(t, "Ana", rec.Name)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.RecipientGet(context.Background(), "abc")
		requireBusinessError(t, err, goerror.CodeInvalidFormat, "Invalid recipient ID format")
	})

	t.Run("reports missing recipient", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.RecipientGet(context.Background(), recipientID)
		requireBusinessError(t, err, goerror.CodeNotFound, "Recipient not found")
	})
}

func TestRecipientList(t *testing.T) {
	uc, _ := newTestUsecase(t,
		entity.Recipient{ID: recipientID, Name: "Ana", Email: "ana@example.com"},
		entity.Recipient{ID: "64f1a2b3c4d5e6f708192b02", Name: "Ben", Email: "ben@example.com"},
	)

	recs, err := uc.RecipientList(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

func TestRecipientUpdate(t *testing.T) {
	seed := entity.Recipient{ID: recipientID, Name: "Ana", Email: "ana@example.com", CreatedAt: testNow.Add(-time.Hour)}

	t.Run("updates name only", func(t *testing.T) {
		uc, _ := newTestUsecase(t, seed)

		rec, err := uc.RecipientUpdate(context.Background(), RecipientUpdateInput{ID: recipientID, Name: "Ana Maria"})
		require.NoError(t, err)
		require.Equal(t, "Ana Maria", rec.Name)
		require.Equal(t, "ana@example.com", rec.Email)
		require.Equal(t, testNow, rec.UpdatedAt)
	})

	t.Run("requires at least one field", func(t *testing.T) {
		uc, _ := newTestUsecase(t, seed)

		_, err := uc.RecipientUpdate(context.Background(), RecipientUpdateInput{ID: recipientID})
		requireBusinessError(t, err, goerror.CodeInvalidInput, "Name or email is required for update")
	})

	t.Run("rejects email owned by another recipient", func(t *testing.T) {
		uc, _ := newTestUsecase(t, seed, entity.Recipient{
			ID: "64f1a2b3c4d5e6f708192b02", Name: "Ben", Email: "ben@example.com",
		})

		_, err := uc.RecipientUpdate(context.Background(), RecipientUpdateInput{ID: recipientID, Email: "ben@example.com"})
		requireBusinessError(t, err, goerror.CodeConflict, "Another recipient with this email already exists")
	})

	t.Run("reports missing recipient", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.RecipientUpdate(context.Background(), RecipientUpdateInput{ID: recipientID, Name: "Ana"})
		requireBusinessError(t, err, goerror.CodeNotFound, "Recipient not found")
	})
}

func TestRecipientDelete(t *testing.T) {
	t.Run("deletes stored recipient", func(t *testing.T) {
		uc, repo := newTestUsecase(t, entity.Recipient{ID: recipientID, Name: "Ana", Email: "ana@example.com"})

		require.NoError(t, uc.RecipientDelete(context.Background(), recipientID))
		require.Empty(t, repo.recipients)
	})

	t.Run("reports missing recipient", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		err := uc.RecipientDelete(context.Background(), recipientID)
		requireBusinessError(t, err, goerror.CodeNotFound, "Recipient not found")
	})
}
