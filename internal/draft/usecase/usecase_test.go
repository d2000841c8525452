package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/draft/outbound/genai"
	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/mail"
	"github.com/draftwise/draftwise/internal/pkg/retry"
	"github.com/draftwise/draftwise/internal/pkg/validator"
	recipentity "github.com/draftwise/draftwise/internal/recipient/entity"
)

const (
	draftID      = "64f1a2b3c4d5e6f708192a3b"
	recipientID1 = "64f1a2b3c4d5e6f708192a01"
	recipientID2 = "64f1a2b3c4d5e6f708192a02"
	recipientID3 = "64f1a2b3c4d5e6f708192a03"
)

var testNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedUID struct{ id string }

func (u fixedUID) Generate() string { return u.id }

type fakeDraftRepo struct {
	mu          sync.Mutex
	drafts      map[string]entity.Draft
	statusCalls []entity.DraftStatus
	errGet      error
	errUpdate   error
	errStatus   error
}

func newFakeDraftRepo(drafts ...entity.Draft) *fakeDraftRepo {
	r := &fakeDraftRepo{drafts: make(map[string]entity.Draft)}
	for _, d := range drafts {
		r.drafts[d.ID] = d
	}
	return r
}

func (r *fakeDraftRepo) Create(_ context.Context, d entity.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[d.ID] = d
	return nil
}

func (r *fakeDraftRepo) GetByID(_ context.Context, id string) (*entity.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errGet != nil {
		return nil, r.errGet
	}
	d, ok := r.drafts[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &d, nil
}

func (r *fakeDraftRepo) List(_ context.Context) ([]entity.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Draft, 0, len(r.drafts))
	for _, d := range r.drafts {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDraftRepo) Update(_ context.Context, d entity.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errUpdate != nil {
		return r.errUpdate
	}
	if _, ok := r.drafts[d.ID]; !ok {
		return goerror.ErrNotFound
	}
	r.drafts[d.ID] = d
	return nil
}

func (r *fakeDraftRepo) UpdateStatus(_ context.Context, id string, status entity.DraftStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusCalls = append(r.statusCalls, status)
	if r.errStatus != nil {
		return r.errStatus
	}
	d, ok := r.drafts[id]
	if !ok {
		return goerror.ErrNotFound
	}
	d.Status = status
	d.UpdatedAt = updatedAt
	r.drafts[id] = d
	return nil
}

func (r *fakeDraftRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(r.drafts, id)
	return nil
}

func (r *fakeDraftRepo) stored(t *testing.T, id string) entity.Draft {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	require.True(t, ok)
	return d
}

type fakeRecipientRepo struct {
	recipients map[string]recipentity.Recipient
	err        error
}

func (r *fakeRecipientRepo) ListByIDs(_ context.Context, ids []string) ([]recipentity.Recipient, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]recipentity.Recipient, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.recipients[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	fail  map[string]string
	calls []string
}

func (m *fakeMailer) Dispatch(_ context.Context, to, _, _ string) mail.DispatchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, to)
	if msg, ok := m.fail[to]; ok {
		return mail.DispatchResult{Success: false, Error: msg}
	}
	return mail.DispatchResult{Success: true, MessageID: "<" + to + "@test>"}
}

type fakeGenAI struct {
	out entity.GeneratedContent
	err error
}

func (g *fakeGenAI) Generate(context.Context, string, string, string) (entity.GeneratedContent, error) {
	return g.out, g.err
}

type testEnv struct {
	uc     *Usecase
	drafts *fakeDraftRepo
	recs   *fakeRecipientRepo
	mailer *fakeMailer
	genAI  *fakeGenAI
}

func newTestEnv(t *testing.T, drafts ...entity.Draft) *testEnv {
	t.Helper()

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	env := &testEnv{
		drafts: newFakeDraftRepo(drafts...),
		recs: &fakeRecipientRepo{recipients: map[string]recipentity.Recipient{
			recipientID1: {ID: recipientID1, Name: "Ana", Email: "ana@example.com"},
			recipientID2: {ID: recipientID2, Name: "Ben", Email: "ben@example.com"},
			recipientID3: {ID: recipientID3, Name: "Cleo", Email: "cleo@example.com"},
		}},
		mailer: &fakeMailer{fail: map[string]string{}},
		genAI:  &fakeGenAI{},
	}
	env.uc = NewDraft(Dependency{
		RepoDB:        env.drafts,
		RepoRecipient: env.recs,
		RepoMailer:    env.mailer,
		RepoGenAI:     env.genAI,
		UID:           fixedUID{id: draftID},
		Clock:         fixedClock{now: testNow},
		Validator:     v10,
		Instrument:    instrument.NewNoop(),
	})

	return env
}

func seedDraft() entity.Draft {
	return entity.Draft{
		ID:         draftID,
		Subject:    "Quarterly Update",
		Body:       "Hello,\nHere is the update.",
		PromptUsed: "write a quarterly update",
		Status:     entity.StatusDraft,
		CreatedAt:  testNow.Add(-time.Hour),
		UpdatedAt:  testNow.Add(-time.Hour),
	}
}

func requireBusinessError(t *testing.T, err error, code goerror.Code, msg string) {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code())
	require.Equal(t, msg, gerr.Msg())
}

func TestDraftCreate(t *testing.T) {
	t.Run("creates draft with resolved recipients", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.uc.DraftCreate(context.Background(), DraftCreateInput{
			Subject:      "  Quarterly Update ",
			Body:         "Hello there",
			PromptUsed:   "write an update",
			RecipientIDs: []string{recipientID1, recipientID2},
		})
		require.NoError(t, err)
		require.Equal(t, draftID, out.Draft.ID)
		require.Equal(t, "Quarterly Update", out.Draft.Subject)
		require.Equal(t, entity.StatusDraft, out.Draft.Status)
		require.Equal(t, testNow, out.Draft.CreatedAt)
		require.Len(t, out.Recipients, 2)
		require.Equal(t, "ana@example.com", out.Recipients[0].Email)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.DraftCreate(context.Background(), DraftCreateInput{Subject: "hi"})
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		require.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	})

	t.Run("rejects malformed recipient id", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.DraftCreate(context.Background(), DraftCreateInput{
			Subject:      "s",
			Body:         "b",
			PromptUsed:   "p",
			RecipientIDs: []string{"nope"},
		})
		requireBusinessError(t, err, goerror.CodeInvalidFormat, "Invalid recipient ID format")
	})

	t.Run("rejects unknown recipient id", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.DraftCreate(context.Background(), DraftCreateInput{
			Subject:      "s",
			Body:         "b",
			PromptUsed:   "p",
			RecipientIDs: []string{"64f1a2b3c4d5e6f708192aff"},
		})
		requireBusinessError(t, err, goerror.CodeInvalidInput, "One or more recipient IDs do not exist")
	})
}

func TestDraftGet(t *testing.T) {
	t.Run("returns draft with recipients", func(t *testing.T) {
		d := seedDraft()
		d.Recipients = []string{recipientID1}
		env := newTestEnv(t, d)

		out, err := env.uc.DraftGet(context.Background(), draftID)
		require.NoError(t, err)
		require.Equal(t, "Quarterly Update", out.Draft.Subject)
		require.Len(t, out.Recipients, 1)
		require.Equal(t, "Ana", out.Recipients[0].Name)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.DraftGet(context.Background(), "short")
		requireBusinessError(t, err, goerror.CodeInvalidFormat, "Invalid email ID format")
	})

	t.Run("reports missing draft", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.DraftGet(context.Background(), draftID)
		requireBusinessError(t, err, goerror.CodeNotFound, "Email not found")
	})
}

func TestDraftList(t *testing.T) {
	d := seedDraft()
	d.Recipients = []string{recipientID1, recipientID2}
	env := newTestEnv(t, d)

	out, err := env.uc.DraftList(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Recipients, 2)
}

func TestDraftUpdate(t *testing.T) {
	t.Run("applies partial update", func(t *testing.T) {
		env := newTestEnv(t, seedDraft())

		subject := "New Subject"
		out, err := env.uc.DraftUpdate(context.Background(), DraftUpdateInput{
			ID:      draftID,
			Subject: &subject,
		})
		require.NoError(t, err)
		require.Equal(t, "New Subject", out.Draft.Subject)
		require.Equal(t, "Hello,\nHere is the update.", out.Draft.Body)
		require.Equal(t, testNow, out.Draft.UpdatedAt)
	})

	t.Run("replaces recipient list", func(t *testing.T) {
		d := seedDraft()
		d.Recipients = []string{recipientID1}
		env := newTestEnv(t, d)

		out, err := env.uc.DraftUpdate(context.Background(), DraftUpdateInput{
			ID:           draftID,
			RecipientIDs: []string{recipientID2, recipientID3},
		})
		require.NoError(t, err)
		require.Equal(t, []string{recipientID2, recipientID3}, out.Draft.Recipients)
		require.Len(t, out.Recipients, 2)
	})

	t.Run("rejects empty subject", func(t *testing.T) {
		env := newTestEnv(t, seedDraft())

		subject := "   "
		_, err := env.uc.DraftUpdate(context.Background(), DraftUpdateInput{ID: draftID, Subject: &subject})
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		require.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	})

	t.Run("reports missing draft", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.DraftUpdate(context.Background(), DraftUpdateInput{ID: draftID})
		requireBusinessError(t, err, goerror.CodeNotFound, "Email not found")
	})
}

func TestDraftDelete(t *testing.T) {
	t.Run("deletes stored draft", func(t *testing.T) {
		env := newTestEnv(t, seedDraft())

		require.NoError(t, env.uc.DraftDelete(context.Background(), draftID))

		_, err := env.uc.DraftGet(context.Background(), draftID)
		requireBusinessError(t, err, goerror.CodeNotFound, "Email not found")
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.uc.DraftDelete(context.Background(), "zz")
		requireBusinessError(t, err, goerror.CodeInvalidFormat, "Invalid email ID format")
	})
}

func TestGenerate(t *testing.T) {
	t.Run("returns generated content", func(t *testing.T) {
		env := newTestEnv(t)
		env.genAI.out = entity.GeneratedContent{Subject: "Hi", Body: "Hello", PromptUsed: "greet"}

		out, err := env.uc.Generate(context.Background(), GenerateInput{Prompt: "greet"})
		require.NoError(t, err)
		require.Equal(t, "Hi", out.Subject)
	})

	t.Run("rejects empty prompt", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.Generate(context.Background(), GenerateInput{Prompt: "   "})
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		require.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	})

	t.Run("reports missing api key", func(t *testing.T) {
		env := newTestEnv(t)
		env.genAI.err = genai.ErrAPIKeyMissing

		_, err := env.uc.Generate(context.Background(), GenerateInput{Prompt: "greet"})
		requireBusinessError(t, err, goerror.CodeInternal, "Email generation is not configured: missing API key")
	})

	t.Run("maps rejected api key to unauthorized", func(t *testing.T) {
		env := newTestEnv(t)
		env.genAI.err = &retry.ExhaustedError{
			Attempts: 3,
			Last:     &genai.APIError{StatusCode: http.StatusUnauthorized, Message: "API key not valid"},
		}

		_, err := env.uc.Generate(context.Background(), GenerateInput{Prompt: "greet"})
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		require.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	})

	t.Run("reports exhausted retries", func(t *testing.T) {
		env := newTestEnv(t)
		env.genAI.err = &retry.ExhaustedError{Attempts: 3, Last: errors.New("upstream unavailable")}

		_, err := env.uc.Generate(context.Background(), GenerateInput{Prompt: "greet"})
		requireBusinessError(t, err, goerror.CodeInternal,
			"Failed to generate email content after 3 attempts: upstream unavailable")
	})
}
