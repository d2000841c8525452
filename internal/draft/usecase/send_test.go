package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/pkg/goerror"
)

func TestDraftSendSingle(t *testing.T) {
	t.Run("dispatches to the stored recipient email", func(t *testing.T) {
		d := seedDraft()
		d.RecipientEmail = "dora@example.com"
		d.RecipientName = "Dora"
		env := newTestEnv(t, d)

		out, err := env.uc.DraftSend(context.Background(), DraftSendInput{ID: draftID})
		require.NoError(t, err)
		require.Equal(t, entity.StatusSent, out.Draft.Status)
		require.NotNil(t, out.Draft.SentAt)
		require.Equal(t, testNow, *out.Draft.SentAt)
		require.Equal(t, "<dora@example.com@test>", out.MessageID)
		require.Equal(t, []string{"dora@example.com"}, env.mailer.calls)

		stored := env.drafts.stored(t, draftID)
		require.Equal(t, entity.StatusSent, stored.Status)
	})

	t.Run("request email overrides the stored one", func(t *testing.T) {
		d := seedDraft()
		d.RecipientEmail = "dora@example.com"
		env := newTestEnv(t, d)

		out, err := env.uc.DraftSend(context.Background(), DraftSendInput{
			ID:             draftID,
			RecipientEmail: "Eve@Example.com",
			RecipientName:  "Eve",
		})
		require.NoError(t, err)
		require.Equal(t, "eve@example.com", out.Draft.RecipientEmail)
		require.Equal(t, "Eve", out.Draft.RecipientName)
		require.Equal(t, []string{"eve@example.com"}, env.mailer.calls)
	})

	t.Run("missing recipient email marks draft failed", func(t *testing.T) {
		env := newTestEnv(t, seedDraft())

		_, err := env.uc.DraftSend(context.Background(), DraftSendInput{ID: draftID})
		requireBusinessError(t, err, goerror.CodeInvalidInput, "Recipient email is required")
		require.Equal(t, []entity.DraftStatus{entity.StatusFailed}, env.drafts.statusCalls)
		require.Empty(t, env.mailer.calls)
	})

	t.Run("dispatch failure marks draft failed", func(t *testing.T) {
		d := seedDraft()
		d.RecipientEmail = "dora@example.com"
		env := newTestEnv(t, d)
		env.mailer.fail["dora@example.com"] = "connection refused"

		_, err := env.uc.DraftSend(context.Background(), DraftSendInput{ID: draftID})
		requireBusinessError(t, err, goerror.CodeInternal, "Failed to send email: connection refused")
		require.Equal(t, entity.StatusFailed, env.drafts.stored(t, draftID).Status)
	})

	t.Run("rejects malformed draft id", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.DraftSend(context.Background(), DraftSendInput{ID: "bogus"})
		requireBusinessError(t, err, goerror.CodeInvalidFormat, "Invalid email ID format")
	})

	t.Run("reports missing draft", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.DraftSend(context.Background(), DraftSendInput{ID: draftID})
		requireBusinessError(t, err, goerror.CodeNotFound, "Email not found")
	})
}

func TestDraftSendMulti(t *testing.T) {
	t.Run("dispatches to every recipient before finalizing", func(t *testing.T) {
		env := newTestEnv(t, seedDraft())

		out, err := env.uc.DraftSend(context.Background(), DraftSendInput{
			ID:           draftID,
			RecipientIDs: []string{recipientID1, recipientID2},
		})
		require.NoError(t, err)
		require.Equal(t, entity.StatusSent, out.Draft.Status)
		require.Equal(t, []string{recipientID1, recipientID2}, out.Draft.Recipients)
		require.Equal(t, "<ana@example.com@test>", out.MessageID)
		require.Len(t, out.Recipients, 2)
		require.ElementsMatch(t, []string{"ana@example.com", "ben@example.com"}, env.mailer.calls)

		stored := env.drafts.stored(t, draftID)
		require.Equal(t, entity.StatusSent, stored.Status)
		require.NotNil(t, stored.SentAt)
	})

	t.Run("one failure still dispatches the rest and names the failure", func(t *testing.T) {
		env := newTestEnv(t, seedDraft())
		env.mailer.fail["ben@example.com"] = "mailbox full"

		_, err := env.uc.DraftSend(context.Background(), DraftSendInput{
			ID:           draftID,
			RecipientIDs: []string{recipientID1, recipientID2, recipientID3},
		})
		requireBusinessError(t, err, goerror.CodeInternal,
			"Failed to send some emails: ben@example.com: mailbox full")
		require.ElementsMatch(t,
			[]string{"ana@example.com", "ben@example.com", "cleo@example.com"},
			env.mailer.calls)
		require.Equal(t, entity.StatusFailed, env.drafts.stored(t, draftID).Status)
	})

	t.Run("no resolvable recipients marks draft failed", func(t *testing.T) {
		env := newTestEnv(t, seedDraft())

		_, err := env.uc.DraftSend(context.Background(), DraftSendInput{
			ID:           draftID,
			RecipientIDs: []string{"64f1a2b3c4d5e6f708192aff"},
		})
		requireBusinessError(t, err, goerror.CodeInvalidInput, "No valid recipients found with the provided IDs")
		require.Equal(t, entity.StatusFailed, env.drafts.stored(t, draftID).Status)
		require.Empty(t, env.mailer.calls)
	})

	t.Run("malformed recipient id fails fast without marking", func(t *testing.T) {
		env := newTestEnv(t, seedDraft())

		_, err := env.uc.DraftSend(context.Background(), DraftSendInput{
			ID:           draftID,
			RecipientIDs: []string{"not-an-id"},
		})
		requireBusinessError(t, err, goerror.CodeInvalidFormat, "Invalid recipient ID format")
		require.Empty(t, env.drafts.statusCalls)
		require.Equal(t, entity.StatusDraft, env.drafts.stored(t, draftID).Status)
	})
}
