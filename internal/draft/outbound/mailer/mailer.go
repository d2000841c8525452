// Package mailer adapts the mail provider into the draft send workflow's
// dispatch gateway: delivery failures become result values, never errors.
package mailer

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/codes"

	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/pkg/mail"
)

// Gateway sends draft content to a single recipient address.
type Gateway struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Gateway {
	return &Gateway{client: client, ins: ins}
}

// Dispatch delivers one email. It never returns a Go error; transport
// failures are captured in the result so the caller can aggregate them.
func (g *Gateway) Dispatch(ctx context.Context, to, subject, htmlBody string) mail.DispatchResult {
	ctx, span := g.ins.Tracer("draft.outbound.mailer").Start(ctx, "Dispatch")
	defer span.End()

	messageID, err := g.client.Send(ctx, mail.Message{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "failed to dispatch email", "to", to, "error", err)
		return mail.DispatchResult{Error: err.Error()}
	}

	return mail.DispatchResult{Success: true, MessageID: messageID}
}
