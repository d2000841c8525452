package db

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
	"github.com/draftwise/draftwise/internal/recipient/entity"
)

const (
	recipientKeyPrefix = "recipient:"
	emailKeyPrefix     = "recipient_email:"
)

// DB stores recipients as JSON documents in Badger, with a secondary key per
// lowercased email enforcing uniqueness.
type DB struct {
	conn *badger.DB
	ins  instrument.Instrumentation
}

func NewDB(conn *badger.DB, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func recipientKey(id string) []byte {
	return []byte(recipientKeyPrefix + id)
}

func emailKey(email string) []byte {
	return []byte(emailKeyPrefix + strings.ToLower(email))
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, badger.ErrKeyNotFound) {
		return goerror.ErrNotFound
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("recipient.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func decodeRecipient(item *badger.Item) (entity.Recipient, error) {
	var rec entity.Recipient
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	return rec, err
}
