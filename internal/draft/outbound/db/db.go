package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/pkg/instrument"
)

const draftKeyPrefix = "draft:"

// DB stores drafts as JSON documents in Badger, one key per draft.
type DB struct {
	conn *badger.DB
	ins  instrument.Instrumentation
}

func NewDB(conn *badger.DB, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func draftKey(id string) []byte {
	return []byte(draftKeyPrefix + id)
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
	return s.ins.Tracer("draft.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func decodeDraft(item *badger.Item) (entity.Draft, error) {
	var d entity.Draft
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &d)
	})
	return d, err
}

func (s *DB) setDraft(txn *badger.Txn, d entity.Draft) error {
	doc, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return txn.Set(draftKey(d.ID), doc)
}
