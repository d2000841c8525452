package db

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/draftwise/draftwise/internal/draft/entity"
)

// Create persists a new draft.
func (s *DB) Create(ctx context.Context, d entity.Draft) (err error) {
	_, span := s.startSpan(ctx, "Create")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.Update(func(txn *badger.Txn) error {
		return s.setDraft(txn, d)
	})

	return err
}
