package db

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/draftwise/draftwise/internal/draft/entity"
)

// Update rewrites an existing draft. It returns goerror.ErrNotFound when the
// id is unknown.
func (s *DB) Update(ctx context.Context, d entity.Draft) (err error) {
	_, span := s.startSpan(ctx, "Update")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.Update(func(txn *badger.Txn) error {
		if _, errGet := txn.Get(draftKey(d.ID)); errGet != nil {
			return errGet
		}

		return s.setDraft(txn, d)
	})

	return s.mapError(err)
}

// UpdateStatus sets only the status and updated-at fields of a draft in a
// single read-modify-write. Used by the send workflow to mark failures.
func (s *DB) UpdateStatus(ctx context.Context, id string, status entity.DraftStatus, updatedAt time.Time) (err error) {
	_, span := s.startSpan(ctx, "UpdateStatus")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.Update(func(txn *badger.Txn) error {
		item, errGet := txn.Get(draftKey(id))
		if errGet != nil {
			return errGet
		}

		current, errDecode := decodeDraft(item)
		if errDecode != nil {
			return errDecode
		}

		current.Status = status
		current.UpdatedAt = updatedAt

		return s.setDraft(txn, current)
	})

	return s.mapError(err)
}
