package db

import (
	"context"

	"github.com/dgraph-io/badger/v4"
)

// Delete removes a draft. It returns goerror.ErrNotFound when the id is
// unknown.
func (s *DB) Delete(ctx context.Context, id string) (err error) {
	_, span := s.startSpan(ctx, "Delete")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.Update(func(txn *badger.Txn) error {
		if _, errGet := txn.Get(draftKey(id)); errGet != nil {
			return errGet
		}

		return txn.Delete(draftKey(id))
	})

	return s.mapError(err)
}
