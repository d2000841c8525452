package db

import (
	"context"

	"github.com/dgraph-io/badger/v4"
)

// Delete removes a recipient and its email index entry. It returns
// goerror.ErrNotFound when the id is unknown.
func (s *DB) Delete(ctx context.Context, id string) (err error) {
	_, span := s.startSpan(ctx, "Delete")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.Update(func(txn *badger.Txn) error {
		item, errGet := txn.Get(recipientKey(id))
		if errGet != nil {
			return errGet
		}

		current, errDecode := decodeRecipient(item)
		if errDecode != nil {
			return errDecode
		}

		if errDel := txn.Delete(emailKey(current.Email)); errDel != nil {
			return errDel
		}

		return txn.Delete(recipientKey(id))
	})

	return s.mapError(err)
}
