package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/recipient/entity"
)

// Create persists a new recipient. It returns goerror.ErrConflict when the
// email already belongs to another recipient.
func (s *DB) Create(ctx context.Context, rec entity.Recipient) (err error) {
	_, span := s.startSpan(ctx, "Create")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.Update(func(txn *badger.Txn) error {
		_, errGet := txn.Get(emailKey(rec.Email))
		if errGet == nil {
			return goerror.ErrConflict
		}
		if !errors.Is(errGet, badger.ErrKeyNotFound) {
			return errGet
		}

		doc, errMarshal := json.Marshal(rec)
		if errMarshal != nil {
			return errMarshal
		}

		if errSet := txn.Set(recipientKey(rec.ID), doc); errSet != nil {
			return errSet
		}

		return txn.Set(emailKey(rec.Email), []byte(rec.ID))
	})

	return err
}
