package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/draftwise/draftwise/internal/pkg/goerror"
	"github.com/draftwise/draftwise/internal/recipient/entity"
)

// Update rewrites an existing recipient. It returns goerror.ErrNotFound when
// the id is unknown and goerror.ErrConflict when the new email already
// belongs to another recipient.
func (s *DB) Update(ctx context.Context, rec entity.Recipient) (err error) {
	_, span := s.startSpan(ctx, "Update")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.Update(func(txn *badger.Txn) error {
		item, errGet := txn.Get(recipientKey(rec.ID))
		if errGet != nil {
			return errGet
		}

		current, errDecode := decodeRecipient(item)
		if errDecode != nil {
			return errDecode
		}

		if current.Email != rec.Email {
			if ownerItem, errOwner := txn.Get(emailKey(rec.Email)); errOwner == nil {
				var owner string
				if errVal := ownerItem.Value(func(val []byte) error {
					owner = string(val)
					return nil
				}); errVal != nil {
					return errVal
				}
				if owner != rec.ID {
					return goerror.ErrConflict
				}
			} else if !errors.Is(errOwner, badger.ErrKeyNotFound) {
				return errOwner
			}

			if errDel := txn.Delete(emailKey(current.Email)); errDel != nil {
				return errDel
			}
			if errSet := txn.Set(emailKey(rec.Email), []byte(rec.ID)); errSet != nil {
				return errSet
			}
		}

		doc, errMarshal := json.Marshal(rec)
		if errMarshal != nil {
			return errMarshal
		}

		return txn.Set(recipientKey(rec.ID), doc)
	})

	return s.mapError(err)
}
