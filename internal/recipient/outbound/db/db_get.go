package db

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/draftwise/draftwise/internal/recipient/entity"
)

// GetByID returns a single recipient, or goerror.ErrNotFound.
func (s *DB) GetByID(ctx context.Context, id string) (rec *entity.Recipient, err error) {
	_, span := s.startSpan(ctx, "GetByID")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.View(func(txn *badger.Txn) error {
		item, errGet := txn.Get(recipientKey(id))
		if errGet != nil {
			return errGet
		}

		decoded, errDecode := decodeRecipient(item)
		if errDecode != nil {
			return errDecode
		}

		rec = &decoded
		return nil
	})

	return rec, s.mapError(err)
}

// List returns all recipients ordered by name (case-insensitive).
func (s *DB) List(ctx context.Context) (recs []entity.Recipient, err error) {
	_, span := s.startSpan(ctx, "List")
	defer func() { s.endSpan(span, err) }()

	recs = make([]entity.Recipient, 0)
	err = s.conn.View(func(txn *badger.Txn) error {
		prefix := []byte(recipientKeyPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec, errDecode := decodeRecipient(it.Item())
			if errDecode != nil {
				return errDecode
			}
			recs = append(recs, rec)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		return strings.ToLower(recs[i].Name) < strings.ToLower(recs[j].Name)
	})

	return recs, nil
}

// ListByIDs returns the recipients matching the given ids, preserving input
// order and skipping ids that do not exist.
func (s *DB) ListByIDs(ctx context.Context, ids []string) (recs []entity.Recipient, err error) {
	_, span := s.startSpan(ctx, "ListByIDs")
	defer func() { s.endSpan(span, err) }()

	recs = make([]entity.Recipient, 0, len(ids))
	err = s.conn.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			item, errGet := txn.Get(recipientKey(id))
			if errors.Is(errGet, badger.ErrKeyNotFound) {
				continue
			}
			if errGet != nil {
				return errGet
			}

			rec, errDecode := decodeRecipient(item)
			if errDecode != nil {
				return errDecode
			}
			recs = append(recs, rec)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return recs, nil
}
