package db

import (
	"context"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/draftwise/draftwise/internal/draft/entity"
)

// GetByID returns a single draft, or goerror.ErrNotFound.
func (s *DB) GetByID(ctx context.Context, id string) (d *entity.Draft, err error) {
	_, span := s.startSpan(ctx, "GetByID")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.View(func(txn *badger.Txn) error {
		item, errGet := txn.Get(draftKey(id))
		if errGet != nil {
			return errGet
		}

		decoded, errDecode := decodeDraft(item)
		if errDecode != nil {
			return errDecode
		}

		d = &decoded
		return nil
	})

	return d, s.mapError(err)
}

// List returns all drafts ordered newest first.
func (s *DB) List(ctx context.Context) (drafts []entity.Draft, err error) {
	_, span := s.startSpan(ctx, "List")
	defer func() { s.endSpan(span, err) }()

	drafts = make([]entity.Draft, 0)
	err = s.conn.View(func(txn *badger.Txn) error {
		prefix := []byte(draftKeyPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			d, errDecode := decodeDraft(it.Item())
			if errDecode != nil {
				return errDecode
			}
			drafts = append(drafts, d)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].CreatedAt.After(drafts[j].CreatedAt)
	})

	return drafts, nil
}
