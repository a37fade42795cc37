package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore 以 BadgerDB 為後端的持久化快取
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore 開啟 BadgerDB；inMemory 為 true 時忽略 path
func OpenBadgerStore(path string, inMemory bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get 獲取緩存；Badger 迭代與讀取都不會回傳過期條目
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache entry: %w", err)
	}
	return value, true, nil
}

// Set 設置緩存
func (s *BadgerStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set cache entry: %w", err)
		}
		return nil
	})
}

// Clear 清空資料庫
func (s *BadgerStore) Clear(ctx context.Context) error {
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("drop cache entries: %w", err)
	}
	return nil
}

// Stats 掃描鍵計算統計
func (s *BadgerStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			st.Total++
			if it.Item().IsDeletedOrExpired() {
				st.Expired++
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("scan cache entries: %w", err)
	}
	st.Active = st.Total - st.Expired
	return st, nil
}

// Close 關閉資料庫
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
