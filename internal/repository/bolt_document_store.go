package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var documentBucket = []byte("documents")

// BoltDocumentStore 基于 bbolt 的文档存储，写事务天然串行
type BoltDocumentStore struct {
	db *bolt.DB
}

// NewBoltDocumentStore 打开（或创建）bbolt 文件
func NewBoltDocumentStore(path string) (*BoltDocumentStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create bolt dir failed: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db failed: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(documentBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltDocumentStore{db: db}, nil
}

// Load 读取文档
func (s *BoltDocumentStore) Load(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(documentBucket).Get([]byte(key))
		if value != nil {
			out = append([]byte(nil), value...)
		}
		return nil
	})
	return out, err
}

// Update 在写事务内读取-修改-写回
func (s *BoltDocumentStore) Update(key string, fn func(current []byte) ([]byte, error)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(documentBucket)
		var current []byte
		if value := bucket.Get([]byte(key)); value != nil {
			current = append([]byte(nil), value...)
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), next)
	})
}

// Close 关闭数据库
func (s *BoltDocumentStore) Close() error {
	return s.db.Close()
}
