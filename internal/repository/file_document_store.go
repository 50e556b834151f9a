package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileDocumentStore 每个键一个 JSON 文件，写入先落临时文件再原子替换
type FileDocumentStore struct {
	dir   string
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewFileDocumentStore 创建文件文档存储
func NewFileDocumentStore(dir string) (*FileDocumentStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir failed: %w", err)
	}
	return &FileDocumentStore{dir: dir, locks: make(map[string]*sync.RWMutex)}, nil
}

func (s *FileDocumentStore) lockFor(key string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.RWMutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *FileDocumentStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load 读取文档
func (s *FileDocumentStore) Load(key string) ([]byte, error) {
	lock := s.lockFor(key)
	lock.RLock()
	defer lock.RUnlock()
	return s.read(key)
}

func (s *FileDocumentStore) read(key string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return raw, err
}

// Update 在键锁内读取-修改-写回
func (s *FileDocumentStore) Update(key string, fn func(current []byte) ([]byte, error)) error {
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.read(key)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return s.writeAtomic(key, next)
}

func (s *FileDocumentStore) writeAtomic(key string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Close 文件存储无需释放资源
func (s *FileDocumentStore) Close() error {
	return nil
}
