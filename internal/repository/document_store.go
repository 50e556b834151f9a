package repository

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSkipWrite 由更新回调返回，表示本次不写回
var ErrSkipWrite = errors.New("skip document write")

// DocumentStore 以键存取整份 JSON 文档，Update 在同一键上串行执行
type DocumentStore interface {
	// Load 读取文档，不存在时返回 nil, nil
	Load(key string) ([]byte, error)
	// Update 读取-修改-写回，回调在该键的写锁内执行
	Update(key string, fn func(current []byte) ([]byte, error)) error
	Close() error
}

func loadDocument(store DocumentStore, key string, dest interface{}) (bool, error) {
	raw, err := store.Load(key)
	if err != nil {
		return false, fmt.Errorf("load document %s: %w", key, err)
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode document %s: %w", key, err)
	}
	return true, nil
}

// mutateDocument 把当前文档解码进 dest，调用 fn 修改后编码写回
func mutateDocument(store DocumentStore, key string, dest interface{}, fn func(exists bool) error) error {
	err := store.Update(key, func(current []byte) ([]byte, error) {
		exists := len(current) > 0
		if exists {
			if err := json.Unmarshal(current, dest); err != nil {
				return nil, fmt.Errorf("decode document %s: %w", key, err)
			}
		}
		if err := fn(exists); err != nil {
			return nil, err
		}
		return json.MarshalIndent(dest, "", "  ")
	})
	if errors.Is(err, ErrSkipWrite) {
		return nil
	}
	return err
}
