package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sahxzm/Dreamer/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store 是可插拔的键值存储边界，键为字符串，值为 JSON 文本。
// 生产环境由 GormStore 落到 sqlite，测试使用 MemoryStore。
type Store interface {
	// Get 返回键对应的值；第二个返回值指示键是否存在。
	Get(key string) (string, bool, error)
	// Set 写入或覆盖键对应的值。
	Set(key, value string) error
	// Delete 删除键，键不存在时视为成功。
	Delete(key string) error
}

// GormStore 基于 kv_entries 表实现 Store。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 构造 GormStore。
func NewGormStore(gdb *gorm.DB) *GormStore {
	return &GormStore{db: gdb}
}

// Get 读取键值，未命中时返回 ok=false 而非错误。
func (s *GormStore) Get(key string) (string, bool, error) {
	var entry db.KVEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get kv entry %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set 以 key 唯一索引做幂等 upsert。
func (s *GormStore) Set(key, value string) error {
	entry := db.KVEntry{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&entry).Error; err != nil {
		return fmt.Errorf("upsert kv entry %s: %w", key, err)
	}
	return nil
}

// Delete 删除键值条目，条目不存在时不报错。
func (s *GormStore) Delete(key string) error {
	if err := s.db.Where("key = ?", key).Delete(&db.KVEntry{}).Error; err != nil {
		return fmt.Errorf("delete kv entry %s: %w", key, err)
	}
	return nil
}

// MemoryStore 是面向测试的内存实现。
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string

	// FailWrites 置为 true 时让 Set 返回错误，用于验证持久化降级路径。
	FailWrites bool
}

// NewMemoryStore 构造空的 MemoryStore。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get 读取内存中的键值。
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set 写入内存键值。
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return errors.New("storage write rejected")
	}
	s.values[key] = value
	return nil
}

// Delete 删除内存键值。
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Seed 直接写入原始值，便于测试构造已有（含损坏）条目。
func (s *MemoryStore) Seed(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Raw 返回当前存储的原始值，便于测试断言写入内容。
func (s *MemoryStore) Raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}
