package storage

import (
	"encoding/json"
	"log"
	"sync"
)

// Container 将一个可序列化的值绑定到存储键上：构造时读取并解析已有条目，
// 之后每次变更都会把整个值重新序列化并立即写回（无增量、无防抖）。
// 解析失败回退到默认值并记录日志，损坏条目保留原样直到下一次写入覆盖；
// 写入失败同样只记录日志，内存值保持正确，该次写入的持久性静默降级。
type Container[T any] struct {
	store Store
	key   string

	mu    sync.Mutex
	value T
	subs  []func(T)
}

// NewContainer 构造容器并完成首次加载。
func NewContainer[T any](store Store, key string, fallback T) *Container[T] {
	c := &Container[T]{store: store, key: key, value: fallback}

	raw, ok, err := store.Get(key)
	if err != nil {
		log.Printf("load %s: %v", key, err)
		return c
	}
	if !ok {
		return c
	}

	var parsed T
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("parse %s: %v", key, err)
		return c
	}
	c.value = parsed

	return c
}

// Get 返回当前值。
func (c *Container[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set 替换整个值并写穿到存储。
func (c *Container[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	subs := c.subs
	c.mu.Unlock()

	c.persist(value)
	for _, fn := range subs {
		fn(value)
	}
}

// Update 以当前值为输入计算新值后写入，变更在锁内完成，写穿在锁外执行。
func (c *Container[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	next := fn(c.value)
	c.value = next
	subs := c.subs
	c.mu.Unlock()

	c.persist(next)
	for _, sub := range subs {
		sub(next)
	}
	return next
}

// Subscribe 注册变更回调，每次 Set/Update 之后被调用。
func (c *Container[T]) Subscribe(fn func(T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Container[T]) persist(value T) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("serialize %s: %v", c.key, err)
		return
	}
	if err := c.store.Set(c.key, string(data)); err != nil {
		log.Printf("persist %s: %v", c.key, err)
	}
}
