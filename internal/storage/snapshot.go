package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Snapshot 把较大的状态聚合按可选的路径选择器序列化到单个键下。
// 选择器为点分路径；中间节点缺失时该路径不产出任何内容，也不算错误。
// 未提供选择器时持久化整个聚合。
type Snapshot struct {
	store Store
	key   string
	paths []string
}

// NewSnapshot 构造快照适配器。paths 为空时表示整体持久化。
func NewSnapshot(store Store, key string, paths []string) *Snapshot {
	return &Snapshot{store: store, key: key, paths: paths}
}

// Persist 序列化选中的子树并写入快照键。
func (s *Snapshot) Persist(aggregate map[string]any) error {
	payload := aggregate
	if len(s.paths) > 0 {
		selected := make(map[string]any, len(s.paths))
		for _, path := range s.paths {
			value, ok := resolvePath(aggregate, path)
			if !ok {
				continue
			}
			selected[path] = value
		}
		payload = selected
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialize snapshot %s: %w", s.key, err)
	}
	if err := s.store.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("persist snapshot %s: %w", s.key, err)
	}
	return nil
}

// Restore 读取已有快照并浅合并进聚合；快照缺失或损坏时聚合保持原样。
func (s *Snapshot) Restore(aggregate map[string]any) error {
	raw, ok, err := s.store.Get(s.key)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", s.key, err)
	}
	if !ok {
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", s.key, err)
	}

	for key, value := range parsed {
		aggregate[key] = value
	}
	return nil
}

// resolvePath 沿点分路径逐段下钻，任一中间值缺失或不是对象时返回 ok=false。
func resolvePath(aggregate map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = aggregate

	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}
