package storage

import (
	"encoding/json"
	"testing"
)

func TestSnapshotPersistSelectsPaths(t *testing.T) {
	store := NewMemoryStore()
	snap := NewSnapshot(store, "session", []string{"goals.items", "theme.preferences", "missing.path"})

	aggregate := map[string]any{
		"goals": map[string]any{
			"items":    []string{"g1", "g2"},
			"progress": []string{"p1"},
		},
		"theme": map[string]any{
			"preferences": map[string]any{"currentTheme": "dark"},
		},
	}

	if err := snap.Persist(aggregate); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	raw, ok := store.Raw("session")
	if !ok {
		t.Fatal("expected snapshot entry")
	}

	var stored map[string]any
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}

	if _, ok := stored["goals.items"]; !ok {
		t.Fatal("expected goals.items in snapshot")
	}
	if _, ok := stored["theme.preferences"]; !ok {
		t.Fatal("expected theme.preferences in snapshot")
	}
	// 中间节点缺失的路径不产出内容，也不报错
	if _, ok := stored["missing.path"]; ok {
		t.Fatal("missing path must contribute nothing")
	}
	// 未被选择的子树不进入快照
	if _, ok := stored["goals.progress"]; ok {
		t.Fatal("unselected path must not be persisted")
	}
}

func TestSnapshotPersistWholeAggregateWithoutPaths(t *testing.T) {
	store := NewMemoryStore()
	snap := NewSnapshot(store, "session", nil)

	aggregate := map[string]any{"a": 1, "b": "two"}
	if err := snap.Persist(aggregate); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	var stored map[string]any
	raw, _ := store.Raw("session")
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected whole aggregate, got %v", stored)
	}
}

func TestSnapshotRestoreShallowMerges(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("session", `{"theme.preferences":{"currentTheme":"blue"},"extra":"kept"}`)
	snap := NewSnapshot(store, "session", nil)

	aggregate := map[string]any{"local": true}
	if err := snap.Restore(aggregate); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}

	if aggregate["local"] != true {
		t.Fatal("existing aggregate keys must survive restore")
	}
	if aggregate["extra"] != "kept" {
		t.Fatalf("expected snapshot keys merged in, got %v", aggregate)
	}
}

func TestSnapshotRestoreMissingIsNoop(t *testing.T) {
	store := NewMemoryStore()
	snap := NewSnapshot(store, "session", nil)

	aggregate := map[string]any{"local": 1}
	if err := snap.Restore(aggregate); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if len(aggregate) != 1 {
		t.Fatalf("aggregate must stay untouched, got %v", aggregate)
	}
}
