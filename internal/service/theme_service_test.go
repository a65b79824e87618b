package service

import (
	"strings"
	"testing"

	"github.com/sahxzm/Dreamer/internal/db"
	"github.com/sahxzm/Dreamer/internal/storage"
)

func TestThemeDefaults(t *testing.T) {
	svc := NewThemeService(storage.NewMemoryStore())

	prefs := svc.Preferences()
	if prefs.CurrentTheme != "dark" || prefs.CurrentBackground != "default" {
		t.Fatalf("unexpected defaults: %+v", prefs)
	}
	if svc.ActiveTheme().Name != "Dark" {
		t.Fatalf("expected Dark theme, got %s", svc.ActiveTheme().Name)
	}
	if svc.ActiveBackground().Name != "Default" {
		t.Fatalf("expected Default background, got %s", svc.ActiveBackground().Name)
	}
}

func TestSetThemeIgnoresUnknownName(t *testing.T) {
	svc := NewThemeService(storage.NewMemoryStore())

	svc.SetTheme("blue")
	if svc.Preferences().CurrentTheme != "blue" {
		t.Fatal("expected theme switched to blue")
	}

	// 未知主题名不做任何变更
	svc.SetTheme("neon")
	if svc.Preferences().CurrentTheme != "blue" {
		t.Fatalf("unknown theme must be a no-op, got %s", svc.Preferences().CurrentTheme)
	}
}

func TestCustomBackgroundLifecycle(t *testing.T) {
	svc := NewThemeService(storage.NewMemoryStore())

	svc.SetBackground("我的背景")
	if svc.Preferences().CurrentBackground != "default" {
		t.Fatal("unknown background must be a no-op")
	}

	svc.AddCustomBackground(Background{Name: "我的背景", Type: "image", Value: "url(/bg.png)"})
	svc.SetBackground("我的背景")
	if svc.ActiveBackground().Value != "url(/bg.png)" {
		t.Fatalf("expected custom background active, got %+v", svc.ActiveBackground())
	}

	// 删除正在使用的自定义背景后回退到 default
	svc.RemoveCustomBackground("我的背景")
	prefs := svc.Preferences()
	if prefs.CurrentBackground != "default" || len(prefs.CustomBackgrounds) != 0 {
		t.Fatalf("expected fallback to default, got %+v", prefs)
	}
}

func TestAddCustomBackgroundRejectsBlankName(t *testing.T) {
	svc := NewThemeService(storage.NewMemoryStore())

	svc.AddCustomBackground(Background{Name: "  "})
	if len(svc.Preferences().CustomBackgrounds) != 0 {
		t.Fatal("blank-named background must be ignored")
	}
}

func TestThemePreferencesUseLegacyKeys(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewThemeService(store)

	svc.SetTheme("green")

	raw, ok := store.Raw(db.KeyTheme)
	if !ok {
		t.Fatal("expected preferences persisted")
	}
	// 持久化格式沿用旧版 camelCase 键
	for _, key := range []string{`"currentTheme"`, `"currentBackground"`, `"customBackgrounds"`} {
		if !strings.Contains(raw, key) {
			t.Fatalf("expected %s in persisted payload, got %s", key, raw)
		}
	}

	reloaded := NewThemeService(store)
	if reloaded.Preferences().CurrentTheme != "green" {
		t.Fatalf("expected theme restored from store, got %s", reloaded.Preferences().CurrentTheme)
	}
}

func TestAllBackgroundsIncludesCustom(t *testing.T) {
	svc := NewThemeService(storage.NewMemoryStore())
	svc.AddCustomBackground(Background{Name: "星空", Type: "image", Value: "url(/stars.png)"})

	all := svc.AllBackgrounds()
	if len(all) != 7 {
		t.Fatalf("expected 6 presets + 1 custom, got %d", len(all))
	}
	if all[len(all)-1].Name != "星空" {
		t.Fatal("expected custom backgrounds appended after presets")
	}
}
