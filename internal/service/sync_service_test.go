package service

import (
	"testing"
	"time"

	"github.com/sahxzm/Dreamer/internal/storage"
)

func newSyncFixture(t *testing.T) (*ProgressService, *SyncService) {
	t.Helper()
	progress := NewProgressService(storage.NewMemoryStore())
	sync := NewSyncService(progress)

	now := func() time.Time {
		return time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)
	}
	progress.SetNow(now)
	sync.SetNow(now)

	return progress, sync
}

func TestSyncWithTasksProjectsOnlyDueToday(t *testing.T) {
	progress, sync := newSyncFixture(t)

	tasks := []Task{
		{Text: "提交周报", DueDate: "2024-05-15", Completed: false, Priority: "high", Category: "work"},
		{Text: "买菜", DueDate: "2024-05-16", Completed: false},
	}

	sync.SyncWithTasks(tasks)

	items := progress.List()
	if len(items) != 1 {
		t.Fatalf("expected only today's task projected, got %d", len(items))
	}
	if items[0].Type != "task" || items[0].Title != "提交周报" || items[0].Status != "pending" {
		t.Fatalf("unexpected projection: %+v", items[0])
	}
	if progress.LastSync() == "" {
		t.Fatal("expected last sync timestamp to be recorded")
	}
}

func TestSyncWithTasksIsIdempotent(t *testing.T) {
	progress, sync := newSyncFixture(t)

	tasks := []Task{{Text: "提交周报", DueDate: "2024-05-15", Completed: false}}

	sync.SyncWithTasks(tasks)
	sync.SyncWithTasks(tasks)
	sync.SyncWithTasks(tasks)

	if got := len(progress.List()); got != 1 {
		t.Fatalf("repeated sync must not grow the ledger, got %d items", got)
	}
}

func TestSyncWithTasksUpdatesStatusMismatch(t *testing.T) {
	progress, sync := newSyncFixture(t)

	sync.SyncWithTasks([]Task{{Text: "提交周报", DueDate: "2024-05-15", Completed: false}})
	sync.SyncWithTasks([]Task{{Text: "提交周报", DueDate: "2024-05-15", Completed: true}})

	items := progress.List()
	if len(items) != 1 {
		t.Fatalf("expected single projection, got %d", len(items))
	}
	if items[0].Status != "completed" || items[0].CompletedAt == nil {
		t.Fatalf("expected completion mirrored, got %+v", items[0])
	}
}

func TestSyncWithGoalsMatchesOnTitleOnly(t *testing.T) {
	progress, sync := newSyncFixture(t)

	target := 100.0
	goal := Goal{ID: "g1", Title: "跑步 100 公里", Status: "active", CurrentValue: 10, TargetValue: target, Category: "fitness"}

	sync.SyncWithGoals([]Goal{goal})
	if got := len(progress.List()); got != 1 {
		t.Fatalf("expected one projection, got %d", got)
	}

	// 换一天再同步，仍然只匹配 title，不产生第二条
	later := func() time.Time {
		return time.Date(2024, 5, 20, 12, 0, 0, 0, time.Local)
	}
	progress.SetNow(later)
	sync.SetNow(later)

	goal.CurrentValue = 42
	sync.SyncWithGoals([]Goal{goal})

	items := progress.List()
	if len(items) != 1 {
		t.Fatalf("goal must map to exactly one ledger entry, got %d", len(items))
	}
	if items[0].Value != 42 {
		t.Fatalf("expected value updated in place, got %v", items[0].Value)
	}
}

func TestSyncWithGoalsIsIdempotent(t *testing.T) {
	progress, sync := newSyncFixture(t)

	goals := []Goal{
		{ID: "g1", Title: "读 12 本书", Status: "active", CurrentValue: 3, TargetValue: 12},
		{ID: "g2", Title: "冥想 30 天", Status: "completed", CurrentValue: 30, TargetValue: 30},
	}

	sync.SyncWithGoals(goals)
	before := len(progress.List())

	sync.SyncWithGoals(goals)
	sync.SyncWithGoals(goals)

	if got := len(progress.List()); got != before {
		t.Fatalf("unchanged input must produce zero net growth: %d -> %d", before, got)
	}
}

func TestSyncWithGoalsMirrorsCompletion(t *testing.T) {
	progress, sync := newSyncFixture(t)

	stamp := "2024-05-14T09:00:00Z"
	goals := []Goal{{ID: "g1", Title: "冥想 30 天", Status: "completed", CurrentValue: 30, TargetValue: 30, CompletedAt: &stamp}}

	sync.SyncWithGoals(goals)

	items := progress.List()
	if items[0].Status != "completed" {
		t.Fatalf("expected completed status, got %s", items[0].Status)
	}
	if items[0].CompletedAt == nil || *items[0].CompletedAt != stamp {
		t.Fatalf("expected goal completion timestamp mirrored, got %v", items[0].CompletedAt)
	}
}
