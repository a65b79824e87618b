package service

import (
	"math"
	"testing"

	"github.com/sahxzm/Dreamer/internal/db"
	"github.com/sahxzm/Dreamer/internal/storage"
)

func TestFocusAddSecondsAccumulates(t *testing.T) {
	svc := NewFocusService(storage.NewMemoryStore())
	svc.SetNow(fixedDay(2024, 5, 15))

	svc.AddSeconds(1500)
	svc.AddSeconds(300)

	if got := svc.TotalSeconds(); got != 1800 {
		t.Fatalf("expected total 1800, got %v", got)
	}
	if got := svc.TodaySeconds(); got != 1800 {
		t.Fatalf("expected today 1800, got %v", got)
	}
}

func TestFocusAddSecondsDropsInvalidInput(t *testing.T) {
	svc := NewFocusService(storage.NewMemoryStore())
	svc.SetNow(fixedDay(2024, 5, 15))

	for _, seconds := range []float64{0, -60, math.NaN(), math.Inf(1), math.Inf(-1)} {
		svc.AddSeconds(seconds)
	}

	if got := svc.TotalSeconds(); got != 0 {
		t.Fatalf("invalid input must not change total, got %v", got)
	}
	if got := svc.TodaySeconds(); got != 0 {
		t.Fatalf("invalid input must not change today, got %v", got)
	}
}

func TestFocusResetTodayKeepsTotal(t *testing.T) {
	svc := NewFocusService(storage.NewMemoryStore())
	svc.SetNow(fixedDay(2024, 5, 15))

	svc.AddSeconds(600)
	svc.ResetToday()

	if got := svc.TodaySeconds(); got != 0 {
		t.Fatalf("expected today reset to 0, got %v", got)
	}
	if got := svc.TotalSeconds(); got != 600 {
		t.Fatalf("reset must not touch the total, got %v", got)
	}
}

func TestFocusTotalHoursRounded(t *testing.T) {
	svc := NewFocusService(storage.NewMemoryStore())
	svc.SetNow(fixedDay(2024, 5, 15))

	svc.AddSeconds(5400)
	if got := svc.TotalHoursRounded(); got != 1.5 {
		t.Fatalf("expected 1.5 hours for 5400s, got %v", got)
	}

	svc.AddSeconds(100)
	if got := svc.TotalHoursRounded(); got != 1.5 {
		t.Fatalf("expected rounding to one decimal, got %v", got)
	}
}

func TestFocusTodayRollsOverAtMidnight(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewFocusService(store)
	svc.SetNow(fixedDay(2024, 5, 15))

	svc.AddSeconds(900)

	// 跨天后当日计数器绑定到新键，旧键保留
	svc.SetNow(fixedDay(2024, 5, 16))
	if got := svc.TodaySeconds(); got != 0 {
		t.Fatalf("expected fresh counter after rollover, got %v", got)
	}

	svc.AddSeconds(300)
	if got := svc.TodaySeconds(); got != 300 {
		t.Fatalf("expected 300 on new day, got %v", got)
	}
	if got := svc.TotalSeconds(); got != 1200 {
		t.Fatalf("expected total to span days, got %v", got)
	}

	if raw, ok := store.Raw(db.KeyFocusTodayPrefix + "2024-05-15"); !ok || raw != "900" {
		t.Fatalf("expected previous day's counter to survive, got %q ok=%v", raw, ok)
	}
}

func TestFocusTodaySurvivesRestart(t *testing.T) {
	store := storage.NewMemoryStore()

	first := NewFocusService(store)
	first.SetNow(fixedDay(2024, 5, 15))
	first.AddSeconds(450)

	second := NewFocusService(store)
	second.SetNow(fixedDay(2024, 5, 15))
	if got := second.TodaySeconds(); got != 450 {
		t.Fatalf("expected counter restored from store, got %v", got)
	}
	if got := second.TotalSeconds(); got != 450 {
		t.Fatalf("expected total restored from store, got %v", got)
	}
}
