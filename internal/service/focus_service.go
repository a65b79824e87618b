package service

import (
	"math"
	"sync"
	"time"

	"github.com/sahxzm/Dreamer/internal/db"
	"github.com/sahxzm/Dreamer/internal/storage"
)

// FocusService 维护累计与按日专注秒数计数器。
// 按日计数器的键随日期滚动（focus:todaySeconds:2006-01-02），
// 跨天后自动绑定到新键，旧键保留不动。
type FocusService struct {
	store storage.Store
	now   func() time.Time

	total *storage.Container[float64]

	mu        sync.Mutex
	todayDate string
	today     *storage.Container[float64]
}

// NewFocusService 构造 FocusService。
func NewFocusService(store storage.Store) *FocusService {
	return &FocusService{
		store: store,
		now:   time.Now,
		total: storage.NewContainer(store, db.KeyFocusTotalSeconds, float64(0)),
	}
}

// SetNow 覆盖时间源，主要面向测试场景。
func (s *FocusService) SetNow(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// AddSeconds 向累计与当日计数器追加秒数。
// 非有限或非正输入被静默丢弃，调用方不会收到任何错误或警告。
func (s *FocusService) AddSeconds(seconds float64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return
	}

	s.total.Update(func(total float64) float64 {
		return total + seconds
	})
	s.todayContainer().Update(func(total float64) float64 {
		return total + seconds
	})
}

// ResetToday 清零当日计数器。
func (s *FocusService) ResetToday() {
	s.todayContainer().Set(0)
}

// TotalSeconds 返回累计专注秒数。
func (s *FocusService) TotalSeconds() float64 {
	return s.total.Get()
}

// TodaySeconds 返回当日专注秒数。
func (s *FocusService) TodaySeconds() float64 {
	return s.todayContainer().Get()
}

// TotalHoursRounded 返回保留一位小数的累计专注小时数。
func (s *FocusService) TotalHoursRounded() float64 {
	return math.Round(s.total.Get()/3600*10) / 10
}

func (s *FocusService) todayContainer() *storage.Container[float64] {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := s.now().Format(dateLayout)
	if s.today == nil || s.todayDate != date {
		s.today = storage.NewContainer(s.store, db.KeyFocusTodayPrefix+date, float64(0))
		s.todayDate = date
	}
	return s.today
}
