package service

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahxzm/Dreamer/internal/db"
	"github.com/sahxzm/Dreamer/internal/storage"
)

// ErrProgressItemNotFound 在目标进度条目不存在时返回。
var ErrProgressItemNotFound = fmt.Errorf("progress item not found")

// ProgressTypes 列出账本支持的条目类型。
var ProgressTypes = []string{"task", "goal", "focus", "journal", "routine"}

// ProgressItem 是统一进度账本中的一条可完成条目。
// completed_at 仅在完成时设置，且一旦设置不会被常规更新清除。
type ProgressItem struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category"`
	Value       float64  `json:"value"`
	TargetValue *float64 `json:"target_value,omitempty"`
	Date        string   `json:"date"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	CompletedAt *string  `json:"completed_at,omitempty"`
}

// ProgressItemInput 定义创建条目时可配置字段。
type ProgressItemInput struct {
	Type        string
	Title       string
	Description string
	Status      string
	Priority    string
	Category    string
	Value       float64
	TargetValue *float64
	Date        string
	CompletedAt *string
}

// ProgressItemUpdate 描述部分更新，nil 字段保持原值。
type ProgressItemUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Category    *string
	Value       *float64
	TargetValue *float64
	Date        *string
	CompletedAt *string
}

// ProgressStats 是账本的派生统计视图，每次访问都重新计算。
type ProgressStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	InProgress     int `json:"in_progress"`
	CompletionRate int `json:"completion_rate"`
	TodayCompleted int `json:"today_completed"`
	WeekCompleted  int `json:"week_completed"`
	MonthCompleted int `json:"month_completed"`
}

// ProgressService 独占持有进度账本集合并提供增删改查与统计。
type ProgressService struct {
	items    *storage.Container[[]ProgressItem]
	lastSync *storage.Container[string]
	now      func() time.Time
}

// NewProgressService 构造 ProgressService。
func NewProgressService(store storage.Store) *ProgressService {
	return &ProgressService{
		items:    storage.NewContainer(store, db.KeyProgressItems, []ProgressItem{}),
		lastSync: storage.NewContainer(store, db.KeyProgressLastSync, ""),
		now:      time.Now,
	}
}

// SetNow 覆盖时间源，主要面向测试场景。
func (s *ProgressService) SetNow(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// List 返回全部条目，最近创建的在前。
func (s *ProgressService) List() []ProgressItem {
	return s.items.Get()
}

// Get 按 ID 查找条目。
func (s *ProgressService) Get(id string) (*ProgressItem, error) {
	for _, item := range s.items.Get() {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, ErrProgressItemNotFound
}

// Create 分配新 ID 与时间戳并把条目插入集合头部，总是成功。
func (s *ProgressService) Create(input ProgressItemInput) *ProgressItem {
	now := s.now()
	stamp := now.Format(time.RFC3339)

	item := ProgressItem{
		ID:          uuid.NewString(),
		Type:        strings.TrimSpace(input.Type),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Category:    input.Category,
		Value:       input.Value,
		TargetValue: input.TargetValue,
		Date:        input.Date,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
		CompletedAt: input.CompletedAt,
	}

	if item.Status == "" {
		item.Status = "pending"
	}
	if item.Category == "" {
		item.Category = "general"
	}
	if item.Date == "" {
		item.Date = now.Format(dateLayout)
	}
	if item.Status == "completed" && item.CompletedAt == nil {
		item.CompletedAt = &stamp
	}

	s.items.Update(func(items []ProgressItem) []ProgressItem {
		return append([]ProgressItem{item}, items...)
	})

	return &item
}

// Update 合并非 nil 字段并刷新 updated_at；条目不存在时返回 ErrProgressItemNotFound。
// completed_at 只会被设置，不会被常规更新清除。
func (s *ProgressService) Update(id string, updates ProgressItemUpdate) (*ProgressItem, error) {
	var result *ProgressItem

	s.items.Update(func(items []ProgressItem) []ProgressItem {
		for i := range items {
			if items[i].ID != id {
				continue
			}

			item := &items[i]
			if updates.Title != nil {
				item.Title = *updates.Title
			}
			if updates.Description != nil {
				item.Description = *updates.Description
			}
			if updates.Status != nil {
				item.Status = *updates.Status
			}
			if updates.Priority != nil {
				item.Priority = *updates.Priority
			}
			if updates.Category != nil {
				item.Category = *updates.Category
			}
			if updates.Value != nil {
				item.Value = *updates.Value
			}
			if updates.TargetValue != nil {
				item.TargetValue = updates.TargetValue
			}
			if updates.Date != nil {
				item.Date = *updates.Date
			}
			if updates.CompletedAt != nil {
				item.CompletedAt = updates.CompletedAt
			}
			if item.Status == "completed" && item.CompletedAt == nil {
				stamp := s.now().Format(time.RFC3339)
				item.CompletedAt = &stamp
			}
			item.UpdatedAt = s.now().Format(time.RFC3339)

			copied := *item
			result = &copied
			return items
		}
		return items
	})

	if result == nil {
		return nil, ErrProgressItemNotFound
	}
	return result, nil
}

// Complete 把条目标记为已完成并记录完成时间。
func (s *ProgressService) Complete(id string) (*ProgressItem, error) {
	status := "completed"
	stamp := s.now().Format(time.RFC3339)
	return s.Update(id, ProgressItemUpdate{Status: &status, CompletedAt: &stamp})
}

// Delete 按 ID 删除条目；条目不存在时同样视为成功。
func (s *ProgressService) Delete(id string) {
	s.items.Update(func(items []ProgressItem) []ProgressItem {
		return slices.DeleteFunc(items, func(item ProgressItem) bool {
			return item.ID == id
		})
	})
}

// Stats 重新计算账本统计。时间窗按日期字符串比较，只设下界：
// 未来日期的已完成条目在其日期越过窗口起点后同样计入，这是既定的简化。
func (s *ProgressService) Stats() ProgressStats {
	items := s.items.Get()
	now := s.now()

	today := now.Format(dateLayout)
	weekStart := now.AddDate(0, 0, -int(now.Weekday())).Format(dateLayout)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(dateLayout)

	stats := ProgressStats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case "completed":
			stats.Completed++
			if item.Date == today {
				stats.TodayCompleted++
			}
			if item.Date >= weekStart {
				stats.WeekCompleted++
			}
			if item.Date >= monthStart {
				stats.MonthCompleted++
			}
		case "in_progress":
			stats.InProgress++
		case "pending":
			stats.Pending++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	return stats
}

// LastSync 返回最近一次跨域同步时间，尚未同步过时为空串。
func (s *ProgressService) LastSync() string {
	return s.lastSync.Get()
}

func (s *ProgressService) markSynced() {
	s.lastSync.Set(s.now().Format(time.RFC3339))
}

// find 返回第一个满足谓词的条目。
func (s *ProgressService) find(pred func(ProgressItem) bool) (*ProgressItem, bool) {
	for _, item := range s.items.Get() {
		if pred(item) {
			return &item, true
		}
	}
	return nil, false
}
