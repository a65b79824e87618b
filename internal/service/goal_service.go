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

// ErrGoalNotFound 在指定目标不存在时返回。
var ErrGoalNotFound = fmt.Errorf("goal not found")

// Goal 表示一个带量化目标的长期目标。
// 不变量：0 ≤ current_value ≤ target_value；current_value 首次到达
// target_value 且状态为 active 时恰好转移一次到 completed。
type Goal struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category"`
	Priority     string  `json:"priority"`
	Status       string  `json:"status"`
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	Unit         string  `json:"unit"`
	TargetDate   string  `json:"target_date"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	CompletedAt  *string `json:"completed_at,omitempty"`
}

// GoalProgress 记录某个目标在某个自然日上的累计进度。
// 同一 (goal_id, date) 最多一行，当日重复记录向该行累加。
type GoalProgress struct {
	ID        string  `json:"id"`
	GoalID    string  `json:"goal_id"`
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// GoalInput 定义创建目标时可配置字段。
type GoalInput struct {
	Title        string
	Description  string
	Category     string
	Priority     string
	TargetValue  float64
	CurrentValue float64
	Unit         string
	TargetDate   string
}

// GoalUpdate 描述部分更新，nil 字段保持原值。
type GoalUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	Status      *string
	TargetValue *float64
	Unit        *string
	TargetDate  *string
}

// GoalStats 汇总目标集合的派生统计。
type GoalStats struct {
	Total          int `json:"total"`
	Active         int `json:"active"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completion_rate"`
}

// GoalService 负责目标及其每日进度的持久化与派生计算。
type GoalService struct {
	goals    *storage.Container[[]Goal]
	progress *storage.Container[[]GoalProgress]
	now      func() time.Time
}

// NewGoalService 构造 GoalService。
func NewGoalService(store storage.Store) *GoalService {
	return &GoalService{
		goals:    storage.NewContainer(store, db.KeyGoalItems, []Goal{}),
		progress: storage.NewContainer(store, db.KeyGoalProgress, []GoalProgress{}),
		now:      time.Now,
	}
}

// SetNow 覆盖时间源，主要面向测试场景。
func (s *GoalService) SetNow(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// List 返回全部目标，最近创建的在前。
func (s *GoalService) List() []Goal {
	return s.goals.Get()
}

// ProgressEntries 返回全部每日进度行。
func (s *GoalService) ProgressEntries() []GoalProgress {
	return s.progress.Get()
}

// Get 按 ID 查找目标。
func (s *GoalService) Get(id string) (*Goal, error) {
	for _, goal := range s.goals.Get() {
		if goal.ID == id {
			return &goal, nil
		}
	}
	return nil, ErrGoalNotFound
}

// Create 新建目标并插入集合头部。
func (s *GoalService) Create(input GoalInput) (*Goal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("goal title is required")
	}
	if input.TargetValue <= 0 {
		return nil, fmt.Errorf("goal target value must be positive")
	}

	now := s.now()
	stamp := now.Format(time.RFC3339)

	goal := Goal{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  input.Description,
		Category:     input.Category,
		Priority:     input.Priority,
		Status:       "active",
		TargetValue:  input.TargetValue,
		CurrentValue: math.Max(0, math.Min(input.CurrentValue, input.TargetValue)),
		Unit:         input.Unit,
		TargetDate:   input.TargetDate,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
	}

	s.goals.Update(func(goals []Goal) []Goal {
		return append([]Goal{goal}, goals...)
	})

	return &goal, nil
}

// Update 合并非 nil 字段并刷新 updated_at；目标不存在时返回 ErrGoalNotFound。
func (s *GoalService) Update(id string, updates GoalUpdate) (*Goal, error) {
	var result *Goal

	s.goals.Update(func(goals []Goal) []Goal {
		for i := range goals {
			if goals[i].ID != id {
				continue
			}

			goal := &goals[i]
			if updates.Title != nil {
				goal.Title = strings.TrimSpace(*updates.Title)
			}
			if updates.Description != nil {
				goal.Description = *updates.Description
			}
			if updates.Category != nil {
				goal.Category = *updates.Category
			}
			if updates.Priority != nil {
				goal.Priority = *updates.Priority
			}
			if updates.Status != nil {
				goal.Status = *updates.Status
			}
			if updates.TargetValue != nil && *updates.TargetValue > 0 {
				goal.TargetValue = *updates.TargetValue
				if goal.CurrentValue > goal.TargetValue {
					goal.CurrentValue = goal.TargetValue
				}
			}
			if updates.Unit != nil {
				goal.Unit = *updates.Unit
			}
			if updates.TargetDate != nil {
				goal.TargetDate = *updates.TargetDate
			}
			goal.UpdatedAt = s.now().Format(time.RFC3339)

			copied := *goal
			result = &copied
			return goals
		}
		return goals
	})

	if result == nil {
		return nil, ErrGoalNotFound
	}
	return result, nil
}

// Delete 按 ID 删除目标及其进度行；目标不存在时同样视为成功。
func (s *GoalService) Delete(id string) {
	s.goals.Update(func(goals []Goal) []Goal {
		return slices.DeleteFunc(goals, func(goal Goal) bool {
			return goal.ID == id
		})
	})
	s.progress.Update(func(entries []GoalProgress) []GoalProgress {
		return slices.DeleteFunc(entries, func(entry GoalProgress) bool {
			return entry.GoalID == id
		})
	})
}

// RecordProgress 为目标记录今天的进度。
// 当日已有进度行时向其累加；current_value 以 target_value 封顶；
// 首次到达目标且目标仍为 active 时恰好转移一次到 completed。
// 非正或非有限的 value 被静默丢弃，不产生任何错误。
func (s *GoalService) RecordProgress(goalID string, value float64, notes string) (*GoalProgress, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return nil, nil
	}

	goal, err := s.Get(goalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := now.Format(dateLayout)
	stamp := now.Format(time.RFC3339)

	var result GoalProgress
	s.progress.Update(func(entries []GoalProgress) []GoalProgress {
		for i := range entries {
			if entries[i].GoalID == goalID && entries[i].Date == today {
				entries[i].Value += value
				if strings.TrimSpace(notes) != "" {
					entries[i].Notes = notes
				}
				result = entries[i]
				return entries
			}
		}

		entry := GoalProgress{
			ID:        uuid.NewString(),
			GoalID:    goalID,
			Date:      today,
			Value:     value,
			Notes:     notes,
			CreatedAt: stamp,
		}
		result = entry
		return append(entries, entry)
	})

	newCurrent := math.Min(goal.CurrentValue+value, goal.TargetValue)
	completing := newCurrent >= goal.TargetValue && goal.Status == "active"

	s.goals.Update(func(goals []Goal) []Goal {
		for i := range goals {
			if goals[i].ID != goalID {
				continue
			}
			goals[i].CurrentValue = newCurrent
			if completing {
				goals[i].Status = "completed"
				goals[i].CompletedAt = &stamp
			}
			goals[i].UpdatedAt = stamp
			return goals
		}
		return goals
	})

	return &result, nil
}

// History 返回目标的进度历史，按日期升序。
func (s *GoalService) History(goalID string) []GoalProgress {
	history := make([]GoalProgress, 0)
	for _, entry := range s.progress.Get() {
		if entry.GoalID == goalID {
			history = append(history, entry)
		}
	}

	slices.SortFunc(history, func(a, b GoalProgress) int {
		return strings.Compare(a.Date, b.Date)
	})

	return history
}

// Stats 重新计算目标统计。
func (s *GoalService) Stats() GoalStats {
	goals := s.goals.Get()

	stats := GoalStats{Total: len(goals)}
	for _, goal := range goals {
		switch goal.Status {
		case "active":
			stats.Active++
		case "completed":
			stats.Completed++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	return stats
}
