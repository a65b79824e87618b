package service

import (
	"strings"
	"sync"
	"time"
)

// Task 是跨域同步的外部任务输入，同步只读取它，绝不回写任务集合。
type Task struct {
	Text      string `json:"text"`
	DueDate   string `json:"due_date"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	Category  string `json:"category"`
}

// SyncService 把外部任务/目标集合幂等地投影进进度账本。
// 查找与写入之间按自然键持锁，避免并发同步产生重复条目。
type SyncService struct {
	progress *ProgressService
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSyncService 构造 SyncService。
func NewSyncService(progress *ProgressService) *SyncService {
	return &SyncService{
		progress: progress,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// SetNow 覆盖时间源，主要面向测试场景。
func (s *SyncService) SetNow(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// SyncWithTasks 把今天到期的任务投影为 type=task 的账本条目，
// 匹配键为 (title, date)。不到期的任务整体忽略：既不投影也不清理。
// 对相同输入重复调用不会产生新的条目。
func (s *SyncService) SyncWithTasks(tasks []Task) {
	today := s.now().Format(dateLayout)

	for _, task := range tasks {
		if task.DueDate != today {
			continue
		}

		title := strings.TrimSpace(task.Text)
		unlock := s.lockKey("task|" + title + "|" + task.DueDate)

		status := "pending"
		value := 0.0
		if task.Completed {
			status = "completed"
			value = 1.0
		}

		existing, ok := s.progress.find(func(item ProgressItem) bool {
			return item.Type == "task" && item.Title == title && item.Date == task.DueDate
		})

		if !ok {
			input := ProgressItemInput{
				Type:        "task",
				Title:       title,
				Description: "Task: " + title,
				Status:      status,
				Priority:    task.Priority,
				Category:    task.Category,
				Value:       value,
				Date:        task.DueDate,
			}
			if task.Completed {
				stamp := s.now().Format(time.RFC3339)
				input.CompletedAt = &stamp
			}
			s.progress.Create(input)
		} else if existing.Status != status {
			update := ProgressItemUpdate{Status: &status}
			if task.Completed {
				stamp := s.now().Format(time.RFC3339)
				update.CompletedAt = &stamp
			}
			if _, err := s.progress.Update(existing.ID, update); err != nil {
				// 条目在持锁期间被删除，下一轮同步会重建
				unlock()
				continue
			}
		}

		unlock()
	}

	s.progress.markSynced()
}

// SyncWithGoals 把每个目标投影为 type=goal 的账本条目，仅按 title 匹配，
// 因此一个目标永远只对应一条账本条目。数值或完成状态变化时就地更新。
// 对相同输入重复调用不会产生新的条目。
func (s *SyncService) SyncWithGoals(goals []Goal) {
	today := s.now().Format(dateLayout)

	for _, goal := range goals {
		title := strings.TrimSpace(goal.Title)
		unlock := s.lockKey("goal|" + title)

		status := "pending"
		if goal.Status == "completed" {
			status = "completed"
		}

		existing, ok := s.progress.find(func(item ProgressItem) bool {
			return item.Type == "goal" && item.Title == title
		})

		if !ok {
			target := goal.TargetValue
			s.progress.Create(ProgressItemInput{
				Type:        "goal",
				Title:       title,
				Description: goal.Description,
				Status:      status,
				Priority:    goal.Priority,
				Category:    goal.Category,
				Value:       goal.CurrentValue,
				TargetValue: &target,
				Date:        today,
				CompletedAt: goal.CompletedAt,
			})
		} else if existing.Value != goal.CurrentValue || existing.Status != status {
			value := goal.CurrentValue
			update := ProgressItemUpdate{Value: &value, Status: &status}
			if goal.CompletedAt != nil {
				update.CompletedAt = goal.CompletedAt
			}
			if _, err := s.progress.Update(existing.ID, update); err != nil {
				unlock()
				continue
			}
		}

		unlock()
	}

	s.progress.markSynced()
}

// lockKey 返回自然键对应互斥锁的解锁函数。
func (s *SyncService) lockKey(key string) func() {
	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
