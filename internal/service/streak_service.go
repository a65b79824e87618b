package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahxzm/Dreamer/internal/db"
	"github.com/sahxzm/Dreamer/internal/storage"
)

const dateLayout = "2006-01-02"

// heatmapDays 固定为含今天在内的过去 366 个自然日。
const heatmapDays = 366

// ActivityTypes 列出支持的活动类别。
var ActivityTypes = []string{"tasks", "focus", "journal", "routines"}

// ErrInvalidActivityType 在活动类别不受支持时返回。
var ErrInvalidActivityType = fmt.Errorf("invalid activity type")

// ActivityRecord 表示某个类别在某个自然日上的一条活动记录。
// 同一 (activity_type, date) 在集合中最多出现一次，重复记录按当日峰值合并。
type ActivityRecord struct {
	ID           string `json:"id"`
	ActivityType string `json:"activity_type"`
	Date         string `json:"date"`
	Value        int    `json:"value"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// StreakStats 汇总单个活动类别的连胜统计。
type StreakStats struct {
	Current      int     `json:"current"`
	Longest      int     `json:"longest"`
	Total        int     `json:"total"`
	LastActivity *string `json:"last_activity"`
}

// StreakService 负责活动记录的幂等写入与连胜/热力图的派生计算。
type StreakService struct {
	records *storage.Container[[]ActivityRecord]
	now     func() time.Time
}

// NewStreakService 构造 StreakService，活动记录由持久化容器承载。
func NewStreakService(store storage.Store) *StreakService {
	return &StreakService{
		records: storage.NewContainer(store, db.KeyStreakItems, []ActivityRecord{}),
		now:     time.Now,
	}
}

// SetNow 覆盖时间源，主要面向测试场景。
func (s *StreakService) SetNow(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// List 返回全部活动记录。
func (s *StreakService) List() []ActivityRecord {
	return s.records.Get()
}

// RecordActivity 为指定类别记录今天的活动。
// 当天已有记录时保留峰值并刷新 updated_at，不会产生第二条记录。
func (s *StreakService) RecordActivity(activityType string, value int) (*ActivityRecord, error) {
	activityType = strings.TrimSpace(strings.ToLower(activityType))
	if !slices.Contains(ActivityTypes, activityType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidActivityType, activityType)
	}

	// 未指定强度时按一次计
	if value <= 0 {
		value = 1
	}

	now := s.now()
	today := now.Format(dateLayout)
	stamp := now.Format(time.RFC3339)

	var result ActivityRecord
	s.records.Update(func(records []ActivityRecord) []ActivityRecord {
		for i := range records {
			if records[i].ActivityType == activityType && records[i].Date == today {
				if value > records[i].Value {
					records[i].Value = value
				}
				records[i].UpdatedAt = stamp
				result = records[i]
				return records
			}
		}

		record := ActivityRecord{
			ID:           uuid.NewString(),
			ActivityType: activityType,
			Date:         today,
			Value:        value,
			CreatedAt:    stamp,
			UpdatedAt:    stamp,
		}
		result = record
		return append(records, record)
	})

	return &result, nil
}

// Stats 为每个活动类别计算 {current, longest, total, last_activity}。
// 空类别返回零值；同日重复记录只按一个日期参与连胜计算。
func (s *StreakService) Stats() map[string]StreakStats {
	stats := make(map[string]StreakStats, len(ActivityTypes))
	grouped := make(map[string][]ActivityRecord)

	for _, record := range s.records.Get() {
		grouped[record.ActivityType] = append(grouped[record.ActivityType], record)
	}

	today := normalizeToDate(s.now())

	for _, activityType := range ActivityTypes {
		records := grouped[activityType]
		if len(records) == 0 {
			stats[activityType] = StreakStats{}
			continue
		}

		slices.SortFunc(records, func(a, b ActivityRecord) int {
			return strings.Compare(a.Date, b.Date)
		})

		days := uniqueDays(records)
		last := records[len(records)-1].Date

		stats[activityType] = StreakStats{
			Current:      currentStreak(days, today),
			Longest:      longestStreak(days),
			Total:        len(records),
			LastActivity: &last,
		}
	}

	return stats
}

// Heatmap 返回含今天在内过去 366 天的 date→强度映射，默认强度为 0。
// 单日强度取该日所有记录的峰值，绝不做跨记录求和。
func (s *StreakService) Heatmap() map[string]int {
	data := make(map[string]int, heatmapDays)
	today := normalizeToDate(s.now())

	for i := 0; i < heatmapDays; i++ {
		data[today.AddDate(0, 0, -i).Format(dateLayout)] = 0
	}

	for _, record := range s.records.Get() {
		current, ok := data[record.Date]
		if !ok {
			continue
		}
		if record.Value > current {
			data[record.Date] = record.Value
		}
	}

	return data
}

// ValueForDate 返回指定类别在指定日期的记录强度，无记录时为 0。
func (s *StreakService) ValueForDate(date, activityType string) int {
	for _, record := range s.records.Get() {
		if record.Date == date && record.ActivityType == activityType {
			return record.Value
		}
	}
	return 0
}

// ActivityLevel 把原始强度离散成 0-4 五档，供单格渲染与整图生成共用。
func ActivityLevel(value int) int {
	switch {
	case value <= 0:
		return 0
	case value < 3:
		return 1
	case value < 6:
		return 2
	case value < 10:
		return 3
	default:
		return 4
	}
}

// currentStreak 从最近一天向前回溯。expected 为距今天的期望偏移；
// 恰好多出一天的空档被容忍，回溯跨过空档后继续计数。
// 这是既定的产品行为：当前连胜允许跨越一个未打卡日。
func currentStreak(days []time.Time, today time.Time) int {
	expected := 0
	current := 0

	for i := len(days) - 1; i >= 0; i-- {
		offset := int(today.Sub(days[i]).Hours() / 24)
		switch {
		case offset == expected:
			current++
			expected++
		case offset == expected+1:
			current++
			expected = offset + 1
		default:
			return current
		}
	}

	return current
}

// longestStreak 按时间顺序扫描，间隔恰为一天时累加，否则重置为 1。
func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest := 1
	current := 1

	for i := 1; i < len(days); i++ {
		delta := int(days[i].Sub(days[i-1]).Hours() / 24)
		if delta == 1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}

	return longest
}

// uniqueDays 把按日期升序的记录折叠成去重后的日期序列，无法解析的日期跳过。
func uniqueDays(records []ActivityRecord) []time.Time {
	days := make([]time.Time, 0, len(records))
	seen := ""

	for _, record := range records {
		if record.Date == seen {
			continue
		}
		day, err := time.ParseInLocation(dateLayout, record.Date, time.Local)
		if err != nil {
			continue
		}
		seen = record.Date
		days = append(days, day)
	}

	return days
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
