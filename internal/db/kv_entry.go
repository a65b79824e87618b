package db

import "gorm.io/gorm"

// KVEntry 存储本地优先核心的键值条目，值为 UTF-8 JSON 文本。
// Key 采用唯一索引，保证每个集合/快照只有一行；读取方需容忍缺失字段并忽略未知字段。
type KVEntry struct {
	gorm.Model
	Key   string `gorm:"size:191;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (KVEntry) TableName() string {
	return "kv_entries"
}

const (
	// KeyStreakItems 存储全部活动记录集合。
	KeyStreakItems = "streaks:items"
	// KeyProgressItems 存储进度账本集合。
	KeyProgressItems = "progress:items"
	// KeyProgressLastSync 记录最近一次跨域同步时间。
	KeyProgressLastSync = "progress:lastSync"
	// KeyGoalItems 存储目标集合。
	KeyGoalItems = "goals:items"
	// KeyGoalProgress 存储目标每日进度集合。
	KeyGoalProgress = "goals:progress"
	// KeyFocusTotalSeconds 存储累计专注秒数。
	KeyFocusTotalSeconds = "focus:totalSeconds"
	// KeyFocusTodayPrefix 为按日专注秒数的键前缀，完整键形如 focus:todaySeconds:2006-01-02。
	KeyFocusTodayPrefix = "focus:todaySeconds:"
	// KeyTheme 存储主题与背景偏好。
	KeyTheme = "dreamer_theme"
	// KeySession 为兼容旧版本保留的整体会话快照键。
	KeySession = "dreamer-session"
)
