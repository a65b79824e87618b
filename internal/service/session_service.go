package service

import (
	"github.com/sahxzm/Dreamer/internal/db"
	"github.com/sahxzm/Dreamer/internal/storage"
)

// sessionPaths 选择进入旧版会话快照的子树。
var sessionPaths = []string{
	"streaks.items",
	"goals.items",
	"goals.progress",
	"progress.items",
	"theme.preferences",
}

// SessionService 把各存储的状态聚合后写入旧版整体会话快照键，
// 仅为向后兼容保留；恢复时把快照浅合并进当前聚合视图返回。
type SessionService struct {
	snapshot *storage.Snapshot
	streaks  *StreakService
	progress *ProgressService
	goals    *GoalService
	theme    *ThemeService
}

// NewSessionService 构造 SessionService。
func NewSessionService(store storage.Store, streaks *StreakService, progress *ProgressService, goals *GoalService, theme *ThemeService) *SessionService {
	return &SessionService{
		snapshot: storage.NewSnapshot(store, db.KeySession, sessionPaths),
		streaks:  streaks,
		progress: progress,
		goals:    goals,
		theme:    theme,
	}
}

// Snapshot 采集当前状态并持久化选中的路径。
func (s *SessionService) Snapshot() error {
	return s.snapshot.Persist(s.aggregate())
}

// Restore 返回浅合并了已存快照的聚合视图；快照缺失时返回当前状态。
func (s *SessionService) Restore() (map[string]any, error) {
	aggregate := s.aggregate()
	if err := s.snapshot.Restore(aggregate); err != nil {
		return nil, err
	}
	return aggregate, nil
}

func (s *SessionService) aggregate() map[string]any {
	return map[string]any{
		"streaks": map[string]any{
			"items": s.streaks.List(),
		},
		"goals": map[string]any{
			"items":    s.goals.List(),
			"progress": s.goals.ProgressEntries(),
		},
		"progress": map[string]any{
			"items": s.progress.List(),
		},
		"theme": map[string]any{
			"preferences": s.theme.Preferences(),
		},
	}
}
