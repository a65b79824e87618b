package service

import (
	"slices"
	"strings"

	"github.com/sahxzm/Dreamer/internal/db"
	"github.com/sahxzm/Dreamer/internal/storage"
)

// Theme 描述一套配色，仅作为数据下发，渲染由外部 UI 负责。
type Theme struct {
	Name          string `json:"name"`
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Background    string `json:"background"`
	Surface       string `json:"surface"`
	Text          string `json:"text"`
	TextSecondary string `json:"text_secondary"`
	Border        string `json:"border"`
	Accent        string `json:"accent"`
}

// Background 描述一个可选背景，Value 为 CSS 值字符串。
type Background struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Value   string `json:"value"`
	Preview string `json:"preview"`
}

// ThemePreferences 是持久化的主题偏好，JSON 键与旧版存储格式保持兼容。
type ThemePreferences struct {
	CurrentTheme      string       `json:"currentTheme"`
	CurrentBackground string       `json:"currentBackground"`
	CustomBackgrounds []Background `json:"customBackgrounds"`
}

var themes = map[string]Theme{
	"dark": {
		Name: "Dark", Primary: "#8b5cf6", Secondary: "#a855f7",
		Background: "#0f0f17", Surface: "rgba(15, 15, 25, 0.8)",
		Text: "#e2e8f0", TextSecondary: "#94a3b8",
		Border: "rgba(139, 92, 246, 0.2)", Accent: "#8b5cf6",
	},
	"light": {
		Name: "Light", Primary: "#7c3aed", Secondary: "#9333ea",
		Background: "#ffffff", Surface: "rgba(255, 255, 255, 0.8)",
		Text: "#1f2937", TextSecondary: "#6b7280",
		Border: "rgba(124, 58, 237, 0.2)", Accent: "#7c3aed",
	},
	"purple": {
		Name: "Purple", Primary: "#8b5cf6", Secondary: "#a855f7",
		Background: "#1a0b2e", Surface: "rgba(26, 11, 46, 0.8)",
		Text: "#e2e8f0", TextSecondary: "#c4b5fd",
		Border: "rgba(139, 92, 246, 0.3)", Accent: "#8b5cf6",
	},
	"blue": {
		Name: "Blue", Primary: "#3b82f6", Secondary: "#60a5fa",
		Background: "#0f172a", Surface: "rgba(15, 23, 42, 0.8)",
		Text: "#f1f5f9", TextSecondary: "#94a3b8",
		Border: "rgba(59, 130, 246, 0.2)", Accent: "#3b82f6",
	},
	"green": {
		Name: "Green", Primary: "#10b981", Secondary: "#34d399",
		Background: "#064e3b", Surface: "rgba(6, 78, 59, 0.8)",
		Text: "#ecfdf5", TextSecondary: "#a7f3d0",
		Border: "rgba(16, 185, 129, 0.2)", Accent: "#10b981",
	},
}

var backgrounds = map[string]Background{
	"default": {
		Name: "Default", Type: "gradient",
		Value:   "radial-gradient(1200px 800px at 80% 20%, rgba(139, 92, 246, 0.1), transparent), linear-gradient(180deg, rgba(255,255,255,0.02), transparent), linear-gradient(45deg, rgba(139, 92, 246, 0.05), transparent)",
		Preview: "linear-gradient(135deg, rgba(139, 92, 246, 0.1), rgba(168, 85, 247, 0.1))",
	},
	"aurora": {
		Name: "Aurora", Type: "gradient",
		Value:   "linear-gradient(45deg, #667eea 0%, #764ba2 25%, #f093fb 50%, #f5576c 75%, #4facfe 100%)",
		Preview: "linear-gradient(45deg, #667eea, #764ba2)",
	},
	"sunset": {
		Name: "Sunset", Type: "gradient",
		Value:   "linear-gradient(135deg, #ff9a9e 0%, #fecfef 50%, #fecfef 100%)",
		Preview: "linear-gradient(135deg, #ff9a9e, #fecfef)",
	},
	"ocean": {
		Name: "Ocean", Type: "gradient",
		Value:   "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
		Preview: "linear-gradient(135deg, #667eea, #764ba2)",
	},
	"forest": {
		Name: "Forest", Type: "gradient",
		Value:   "linear-gradient(135deg, #134e5e 0%, #71b280 100%)",
		Preview: "linear-gradient(135deg, #134e5e, #71b280)",
	},
	"space": {
		Name: "Space", Type: "gradient",
		Value:   "radial-gradient(ellipse at center, #1e3c72 0%, #2a5298 100%)",
		Preview: "linear-gradient(135deg, #1e3c72, #2a5298)",
	},
}

// ThemeService 负责主题与背景偏好的持久化。
type ThemeService struct {
	prefs *storage.Container[ThemePreferences]
}

// NewThemeService 构造 ThemeService。
func NewThemeService(store storage.Store) *ThemeService {
	return &ThemeService{
		prefs: storage.NewContainer(store, db.KeyTheme, ThemePreferences{
			CurrentTheme:      "dark",
			CurrentBackground: "default",
			CustomBackgrounds: []Background{},
		}),
	}
}

// Preferences 返回当前偏好。
func (s *ThemeService) Preferences() ThemePreferences {
	return s.prefs.Get()
}

// ActiveTheme 返回当前主题配色，未知主题回退到 dark。
func (s *ThemeService) ActiveTheme() Theme {
	theme, ok := themes[s.prefs.Get().CurrentTheme]
	if !ok {
		return themes["dark"]
	}
	return theme
}

// ActiveBackground 返回当前背景，自定义背景优先，未知名称回退到 default。
func (s *ThemeService) ActiveBackground() Background {
	prefs := s.prefs.Get()
	for _, bg := range prefs.CustomBackgrounds {
		if bg.Name == prefs.CurrentBackground {
			return bg
		}
	}
	if bg, ok := backgrounds[prefs.CurrentBackground]; ok {
		return bg
	}
	return backgrounds["default"]
}

// SetTheme 切换主题，未知主题名不做任何变更。
func (s *ThemeService) SetTheme(name string) {
	if _, ok := themes[name]; !ok {
		return
	}
	s.prefs.Update(func(prefs ThemePreferences) ThemePreferences {
		prefs.CurrentTheme = name
		return prefs
	})
}

// SetBackground 切换背景，名称需命中预置或自定义背景。
func (s *ThemeService) SetBackground(name string) {
	prefs := s.prefs.Get()
	_, known := backgrounds[name]
	if !known && !slices.ContainsFunc(prefs.CustomBackgrounds, func(bg Background) bool {
		return bg.Name == name
	}) {
		return
	}
	s.prefs.Update(func(prefs ThemePreferences) ThemePreferences {
		prefs.CurrentBackground = name
		return prefs
	})
}

// AddCustomBackground 追加自定义背景。
func (s *ThemeService) AddCustomBackground(background Background) {
	if strings.TrimSpace(background.Name) == "" {
		return
	}
	s.prefs.Update(func(prefs ThemePreferences) ThemePreferences {
		prefs.CustomBackgrounds = append(prefs.CustomBackgrounds, background)
		return prefs
	})
}

// RemoveCustomBackground 删除自定义背景，若正被使用则回退到 default。
func (s *ThemeService) RemoveCustomBackground(name string) {
	s.prefs.Update(func(prefs ThemePreferences) ThemePreferences {
		prefs.CustomBackgrounds = slices.DeleteFunc(prefs.CustomBackgrounds, func(bg Background) bool {
			return bg.Name == name
		})
		if prefs.CurrentBackground == name {
			prefs.CurrentBackground = "default"
		}
		return prefs
	})
}

// AllThemes 返回全部预置主题。
func (s *ThemeService) AllThemes() []Theme {
	all := make([]Theme, 0, len(themes))
	for _, theme := range themes {
		all = append(all, theme)
	}
	slices.SortFunc(all, func(a, b Theme) int {
		return strings.Compare(a.Name, b.Name)
	})
	return all
}

// AllBackgrounds 返回预置与自定义背景的合集。
func (s *ThemeService) AllBackgrounds() []Background {
	all := make([]Background, 0, len(backgrounds))
	for _, bg := range backgrounds {
		all = append(all, bg)
	}
	slices.SortFunc(all, func(a, b Background) int {
		return strings.Compare(a.Name, b.Name)
	})
	return append(all, s.prefs.Get().CustomBackgrounds...)
}
