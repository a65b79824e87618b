package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sahxzm/Dreamer/internal/service"
)

type themeUpdatePayload struct {
	Theme      string `json:"theme"`
	Background string `json:"background"`
}

// GetTheme 返回当前主题偏好与可选项。
func (a *API) GetTheme(c *gin.Context) {
	respondData(c, gin.H{
		"preferences":       a.theme.Preferences(),
		"active_theme":      a.theme.ActiveTheme(),
		"active_background": a.theme.ActiveBackground(),
		"themes":            a.theme.AllThemes(),
		"backgrounds":       a.theme.AllBackgrounds(),
	})
}

// UpdateTheme 切换主题或背景，未知名称不做任何变更。
func (a *API) UpdateTheme(c *gin.Context) {
	var payload themeUpdatePayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	if payload.Theme != "" {
		a.theme.SetTheme(payload.Theme)
	}
	if payload.Background != "" {
		a.theme.SetBackground(payload.Background)
	}

	respondData(c, gin.H{"preferences": a.theme.Preferences()})
}

// AddCustomBackground 追加自定义背景。
func (a *API) AddCustomBackground(c *gin.Context) {
	var payload service.Background
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	a.theme.AddCustomBackground(payload)
	respondData(c, gin.H{"preferences": a.theme.Preferences()})
}

// RemoveCustomBackground 删除自定义背景。
func (a *API) RemoveCustomBackground(c *gin.Context) {
	a.theme.RemoveCustomBackground(c.Param("name"))
	respondData(c, gin.H{"preferences": a.theme.Preferences()})
}
