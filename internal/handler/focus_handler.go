package handler

import "github.com/gin-gonic/gin"

type focusPayload struct {
	Seconds float64 `json:"seconds"`
}

// GetFocus 返回专注计数器状态。
func (a *API) GetFocus(c *gin.Context) {
	respondData(c, gin.H{
		"total_seconds":       a.focus.TotalSeconds(),
		"today_seconds":       a.focus.TodaySeconds(),
		"total_hours_rounded": a.focus.TotalHoursRounded(),
	})
}

// AddFocusSeconds 追加专注秒数，无效数值被静默丢弃。
func (a *API) AddFocusSeconds(c *gin.Context) {
	var payload focusPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	a.focus.AddSeconds(payload.Seconds)
	respondData(c, gin.H{
		"total_seconds": a.focus.TotalSeconds(),
		"today_seconds": a.focus.TodaySeconds(),
	})
}

// ResetFocusToday 清零当日专注计数器。
func (a *API) ResetFocusToday(c *gin.Context) {
	a.focus.ResetToday()
	respondData(c, gin.H{"today_seconds": a.focus.TodaySeconds()})
}
