package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sahxzm/Dreamer/internal/service"
)

type activityPayload struct {
	ActivityType string `json:"activity_type"`
	Value        int    `json:"value"`
}

// ListStreaks 返回全部活动记录。
func (a *API) ListStreaks(c *gin.Context) {
	respondData(c, gin.H{"records": a.streaks.List()})
}

// RecordActivity 为指定类别记录今天的活动，同日重复调用幂等。
func (a *API) RecordActivity(c *gin.Context) {
	var payload activityPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	record, err := a.streaks.RecordActivity(payload.ActivityType, payload.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidActivityType) {
			respondError(c, http.StatusBadRequest, "不支持的活动类别")
			return
		}
		respondError(c, http.StatusInternalServerError, "记录活动失败")
		return
	}

	respondData(c, gin.H{"record": record})
}

// GetStreakStats 返回各活动类别的连胜统计。
func (a *API) GetStreakStats(c *gin.Context) {
	respondData(c, gin.H{"stats": a.streaks.Stats()})
}

// GetHeatmap 返回过去 366 天的活动热力图。
func (a *API) GetHeatmap(c *gin.Context) {
	respondData(c, gin.H{"heatmap": a.streaks.Heatmap()})
}

// GetStreakDay 返回指定类别在指定日期的强度与离散档位。
func (a *API) GetStreakDay(c *gin.Context) {
	date := c.Query("date")
	activityType := c.Query("type")
	if date == "" || activityType == "" {
		respondError(c, http.StatusBadRequest, "请指定日期与活动类别")
		return
	}

	value := a.streaks.ValueForDate(date, activityType)
	respondData(c, gin.H{"value": value, "level": service.ActivityLevel(value)})
}

// GetActivityLevel 把原始强度离散成 0-4 档，供单格渲染使用。
func (a *API) GetActivityLevel(c *gin.Context) {
	value, err := strconv.Atoi(c.Query("value"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的强度值")
		return
	}

	respondData(c, gin.H{"level": service.ActivityLevel(value)})
}
