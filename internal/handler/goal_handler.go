package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahxzm/Dreamer/internal/service"
)

type goalPayload struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Priority     string  `json:"priority"`
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	Unit         string  `json:"unit"`
	TargetDate   string  `json:"target_date"`
}

type goalUpdatePayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Priority    *string  `json:"priority"`
	Status      *string  `json:"status"`
	TargetValue *float64 `json:"target_value"`
	Unit        *string  `json:"unit"`
	TargetDate  *string  `json:"target_date"`
}

type goalProgressPayload struct {
	Value float64 `json:"value"`
	Notes string  `json:"notes"`
}

// ListGoals 返回全部目标。
func (a *API) ListGoals(c *gin.Context) {
	respondData(c, gin.H{"goals": a.goals.List()})
}

// CreateGoal 新建目标。
func (a *API) CreateGoal(c *gin.Context) {
	var payload goalPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	goal, err := a.goals.Create(service.GoalInput{
		Title:        payload.Title,
		Description:  payload.Description,
		Category:     payload.Category,
		Priority:     payload.Priority,
		TargetValue:  payload.TargetValue,
		CurrentValue: payload.CurrentValue,
		Unit:         payload.Unit,
		TargetDate:   payload.TargetDate,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "目标配置无效")
		return
	}

	respondData(c, gin.H{"goal": goal})
}

// UpdateGoal 部分更新目标。
func (a *API) UpdateGoal(c *gin.Context) {
	var payload goalUpdatePayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	goal, err := a.goals.Update(c.Param("id"), service.GoalUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Priority:    payload.Priority,
		Status:      payload.Status,
		TargetValue: payload.TargetValue,
		Unit:        payload.Unit,
		TargetDate:  payload.TargetDate,
	})
	if err != nil {
		handleGoalError(c, err)
		return
	}

	respondData(c, gin.H{"goal": goal})
}

// DeleteGoal 删除目标及其进度历史，目标不存在时同样返回成功。
func (a *API) DeleteGoal(c *gin.Context) {
	a.goals.Delete(c.Param("id"))
	respondData(c, nil)
}

// RecordGoalProgress 为目标记录今天的进度，当日重复记录累加。
func (a *API) RecordGoalProgress(c *gin.Context) {
	var payload goalProgressPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	entry, err := a.goals.RecordProgress(c.Param("id"), payload.Value, payload.Notes)
	if err != nil {
		handleGoalError(c, err)
		return
	}

	// 无效数值被静默丢弃，entry 为空
	respondData(c, gin.H{"progress": entry})
}

// GetGoalHistory 返回目标的进度历史，按日期升序。
func (a *API) GetGoalHistory(c *gin.Context) {
	if _, err := a.goals.Get(c.Param("id")); err != nil {
		handleGoalError(c, err)
		return
	}

	respondData(c, gin.H{"history": a.goals.History(c.Param("id"))})
}

// GetGoalStats 返回目标统计。
func (a *API) GetGoalStats(c *gin.Context) {
	respondData(c, gin.H{"stats": a.goals.Stats()})
}

func handleGoalError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrGoalNotFound) {
		respondError(c, http.StatusNotFound, "目标不存在")
		return
	}
	respondError(c, http.StatusInternalServerError, "操作失败")
}
