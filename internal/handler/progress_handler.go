package handler

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sahxzm/Dreamer/internal/service"
)

type progressItemPayload struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category"`
	Value       float64  `json:"value"`
	TargetValue *float64 `json:"target_value"`
	Date        string   `json:"date"`
}

type progressItemUpdatePayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	Category    *string  `json:"category"`
	Value       *float64 `json:"value"`
	TargetValue *float64 `json:"target_value"`
	Date        *string  `json:"date"`
}

// ListProgress 返回账本全部条目，最近创建的在前。
func (a *API) ListProgress(c *gin.Context) {
	respondData(c, gin.H{"items": a.progress.List()})
}

// CreateProgressItem 新建账本条目。
func (a *API) CreateProgressItem(c *gin.Context) {
	var payload progressItemPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	itemType := strings.TrimSpace(strings.ToLower(payload.Type))
	if !slices.Contains(service.ProgressTypes, itemType) {
		respondError(c, http.StatusBadRequest, "不支持的条目类型")
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		respondError(c, http.StatusBadRequest, "条目标题不能为空")
		return
	}

	item := a.progress.Create(service.ProgressItemInput{
		Type:        itemType,
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Priority:    payload.Priority,
		Category:    payload.Category,
		Value:       payload.Value,
		TargetValue: payload.TargetValue,
		Date:        payload.Date,
	})

	respondData(c, gin.H{"item": item})
}

// UpdateProgressItem 部分更新账本条目。
func (a *API) UpdateProgressItem(c *gin.Context) {
	var payload progressItemUpdatePayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.progress.Update(c.Param("id"), service.ProgressItemUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Priority:    payload.Priority,
		Category:    payload.Category,
		Value:       payload.Value,
		TargetValue: payload.TargetValue,
		Date:        payload.Date,
	})
	if err != nil {
		handleProgressError(c, err)
		return
	}

	respondData(c, gin.H{"item": item})
}

// CompleteProgressItem 把条目标记为已完成。
func (a *API) CompleteProgressItem(c *gin.Context) {
	item, err := a.progress.Complete(c.Param("id"))
	if err != nil {
		handleProgressError(c, err)
		return
	}

	respondData(c, gin.H{"item": item})
}

// DeleteProgressItem 删除条目，条目不存在时同样返回成功。
func (a *API) DeleteProgressItem(c *gin.Context) {
	a.progress.Delete(c.Param("id"))
	respondData(c, nil)
}

// GetProgressStats 返回账本统计。
func (a *API) GetProgressStats(c *gin.Context) {
	respondData(c, gin.H{"stats": a.progress.Stats(), "last_sync": a.progress.LastSync()})
}

// SyncTasks 把外部任务集合幂等投影进账本。
func (a *API) SyncTasks(c *gin.Context) {
	var payload struct {
		Tasks []service.Task `json:"tasks"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	a.sync.SyncWithTasks(payload.Tasks)
	respondData(c, gin.H{"stats": a.progress.Stats()})
}

// SyncGoals 把外部目标集合幂等投影进账本。
func (a *API) SyncGoals(c *gin.Context) {
	var payload struct {
		Goals []service.Goal `json:"goals"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	a.sync.SyncWithGoals(payload.Goals)
	respondData(c, gin.H{"stats": a.progress.Stats()})
}

func handleProgressError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProgressItemNotFound) {
		respondError(c, http.StatusNotFound, "进度条目不存在")
		return
	}
	respondError(c, http.StatusInternalServerError, "操作失败")
}
