package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SnapshotSession 把当前状态写入旧版整体会话快照。
func (a *API) SnapshotSession(c *gin.Context) {
	if err := a.session.Snapshot(); err != nil {
		respondError(c, http.StatusInternalServerError, "保存会话快照失败")
		return
	}
	respondData(c, gin.H{"saved": true})
}

// RestoreSession 返回浅合并了已存快照的聚合视图。
func (a *API) RestoreSession(c *gin.Context) {
	aggregate, err := a.session.Restore()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "恢复会话快照失败")
		return
	}
	respondData(c, gin.H{"session": aggregate})
}
