package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"data": nil, "error": message})
}

func respondData(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, gin.H{"data": payload, "error": nil})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}
