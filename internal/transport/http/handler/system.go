package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"datachat/internal/app"
	"datachat/internal/transport/http/response"
)

type SystemHandler struct {
	systemService *app.SystemService
}

func NewSystemHandler(systemService *app.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

func (h *SystemHandler) Stats(c *gin.Context) {
	stats, err := h.systemService.Stats()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get system stats failed")
		return
	}
	response.OK(c, stats)
}

// ClearAll wipes every structured document and the whole chat history.
func (h *SystemHandler) ClearAll(c *gin.Context) {
	if err := h.systemService.ClearAll(c.Request.Context()); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "clear all data failed")
		return
	}
	response.OK(c, gin.H{"message": "all structured documents and chat history deleted"})
}
