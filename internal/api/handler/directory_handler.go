package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/service"
	"github.com/KJohnson82/MMPD/pkg/response"
)

// DirectoryHandler 目录同步与健康检查
//
// 同步接口不返回底层错误：失败时输出 {success:false, message} 与 500
type DirectoryHandler struct {
	directorySvc service.DirectoryService
}

// NewDirectoryHandler 创建 DirectoryHandler
func NewDirectoryHandler(directorySvc service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directorySvc: directorySvc}
}

// Sync 全量快照
// GET /api/Directory/sync
func (h *DirectoryHandler) Sync(c *gin.Context) {
	writeSync(c, h.directorySvc.FullSnapshot(c.Request.Context()))
}

// SyncIncremental 增量快照
// GET /api/Directory/sync/incremental?since=2025-01-01T00:00:00Z
func (h *DirectoryHandler) SyncIncremental(c *gin.Context) {
	var req dto.SyncIncrementalRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 20001, "Query parameter 'since' must be an RFC 3339 timestamp.")
		return
	}
	writeSync(c, h.directorySvc.IncrementalSnapshot(c.Request.Context(), req.Since))
}

// SyncStatus 同步元数据
// GET /api/Directory/sync/status
func (h *DirectoryHandler) SyncStatus(c *gin.Context) {
	status, err := h.directorySvc.SyncStatus(c.Request.Context())
	if err != nil {
		response.Failure(c, "Failed to retrieve sync status")
		return
	}
	response.OK(c, status)
}

// Health 存储连通性检查
// GET /health, GET /api/Directory/health
func (h *DirectoryHandler) Health(c *gin.Context) {
	health := h.directorySvc.Health(c.Request.Context())
	status := http.StatusOK
	if health.Status != "Healthy" {
		status = http.StatusInternalServerError
	}
	c.JSON(status, health)
}

// Export 扁平导出四类数据
// GET /api/Directory/export
func (h *DirectoryHandler) Export(c *gin.Context) {
	out, err := h.directorySvc.Export(c.Request.Context())
	if err != nil {
		response.Failure(c, "Failed to export directory data")
		return
	}
	response.OK(c, out)
}

func writeSync(c *gin.Context, resp *dto.SyncResponse) {
	if !resp.Success {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	response.OK(c, resp)
}
