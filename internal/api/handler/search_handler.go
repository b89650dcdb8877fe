package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/service"
	"github.com/KJohnson82/MMPD/pkg/response"
)

// SearchHandler 全局搜索
type SearchHandler struct {
	searchSvc service.SearchService
}

// NewSearchHandler 创建 SearchHandler
func NewSearchHandler(searchSvc service.SearchService) *SearchHandler {
	return &SearchHandler{searchSvc: searchSvc}
}

// Search GET /api/Search?term=smith
// 空搜索词返回空结果而不是 400
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	_ = c.ShouldBindQuery(&req)

	response.OK(c, h.searchSvc.SearchAll(c.Request.Context(), req.Term))
}
