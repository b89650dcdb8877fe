package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/service"
	"github.com/KJohnson82/MMPD/pkg/response"
)

// LocationHandler 地点模块 HTTP 处理器
type LocationHandler struct {
	locationSvc service.LocationService
}

// NewLocationHandler 创建 LocationHandler
func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

// ListLocations 获取启用地点及其部门、员工（按名称排序）
// GET /api/Locations
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, locations)
}

// ListByType 固定类型的便捷路由
// GET /api/Locations/corporate | metalmart | servicecenter | plant
func (h *LocationHandler) ListByType(typeID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		locations, err := h.locationSvc.ListByType(c.Request.Context(), typeID)
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, locations)
	}
}

// ListByTypeName 按类型名称获取地点
// GET /api/Locations/type/:name
func (h *LocationHandler) ListByTypeName(c *gin.Context) {
	locations, err := h.locationSvc.ListByTypeName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.OK(c, locations)
}

// GetLocation 获取启用地点详情
// GET /api/Locations/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	location, err := h.locationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.OK(c, location)
}

// ListDepartments 获取地点下的启用部门
// GET /api/Locations/:id/departments
func (h *LocationHandler) ListDepartments(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	departments, err := h.locationSvc.ListDepartments(c.Request.Context(), id)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.OK(c, departments)
}

// ListEmployees 获取地点下的启用员工
// GET /api/Locations/:id/employees
func (h *LocationHandler) ListEmployees(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	employees, err := h.locationSvc.ListEmployees(c.Request.Context(), id)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.OK(c, employees)
}

// CreateLocation 创建地点
// POST /api/Locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req dto.LocationRequest
	if !MustBindJSON(c, &req) {
		return
	}

	location, err := h.locationSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.Created(c, "/api/Locations/"+strconv.Itoa(location.ID), location)
}

// UpdateLocation 全量更新地点
// PUT /api/Locations/:id
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	var req dto.LocationRequest
	if !MustBindJSON(c, &req) {
		return
	}

	if err := h.locationSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteLocation 软删除地点
// DELETE /api/Locations/:id
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.NoContent(c)
}

// RestoreLocation 恢复已停用地点
// POST /api/Locations/:id/restore
func (h *LocationHandler) RestoreLocation(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationSvc.Restore(c.Request.Context(), id); err != nil {
		h.handleLocationError(c, err)
		return
	}
	response.NoContent(c)
}

// handleLocationError 统一处理地点模块业务错误
func (h *LocationHandler) handleLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c)
	case errors.Is(err, service.ErrLocationNotFoundOrInactive):
		response.NotFoundWithMessage(c, 16001, "Location not found or is inactive.")
	case errors.Is(err, service.ErrIDMismatch):
		response.BadRequest(c, 16002, msgIDMismatch)
	case errors.Is(err, service.ErrInvalidLocationType):
		response.BadRequest(c, 16003, "Invalid location type ID.")
	case errors.Is(err, service.ErrInvalidLocationTypeName):
		response.BadRequest(c, 16004, "Invalid location type. Valid types: corporate, metalmart, servicecenter, plant")
	case errors.Is(err, service.ErrLocationHasActiveDependents):
		response.BadRequest(c, 16005, "Cannot delete location with active departments or employees. Please reassign or deactivate them first.")
	case errors.Is(err, service.ErrInvalidReference):
		response.BadRequest(c, 16006, "Invalid location type ID.")
	default:
		response.InternalError(c)
	}
}
