package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/service"
	"github.com/KJohnson82/MMPD/pkg/response"
)

// LocationTypeHandler 地点类型（参考数据）HTTP 处理器
type LocationTypeHandler struct {
	locationTypeSvc service.LocationTypeService
}

// NewLocationTypeHandler 创建 LocationTypeHandler
func NewLocationTypeHandler(locationTypeSvc service.LocationTypeService) *LocationTypeHandler {
	return &LocationTypeHandler{locationTypeSvc: locationTypeSvc}
}

// ListLocationTypes GET /api/Loctypes
func (h *LocationTypeHandler) ListLocationTypes(c *gin.Context) {
	types, err := h.locationTypeSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, types)
}

// GetLocationType GET /api/Loctypes/:id
func (h *LocationTypeHandler) GetLocationType(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	lt, err := h.locationTypeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLocationTypeError(c, err)
		return
	}
	response.OK(c, lt)
}

// CreateLocationType POST /api/Loctypes
func (h *LocationTypeHandler) CreateLocationType(c *gin.Context) {
	var req dto.LocationTypeRequest
	if !MustBindJSON(c, &req) {
		return
	}

	lt, err := h.locationTypeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLocationTypeError(c, err)
		return
	}
	response.Created(c, "/api/Loctypes/"+strconv.Itoa(lt.ID), lt)
}

// UpdateLocationType PUT /api/Loctypes/:id
func (h *LocationTypeHandler) UpdateLocationType(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	var req dto.LocationTypeRequest
	if !MustBindJSON(c, &req) {
		return
	}

	if err := h.locationTypeSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleLocationTypeError(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteLocationType 硬删除
// DELETE /api/Loctypes/:id
func (h *LocationTypeHandler) DeleteLocationType(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.locationTypeSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLocationTypeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *LocationTypeHandler) handleLocationTypeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationTypeNotFound):
		response.NotFound(c)
	case errors.Is(err, service.ErrIDMismatch):
		response.BadRequest(c, 19001, msgIDMismatch)
	case errors.Is(err, service.ErrLocationTypeInUse):
		response.BadRequest(c, 19002, "Location type is in use and cannot be deleted.")
	default:
		response.InternalError(c)
	}
}
