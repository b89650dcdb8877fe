package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/service"
	"github.com/KJohnson82/MMPD/pkg/response"
)

// DepartmentHandler 部门模块 HTTP 处理器
type DepartmentHandler struct {
	departmentSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(departmentSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentSvc: departmentSvc}
}

// ListDepartments GET /api/Departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.departmentSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, departments)
}

// ListByLocation GET /api/Departments/location/:locationId
func (h *DepartmentHandler) ListByLocation(c *gin.Context) {
	locationID, ok := MustGetIntParam(c, "locationId")
	if !ok {
		return
	}

	departments, err := h.departmentSvc.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, departments)
}

// GetDepartment GET /api/Departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	department, err := h.departmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.OK(c, department)
}

// ListEmployees GET /api/Departments/:id/employees
func (h *DepartmentHandler) ListEmployees(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	employees, err := h.departmentSvc.ListEmployees(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.OK(c, employees)
}

// CreateDepartment POST /api/Departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if !MustBindJSON(c, &req) {
		return
	}

	department, err := h.departmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.Created(c, "/api/Departments/"+strconv.Itoa(department.ID), department)
}

// UpdateDepartment PUT /api/Departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	var req dto.DepartmentRequest
	if !MustBindJSON(c, &req) {
		return
	}

	if err := h.departmentSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteDepartment DELETE /api/Departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.departmentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.NoContent(c)
}

// RestoreDepartment POST /api/Departments/:id/restore
func (h *DepartmentHandler) RestoreDepartment(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.departmentSvc.Restore(c.Request.Context(), id); err != nil {
		h.handleDepartmentError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c)
	case errors.Is(err, service.ErrDepartmentNotFoundOrInactive):
		response.NotFoundWithMessage(c, 17001, "Department not found or is inactive.")
	case errors.Is(err, service.ErrIDMismatch):
		response.BadRequest(c, 17002, msgIDMismatch)
	case errors.Is(err, service.ErrDepartmentLocationUnavailable):
		response.BadRequest(c, 17003, "Invalid or inactive location ID.")
	case errors.Is(err, service.ErrDepartmentHasActiveEmployees):
		response.BadRequest(c, 17004, "Cannot delete department with active employees. Please reassign or deactivate them first.")
	case errors.Is(err, service.ErrDepartmentParentInactive):
		response.BadRequest(c, 17005, "Cannot restore department because its location is inactive.")
	case errors.Is(err, service.ErrInvalidReference):
		response.BadRequest(c, 17006, "Invalid or inactive location ID.")
	default:
		response.InternalError(c)
	}
}
