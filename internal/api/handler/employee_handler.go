package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/service"
	"github.com/KJohnson82/MMPD/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// ListEmployees GET /api/Employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, employees)
}

// ListByDepartment GET /api/Employees/department/:departmentId
func (h *EmployeeHandler) ListByDepartment(c *gin.Context) {
	departmentID, ok := MustGetIntParam(c, "departmentId")
	if !ok {
		return
	}

	employees, err := h.employeeSvc.ListByDepartment(c.Request.Context(), departmentID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, employees)
}

// ListByLocation GET /api/Employees/location/:locationId
func (h *EmployeeHandler) ListByLocation(c *gin.Context) {
	locationID, ok := MustGetIntParam(c, "locationId")
	if !ok {
		return
	}

	employees, err := h.employeeSvc.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, employees)
}

// GetEmployee GET /api/Employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	employee, err := h.employeeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, employee)
}

// CreateEmployee POST /api/Employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.EmployeeRequest
	if !MustBindJSON(c, &req) {
		return
	}

	employee, err := h.employeeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.Created(c, "/api/Employees/"+strconv.Itoa(employee.ID), employee)
}

// UpdateEmployee PUT /api/Employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	var req dto.EmployeeRequest
	if !MustBindJSON(c, &req) {
		return
	}

	if err := h.employeeSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteEmployee DELETE /api/Employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.employeeSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.NoContent(c)
}

// RestoreEmployee POST /api/Employees/:id/restore
func (h *EmployeeHandler) RestoreEmployee(c *gin.Context) {
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}

	if err := h.employeeSvc.Restore(c.Request.Context(), id); err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c)
	case errors.Is(err, service.ErrIDMismatch):
		response.BadRequest(c, 18001, msgIDMismatch)
	case errors.Is(err, service.ErrInvalidReference):
		response.BadRequest(c, 18002, "Invalid department or location ID.")
	default:
		response.InternalError(c)
	}
}
