package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构
// 成功响应直接输出资源本身（集合为裸数组），不做统一包裹
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 创建成功，附带 Location 头
func Created(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, data)
}

// NoContent 204 无响应体（更新、软删除、恢复）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// NotFound 404，无响应体
func NotFound(c *gin.Context) {
	c.AbortWithStatus(http.StatusNotFound)
}

// NotFoundWithMessage 404，附带说明（父记录不存在或已停用）
func NotFoundWithMessage(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "internal server error")
}

// FailureBody 同步、导出类接口的失败信封
type FailureBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Failure 500，{success:false, message}，不暴露底层错误
func Failure(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, FailureBody{Success: false, Message: message})
}
