package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/pkg/response"
)

// MustGetIntParam 从路径参数中解析正整数 ID
// 解析失败时写入 400 响应并返回 false，调用方应直接 return
func MustGetIntParam(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "Invalid "+name+": "+raw)
		return 0, false
	}
	return id, true
}

// MustBindJSON 绑定并校验请求体，失败时写入 400
func MustBindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.BadRequest(c, 10001, dto.ValidationMessage(err))
		return false
	}
	return true
}
