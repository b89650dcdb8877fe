package dto

// LocationTypeRequest 创建 / 更新地点类型请求
type LocationTypeRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name" binding:"required,max=50"`
}

// LocationTypeResponse 地点类型响应
type LocationTypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
