package dto

// ── 地点模块 DTO ──

// LocationRequest 创建 / 全量更新地点请求
// PUT 时 ID 必须与路径参数一致；Active 与 RecordAdd 由服务端维护，不接受客户端输入
type LocationRequest struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"             binding:"required,max=100"`
	Number         *int    `json:"number"           binding:"omitempty,gte=0"`
	Address        string  `json:"address"          binding:"required"`
	City           string  `json:"city"             binding:"required"`
	State          string  `json:"state"            binding:"required,max=3"`
	Zip            string  `json:"zip"              binding:"required,max=10"`
	Phone          *string `json:"phone"            binding:"omitempty,phone"`
	Fax            *string `json:"fax"              binding:"omitempty,phone"`
	Email          *string `json:"email"            binding:"omitempty,email,max=60"`
	Hours          *string `json:"hours"`
	LocationTypeID int     `json:"location_type_id" binding:"required,gt=0"`
	AreaManager    *string `json:"area_manager"`
	StoreManager   *string `json:"store_manager"`
}

// LocationResponse 地点信息响应（不含下级）
type LocationResponse struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Number         *int    `json:"number"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Zip            string  `json:"zip"`
	Phone          *string `json:"phone"`
	Fax            *string `json:"fax"`
	Email          *string `json:"email"`
	Hours          *string `json:"hours"`
	LocationTypeID int     `json:"location_type_id"`
	LocationType   string  `json:"location_type,omitempty"`
	AreaManager    *string `json:"area_manager"`
	StoreManager   *string `json:"store_manager"`
	Active         bool    `json:"active"`
	RecordAdd      string  `json:"record_add"`
}

// LocationDetailResponse 地点及其启用的部门、员工
type LocationDetailResponse struct {
	LocationResponse
	Departments []DepartmentDetailResponse `json:"departments"`
}

// LocationRef 员工 / 部门响应中引用的上级地点
type LocationRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
