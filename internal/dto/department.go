package dto

// ── 部门模块 DTO ──

// DepartmentRequest 创建 / 全量更新部门请求
type DepartmentRequest struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"         binding:"required,max=60"`
	LocationID  int     `json:"location_id"  binding:"required,gt=0"`
	ManagerName *string `json:"manager_name" binding:"omitempty,max=60"`
	Phone       *string `json:"phone"        binding:"omitempty,phone"`
	Email       *string `json:"email"        binding:"omitempty,email,max=60"`
	Fax         *string `json:"fax"          binding:"omitempty,phone"`
}

// DepartmentResponse 部门信息响应（不含员工）
type DepartmentResponse struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	LocationID  int          `json:"location_id"`
	ManagerName *string      `json:"manager_name"`
	Phone       *string      `json:"phone"`
	Email       *string      `json:"email"`
	Fax         *string      `json:"fax"`
	Active      bool         `json:"active"`
	RecordAdd   string       `json:"record_add"`
	Location    *LocationRef `json:"location,omitempty"`
}

// DepartmentDetailResponse 部门及其启用的员工
type DepartmentDetailResponse struct {
	DepartmentResponse
	Employees []EmployeeResponse `json:"employees"`
}

// DepartmentRef 员工响应中引用的所属部门
type DepartmentRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
