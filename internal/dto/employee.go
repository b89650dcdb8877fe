package dto

// ── 员工模块 DTO ──

// EmployeeRequest 创建 / 全量更新员工请求
// LocationID / DepartmentID 可为空，创建时不校验其存在性
type EmployeeRequest struct {
	ID           int     `json:"id"`
	FirstName    string  `json:"first_name"    binding:"required,max=20"`
	LastName     string  `json:"last_name"     binding:"required,max=40"`
	JobTitle     string  `json:"job_title"     binding:"required,max=50"`
	IsManager    *bool   `json:"is_manager"`
	Phone        string  `json:"phone"         binding:"required,phone"`
	CellPhone    *string `json:"cell_phone"    binding:"omitempty,phone"`
	Extension    *string `json:"extension"     binding:"omitempty,max=8,numeric"`
	Email        string  `json:"email"         binding:"required,email,max=60"`
	NetworkID    *string `json:"network_id"`
	AvatarRef    *string `json:"avatar_ref"`
	LocationID   *int    `json:"location_id"   binding:"omitempty,gt=0"`
	DepartmentID *int    `json:"department_id" binding:"omitempty,gt=0"`
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	ID           int            `json:"id"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	JobTitle     string         `json:"job_title"`
	IsManager    *bool          `json:"is_manager"`
	Phone        string         `json:"phone"`
	CellPhone    *string        `json:"cell_phone"`
	Extension    *string        `json:"extension"`
	Email        string         `json:"email"`
	NetworkID    *string        `json:"network_id"`
	AvatarRef    *string        `json:"avatar_ref"`
	LocationID   *int           `json:"location_id"`
	DepartmentID *int           `json:"department_id"`
	Active       bool           `json:"active"`
	RecordAdd    string         `json:"record_add"`
	Location     *LocationRef   `json:"location,omitempty"`
	Department   *DepartmentRef `json:"department,omitempty"`
}
