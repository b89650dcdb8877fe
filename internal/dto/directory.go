package dto

import "time"

// ── 目录同步 DTO ──

// LocationGroup 某一地点类型下的地点集合
type LocationGroup struct {
	Locations []LocationDetailResponse `json:"locations"`
}

// RecordCounts 记录数统计
type RecordCounts struct {
	Locations   int `json:"locations"`
	Departments int `json:"departments"`
	Employees   int `json:"employees"`
}

// SyncResponse 全量 / 增量同步响应
// Data 形如 {"loctype": {"plant": {"locations": [...]}}}；无数据时为 {}
type SyncResponse struct {
	Data          map[string]map[string]LocationGroup `json:"data"`
	SyncTimestamp time.Time                           `json:"syncTimestamp"`
	Success       bool                                `json:"success"`
	Message       string                              `json:"message"`
	RecordCounts  RecordCounts                        `json:"recordCounts"`
}

// SyncStatusResponse 同步元数据（不含目录数据）
type SyncStatusResponse struct {
	LastModified *time.Time   `json:"lastModified"`
	RecordCounts RecordCounts `json:"recordCounts"`
	ServerTime   time.Time    `json:"serverTime"`
}

// SyncIncrementalRequest 增量同步查询参数
type SyncIncrementalRequest struct {
	Since time.Time `form:"since" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// DirectoryExport 扁平导出：四类数据各自独立查询
type DirectoryExport struct {
	Employees     []EmployeeResponse     `json:"employees"`
	Departments   []DepartmentResponse   `json:"departments"`
	Locations     []LocationResponse     `json:"locations"`
	LocationTypes []LocationTypeResponse `json:"location_types"`
	Timestamp     time.Time              `json:"timestamp"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
	Database        string    `json:"database"`
	ActiveLocations int64     `json:"active_locations"`
	Message         string    `json:"message"`
}
