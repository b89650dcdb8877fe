package dto

// SearchRequest 全局搜索查询参数
type SearchRequest struct {
	Term string `form:"term"`
}

// SearchResponse 全局搜索结果，每类实体独立截断
type SearchResponse struct {
	Term         string               `json:"term"`
	Employees    []EmployeeResponse   `json:"employees"`
	Departments  []DepartmentResponse `json:"departments"`
	Locations    []LocationResponse   `json:"locations"`
	TotalResults int                  `json:"total_results"`
	HasResults   bool                 `json:"has_results"`
}

// EmptySearchResponse 空结果，保留原始搜索词
func EmptySearchResponse(term string) *SearchResponse {
	return &SearchResponse{
		Term:        term,
		Employees:   []EmployeeResponse{},
		Departments: []DepartmentResponse{},
		Locations:   []LocationResponse{},
	}
}

// Tally 根据三类结果计算汇总字段
func (r *SearchResponse) Tally() {
	r.TotalResults = len(r.Employees) + len(r.Departments) + len(r.Locations)
	r.HasResults = r.TotalResults > 0
}
