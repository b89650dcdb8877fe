package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/model"
	"github.com/KJohnson82/MMPD/internal/repository"
	"github.com/KJohnson82/MMPD/pkg/metrics"
)

// SearchResultLimit 每类实体最多返回的条数
const SearchResultLimit = 20

// SearchService 跨员工、部门、地点的子串搜索
type SearchService interface {
	SearchAll(ctx context.Context, term string) *dto.SearchResponse
}

type searchService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSearchService 创建 SearchService 实例
func NewSearchService(repo *repository.Repository, logger *zap.Logger) SearchService {
	return &searchService{repo: repo, logger: logger}
}

// ── 各类型参与匹配的字段 ──

type fieldAccessor[T any] func(*T) string

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

var employeeFields = []fieldAccessor[model.Employee]{
	func(e *model.Employee) string { return e.FirstName },
	func(e *model.Employee) string { return e.LastName },
	func(e *model.Employee) string { return e.JobTitle },
	func(e *model.Employee) string { return e.Phone },
	func(e *model.Employee) string { return str(e.CellPhone) },
	func(e *model.Employee) string { return e.Email },
	func(e *model.Employee) string { return str(e.Extension) },
}

var departmentFields = []fieldAccessor[model.Department]{
	func(d *model.Department) string { return d.Name },
	func(d *model.Department) string { return str(d.ManagerName) },
	func(d *model.Department) string { return str(d.Phone) },
	func(d *model.Department) string { return str(d.Email) },
}

var locationFields = []fieldAccessor[model.Location]{
	func(l *model.Location) string { return l.Name },
	func(l *model.Location) string { return l.Address },
	func(l *model.Location) string { return l.City },
	func(l *model.Location) string { return l.State },
	func(l *model.Location) string { return l.Zip },
	func(l *model.Location) string { return str(l.Phone) },
	func(l *model.Location) string { return str(l.AreaManager) },
	func(l *model.Location) string { return str(l.StoreManager) },
	func(l *model.Location) string {
		if l.Number == nil {
			return ""
		}
		return strconv.Itoa(*l.Number)
	},
}

// matchAny 任一字段包含 term（不区分大小写）即命中；term 需已转为小写
// 大小写折叠采用 Unicode 小写映射（如开尔文符号 K 视同 k），有意比逐字节比较更宽松
func matchAny[T any](item *T, fields []fieldAccessor[T], term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f(item)), term) {
			return true
		}
	}
	return false
}

// filterMatches 按存储返回顺序取前 limit 条命中记录
func filterMatches[T any, R any](items []T, fields []fieldAccessor[T], term string, limit int, convert func(*T) R) []R {
	result := make([]R, 0)
	for i := range items {
		if len(result) >= limit {
			break
		}
		if matchAny(&items[i], fields, term) {
			result = append(result, convert(&items[i]))
		}
	}
	return result
}

// SearchAll 空白搜索词直接返回空结果，不访问存储
// 单类实体查询失败只影响该类结果，其余两类照常返回
func (s *searchService) SearchAll(ctx context.Context, term string) *dto.SearchResponse {
	resp := dto.EmptySearchResponse(term)
	if strings.TrimSpace(term) == "" {
		return resp
	}
	needle := strings.ToLower(term)

	if emps, err := s.repo.Employee.ListActive(ctx, repository.EmployeeFilter{}); err != nil {
		s.logger.Warn("搜索员工失败", zap.String("term", term), zap.Error(err))
		metrics.ObserveSearch("employees", err)
	} else {
		resp.Employees = filterMatches(emps, employeeFields, needle, SearchResultLimit, toEmployeeResponse)
		metrics.ObserveSearch("employees", nil)
	}

	if depts, err := s.repo.Department.ListActive(ctx, nil); err != nil {
		s.logger.Warn("搜索部门失败", zap.String("term", term), zap.Error(err))
		metrics.ObserveSearch("departments", err)
	} else {
		resp.Departments = filterMatches(depts, departmentFields, needle, SearchResultLimit, toDepartmentResponse)
		metrics.ObserveSearch("departments", nil)
	}

	if locs, err := s.repo.Location.ListActive(ctx, repository.LocationFilter{Order: repository.OrderByName}); err != nil {
		s.logger.Warn("搜索地点失败", zap.String("term", term), zap.Error(err))
		metrics.ObserveSearch("locations", err)
	} else {
		resp.Locations = filterMatches(locs, locationFields, needle, SearchResultLimit, toLocationResponse)
		metrics.ObserveSearch("locations", nil)
	}

	resp.Tally()
	return resp
}
