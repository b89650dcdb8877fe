package service

import (
	"context"
	"errors"
	"time"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/model"
	"github.com/KJohnson82/MMPD/internal/repository"
)

// ── 跨模块共享的业务错误 ──

var (
	ErrIDMismatch       = errors.New("路径 ID 与请求体 ID 不一致")
	ErrInvalidReference = errors.New("引用的记录不存在")
)

// nowFunc 服务端时间来源，测试中可替换
var nowFunc = func() time.Time { return time.Now().UTC() }

const timeLayout = time.RFC3339

// ── 模型 → DTO ──

func toLocationResponse(loc *model.Location) dto.LocationResponse {
	resp := dto.LocationResponse{
		ID:             loc.ID,
		Name:           loc.Name,
		Number:         loc.Number,
		Address:        loc.Address,
		City:           loc.City,
		State:          loc.State,
		Zip:            loc.Zip,
		Phone:          loc.Phone,
		Fax:            loc.Fax,
		Email:          loc.Email,
		Hours:          loc.Hours,
		LocationTypeID: loc.LocationTypeID,
		AreaManager:    loc.AreaManager,
		StoreManager:   loc.StoreManager,
		Active:         loc.IsActive(),
		RecordAdd:      loc.RecordAdd.Format(timeLayout),
	}
	if loc.LocationType != nil {
		resp.LocationType = loc.LocationType.Name
	}
	return resp
}

func toDepartmentResponse(dept *model.Department) dto.DepartmentResponse {
	resp := dto.DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		LocationID:  dept.LocationID,
		ManagerName: dept.ManagerName,
		Phone:       dept.Phone,
		Email:       dept.Email,
		Fax:         dept.Fax,
		Active:      dept.IsActive(),
		RecordAdd:   dept.RecordAdd.Format(timeLayout),
	}
	if dept.Location != nil {
		resp.Location = &dto.LocationRef{ID: dept.Location.ID, Name: dept.Location.Name}
	}
	return resp
}

func toEmployeeResponse(emp *model.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:           emp.ID,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		JobTitle:     emp.JobTitle,
		IsManager:    emp.IsManager,
		Phone:        emp.Phone,
		CellPhone:    emp.CellPhone,
		Extension:    emp.Extension,
		Email:        emp.Email,
		NetworkID:    emp.NetworkID,
		AvatarRef:    emp.AvatarRef,
		LocationID:   emp.LocationID,
		DepartmentID: emp.DepartmentID,
		Active:       emp.IsActive(),
		RecordAdd:    emp.RecordAdd.Format(timeLayout),
	}
	if emp.Location != nil {
		resp.Location = &dto.LocationRef{ID: emp.Location.ID, Name: emp.Location.Name}
	}
	if emp.Department != nil {
		resp.Department = &dto.DepartmentRef{ID: emp.Department.ID, Name: emp.Department.Name}
	}
	return resp
}

func toEmployeeResponses(emps []model.Employee) []dto.EmployeeResponse {
	result := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		result = append(result, toEmployeeResponse(&emps[i]))
	}
	return result
}

// ── 三层目录装配 ──

// nestDepartments 为部门挂载启用员工（第三层）
func nestDepartments(ctx context.Context, repo *repository.Repository, depts []model.Department) ([]dto.DepartmentDetailResponse, int, error) {
	deptIDs := make([]int, 0, len(depts))
	for i := range depts {
		deptIDs = append(deptIDs, depts[i].ID)
	}

	emps, err := repo.Employee.ListActiveByDepartmentIDs(ctx, deptIDs)
	if err != nil {
		return nil, 0, err
	}

	byDept := make(map[int][]dto.EmployeeResponse, len(depts))
	for i := range emps {
		if emps[i].DepartmentID == nil {
			continue
		}
		id := *emps[i].DepartmentID
		byDept[id] = append(byDept[id], toEmployeeResponse(&emps[i]))
	}

	result := make([]dto.DepartmentDetailResponse, 0, len(depts))
	employees := 0
	for i := range depts {
		members := byDept[depts[i].ID]
		if members == nil {
			members = []dto.EmployeeResponse{}
		}
		employees += len(members)
		result = append(result, dto.DepartmentDetailResponse{
			DepartmentResponse: toDepartmentResponse(&depts[i]),
			Employees:          members,
		})
	}
	return result, employees, nil
}

// nestLocations 逐层查询启用的部门与员工并在内存中拼装
// 计数来自遍历结果：停用部门下的启用员工不计入
func nestLocations(ctx context.Context, repo *repository.Repository, locs []model.Location) ([]dto.LocationDetailResponse, dto.RecordCounts, error) {
	var counts dto.RecordCounts

	locIDs := make([]int, 0, len(locs))
	for i := range locs {
		locIDs = append(locIDs, locs[i].ID)
	}

	depts, err := repo.Department.ListActiveByLocationIDs(ctx, locIDs)
	if err != nil {
		return nil, counts, err
	}

	nested, employees, err := nestDepartments(ctx, repo, depts)
	if err != nil {
		return nil, counts, err
	}

	byLoc := make(map[int][]dto.DepartmentDetailResponse, len(locs))
	for _, d := range nested {
		byLoc[d.LocationID] = append(byLoc[d.LocationID], d)
	}

	result := make([]dto.LocationDetailResponse, 0, len(locs))
	for i := range locs {
		children := byLoc[locs[i].ID]
		if children == nil {
			children = []dto.DepartmentDetailResponse{}
		}
		result = append(result, dto.LocationDetailResponse{
			LocationResponse: toLocationResponse(&locs[i]),
			Departments:      children,
		})
	}

	counts.Locations = len(result)
	counts.Departments = len(nested)
	counts.Employees = employees
	return result, counts, nil
}
