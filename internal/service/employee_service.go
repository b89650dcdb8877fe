package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/model"
	"github.com/KJohnson82/MMPD/internal/repository"
	pkgerrors "github.com/KJohnson82/MMPD/pkg/errors"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound = errors.New("员工不存在")
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	ListByDepartment(ctx context.Context, departmentID int) ([]dto.EmployeeResponse, error)
	ListByLocation(ctx context.Context, locationID int) ([]dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id int) (*dto.EmployeeResponse, error)
	Create(ctx context.Context, req *dto.EmployeeRequest) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, id int, req *dto.EmployeeRequest) error
	Delete(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *employeeService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	return s.list(ctx, repository.EmployeeFilter{})
}

func (s *employeeService) ListByDepartment(ctx context.Context, departmentID int) ([]dto.EmployeeResponse, error) {
	return s.list(ctx, repository.EmployeeFilter{DepartmentID: &departmentID})
}

func (s *employeeService) ListByLocation(ctx context.Context, locationID int) ([]dto.EmployeeResponse, error) {
	return s.list(ctx, repository.EmployeeFilter{LocationID: &locationID})
}

func (s *employeeService) list(ctx context.Context, filter repository.EmployeeFilter) ([]dto.EmployeeResponse, error) {
	emps, err := s.repo.Employee.ListActive(ctx, filter)
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, err
	}
	return toEmployeeResponses(emps), nil
}

func (s *employeeService) GetByID(ctx context.Context, id int) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, id)
	}
	if !emp.IsActive() {
		return nil, ErrEmployeeNotFound
	}
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

// Create 不校验部门 / 地点引用，悬空引用由外键约束拒绝
func (s *employeeService) Create(ctx context.Context, req *dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	emp := employeeFromRequest(req)
	emp.ID = 0
	emp.Activate(nowFunc())

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrInvalidReference
		}
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id int, req *dto.EmployeeRequest) error {
	if req.ID != id {
		return ErrIDMismatch
	}

	existing, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		return s.notFoundOr(err, id)
	}

	emp := employeeFromRequest(req)
	emp.Active = existing.Active
	emp.RecordAdd = nowFunc()

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		return s.resolveWriteError(ctx, id, err)
	}
	return nil
}

// resolveWriteError 写入失败后的归类：并发删除 → 404，外键失败 → 400
func (s *employeeService) resolveWriteError(ctx context.Context, id int, err error) error {
	switch {
	case errors.Is(err, pkgerrors.ErrConcurrentUpdate):
		if _, getErr := s.repo.Employee.GetByID(ctx, id); errors.Is(getErr, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("员工并发更新冲突", zap.Int("id", id), zap.Error(err))
		return err
	case pkgerrors.IsForeignKeyViolation(err):
		return ErrInvalidReference
	default:
		s.logger.Error("更新员工失败", zap.Int("id", id), zap.Error(err))
		return err
	}
}

// ────────────────────── Delete / Restore ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id int) error {
	return s.setActive(ctx, id, false)
}

// Restore 员工恢复不检查所属部门 / 地点是否启用
func (s *employeeService) Restore(ctx context.Context, id int) error {
	return s.setActive(ctx, id, true)
}

func (s *employeeService) setActive(ctx context.Context, id int, active bool) error {
	if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
		return s.notFoundOr(err, id)
	}
	if err := s.repo.Employee.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("更新员工状态失败", zap.Int("id", id), zap.Bool("active", active), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *employeeService) notFoundOr(err error, id int) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEmployeeNotFound
	}
	s.logger.Error("查询员工失败", zap.Int("id", id), zap.Error(err))
	return err
}

func employeeFromRequest(req *dto.EmployeeRequest) *model.Employee {
	return &model.Employee{
		ID:           req.ID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		JobTitle:     req.JobTitle,
		IsManager:    req.IsManager,
		Phone:        req.Phone,
		CellPhone:    req.CellPhone,
		Extension:    req.Extension,
		Email:        req.Email,
		NetworkID:    req.NetworkID,
		AvatarRef:    req.AvatarRef,
		LocationID:   req.LocationID,
		DepartmentID: req.DepartmentID,
	}
}
