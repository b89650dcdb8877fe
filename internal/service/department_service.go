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

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNotFound            = errors.New("部门不存在")
	ErrDepartmentNotFoundOrInactive  = errors.New("部门不存在或已停用")
	ErrDepartmentHasActiveEmployees  = errors.New("部门下仍有启用的员工")
	ErrDepartmentParentInactive      = errors.New("所属地点已停用，无法恢复部门")
	ErrDepartmentLocationUnavailable = errors.New("所属地点不存在或已停用")
)

// DepartmentService 部门业务接口
type DepartmentService interface {
	List(ctx context.Context) ([]dto.DepartmentDetailResponse, error)
	ListByLocation(ctx context.Context, locationID int) ([]dto.DepartmentDetailResponse, error)
	GetByID(ctx context.Context, id int) (*dto.DepartmentDetailResponse, error)
	ListEmployees(ctx context.Context, id int) ([]dto.EmployeeResponse, error)
	Create(ctx context.Context, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	Update(ctx context.Context, id int, req *dto.DepartmentRequest) error
	Delete(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentDetailResponse, error) {
	return s.listNested(ctx, nil)
}

func (s *departmentService) ListByLocation(ctx context.Context, locationID int) ([]dto.DepartmentDetailResponse, error) {
	return s.listNested(ctx, &locationID)
}

func (s *departmentService) listNested(ctx context.Context, locationID *int) ([]dto.DepartmentDetailResponse, error) {
	depts, err := s.repo.Department.ListActive(ctx, locationID)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}

	nested, _, err := nestDepartments(ctx, s.repo, depts)
	if err != nil {
		s.logger.Error("装配部门员工失败", zap.Error(err))
		return nil, err
	}
	return nested, nil
}

func (s *departmentService) GetByID(ctx context.Context, id int) (*dto.DepartmentDetailResponse, error) {
	dept, err := s.getActive(ctx, id, ErrDepartmentNotFound)
	if err != nil {
		return nil, err
	}

	nested, _, err := nestDepartments(ctx, s.repo, []model.Department{*dept})
	if err != nil {
		s.logger.Error("装配部门员工失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &nested[0], nil
}

func (s *departmentService) ListEmployees(ctx context.Context, id int) ([]dto.EmployeeResponse, error) {
	if _, err := s.getActive(ctx, id, ErrDepartmentNotFoundOrInactive); err != nil {
		return nil, err
	}

	emps, err := s.repo.Employee.ListActive(ctx, repository.EmployeeFilter{DepartmentID: &id})
	if err != nil {
		s.logger.Error("列出部门员工失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toEmployeeResponses(emps), nil
}

// ────────────────────── Create ──────────────────────

// Create 所属地点必须存在且处于启用状态
func (s *departmentService) Create(ctx context.Context, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	loc, err := s.repo.Location.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentLocationUnavailable
		}
		s.logger.Error("查询部门所属地点失败", zap.Int("location_id", req.LocationID), zap.Error(err))
		return nil, err
	}
	if !loc.IsActive() {
		return nil, ErrDepartmentLocationUnavailable
	}

	dept := departmentFromRequest(req)
	dept.ID = 0
	dept.Activate(nowFunc())

	if err := s.repo.Department.Create(ctx, dept); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrDepartmentLocationUnavailable
		}
		s.logger.Error("创建部门失败", zap.Error(err))
		return nil, err
	}

	dept.Location = loc
	resp := toDepartmentResponse(dept)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, id int, req *dto.DepartmentRequest) error {
	if req.ID != id {
		return ErrIDMismatch
	}

	existing, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		return s.notFoundOr(err, id)
	}

	dept := departmentFromRequest(req)
	dept.Active = existing.Active
	dept.RecordAdd = nowFunc()

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		return s.resolveWriteError(ctx, id, err)
	}
	return nil
}

// resolveWriteError 写入失败后的归类：并发删除 → 404，外键失败 → 400
func (s *departmentService) resolveWriteError(ctx context.Context, id int, err error) error {
	switch {
	case errors.Is(err, pkgerrors.ErrConcurrentUpdate):
		if _, getErr := s.repo.Department.GetByID(ctx, id); errors.Is(getErr, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("部门并发更新冲突", zap.Int("id", id), zap.Error(err))
		return err
	case pkgerrors.IsForeignKeyViolation(err):
		return ErrInvalidReference
	default:
		s.logger.Error("更新部门失败", zap.Int("id", id), zap.Error(err))
		return err
	}
}

// ────────────────────── Delete / Restore ──────────────────────

// Delete 软删除；存在启用员工时拒绝
func (s *departmentService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		return s.notFoundOr(err, id)
	}

	count, err := s.repo.Department.CountActiveEmployees(ctx, id)
	if err != nil {
		s.logger.Error("统计部门启用员工失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrDepartmentHasActiveEmployees
	}

	return s.setActive(ctx, id, false)
}

// Restore 仅当所属地点处于启用状态时允许
func (s *departmentService) Restore(ctx context.Context, id int) error {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		return s.notFoundOr(err, id)
	}

	loc, err := s.repo.Location.GetByID(ctx, dept.LocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentParentInactive
		}
		s.logger.Error("查询部门所属地点失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if !loc.IsActive() {
		return ErrDepartmentParentInactive
	}

	return s.setActive(ctx, id, true)
}

func (s *departmentService) setActive(ctx context.Context, id int, active bool) error {
	if err := s.repo.Department.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("更新部门状态失败", zap.Int("id", id), zap.Bool("active", active), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *departmentService) getActive(ctx context.Context, id int, notFound error) (*model.Department, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		s.logger.Error("查询部门失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	if !dept.IsActive() {
		return nil, notFound
	}
	return dept, nil
}

func (s *departmentService) notFoundOr(err error, id int) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDepartmentNotFound
	}
	s.logger.Error("查询部门失败", zap.Int("id", id), zap.Error(err))
	return err
}

func departmentFromRequest(req *dto.DepartmentRequest) *model.Department {
	return &model.Department{
		ID:          req.ID,
		Name:        req.Name,
		LocationID:  req.LocationID,
		ManagerName: req.ManagerName,
		Phone:       req.Phone,
		Email:       req.Email,
		Fax:         req.Fax,
	}
}
