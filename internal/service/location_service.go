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

// ── 地点模块业务错误 ──

var (
	ErrLocationNotFound            = errors.New("地点不存在")
	ErrLocationNotFoundOrInactive  = errors.New("地点不存在或已停用")
	ErrLocationHasActiveDependents = errors.New("地点下仍有启用的部门或员工")
	ErrInvalidLocationType         = errors.New("地点类型不存在")
	ErrInvalidLocationTypeName     = errors.New("无法识别的地点类型名称")
)

// LocationService 地点业务接口
type LocationService interface {
	List(ctx context.Context) ([]dto.LocationDetailResponse, error)
	ListByType(ctx context.Context, typeID int) ([]dto.LocationDetailResponse, error)
	ListByTypeName(ctx context.Context, name string) ([]dto.LocationDetailResponse, error)
	GetByID(ctx context.Context, id int) (*dto.LocationDetailResponse, error)
	ListDepartments(ctx context.Context, id int) ([]dto.DepartmentDetailResponse, error)
	ListEmployees(ctx context.Context, id int) ([]dto.EmployeeResponse, error)
	Create(ctx context.Context, req *dto.LocationRequest) (*dto.LocationResponse, error)
	Update(ctx context.Context, id int, req *dto.LocationRequest) error
	Delete(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
}

type locationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *locationService) List(ctx context.Context) ([]dto.LocationDetailResponse, error) {
	return s.listNested(ctx, repository.LocationFilter{Order: repository.OrderByName})
}

func (s *locationService) ListByType(ctx context.Context, typeID int) ([]dto.LocationDetailResponse, error) {
	return s.listNested(ctx, repository.LocationFilter{TypeID: &typeID})
}

func (s *locationService) ListByTypeName(ctx context.Context, name string) ([]dto.LocationDetailResponse, error) {
	typeID, ok := model.ParseLocationTypeName(name)
	if !ok {
		return nil, ErrInvalidLocationTypeName
	}
	return s.ListByType(ctx, typeID)
}

func (s *locationService) listNested(ctx context.Context, filter repository.LocationFilter) ([]dto.LocationDetailResponse, error) {
	locs, err := s.repo.Location.ListActive(ctx, filter)
	if err != nil {
		s.logger.Error("列出地点失败", zap.Error(err))
		return nil, err
	}

	nested, _, err := nestLocations(ctx, s.repo, locs)
	if err != nil {
		s.logger.Error("装配地点下级失败", zap.Error(err))
		return nil, err
	}
	return nested, nil
}

// GetByID 仅返回启用地点，附带启用的部门与员工
func (s *locationService) GetByID(ctx context.Context, id int) (*dto.LocationDetailResponse, error) {
	loc, err := s.getActive(ctx, id, ErrLocationNotFound)
	if err != nil {
		return nil, err
	}

	nested, _, err := nestLocations(ctx, s.repo, []model.Location{*loc})
	if err != nil {
		s.logger.Error("装配地点下级失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &nested[0], nil
}

func (s *locationService) ListDepartments(ctx context.Context, id int) ([]dto.DepartmentDetailResponse, error) {
	if _, err := s.getActive(ctx, id, ErrLocationNotFoundOrInactive); err != nil {
		return nil, err
	}

	depts, err := s.repo.Department.ListActive(ctx, &id)
	if err != nil {
		s.logger.Error("列出地点部门失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	nested, _, err := nestDepartments(ctx, s.repo, depts)
	if err != nil {
		s.logger.Error("装配部门员工失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return nested, nil
}

func (s *locationService) ListEmployees(ctx context.Context, id int) ([]dto.EmployeeResponse, error) {
	if _, err := s.getActive(ctx, id, ErrLocationNotFoundOrInactive); err != nil {
		return nil, err
	}

	emps, err := s.repo.Employee.ListActive(ctx, repository.EmployeeFilter{LocationID: &id})
	if err != nil {
		s.logger.Error("列出地点员工失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return toEmployeeResponses(emps), nil
}

// ────────────────────── Create ──────────────────────

func (s *locationService) Create(ctx context.Context, req *dto.LocationRequest) (*dto.LocationResponse, error) {
	exists, err := s.repo.LocationType.Exists(ctx, req.LocationTypeID)
	if err != nil {
		s.logger.Error("校验地点类型失败", zap.Int("location_type_id", req.LocationTypeID), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidLocationType
	}

	loc := locationFromRequest(req)
	loc.ID = 0
	loc.Activate(nowFunc())

	if err := s.repo.Location.Create(ctx, loc); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrInvalidLocationType
		}
		s.logger.Error("创建地点失败", zap.Error(err))
		return nil, err
	}

	resp := toLocationResponse(loc)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

// Update 全量替换可编辑字段；Active 保持原值，只能通过删除 / 恢复变更
func (s *locationService) Update(ctx context.Context, id int, req *dto.LocationRequest) error {
	if req.ID != id {
		return ErrIDMismatch
	}

	existing, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		return s.notFoundOr(err, id)
	}

	loc := locationFromRequest(req)
	loc.Active = existing.Active
	loc.RecordAdd = nowFunc()

	if err := s.repo.Location.Update(ctx, loc); err != nil {
		return s.resolveWriteError(ctx, id, err)
	}
	return nil
}

// resolveWriteError 写入失败后的归类：并发删除 → 404，外键失败 → 400
func (s *locationService) resolveWriteError(ctx context.Context, id int, err error) error {
	switch {
	case errors.Is(err, pkgerrors.ErrConcurrentUpdate):
		if _, getErr := s.repo.Location.GetByID(ctx, id); errors.Is(getErr, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		s.logger.Error("地点并发更新冲突", zap.Int("id", id), zap.Error(err))
		return err
	case pkgerrors.IsForeignKeyViolation(err):
		return ErrInvalidReference
	default:
		s.logger.Error("更新地点失败", zap.Int("id", id), zap.Error(err))
		return err
	}
}

// ────────────────────── Delete / Restore ──────────────────────

// Delete 软删除；存在启用部门，或经由任一部门可达的启用员工时拒绝
func (s *locationService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Location.GetByID(ctx, id); err != nil {
		return s.notFoundOr(err, id)
	}

	depts, err := s.repo.Location.CountActiveDepartments(ctx, id)
	if err != nil {
		s.logger.Error("统计地点启用部门失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	emps, err := s.repo.Location.CountActiveEmployees(ctx, id)
	if err != nil {
		s.logger.Error("统计地点启用员工失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	if depts > 0 || emps > 0 {
		return ErrLocationHasActiveDependents
	}

	return s.setActive(ctx, id, false)
}

// Restore 地点没有上级，恢复不设前置条件
func (s *locationService) Restore(ctx context.Context, id int) error {
	if _, err := s.repo.Location.GetByID(ctx, id); err != nil {
		return s.notFoundOr(err, id)
	}
	return s.setActive(ctx, id, true)
}

func (s *locationService) setActive(ctx context.Context, id int, active bool) error {
	if err := s.repo.Location.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		s.logger.Error("更新地点状态失败", zap.Int("id", id), zap.Bool("active", active), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *locationService) getActive(ctx context.Context, id int, notFound error) (*model.Location, error) {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		s.logger.Error("查询地点失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	if !loc.IsActive() {
		return nil, notFound
	}
	return loc, nil
}

func (s *locationService) notFoundOr(err error, id int) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLocationNotFound
	}
	s.logger.Error("查询地点失败", zap.Int("id", id), zap.Error(err))
	return err
}

func locationFromRequest(req *dto.LocationRequest) *model.Location {
	return &model.Location{
		ID:             req.ID,
		Name:           req.Name,
		Number:         req.Number,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Zip:            req.Zip,
		Phone:          req.Phone,
		Fax:            req.Fax,
		Email:          req.Email,
		Hours:          req.Hours,
		LocationTypeID: req.LocationTypeID,
		AreaManager:    req.AreaManager,
		StoreManager:   req.StoreManager,
	}
}
