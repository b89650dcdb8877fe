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

// ── 地点类型模块业务错误 ──

var (
	ErrLocationTypeNotFound = errors.New("地点类型不存在")
	ErrLocationTypeInUse    = errors.New("地点类型仍被地点引用")
)

// LocationTypeService 地点类型业务接口（参考数据，硬删除）
type LocationTypeService interface {
	List(ctx context.Context) ([]dto.LocationTypeResponse, error)
	GetByID(ctx context.Context, id int) (*dto.LocationTypeResponse, error)
	Create(ctx context.Context, req *dto.LocationTypeRequest) (*dto.LocationTypeResponse, error)
	Update(ctx context.Context, id int, req *dto.LocationTypeRequest) error
	Delete(ctx context.Context, id int) error
}

type locationTypeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLocationTypeService 创建 LocationTypeService 实例
func NewLocationTypeService(repo *repository.Repository, logger *zap.Logger) LocationTypeService {
	return &locationTypeService{repo: repo, logger: logger}
}

func (s *locationTypeService) List(ctx context.Context) ([]dto.LocationTypeResponse, error) {
	types, err := s.repo.LocationType.List(ctx)
	if err != nil {
		s.logger.Error("列出地点类型失败", zap.Error(err))
		return nil, err
	}
	return toLocationTypeResponses(types), nil
}

func (s *locationTypeService) GetByID(ctx context.Context, id int) (*dto.LocationTypeResponse, error) {
	lt, err := s.repo.LocationType.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, id)
	}
	return &dto.LocationTypeResponse{ID: lt.ID, Name: lt.Name}, nil
}

func (s *locationTypeService) Create(ctx context.Context, req *dto.LocationTypeRequest) (*dto.LocationTypeResponse, error) {
	lt := &model.LocationType{Name: req.Name}
	if err := s.repo.LocationType.Create(ctx, lt); err != nil {
		s.logger.Error("创建地点类型失败", zap.Error(err))
		return nil, err
	}
	return &dto.LocationTypeResponse{ID: lt.ID, Name: lt.Name}, nil
}

func (s *locationTypeService) Update(ctx context.Context, id int, req *dto.LocationTypeRequest) error {
	if req.ID != id {
		return ErrIDMismatch
	}
	if err := s.repo.LocationType.Update(ctx, &model.LocationType{ID: id, Name: req.Name}); err != nil {
		return s.notFoundOr(err, id)
	}
	return nil
}

// Delete 硬删除；被地点引用时由外键 RESTRICT 拒绝
func (s *locationTypeService) Delete(ctx context.Context, id int) error {
	if err := s.repo.LocationType.Delete(ctx, id); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return ErrLocationTypeInUse
		}
		return s.notFoundOr(err, id)
	}
	return nil
}

func (s *locationTypeService) notFoundOr(err error, id int) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLocationTypeNotFound
	}
	s.logger.Error("地点类型操作失败", zap.Int("id", id), zap.Error(err))
	return err
}

func toLocationTypeResponses(types []model.LocationType) []dto.LocationTypeResponse {
	result := make([]dto.LocationTypeResponse, 0, len(types))
	for _, lt := range types {
		result = append(result, dto.LocationTypeResponse{ID: lt.ID, Name: lt.Name})
	}
	return result
}
