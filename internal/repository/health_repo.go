package repository

import (
	"context"

	"gorm.io/gorm"
)

// HealthRepository 数据库连通性检查
type HealthRepository interface {
	Ping(ctx context.Context) error
}

type healthRepo struct {
	db *gorm.DB
}

// NewHealthRepo 创建 HealthRepository 实例
func NewHealthRepo(db *gorm.DB) HealthRepository {
	return &healthRepo{db: db}
}

func (r *healthRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
