package repository

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// ── 三类目录实体共用的查询 ──

func setActive(ctx context.Context, db *gorm.DB, m interface{}, id int, active bool) error {
	result := db.WithContext(ctx).
		Model(m).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     active,
			"record_add": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func countActive(ctx context.Context, db *gorm.DB, m interface{}) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(m).
		Where("active = ?", true).
		Count(&count).Error
	return count, err
}

// maxRecordAdd 整表（含已停用记录）的最大 record_add；空表返回 nil
func maxRecordAdd(ctx context.Context, db *gorm.DB, table string) (*time.Time, error) {
	var latest sql.NullTime
	err := db.WithContext(ctx).
		Table(table).
		Select("MAX(record_add)").
		Row().
		Scan(&latest)
	if err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	t := latest.Time
	return &t, nil
}
