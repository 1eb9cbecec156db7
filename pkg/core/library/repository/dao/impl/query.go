package impl

import (
	"context"

	"gorm.io/gorm"
)

// queryPage counts all rows of T and loads one id-ordered window of them.
func queryPage[T any](ctx context.Context, db *gorm.DB, offset, limit int) ([]T, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]T, 0)
	if int64(offset) >= total {
		return items, total, nil
	}
	err := db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
