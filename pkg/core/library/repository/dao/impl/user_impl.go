package impl

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	errs "library-lending/pkg/common/errors"
	"library-lending/pkg/core/library/model"
	"library-lending/pkg/core/library/repository/dao"
)

const entityUser = "user"

type GormUserRepository struct {
	db *gorm.DB
}

var _ dao.UserRepository = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) QueryByID(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.User{}, errs.NewNotFound(entityUser, id)
	case err != nil:
		return model.User{}, fmt.Errorf("user query failed: %w", errs.WrapGormError(err, entityUser))
	default:
		return user, nil
	}
}

func (r *GormUserRepository) QueryPage(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	users, total, err := queryPage[model.User](ctx, r.db, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("user list failed: %w", errs.WrapGormError(err, entityUser))
	}
	return users, total, nil
}

func (r *GormUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", errs.WrapGormError(err, entityUser))
	}
	return count > 0, nil
}

// Check email existence
func (r *GormUserRepository) IsEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", errs.WrapGormError(err, entityUser))
	}
	return count > 0, nil
}

// Create new user with transaction
func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errs.IsDuplicateError(err) {
				return errs.NewDuplicateEntry(map[string]interface{}{"email": user.Email})
			}
			return fmt.Errorf("user creation failed: %w", errs.WrapGormError(err, entityUser))
		}
		return nil
	})
}

// Replace overwrites every column of an existing user under a row lock.
func (r *GormUserRepository) Replace(ctx context.Context, user model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", user.ID).
			First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound(entityUser, user.ID)
		}
		if err != nil {
			return errs.WrapGormError(err, entityUser)
		}

		user.CreatedAt = current.CreatedAt
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("user update failed: %w", errs.WrapGormError(err, entityUser))
		}
		return nil
	})
}

func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("user delete failed: %w", errs.WrapGormError(result.Error, entityUser))
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(entityUser, id)
	}
	return nil
}
