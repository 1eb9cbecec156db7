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

const entityReview = "review"

type GormReviewRepository struct {
	db *gorm.DB
}

var _ dao.ReviewRepository = (*GormReviewRepository)(nil)

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func reviewKey(userID, bookID int64) map[string]interface{} {
	return map[string]interface{}{"user_id": userID, "book_id": bookID}
}

func (r *GormReviewRepository) QueryByKey(ctx context.Context, userID, bookID int64) (model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&review).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.Review{}, errs.NewNotFound(entityReview, reviewKey(userID, bookID))
	case err != nil:
		return model.Review{}, fmt.Errorf("review query failed: %w", errs.WrapGormError(err, entityReview))
	default:
		return review, nil
	}
}

func (r *GormReviewRepository) QueryAll(ctx context.Context) ([]model.Review, error) {
	reviews := make([]model.Review, 0)
	if err := r.db.WithContext(ctx).Order("book_id, user_id").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("review list failed: %w", errs.WrapGormError(err, entityReview))
	}
	return reviews, nil
}

func (r *GormReviewRepository) QueryByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	reviews := make([]model.Review, 0)
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("user_id").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("review list failed: %w", errs.WrapGormError(err, entityReview))
	}
	return reviews, nil
}

func (r *GormReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(review).Error; err != nil {
			if errs.IsDuplicateError(err) {
				return errs.NewDuplicateEntry(reviewKey(review.UserID, review.BookID))
			}
			return fmt.Errorf("review creation failed: %w", errs.WrapGormError(err, entityReview))
		}
		return nil
	})
}

func (r *GormReviewRepository) Replace(ctx context.Context, review model.Review) error {
	result := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("user_id = ? AND book_id = ?", review.UserID, review.BookID).
		Update("rating", review.Rating)
	if result.Error != nil {
		return fmt.Errorf("review update failed: %w", errs.WrapGormError(result.Error, entityReview))
	}
	if result.RowsAffected == 0 {
		// MySQL reports 0 affected rows when the rating is unchanged
		_, err := r.QueryByKey(ctx, review.UserID, review.BookID)
		return err
	}
	return nil
}

func (r *GormReviewRepository) Delete(ctx context.Context, userID, bookID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.Review{})
	if result.Error != nil {
		return fmt.Errorf("review delete failed: %w", errs.WrapGormError(result.Error, entityReview))
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(entityReview, reviewKey(userID, bookID))
	}
	return nil
}
