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

const entityBook = "book"

type GormBookRepository struct {
	db *gorm.DB
}

var _ dao.BookRepository = (*GormBookRepository)(nil)

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) QueryByID(ctx context.Context, id int64) (model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.Book{}, errs.NewNotFound(entityBook, id)
	case err != nil:
		return model.Book{}, fmt.Errorf("book query failed: %w", errs.WrapGormError(err, entityBook))
	default:
		return book, nil
	}
}

func (r *GormBookRepository) QueryAll(ctx context.Context) ([]model.Book, error) {
	books := make([]model.Book, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("book list failed: %w", errs.WrapGormError(err, entityBook))
	}
	return books, nil
}

func (r *GormBookRepository) QueryPage(ctx context.Context, offset, limit int) ([]model.Book, int64, error) {
	books, total, err := queryPage[model.Book](ctx, r.db, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("book list failed: %w", errs.WrapGormError(err, entityBook))
	}
	return books, total, nil
}

func (r *GormBookRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Book{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check book: %w", errs.WrapGormError(err, entityBook))
	}
	return count > 0, nil
}

func (r *GormBookRepository) IsISBNExists(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Book{}).Where("isbn = ?", isbn).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check isbn: %w", errs.WrapGormError(err, entityBook))
	}
	return count > 0, nil
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(book).Error; err != nil {
			if errs.IsDuplicateError(err) {
				return errs.NewDuplicateEntry(map[string]interface{}{"isbn": book.ISBN})
			}
			return fmt.Errorf("book creation failed: %w", errs.WrapGormError(err, entityBook))
		}
		return nil
	})
}

func (r *GormBookRepository) Replace(ctx context.Context, book model.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Book
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", book.ID).
			First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound(entityBook, book.ID)
		}
		if err != nil {
			return errs.WrapGormError(err, entityBook)
		}

		book.CreatedAt = current.CreatedAt
		if err := tx.Save(&book).Error; err != nil {
			if errs.IsDuplicateError(err) {
				return errs.NewDuplicateEntry(map[string]interface{}{"isbn": book.ISBN})
			}
			return fmt.Errorf("book update failed: %w", errs.WrapGormError(err, entityBook))
		}
		return nil
	})
}

func (r *GormBookRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("book delete failed: %w", errs.WrapGormError(result.Error, entityBook))
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(entityBook, id)
	}
	return nil
}
