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

const entityLoan = "loan"

type GormLoanRepository struct {
	db *gorm.DB
}

var _ dao.LoanRepository = (*GormLoanRepository)(nil)

func NewGormLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

func (r *GormLoanRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Book")
}

func (r *GormLoanRepository) QueryByID(ctx context.Context, id int64) (model.Loan, error) {
	var loan model.Loan
	err := r.withRelations(ctx).Where("id = ?", id).First(&loan).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.Loan{}, errs.NewNotFound(entityLoan, id)
	case err != nil:
		return model.Loan{}, fmt.Errorf("loan query failed: %w", errs.WrapGormError(err, entityLoan))
	default:
		return loan, nil
	}
}

func (r *GormLoanRepository) find(ctx context.Context, query interface{}, args ...interface{}) ([]model.Loan, error) {
	loans := make([]model.Loan, 0)
	db := r.withRelations(ctx)
	if query != nil {
		db = db.Where(query, args...)
	}
	if err := db.Order("id").Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("loan list failed: %w", errs.WrapGormError(err, entityLoan))
	}
	return loans, nil
}

func (r *GormLoanRepository) QueryAll(ctx context.Context) ([]model.Loan, error) {
	return r.find(ctx, nil)
}

func (r *GormLoanRepository) QueryByUser(ctx context.Context, userID int64) ([]model.Loan, error) {
	return r.find(ctx, "user_id = ?", userID)
}

func (r *GormLoanRepository) QueryByBook(ctx context.Context, bookID int64) ([]model.Loan, error) {
	return r.find(ctx, "book_id = ?", bookID)
}

func (r *GormLoanRepository) Create(ctx context.Context, loan *model.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(loan).Error; err != nil {
			return fmt.Errorf("loan creation failed: %w", errs.WrapGormError(err, entityLoan))
		}
		return nil
	})
}

func (r *GormLoanRepository) Replace(ctx context.Context, loan model.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Loan
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", loan.ID).
			First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewNotFound(entityLoan, loan.ID)
		}
		if err != nil {
			return errs.WrapGormError(err, entityLoan)
		}

		if err := tx.Omit(clause.Associations).Save(&loan).Error; err != nil {
			return fmt.Errorf("loan update failed: %w", errs.WrapGormError(err, entityLoan))
		}
		return nil
	})
}

func (r *GormLoanRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Loan{}, id)
	if result.Error != nil {
		return fmt.Errorf("loan delete failed: %w", errs.WrapGormError(result.Error, entityLoan))
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(entityLoan, id)
	}
	return nil
}
