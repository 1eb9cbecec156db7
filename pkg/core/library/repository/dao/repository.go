package dao

import (
	"context"

	"library-lending/pkg/core/library/model"
)

type UserRepository interface {
	QueryByID(ctx context.Context, id int64) (model.User, error)
	QueryPage(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	IsEmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *model.User) error
	Replace(ctx context.Context, user model.User) error
	Delete(ctx context.Context, id int64) error
}

type BookRepository interface {
	QueryByID(ctx context.Context, id int64) (model.Book, error)
	QueryAll(ctx context.Context) ([]model.Book, error)
	QueryPage(ctx context.Context, offset, limit int) ([]model.Book, int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	IsISBNExists(ctx context.Context, isbn string) (bool, error)
	Create(ctx context.Context, book *model.Book) error
	Replace(ctx context.Context, book model.Book) error
	Delete(ctx context.Context, id int64) error
}

// LoanRepository 所有查询都会预加载 User 和 Book
type LoanRepository interface {
	QueryByID(ctx context.Context, id int64) (model.Loan, error)
	QueryAll(ctx context.Context) ([]model.Loan, error)
	QueryByUser(ctx context.Context, userID int64) ([]model.Loan, error)
	QueryByBook(ctx context.Context, bookID int64) ([]model.Loan, error)
	Create(ctx context.Context, loan *model.Loan) error
	Replace(ctx context.Context, loan model.Loan) error
	Delete(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	QueryByKey(ctx context.Context, userID, bookID int64) (model.Review, error)
	QueryAll(ctx context.Context) ([]model.Review, error)
	QueryByBook(ctx context.Context, bookID int64) ([]model.Review, error)
	Create(ctx context.Context, review *model.Review) error
	Replace(ctx context.Context, review model.Review) error
	Delete(ctx context.Context, userID, bookID int64) error
}
