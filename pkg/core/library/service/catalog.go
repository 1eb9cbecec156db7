package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	errs "library-lending/pkg/common/errors"
	"library-lending/pkg/core/library/model"
	"library-lending/pkg/core/library/repository/dao"
	"library-lending/pkg/core/paging"
)

// CatalogService manages books, users and reviews.
type CatalogService struct {
	opts    Options
	users   dao.UserRepository
	books   dao.BookRepository
	reviews dao.ReviewRepository
}

func NewCatalogService(opts Options, users dao.UserRepository, books dao.BookRepository, reviews dao.ReviewRepository) *CatalogService {
	return &CatalogService{opts: opts, users: users, books: books, reviews: reviews}
}

// region books

func (s *CatalogService) ListBooks(ctx context.Context, q PageQuery) (paging.Envelope[model.Book], error) {
	p := s.opts.Paginator
	books, total, err := s.books.QueryPage(ctx, p.Offset(q.Page, q.PageSize), p.EffectiveSize(q.PageSize))
	if err != nil {
		return paging.Envelope[model.Book]{}, err
	}
	return paging.Wrap(p, books, total, q.Page, q.PageSize), nil
}

func (s *CatalogService) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return s.books.QueryByID(ctx, id)
}

func (s *CatalogService) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	if err := book.Validate(); err != nil {
		return model.Book{}, err
	}
	// reject a duplicate ISBN
	if exists, err := s.books.IsISBNExists(ctx, book.ISBN); err != nil {
		return model.Book{}, err
	} else if exists {
		return model.Book{}, errs.NewDuplicateEntry(map[string]interface{}{"isbn": book.ISBN})
	}

	book.ID = 0
	if err := s.books.Create(ctx, &book); err != nil {
		return model.Book{}, err
	}
	hlog.CtxInfof(ctx, "book created id=%d isbn=%s", book.ID, book.ISBN)
	return book, nil
}

func (s *CatalogService) ReplaceBook(ctx context.Context, id int64, book model.Book) (model.Book, error) {
	if err := book.Validate(); err != nil {
		return model.Book{}, err
	}
	book.ID = id
	if err := s.books.Replace(ctx, book); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}
	hlog.CtxInfof(ctx, "book deleted id=%d", id)
	return nil
}

// region users

func (s *CatalogService) ListUsers(ctx context.Context, q PageQuery) (paging.Envelope[model.User], error) {
	p := s.opts.Paginator
	users, total, err := s.users.QueryPage(ctx, p.Offset(q.Page, q.PageSize), p.EffectiveSize(q.PageSize))
	if err != nil {
		return paging.Envelope[model.User]{}, err
	}
	return paging.Wrap(p, users, total, q.Page, q.PageSize), nil
}

func (s *CatalogService) GetUser(ctx context.Context, id int64) (model.User, error) {
	return s.users.QueryByID(ctx, id)
}

func (s *CatalogService) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if err := user.Validate(); err != nil {
		return model.User{}, err
	}
	// reject a duplicate email
	if exists, err := s.users.IsEmailExists(ctx, user.Email); err != nil {
		return model.User{}, err
	} else if exists {
		return model.User{}, errs.NewDuplicateEntry(map[string]interface{}{"email": user.Email})
	}

	user.ID = 0
	if err := s.users.Create(ctx, &user); err != nil {
		return model.User{}, err
	}
	hlog.CtxInfof(ctx, "user created id=%d", user.ID)
	return user, nil
}

func (s *CatalogService) ReplaceUser(ctx context.Context, id int64, user model.User) (model.User, error) {
	if err := user.Validate(); err != nil {
		return model.User{}, err
	}
	user.ID = id
	if err := s.users.Replace(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *CatalogService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	hlog.CtxInfof(ctx, "user deleted id=%d", id)
	return nil
}

// region reviews

func (s *CatalogService) ReviewsOfBook(ctx context.Context, bookID int64, q PageQuery) (paging.Envelope[model.Review], error) {
	if err := s.requireBook(ctx, bookID); err != nil {
		return paging.Envelope[model.Review]{}, err
	}
	reviews, err := s.reviews.QueryByBook(ctx, bookID)
	if err != nil {
		return paging.Envelope[model.Review]{}, err
	}
	return paging.Page(s.opts.Paginator, reviews, q.Page, q.PageSize), nil
}

func (s *CatalogService) GetReview(ctx context.Context, userID, bookID int64) (model.Review, error) {
	return s.reviews.QueryByKey(ctx, userID, bookID)
}

func (s *CatalogService) CreateReview(ctx context.Context, review model.Review) (model.Review, error) {
	if err := review.Validate(); err != nil {
		return model.Review{}, err
	}
	if err := s.requireUser(ctx, review.UserID); err != nil {
		return model.Review{}, err
	}
	if err := s.requireBook(ctx, review.BookID); err != nil {
		return model.Review{}, err
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		return model.Review{}, err
	}
	hlog.CtxInfof(ctx, "review created user=%d book=%d rating=%d", review.UserID, review.BookID, review.Rating)
	return review, nil
}

func (s *CatalogService) ReplaceReview(ctx context.Context, review model.Review) (model.Review, error) {
	if err := review.Validate(); err != nil {
		return model.Review{}, err
	}
	if err := s.reviews.Replace(ctx, review); err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func (s *CatalogService) DeleteReview(ctx context.Context, userID, bookID int64) error {
	return s.reviews.Delete(ctx, userID, bookID)
}

func (s *CatalogService) requireUser(ctx context.Context, id int64) error {
	return requireUser(ctx, s.users, id)
}

func (s *CatalogService) requireBook(ctx context.Context, id int64) error {
	return requireBook(ctx, s.books, id)
}

func requireUser(ctx context.Context, users dao.UserRepository, id int64) error {
	exists, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewNotFound("user", id)
	}
	return nil
}

func requireBook(ctx context.Context, books dao.BookRepository, id int64) error {
	exists, err := books.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewNotFound("book", id)
	}
	return nil
}
