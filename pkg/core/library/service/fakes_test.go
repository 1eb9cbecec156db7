package service_test

import (
	"context"
	"sort"

	errs "library-lending/pkg/common/errors"
	"library-lending/pkg/core/library/model"
)

// memStore is an in-memory stand-in for the four gorm repositories.
type memStore struct {
	users   map[int64]model.User
	books   map[int64]model.Book
	loans   map[int64]model.Loan
	reviews map[[2]int64]model.Review
	nextID  int64
	fail    error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[int64]model.User{},
		books:   map[int64]model.Book{},
		loans:   map[int64]model.Loan{},
		reviews: map[[2]int64]model.Review{},
		nextID:  100,
	}
}

type (
	memUsers   struct{ *memStore }
	memBooks   struct{ *memStore }
	memLoans   struct{ *memStore }
	memReviews struct{ *memStore }
)

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func pageOf[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// users

func (s memUsers) QueryByID(_ context.Context, id int64) (model.User, error) {
	if s.fail != nil {
		return model.User{}, s.fail
	}
	u, ok := s.users[id]
	if !ok {
		return model.User{}, errs.NewNotFound("user", id)
	}
	return u, nil
}

func (s memUsers) QueryPage(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, k := range sortedKeys(s.users) {
		all = append(all, s.users[k])
	}
	return pageOf(all, offset, limit), int64(len(all)), s.fail
}

func (s memUsers) Exists(_ context.Context, id int64) (bool, error) {
	if s.fail != nil {
		return false, s.fail
	}
	_, ok := s.users[id]
	return ok, nil
}

func (s memUsers) IsEmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s memUsers) Create(_ context.Context, user *model.User) error {
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = *user
	return nil
}

func (s memUsers) Replace(_ context.Context, user model.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return errs.NewNotFound("user", user.ID)
	}
	s.users[user.ID] = user
	return nil
}

func (s memUsers) Delete(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return errs.NewNotFound("user", id)
	}
	delete(s.users, id)
	return nil
}

// books

func (s memBooks) QueryByID(_ context.Context, id int64) (model.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return model.Book{}, errs.NewNotFound("book", id)
	}
	return b, nil
}

func (s memBooks) QueryAll(_ context.Context) ([]model.Book, error) {
	var all []model.Book
	for _, k := range sortedKeys(s.books) {
		all = append(all, s.books[k])
	}
	return all, s.fail
}

func (s memBooks) QueryPage(ctx context.Context, offset, limit int) ([]model.Book, int64, error) {
	all, err := s.QueryAll(ctx)
	return pageOf(all, offset, limit), int64(len(all)), err
}

func (s memBooks) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.books[id]
	return ok, s.fail
}

func (s memBooks) IsISBNExists(_ context.Context, isbn string) (bool, error) {
	for _, b := range s.books {
		if b.ISBN == isbn {
			return true, nil
		}
	}
	return false, nil
}

func (s memBooks) Create(_ context.Context, book *model.Book) error {
	s.nextID++
	book.ID = s.nextID
	s.books[book.ID] = *book
	return nil
}

func (s memBooks) Replace(_ context.Context, book model.Book) error {
	if _, ok := s.books[book.ID]; !ok {
		return errs.NewNotFound("book", book.ID)
	}
	s.books[book.ID] = book
	return nil
}

func (s memBooks) Delete(_ context.Context, id int64) error {
	if _, ok := s.books[id]; !ok {
		return errs.NewNotFound("book", id)
	}
	delete(s.books, id)
	return nil
}

// loans

func (s memLoans) withRelations(l model.Loan) model.Loan {
	if u, ok := s.users[l.UserID]; ok {
		l.User = &u
	}
	if b, ok := s.books[l.BookID]; ok {
		l.Book = &b
	}
	return l
}

func (s memLoans) QueryByID(_ context.Context, id int64) (model.Loan, error) {
	l, ok := s.loans[id]
	if !ok {
		return model.Loan{}, errs.NewNotFound("loan", id)
	}
	return s.withRelations(l), nil
}

func (s memLoans) filter(keep func(model.Loan) bool) ([]model.Loan, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	out := []model.Loan{}
	for _, k := range sortedKeys(s.loans) {
		if l := s.loans[k]; keep(l) {
			out = append(out, s.withRelations(l))
		}
	}
	return out, nil
}

func (s memLoans) QueryAll(_ context.Context) ([]model.Loan, error) {
	return s.filter(func(model.Loan) bool { return true })
}

func (s memLoans) QueryByUser(_ context.Context, userID int64) ([]model.Loan, error) {
	return s.filter(func(l model.Loan) bool { return l.UserID == userID })
}

func (s memLoans) QueryByBook(_ context.Context, bookID int64) ([]model.Loan, error) {
	return s.filter(func(l model.Loan) bool { return l.BookID == bookID })
}

func (s memLoans) Create(_ context.Context, loan *model.Loan) error {
	s.nextID++
	loan.ID = s.nextID
	s.loans[loan.ID] = *loan
	return nil
}

func (s memLoans) Replace(_ context.Context, loan model.Loan) error {
	if _, ok := s.loans[loan.ID]; !ok {
		return errs.NewNotFound("loan", loan.ID)
	}
	s.loans[loan.ID] = loan
	return nil
}

func (s memLoans) Delete(_ context.Context, id int64) error {
	if _, ok := s.loans[id]; !ok {
		return errs.NewNotFound("loan", id)
	}
	delete(s.loans, id)
	return nil
}

// reviews

func (s memReviews) QueryByKey(_ context.Context, userID, bookID int64) (model.Review, error) {
	r, ok := s.reviews[[2]int64{userID, bookID}]
	if !ok {
		return model.Review{}, errs.NewNotFound("review", nil)
	}
	return r, nil
}

func (s memReviews) QueryAll(_ context.Context) ([]model.Review, error) {
	out := []model.Review{}
	for _, r := range s.reviews {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookID != out[j].BookID {
			return out[i].BookID < out[j].BookID
		}
		return out[i].UserID < out[j].UserID
	})
	return out, s.fail
}

func (s memReviews) QueryByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	all, err := s.QueryAll(ctx)
	out := []model.Review{}
	for _, r := range all {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, err
}

func (s memReviews) Create(_ context.Context, review *model.Review) error {
	key := [2]int64{review.UserID, review.BookID}
	if _, ok := s.reviews[key]; ok {
		return errs.NewDuplicateEntry(nil)
	}
	s.reviews[key] = *review
	return nil
}

func (s memReviews) Replace(_ context.Context, review model.Review) error {
	key := [2]int64{review.UserID, review.BookID}
	if _, ok := s.reviews[key]; !ok {
		return errs.NewNotFound("review", nil)
	}
	s.reviews[key] = review
	return nil
}

func (s memReviews) Delete(_ context.Context, userID, bookID int64) error {
	key := [2]int64{userID, bookID}
	if _, ok := s.reviews[key]; !ok {
		return errs.NewNotFound("review", nil)
	}
	delete(s.reviews, key)
	return nil
}
