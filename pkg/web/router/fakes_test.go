package router_test

import (
	"context"
	"sort"

	errs "library-lending/pkg/common/errors"
	"library-lending/pkg/core/library/model"
)

// library is a map-backed stand-in for the gorm repositories.
type library struct {
	users   map[int64]model.User
	books   map[int64]model.Book
	loans   map[int64]model.Loan
	reviews map[[2]int64]model.Review
	nextID  int64
}

func newLibrary() *library {
	return &library{
		users:   map[int64]model.User{},
		books:   map[int64]model.Book{},
		loans:   map[int64]model.Loan{},
		reviews: map[[2]int64]model.Review{},
		nextID:  1000,
	}
}

type (
	users   struct{ *library }
	books   struct{ *library }
	loans   struct{ *library }
	reviews struct{ *library }
)

func ordered[V any](m map[int64]V) []V {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func slice[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	if end := offset + limit; end < len(items) {
		return items[offset:end]
	}
	return items[offset:]
}

func (s users) QueryByID(_ context.Context, id int64) (model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return model.User{}, errs.NewNotFound("user", id)
}

func (s users) QueryPage(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	all := ordered(s.users)
	return slice(all, offset, limit), int64(len(all)), nil
}

func (s users) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

func (s users) IsEmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s users) Create(_ context.Context, u *model.User) error {
	s.nextID++
	u.ID = s.nextID
	s.users[u.ID] = *u
	return nil
}

func (s users) Replace(_ context.Context, u model.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return errs.NewNotFound("user", u.ID)
	}
	s.users[u.ID] = u
	return nil
}

func (s users) Delete(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return errs.NewNotFound("user", id)
	}
	delete(s.users, id)
	return nil
}

func (s books) QueryByID(_ context.Context, id int64) (model.Book, error) {
	if b, ok := s.books[id]; ok {
		return b, nil
	}
	return model.Book{}, errs.NewNotFound("book", id)
}

func (s books) QueryAll(context.Context) ([]model.Book, error) {
	return ordered(s.books), nil
}

func (s books) QueryPage(_ context.Context, offset, limit int) ([]model.Book, int64, error) {
	all := ordered(s.books)
	return slice(all, offset, limit), int64(len(all)), nil
}

func (s books) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.books[id]
	return ok, nil
}

func (s books) IsISBNExists(_ context.Context, isbn string) (bool, error) {
	for _, b := range s.books {
		if b.ISBN == isbn {
			return true, nil
		}
	}
	return false, nil
}

func (s books) Create(_ context.Context, b *model.Book) error {
	s.nextID++
	b.ID = s.nextID
	s.books[b.ID] = *b
	return nil
}

func (s books) Replace(_ context.Context, b model.Book) error {
	if _, ok := s.books[b.ID]; !ok {
		return errs.NewNotFound("book", b.ID)
	}
	s.books[b.ID] = b
	return nil
}

func (s books) Delete(_ context.Context, id int64) error {
	if _, ok := s.books[id]; !ok {
		return errs.NewNotFound("book", id)
	}
	delete(s.books, id)
	return nil
}

func (s loans) load(l model.Loan) model.Loan {
	if u, ok := s.users[l.UserID]; ok {
		l.User = &u
	}
	if b, ok := s.books[l.BookID]; ok {
		l.Book = &b
	}
	return l
}

func (s loans) where(keep func(model.Loan) bool) []model.Loan {
	out := []model.Loan{}
	for _, l := range ordered(s.loans) {
		if keep(l) {
			out = append(out, s.load(l))
		}
	}
	return out
}

func (s loans) QueryByID(_ context.Context, id int64) (model.Loan, error) {
	if l, ok := s.loans[id]; ok {
		return s.load(l), nil
	}
	return model.Loan{}, errs.NewNotFound("loan", id)
}

func (s loans) QueryAll(context.Context) ([]model.Loan, error) {
	return s.where(func(model.Loan) bool { return true }), nil
}

func (s loans) QueryByUser(_ context.Context, userID int64) ([]model.Loan, error) {
	return s.where(func(l model.Loan) bool { return l.UserID == userID }), nil
}

func (s loans) QueryByBook(_ context.Context, bookID int64) ([]model.Loan, error) {
	return s.where(func(l model.Loan) bool { return l.BookID == bookID }), nil
}

func (s loans) Create(_ context.Context, l *model.Loan) error {
	s.nextID++
	l.ID = s.nextID
	s.loans[l.ID] = *l
	return nil
}

func (s loans) Replace(_ context.Context, l model.Loan) error {
	if _, ok := s.loans[l.ID]; !ok {
		return errs.NewNotFound("loan", l.ID)
	}
	l.User, l.Book = nil, nil
	s.loans[l.ID] = l
	return nil
}

func (s loans) Delete(_ context.Context, id int64) error {
	if _, ok := s.loans[id]; !ok {
		return errs.NewNotFound("loan", id)
	}
	delete(s.loans, id)
	return nil
}

func (s reviews) QueryByKey(_ context.Context, userID, bookID int64) (model.Review, error) {
	if r, ok := s.reviews[[2]int64{userID, bookID}]; ok {
		return r, nil
	}
	return model.Review{}, errs.NewNotFound("review", nil)
}

func (s reviews) QueryAll(context.Context) ([]model.Review, error) {
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
	return out, nil
}

func (s reviews) QueryByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	all, _ := s.QueryAll(ctx)
	out := []model.Review{}
	for _, r := range all {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s reviews) Create(_ context.Context, r *model.Review) error {
	key := [2]int64{r.UserID, r.BookID}
	if _, ok := s.reviews[key]; ok {
		return errs.NewDuplicateEntry(nil)
	}
	s.reviews[key] = *r
	return nil
}

func (s reviews) Replace(_ context.Context, r model.Review) error {
	key := [2]int64{r.UserID, r.BookID}
	if _, ok := s.reviews[key]; !ok {
		return errs.NewNotFound("review", nil)
	}
	s.reviews[key] = r
	return nil
}

func (s reviews) Delete(_ context.Context, userID, bookID int64) error {
	key := [2]int64{userID, bookID}
	if _, ok := s.reviews[key]; !ok {
		return errs.NewNotFound("review", nil)
	}
	delete(s.reviews, key)
	return nil
}
