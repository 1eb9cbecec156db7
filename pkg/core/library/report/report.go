// Package report groups loans per user or per book.
//
// The pagination unit is the group: a page of size N holds N distinct users
// (or books), each with its complete loan list. Groups are ordered by
// ascending id; loans inside a group by loan date, then loan id.
package report

import (
	"sort"
	"time"

	"library-lending/pkg/core/library/model"
	"library-lending/pkg/core/library/window"
	"library-lending/pkg/core/paging"
)

// UserEntry is one borrower with the loans selected for them.
type UserEntry struct {
	User  model.User   `json:"User"`
	Loans []model.Loan `json:"Loans"`
}

// BookEntry is one book with the loans selected for it.
type BookEntry struct {
	Book  model.Book   `json:"Book"`
	Loans []model.Loan `json:"Loans"`
}

// Request describes which loans to aggregate and which page of groups to return.
type Request struct {
	Window   window.Window
	Page     int
	PageSize int
	Now      time.Time
}

type group struct {
	key   int64
	loans []model.Loan
}

// groupBy selects the loans matching w and buckets them by key, sorted by key.
func groupBy(loans []model.Loan, key func(model.Loan) int64, w window.Window, now time.Time) []group {
	index := make(map[int64]int)
	var groups []group
	for _, l := range w.Filter(loans, now) {
		k := key(l)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].loans = append(groups[i].loans, l)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
	for _, g := range groups {
		sort.SliceStable(g.loans, func(i, j int) bool {
			a, b := g.loans[i], g.loans[j]
			if !a.LoanDate.Equal(b.LoanDate) {
				return a.LoanDate.Before(b.LoanDate)
			}
			return a.ID < b.ID
		})
	}
	return groups
}

// ByUser aggregates loans per borrowing user. Loans must carry their User.
func ByUser(p paging.Paginator, loans []model.Loan, req Request) paging.Envelope[UserEntry] {
	groups := groupBy(loans, func(l model.Loan) int64 { return l.UserID }, req.Window, req.Now)
	page := paging.Page(p, groups, req.Page, req.PageSize)

	return paging.Map(page, func(g group) UserEntry {
		entry := UserEntry{User: model.User{ID: g.key}, Loans: g.loans}
		if u := g.loans[0].User; u != nil {
			entry.User = *u
		}
		return entry
	})
}

// ByBook aggregates loans per lent book. Loans must carry their Book.
func ByBook(p paging.Paginator, loans []model.Loan, req Request) paging.Envelope[BookEntry] {
	groups := groupBy(loans, func(l model.Loan) int64 { return l.BookID }, req.Window, req.Now)
	page := paging.Page(p, groups, req.Page, req.PageSize)

	return paging.Map(page, func(g group) BookEntry {
		entry := BookEntry{Book: model.Book{ID: g.key}, Loans: g.loans}
		if b := g.loans[0].Book; b != nil {
			entry.Book = *b
		}
		return entry
	})
}
