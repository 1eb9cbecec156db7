// Package recommend ranks the books a user has neither borrowed nor reviewed.
//
// Candidates are ordered by average rating descending. Books without any
// review have no average and come last. Equal averages are ordered by title,
// then by id.
package recommend

import (
	"context"
	"sort"

	"library-lending/pkg/core/library/model"
)

// Entry is a recommended book with its average rating over all reviews.
type Entry struct {
	Book          model.Book `json:"Book"`
	AverageRating *float64   `json:"AverageRating"`
}

// Query runs the two recommendation queries: a count and one ranked page.
type Query interface {
	Count(ctx context.Context, userID int64) (int64, error)
	Page(ctx context.Context, userID int64, offset, limit int) ([]Entry, error)
}

// Less is the ranking order.
func Less(a, b Entry) bool {
	switch {
	case a.AverageRating == nil && b.AverageRating == nil:
	case a.AverageRating == nil:
		return false
	case b.AverageRating == nil:
		return true
	case *a.AverageRating != *b.AverageRating:
		return *a.AverageRating > *b.AverageRating
	}
	if a.Book.Title != b.Book.Title {
		return a.Book.Title < b.Book.Title
	}
	return a.Book.ID < b.Book.ID
}

// Rank sorts entries in place.
func Rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return Less(entries[i], entries[j]) })
}

// Candidates returns every book userID has no loan and no review for,
// each with its average rating across all reviews. The result is unranked.
func Candidates(userID int64, books []model.Book, loans []model.Loan, reviews []model.Review) []Entry {
	excluded := make(map[int64]struct{})
	for _, l := range loans {
		if l.UserID == userID {
			excluded[l.BookID] = struct{}{}
		}
	}

	sums := make(map[int64]int)
	counts := make(map[int64]int)
	for _, r := range reviews {
		if r.UserID == userID {
			excluded[r.BookID] = struct{}{}
		}
		sums[r.BookID] += r.Rating
		counts[r.BookID]++
	}

	out := make([]Entry, 0, len(books))
	for _, b := range books {
		if _, ok := excluded[b.ID]; ok {
			continue
		}
		e := Entry{Book: b}
		if n := counts[b.ID]; n > 0 {
			avg := float64(sums[b.ID]) / float64(n)
			e.AverageRating = &avg
		}
		out = append(out, e)
	}
	return out
}
