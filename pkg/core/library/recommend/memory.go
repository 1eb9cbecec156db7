package recommend

import (
	"context"

	"library-lending/pkg/core/library/model"
)

// Snapshot is the in-memory view the memory engine ranks over.
type Snapshot struct {
	Books   []model.Book
	Loans   []model.Loan
	Reviews []model.Review
}

// Loader fetches a fresh snapshot per call.
type Loader func(ctx context.Context) (Snapshot, error)

// MemoryQuery answers recommendation queries over loaded records
// instead of the database.
type MemoryQuery struct {
	load Loader
}

func NewMemoryQuery(load Loader) *MemoryQuery {
	return &MemoryQuery{load: load}
}

func (q *MemoryQuery) Count(ctx context.Context, userID int64) (int64, error) {
	snap, err := q.load(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(Candidates(userID, snap.Books, snap.Loans, snap.Reviews))), nil
}

func (q *MemoryQuery) Page(ctx context.Context, userID int64, offset, limit int) ([]Entry, error) {
	snap, err := q.load(ctx)
	if err != nil {
		return nil, err
	}

	entries := Candidates(userID, snap.Books, snap.Loans, snap.Reviews)
	Rank(entries)

	if offset < 0 || offset >= len(entries) || limit <= 0 {
		return []Entry{}, nil
	}
	end := len(entries)
	if limit < end-offset {
		end = offset + limit
	}
	return entries[offset:end], nil
}
