package recommend

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"library-lending/pkg/core/library/model"
)

// Both statements exclude the books the user borrowed or reviewed through two
// anti-joins. Parameters: user id (loans), user id (reviews)[, limit, offset].
// Titles are compared under utf8mb4_bin, the byte order Less uses.
const (
	candidateFilter = `
WHERE NOT EXISTS (SELECT 1 FROM loans l WHERE l.book_id = b.id AND l.user_id = ?)
  AND NOT EXISTS (SELECT 1 FROM reviews ur WHERE ur.book_id = b.id AND ur.user_id = ?)`

	countSQL = `SELECT COUNT(*) FROM books b` + candidateFilter

	pageSQL = `SELECT b.id, b.title, b.author, b.publish_date, b.isbn, AVG(r.rating) AS average_rating
FROM books b
LEFT JOIN reviews r ON r.book_id = b.id` + candidateFilter + `
GROUP BY b.id, b.title, b.author, b.publish_date, b.isbn
ORDER BY average_rating IS NULL, average_rating DESC, b.title COLLATE utf8mb4_bin ASC, b.id ASC
LIMIT ? OFFSET ?`
)

type pageRow struct {
	ID            int64           `db:"id"`
	Title         string          `db:"title"`
	Author        string          `db:"author"`
	PublishDate   sql.NullTime    `db:"publish_date"`
	ISBN          string          `db:"isbn"`
	AverageRating sql.NullFloat64 `db:"average_rating"`
}

func (r pageRow) entry() Entry {
	e := Entry{Book: model.Book{
		ID:     r.ID,
		Title:  r.Title,
		Author: r.Author,
		ISBN:   r.ISBN,
	}}
	if r.PublishDate.Valid {
		e.Book.PublishDate = r.PublishDate.Time
	}
	if r.AverageRating.Valid {
		avg := r.AverageRating.Float64
		e.AverageRating = &avg
	}
	return e
}

// SQLQuery holds the prepared count and ranked-page statements.
type SQLQuery struct {
	count *sqlx.Stmt
	page  *sqlx.Stmt
}

// PrepareSQLQuery prepares both statements on db.
func PrepareSQLQuery(ctx context.Context, db *sqlx.DB) (*SQLQuery, error) {
	count, err := db.PreparexContext(ctx, countSQL)
	if err != nil {
		return nil, fmt.Errorf("prepare recommendation count: %w", err)
	}
	page, err := db.PreparexContext(ctx, pageSQL)
	if err != nil {
		_ = count.Close()
		return nil, fmt.Errorf("prepare recommendation page: %w", err)
	}
	return &SQLQuery{count: count, page: page}, nil
}

func (q *SQLQuery) Count(ctx context.Context, userID int64) (int64, error) {
	var n int64
	if err := q.count.GetContext(ctx, &n, userID, userID); err != nil {
		return 0, fmt.Errorf("recommendation count: %w", err)
	}
	return n, nil
}

func (q *SQLQuery) Page(ctx context.Context, userID int64, offset, limit int) ([]Entry, error) {
	var rows []pageRow
	if err := q.page.SelectContext(ctx, &rows, userID, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("recommendation page: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.entry())
	}
	return entries, nil
}

func (q *SQLQuery) Close() error {
	err := q.count.Close()
	if pErr := q.page.Close(); err == nil {
		err = pErr
	}
	return err
}
