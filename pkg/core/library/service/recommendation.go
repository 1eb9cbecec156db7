package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"library-lending/pkg/core/library/recommend"
	"library-lending/pkg/core/library/repository/dao"
	"library-lending/pkg/core/paging"
)

type RecommendationService struct {
	opts  Options
	users dao.UserRepository
	query recommend.Query
}

func NewRecommendationService(opts Options, users dao.UserRepository, query recommend.Query) *RecommendationService {
	return &RecommendationService{opts: opts, users: users, query: query}
}

// Recommend ranks the books userID has neither borrowed nor reviewed.
// The user must exist; the count and the page are two separate queries.
func (s *RecommendationService) Recommend(ctx context.Context, userID int64, q PageQuery) (paging.Envelope[recommend.Entry], error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return paging.Envelope[recommend.Entry]{}, err
	}

	total, err := s.query.Count(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "recommendation count failed user=%d: %v", userID, err)
		return paging.Envelope[recommend.Entry]{}, err
	}

	p := s.opts.Paginator
	entries := []recommend.Entry{}
	if offset := p.Offset(q.Page, q.PageSize); int64(offset) < total {
		entries, err = s.query.Page(ctx, userID, offset, p.EffectiveSize(q.PageSize))
		if err != nil {
			hlog.CtxErrorf(ctx, "recommendation page failed user=%d: %v", userID, err)
			return paging.Envelope[recommend.Entry]{}, err
		}
	}
	return paging.Wrap(p, entries, total, q.Page, q.PageSize), nil
}

// SnapshotLoader feeds the in-memory recommendation engine from the repositories.
func SnapshotLoader(books dao.BookRepository, loans dao.LoanRepository, reviews dao.ReviewRepository) recommend.Loader {
	return func(ctx context.Context) (recommend.Snapshot, error) {
		var (
			snap recommend.Snapshot
			err  error
		)
		if snap.Books, err = books.QueryAll(ctx); err != nil {
			return recommend.Snapshot{}, err
		}
		if snap.Loans, err = loans.QueryAll(ctx); err != nil {
			return recommend.Snapshot{}, err
		}
		if snap.Reviews, err = reviews.QueryAll(ctx); err != nil {
			return recommend.Snapshot{}, err
		}
		return snap, nil
	}
}
