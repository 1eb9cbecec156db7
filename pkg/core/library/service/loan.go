package service

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"library-lending/pkg/core/library/model"
	"library-lending/pkg/core/library/report"
	"library-lending/pkg/core/library/repository/dao"
	"library-lending/pkg/core/paging"
)

// LoanService answers loan listings and reports and guards loan writes.
type LoanService struct {
	opts  Options
	users dao.UserRepository
	books dao.BookRepository
	loans dao.LoanRepository
}

func NewLoanService(opts Options, users dao.UserRepository, books dao.BookRepository, loans dao.LoanRepository) *LoanService {
	return &LoanService{opts: opts, users: users, books: books, loans: loans}
}

func (s *LoanService) page(loans []model.Loan, q ListQuery) paging.Envelope[model.Loan] {
	selected := s.opts.window(q).Filter(loans, s.opts.now())
	return paging.Page(s.opts.Paginator, selected, q.Page, q.PageSize)
}

// List returns the loans matching the window of q, one page at a time.
func (s *LoanService) List(ctx context.Context, q ListQuery) (paging.Envelope[model.Loan], error) {
	loans, err := s.loans.QueryAll(ctx)
	if err != nil {
		return paging.Envelope[model.Loan]{}, err
	}
	return s.page(loans, q), nil
}

func (s *LoanService) LoansOfUser(ctx context.Context, userID int64, q ListQuery) (paging.Envelope[model.Loan], error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return paging.Envelope[model.Loan]{}, err
	}
	loans, err := s.loans.QueryByUser(ctx, userID)
	if err != nil {
		return paging.Envelope[model.Loan]{}, err
	}
	return s.page(loans, q), nil
}

func (s *LoanService) LoansOfBook(ctx context.Context, bookID int64, q ListQuery) (paging.Envelope[model.Loan], error) {
	if err := requireBook(ctx, s.books, bookID); err != nil {
		return paging.Envelope[model.Loan]{}, err
	}
	loans, err := s.loans.QueryByBook(ctx, bookID)
	if err != nil {
		return paging.Envelope[model.Loan]{}, err
	}
	return s.page(loans, q), nil
}

func (s *LoanService) reportRequest(q ListQuery) report.Request {
	return report.Request{
		Window:   s.opts.window(q),
		Page:     q.Page,
		PageSize: q.PageSize,
		Now:      s.opts.now(),
	}
}

// ReportByUser pages through the users having at least one matching loan.
func (s *LoanService) ReportByUser(ctx context.Context, q ListQuery) (paging.Envelope[report.UserEntry], error) {
	loans, err := s.loans.QueryAll(ctx)
	if err != nil {
		return paging.Envelope[report.UserEntry]{}, err
	}
	return report.ByUser(s.opts.Paginator, loans, s.reportRequest(q)), nil
}

// ReportByBook pages through the books having at least one matching loan.
func (s *LoanService) ReportByBook(ctx context.Context, q ListQuery) (paging.Envelope[report.BookEntry], error) {
	loans, err := s.loans.QueryAll(ctx)
	if err != nil {
		return paging.Envelope[report.BookEntry]{}, err
	}
	return report.ByBook(s.opts.Paginator, loans, s.reportRequest(q)), nil
}

func (s *LoanService) Get(ctx context.Context, id int64) (model.Loan, error) {
	return s.loans.QueryByID(ctx, id)
}

// checkRefs validates the loan and makes sure both referenced records exist.
func (s *LoanService) checkRefs(ctx context.Context, loan model.Loan) error {
	if err := loan.Validate(); err != nil {
		return err
	}
	if err := requireUser(ctx, s.users, loan.UserID); err != nil {
		return err
	}
	return requireBook(ctx, s.books, loan.BookID)
}

func (s *LoanService) Create(ctx context.Context, loan model.Loan) (model.Loan, error) {
	if err := s.checkRefs(ctx, loan); err != nil {
		return model.Loan{}, err
	}

	loan.ID = 0
	loan.User, loan.Book = nil, nil
	if err := s.loans.Create(ctx, &loan); err != nil {
		return model.Loan{}, err
	}
	hlog.CtxInfof(ctx, "loan created id=%d user=%d book=%d", loan.ID, loan.UserID, loan.BookID)
	return loan, nil
}

func (s *LoanService) Replace(ctx context.Context, id int64, loan model.Loan) (model.Loan, error) {
	if err := s.checkRefs(ctx, loan); err != nil {
		return model.Loan{}, err
	}

	loan.ID = id
	loan.User, loan.Book = nil, nil
	if err := s.loans.Replace(ctx, loan); err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

// Return sets the return date of an existing loan.
func (s *LoanService) Return(ctx context.Context, id int64, returnDate time.Time) (model.Loan, error) {
	loan, err := s.loans.QueryByID(ctx, id)
	if err != nil {
		return model.Loan{}, err
	}

	loan.ReturnDate = &returnDate
	if err := loan.Validate(); err != nil {
		return model.Loan{}, err
	}
	if err := s.loans.Replace(ctx, loan); err != nil {
		return model.Loan{}, err
	}
	hlog.CtxInfof(ctx, "loan returned id=%d date=%s", id, returnDate.Format(time.DateOnly))
	return loan, nil
}

func (s *LoanService) Delete(ctx context.Context, id int64) error {
	return s.loans.Delete(ctx, id)
}
