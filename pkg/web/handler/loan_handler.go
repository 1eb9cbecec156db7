package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	domain "library-lending/pkg/core/library/model"
	"library-lending/pkg/core/library/service"
	"library-lending/pkg/web/model"
)

type LoanHandler struct {
	Loans *service.LoanService
	Now   func() time.Time
}

func NewLoanHandler(loans *service.LoanService) *LoanHandler {
	return &LoanHandler{Loans: loans, Now: time.Now}
}

func bindLoan(c *app.RequestContext) (domain.Loan, bool) {
	var req model.LoanReq
	if err := c.BindAndValidate(&req); err != nil {
		badRequest(c, "参数校验失败: "+err.Error())
		return domain.Loan{}, false
	}

	loanDate, err := parseDate(req.LoanDate)
	if err != nil {
		badRequest(c, "LoanDate must use the "+time.DateOnly+" format")
		return domain.Loan{}, false
	}
	returnDate, err := parseOptionalDate(req.ReturnDate)
	if err != nil {
		badRequest(c, "ReturnDate must use the "+time.DateOnly+" format")
		return domain.Loan{}, false
	}
	return domain.Loan{
		UserID:     req.UserID,
		BookID:     req.BookID,
		LoanDate:   loanDate,
		ReturnDate: returnDate,
	}, true
}

// List 支持 ?date= 与 ?overdue= 过滤
func (h *LoanHandler) List(ctx context.Context, c *app.RequestContext) {
	q, ok := bindLoanFilter(c)
	if !ok {
		return
	}
	env, err := h.Loans.List(ctx, q)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, env)
}

func (h *LoanHandler) OfUser(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, ok := bindLoanFilter(c)
	if !ok {
		return
	}
	env, err := h.Loans.LoansOfUser(ctx, id, q)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, env)
}

func (h *LoanHandler) OfBook(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, ok := bindLoanFilter(c)
	if !ok {
		return
	}
	env, err := h.Loans.LoansOfBook(ctx, id, q)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, env)
}

func (h *LoanHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	loan, err := h.Loans.Get(ctx, id)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, loan)
}

func (h *LoanHandler) Create(ctx context.Context, c *app.RequestContext) {
	loan, ok := bindLoan(c)
	if !ok {
		return
	}
	created, err := h.Loans.Create(ctx, loan)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, created)
}

func (h *LoanHandler) Replace(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	loan, ok := bindLoan(c)
	if !ok {
		return
	}
	replaced, err := h.Loans.Replace(ctx, id, loan)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, replaced)
}

// Return 归还图书, 未指定日期时取当天
func (h *LoanHandler) Return(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.ReturnReq
	if len(c.Request.Body()) > 0 {
		if err := c.BindAndValidate(&req); err != nil {
			badRequest(c, "参数校验失败: "+err.Error())
			return
		}
	}

	returnDate := startOfDay(h.Now())
	if req.ReturnDate != "" {
		var err error
		if returnDate, err = parseDate(req.ReturnDate); err != nil {
			badRequest(c, "ReturnDate must use the "+time.DateOnly+" format")
			return
		}
	}

	loan, err := h.Loans.Return(ctx, id, returnDate)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, loan)
}

func (h *LoanHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Loans.Delete(ctx, id); err != nil {
		respondError(ctx, c, err)
		return
	}
	c.Status(consts.StatusNoContent)
}
