package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"library-lending/pkg/core/library/service"
)

// ReportHandler 按读者或图书聚合借阅, 分页单位是分组
type ReportHandler struct {
	Loans *service.LoanService
}

func NewReportHandler(loans *service.LoanService) *ReportHandler {
	return &ReportHandler{Loans: loans}
}

func (h *ReportHandler) ByUser(ctx context.Context, c *app.RequestContext) {
	q, ok := bindLoanFilter(c)
	if !ok {
		return
	}
	env, err := h.Loans.ReportByUser(ctx, q)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, env)
}

func (h *ReportHandler) ByBook(ctx context.Context, c *app.RequestContext) {
	q, ok := bindLoanFilter(c)
	if !ok {
		return
	}
	env, err := h.Loans.ReportByBook(ctx, q)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, env)
}
