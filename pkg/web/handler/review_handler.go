package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	domain "library-lending/pkg/core/library/model"
	"library-lending/pkg/core/library/service"
	"library-lending/pkg/web/model"
)

type ReviewHandler struct {
	Catalog *service.CatalogService
}

func NewReviewHandler(catalog *service.CatalogService) *ReviewHandler {
	return &ReviewHandler{Catalog: catalog}
}

// reviewKey 解析 /:userId/:bookId
func reviewKey(c *app.RequestContext) (userID, bookID int64, ok bool) {
	if userID, ok = pathID(c, "userId"); !ok {
		return 0, 0, false
	}
	if bookID, ok = pathID(c, "bookId"); !ok {
		return 0, 0, false
	}
	return userID, bookID, true
}

func (h *ReviewHandler) Get(ctx context.Context, c *app.RequestContext) {
	userID, bookID, ok := reviewKey(c)
	if !ok {
		return
	}
	review, err := h.Catalog.GetReview(ctx, userID, bookID)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, review)
}

func (h *ReviewHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req model.ReviewReq
	if err := c.BindAndValidate(&req); err != nil {
		badRequest(c, "参数校验失败: "+err.Error())
		return
	}

	review, err := h.Catalog.CreateReview(ctx, domain.Review{UserID: req.UserID, BookID: req.BookID, Rating: req.Rating})
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, review)
}

func (h *ReviewHandler) Replace(ctx context.Context, c *app.RequestContext) {
	userID, bookID, ok := reviewKey(c)
	if !ok {
		return
	}
	var req model.RatingReq
	if err := c.BindAndValidate(&req); err != nil {
		badRequest(c, "参数校验失败: "+err.Error())
		return
	}

	review, err := h.Catalog.ReplaceReview(ctx, domain.Review{UserID: userID, BookID: bookID, Rating: req.Rating})
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, review)
}

func (h *ReviewHandler) Delete(ctx context.Context, c *app.RequestContext) {
	userID, bookID, ok := reviewKey(c)
	if !ok {
		return
	}
	if err := h.Catalog.DeleteReview(ctx, userID, bookID); err != nil {
		respondError(ctx, c, err)
		return
	}
	c.Status(consts.StatusNoContent)
}
