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

type BookHandler struct {
	Catalog *service.CatalogService
}

func NewBookHandler(catalog *service.CatalogService) *BookHandler {
	return &BookHandler{Catalog: catalog}
}

// bindBook 读取并转换请求体, 失败时已写响应
func bindBook(c *app.RequestContext) (domain.Book, bool) {
	var req model.BookReq
	if err := c.BindAndValidate(&req); err != nil {
		badRequest(c, "参数校验失败: "+err.Error())
		return domain.Book{}, false
	}

	book := domain.Book{Title: req.Title, Author: req.Author, ISBN: req.ISBN}
	if req.PublishDate != "" {
		var err error
		if book.PublishDate, err = parseDate(req.PublishDate); err != nil {
			badRequest(c, "PublishDate must use the "+time.DateOnly+" format")
			return domain.Book{}, false
		}
	}
	return book, true
}

func (h *BookHandler) List(ctx context.Context, c *app.RequestContext) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	env, err := h.Catalog.ListBooks(ctx, q)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, env)
}

func (h *BookHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	book, err := h.Catalog.GetBook(ctx, id)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, book)
}

func (h *BookHandler) Create(ctx context.Context, c *app.RequestContext) {
	book, ok := bindBook(c)
	if !ok {
		return
	}
	created, err := h.Catalog.CreateBook(ctx, book)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, created)
}

func (h *BookHandler) Replace(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	book, ok := bindBook(c)
	if !ok {
		return
	}
	replaced, err := h.Catalog.ReplaceBook(ctx, id, book)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, replaced)
}

func (h *BookHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteBook(ctx, id); err != nil {
		respondError(ctx, c, err)
		return
	}
	c.Status(consts.StatusNoContent)
}

// Reviews 某本书的评论列表
func (h *BookHandler) Reviews(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q, ok := bindPage(c)
	if !ok {
		return
	}
	env, err := h.Catalog.ReviewsOfBook(ctx, id, q)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, env)
}
