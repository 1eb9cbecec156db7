package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	domain "library-lending/pkg/core/library/model"
	"library-lending/pkg/core/library/service"
	"library-lending/pkg/web/model"
)

type UserHandler struct {
	Catalog *service.CatalogService
}

func NewUserHandler(catalog *service.CatalogService) *UserHandler {
	return &UserHandler{Catalog: catalog}
}

func toUser(req model.UserReq) domain.User {
	return domain.User{Name: req.Name, Address: req.Address, Email: req.Email}
}

func (h *UserHandler) List(ctx context.Context, c *app.RequestContext) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	env, err := h.Catalog.ListUsers(ctx, q)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, env)
}

func (h *UserHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.Catalog.GetUser(ctx, id)
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, user)
}

func (h *UserHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req model.UserReq
	if err := c.BindAndValidate(&req); err != nil {
		badRequest(c, "参数校验失败: "+err.Error())
		return
	}

	user, err := h.Catalog.CreateUser(ctx, toUser(req))
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, user)
}

func (h *UserHandler) Replace(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UserReq
	if err := c.BindAndValidate(&req); err != nil {
		badRequest(c, "参数校验失败: "+err.Error())
		return
	}

	user, err := h.Catalog.ReplaceUser(ctx, id, toUser(req))
	if err != nil {
		respondError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, user)
}

func (h *UserHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteUser(ctx, id); err != nil {
		respondError(ctx, c, err)
		return
	}
	c.Status(consts.StatusNoContent)
}
