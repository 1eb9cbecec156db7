package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	errs "library-lending/pkg/common/errors"
	"library-lending/pkg/core/library/service"
	"library-lending/pkg/web/model"
)

// statusOf 错误种类到 HTTP 状态码
func statusOf(err error) int {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return consts.StatusNotFound
	case errs.KindInvalidData:
		return consts.StatusBadRequest
	case errs.KindDuplicate:
		return consts.StatusConflict
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return consts.StatusServiceUnavailable
	}
	return consts.StatusInternalServerError
}

// 统一错误响应方法
func respondError(ctx context.Context, c *app.RequestContext, err error) {
	code := statusOf(err)
	body := utils.H{
		"error":   err.Error(),
		"code":    code,
		"success": false,
	}
	switch code {
	case consts.StatusInternalServerError:
		// 内部错误不向调用方暴露细节
		hlog.CtxErrorf(ctx, "request failed path=%s: %v", c.Path(), err)
		body["error"] = "internal server error"
	case consts.StatusServiceUnavailable:
		body["error"] = "service unavailable"
	default:
		if meta := errs.Meta(err); meta != nil {
			body["meta"] = meta
		}
	}
	c.JSON(code, body)
}

func badRequest(c *app.RequestContext, msg string) {
	c.JSON(consts.StatusBadRequest, utils.H{
		"error":   msg,
		"code":    consts.StatusBadRequest,
		"success": false,
	})
}

// pathID 解析路径中的正整数主键, 失败时直接写 400
func pathID(c *app.RequestContext, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// parseDate 按 loc 解析日期; DSN 使用 loc=Local, 故默认取 time.Local
func parseDate(value string) (time.Time, error) {
	return parseDateIn(value, time.Local)
}

func parseDateIn(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// startOfDay 本地时区当天零点
func startOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func bindPage(c *app.RequestContext) (service.PageQuery, bool) {
	var req model.PageReq
	if err := c.BindAndValidate(&req); err != nil {
		badRequest(c, "invalid paging parameters")
		return service.PageQuery{}, false
	}
	return service.PageQuery{Page: req.Page, PageSize: req.PageSize}, true
}

// bindLoanFilter 解析 page/pageSize/date/overdue
func bindLoanFilter(c *app.RequestContext) (service.ListQuery, bool) {
	var req model.LoanFilterReq
	if err := c.BindAndValidate(&req); err != nil {
		badRequest(c, "invalid query parameters")
		return service.ListQuery{}, false
	}

	q := service.ListQuery{
		PageQuery: service.PageQuery{Page: req.Page, PageSize: req.PageSize},
		Overdue:   req.Overdue,
	}
	if req.Date != "" {
		on, err := time.ParseInLocation(time.DateOnly, req.Date, time.Local)
		if err != nil {
			badRequest(c, "date must use the 2006-01-02 format")
			return service.ListQuery{}, false
		}
		q.Date = &on
	}
	return q, true
}
