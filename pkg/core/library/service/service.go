package service

import (
	"time"

	"library-lending/pkg/core/library/window"
	"library-lending/pkg/core/paging"
)

// Options are shared by every service.
type Options struct {
	Paginator   paging.Paginator
	OverdueDays int
	Now         func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// PageQuery is the paging part of every listing request.
type PageQuery struct {
	Page     int
	PageSize int
}

// ListQuery adds the optional loan window to a listing request.
type ListQuery struct {
	PageQuery
	Date    *time.Time
	Overdue bool
}

func (o Options) window(q ListQuery) window.Window {
	return window.Window{
		Date:          q.Date,
		Overdue:       q.Overdue,
		ThresholdDays: o.OverdueDays,
	}
}
