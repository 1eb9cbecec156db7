// pkg/common/errors/errors.go

/*
  - 使用实例
    // 查询前先确认依赖记录存在:
    if !exists {
    return errors.NewNotFound("user", id)
    }

    // 调用方按错误种类分流:
    switch errors.KindOf(err) {
    case errors.KindNotFound: ...
    }
*/
package errors

import (
	"errors"
	"fmt"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
)

// 原始错误，调用方用 errors.Is 判断
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidData      = errors.New("invalid data")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	ErrDatabaseInternal = errors.New("database internal error")
)

// Kind 供请求层区分错误种类
type Kind int

const (
	KindUnhandled Kind = iota
	KindNotFound
	KindInvalidData
	KindDuplicate
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidData:
		return "invalid_data"
	case KindDuplicate:
		return "duplicate"
	default:
		return "unhandled"
	}
}

// KindOf 判断 err 所属种类, nil 视为 KindUnhandled
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnhandled
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	case errors.Is(err, ErrDuplicateEntry):
		return KindDuplicate
	default:
		return KindUnhandled
	}
}

// NewNotFound 包装成 Hertz 错误类型, meta 记录实体和主键
func NewNotFound(entity string, id interface{}) *hzte.Error {
	err := fmt.Errorf("%s: %w", entity, ErrNotFound)
	if id != nil {
		err = fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
	}
	return hzte.New(
		err,
		hzte.ErrorTypePublic,
		map[string]interface{}{"entity": entity, "id": id},
	)
}

// NewInvalidData 单个字段违反约束
func NewInvalidData(field, reason string) *hzte.Error {
	return hzte.New(
		fmt.Errorf("%s %s: %w", field, reason, ErrInvalidData),
		hzte.ErrorTypePublic,
		map[string]interface{}{"field": field},
	)
}

func NewDuplicateEntry(meta interface{}) *hzte.Error {
	return hzte.New(ErrDuplicateEntry, hzte.ErrorTypePublic, meta)
}

// Meta 取错误链中 Hertz 错误的元数据
func Meta(err error) interface{} {
	var hErr *hzte.Error
	if errors.As(err, &hErr) {
		return hErr.Meta
	}
	return nil
}
