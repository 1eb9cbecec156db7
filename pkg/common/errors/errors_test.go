package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	errs "library-lending/pkg/common/errors"
)

func Test_KindOf_ClassifiesWrappedErrors(t *testing.T) {
	notFound := fmt.Errorf("recommend: %w", errs.NewNotFound("user", 7))
	invalid := errs.NewInvalidData("return_date", "is before loan_date")

	assert.Equal(t, errs.KindNotFound, errs.KindOf(notFound))
	assert.Equal(t, errs.KindInvalidData, errs.KindOf(invalid))
	assert.Equal(t, errs.KindDuplicate, errs.KindOf(errs.NewDuplicateEntry(nil)))
	assert.Equal(t, errs.KindUnhandled, errs.KindOf(errors.New("connection refused")))
	assert.Equal(t, errs.KindUnhandled, errs.KindOf(nil))
}

func Test_NewNotFound_CarriesEntityAndID(t *testing.T) {
	err := errs.NewNotFound("book", 42)

	assert.EqualError(t, err, "book 42: not found")
	assert.Equal(t, map[string]interface{}{"entity": "book", "id": 42}, errs.Meta(err))
}

func Test_WrapGormError_MapsKnownErrors(t *testing.T) {
	assert.Nil(t, errs.WrapGormError(nil, "book"))
	assert.Equal(t, errs.KindNotFound, errs.KindOf(errs.WrapGormError(gorm.ErrRecordNotFound, "book")))
	assert.Equal(t, errs.KindDuplicate, errs.KindOf(errs.WrapGormError(gorm.ErrDuplicatedKey, "user")))
	assert.Equal(t, errs.KindDuplicate, errs.KindOf(errs.WrapGormError(&mysql.MySQLError{Number: 1062}, "user")))
	assert.Equal(t, errs.KindInvalidData, errs.KindOf(errs.WrapGormError(&mysql.MySQLError{Number: 1452}, "loan")))
	assert.ErrorIs(t, errs.WrapGormError(&mysql.MySQLError{Number: 1146, Message: "no table"}, "loan"), errs.ErrDatabaseInternal)
}

func Test_WrapGormError_PropagatesUnknownErrorsUnchanged(t *testing.T) {
	raw := errors.New("driver: bad connection")

	assert.Same(t, raw, errs.WrapGormError(raw, "loan"))
}

func Test_IsDuplicateError(t *testing.T) {
	assert.True(t, errs.IsDuplicateError(&mysql.MySQLError{Number: 1062}))
	assert.True(t, errs.IsDuplicateError(gorm.ErrDuplicatedKey))
	assert.False(t, errs.IsDuplicateError(errors.New("x")))
}
