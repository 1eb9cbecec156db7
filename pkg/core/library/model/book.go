package model

import (
	"strings"
	"time"

	errs "library-lending/pkg/common/errors"
)

type Book struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"Id"`
	Title       string    `gorm:"type:varchar(300);not null;index" json:"Title"`
	Author      string    `gorm:"type:varchar(200);not null" json:"Author"`
	PublishDate time.Time `gorm:"type:date" json:"PublishDate"`
	ISBN        string    `gorm:"column:isbn;type:varchar(20);uniqueIndex;not null" json:"ISBN"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

func (b Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errs.NewInvalidData("title", "is required")
	}
	if strings.TrimSpace(b.ISBN) == "" {
		return errs.NewInvalidData("isbn", "is required")
	}
	return nil
}
