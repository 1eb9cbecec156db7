package model

import (
	"strings"
	"time"

	errs "library-lending/pkg/common/errors"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"Id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"Name"`
	Address   *string   `gorm:"type:varchar(500)" json:"Address,omitempty"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"Email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// TableName 定义映射表名
func (User) TableName() string {
	return "users"
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errs.NewInvalidData("name", "is required")
	}
	if !strings.Contains(u.Email, "@") {
		return errs.NewInvalidData("email", "must be a valid address")
	}
	return nil
}
