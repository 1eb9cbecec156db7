package model

import (
	"fmt"

	errs "library-lending/pkg/common/errors"
)

// Rating bounds, inclusive.
const (
	MinRating = 0
	MaxRating = 5
)

// Review is keyed by (UserID, BookID): at most one review per user per book.
type Review struct {
	UserID int64 `gorm:"primaryKey;autoIncrement:false" json:"UserId"`
	BookID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"BookId"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"User,omitempty"`
	Book   *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"Book,omitempty"`
	Rating int   `gorm:"not null" json:"Rating"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return errs.NewInvalidData("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}
