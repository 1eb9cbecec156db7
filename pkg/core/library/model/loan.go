package model

import (
	"time"

	errs "library-lending/pkg/common/errors"
)

// Loan is one lending of a book. A nil ReturnDate means it is still out.
type Loan struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"Id"`
	UserID     int64      `gorm:"not null;index" json:"UserId"`
	BookID     int64      `gorm:"not null;index" json:"BookId"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"User,omitempty"`
	Book       *Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"Book,omitempty"`
	LoanDate   time.Time  `gorm:"type:date;not null;index" json:"LoanDate"`
	ReturnDate *time.Time `gorm:"type:date;index" json:"ReturnDate,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// Returned reports whether the book came back.
func (l Loan) Returned() bool {
	return l.ReturnDate != nil
}

// Validate checks the loan invariant: a present return date is not before the loan date.
func (l Loan) Validate() error {
	if l.LoanDate.IsZero() {
		return errs.NewInvalidData("loan_date", "is required")
	}
	if l.ReturnDate != nil && l.ReturnDate.Before(l.LoanDate) {
		return errs.NewInvalidData("return_date", "is before loan_date")
	}
	return nil
}
