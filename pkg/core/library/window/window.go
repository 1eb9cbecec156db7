// Package window decides whether a loan falls into a requested time window.
//
// A loan window is the inclusive interval [LoanDate, ReturnDate]; a loan
// without a return date is open ended and spans every date from its loan
// date onward.
package window

import (
	"time"

	"library-lending/pkg/core/library/model"
)

// DefaultThresholdDays is the loan age reported as overdue.
const DefaultThresholdDays = 30

// SpansDate reports whether the loan is out on date.
func SpansDate(loan model.Loan, date time.Time) bool {
	if date.Before(loan.LoanDate) {
		return false
	}
	return loan.ReturnDate == nil || !date.After(*loan.ReturnDate)
}

// ExceedsDuration reports whether the loan has lasted at least thresholdDays
// at ref and is still out at ref.
func ExceedsDuration(loan model.Loan, thresholdDays int, ref time.Time) bool {
	threshold := time.Duration(thresholdDays) * 24 * time.Hour
	if ref.Sub(loan.LoanDate) < threshold {
		return false
	}
	return SpansDate(loan, ref)
}

// Window is the filter requested by a caller. The zero value matches every loan.
type Window struct {
	Date          *time.Time
	Overdue       bool
	ThresholdDays int
}

// Active reports whether the window filters anything at all.
func (w Window) Active() bool {
	return w.Date != nil || w.Overdue
}

// Reference is the date a duration check is measured at: Date, or now.
func (w Window) Reference(now time.Time) time.Time {
	if w.Date != nil {
		return *w.Date
	}
	return now
}

func (w Window) threshold() int {
	if w.ThresholdDays > 0 {
		return w.ThresholdDays
	}
	return DefaultThresholdDays
}

// Match applies the window to a single loan.
func (w Window) Match(loan model.Loan, now time.Time) bool {
	switch {
	case w.Overdue:
		return ExceedsDuration(loan, w.threshold(), w.Reference(now))
	case w.Date != nil:
		return SpansDate(loan, *w.Date)
	default:
		return true
	}
}

// Filter keeps the loans matching w, preserving order.
func (w Window) Filter(loans []model.Loan, now time.Time) []model.Loan {
	if !w.Active() {
		return loans
	}
	out := make([]model.Loan, 0, len(loans))
	for _, l := range loans {
		if w.Match(l, now) {
			out = append(out, l)
		}
	}
	return out
}
