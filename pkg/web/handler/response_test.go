package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "library-lending/pkg/common/errors"
	"library-lending/pkg/core/library/model"
	"library-lending/pkg/core/library/window"
)

func Test_statusOf_MapsErrorKinds(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"not found":   {errs.NewNotFound("book", 3), 404},
		"invalid":     {errs.NewInvalidData("rating", "out of range"), 400},
		"duplicate":   {errs.NewDuplicateEntry(nil), 409},
		"timeout":     {fmt.Errorf("query: %w", context.DeadlineExceeded), 503},
		"unhandled":   {errors.New("boom"), 500},
		"db internal": {errs.ErrDatabaseInternal, 500},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusOf(tc.err))
		})
	}
}

func Test_parseDate_AcceptsDateOnlyAndRFC3339(t *testing.T) {
	d, err := parseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), d)

	_, err = parseDate("2024-06-01T10:00:00Z")
	assert.NoError(t, err)

	_, err = parseDate("01/06/2024")
	assert.Error(t, err)
}

func Test_parseOptionalDate_EmptyIsNil(t *testing.T) {
	empty := ""
	got, err := parseOptionalDate(&empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseOptionalDate(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func Test_checkDatabase_ReportsCoreComponent(t *testing.T) {
	ok := checkDatabase(context.Background(), fakePinger{})
	down := checkDatabase(context.Background(), fakePinger{err: errors.New("refused")})

	assert.False(t, hasCriticalErrors([]ComponentStatus{ok}))
	assert.True(t, hasCriticalErrors([]ComponentStatus{ok, down}))
	assert.Equal(t, "refused", down.Error)
}

func Test_parseDateIn_KeepsInclusiveBounds_InNonUTCZones(t *testing.T) {
	for _, loc := range []*time.Location{
		time.FixedZone("UTC+8", 8*60*60),
		time.FixedZone("UTC-5", -5*60*60),
	} {
		t.Run(loc.String(), func(t *testing.T) {
			// dates as the mysql driver reads DATE columns back with loc set to the zone
			loanDate := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)
			returned := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)
			sameDay := model.Loan{LoanDate: loanDate, ReturnDate: &returned}
			earlier := model.Loan{LoanDate: time.Date(2024, 5, 20, 0, 0, 0, 0, loc), ReturnDate: &returned}

			on, err := parseDateIn("2024-06-01", loc)
			require.NoError(t, err)

			assert.True(t, window.SpansDate(sameDay, on))
			assert.True(t, window.SpansDate(earlier, on))
			assert.True(t, window.SpansDate(model.Loan{LoanDate: loanDate}, on))

			next, err := parseDateIn("2024-06-02", loc)
			require.NoError(t, err)
			assert.False(t, window.SpansDate(earlier, next))
		})
	}
}

func Test_parseDateIn_ConvertsRFC3339IntoZone(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)

	got, err := parseDateIn("2024-06-01T00:00:00+08:00", loc)

	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.True(t, got.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, loc)))
}

func Test_startOfDay_IsLocalMidnight(t *testing.T) {
	got := startOfDay(time.Date(2024, 6, 2, 15, 4, 5, 0, time.Local))

	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local), got)
}
