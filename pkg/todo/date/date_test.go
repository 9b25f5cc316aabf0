package date

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestIsOverdue(t *testing.T) {
	t.Run("yesterday", func(t *testing.T) {
		is := is.New(t)
		is.True(IsOverdue(day(2021, 4, 19), now))
	})
	t.Run("today is not overdue", func(t *testing.T) {
		is := is.New(t)
		is.True(!IsOverdue(day(2021, 4, 20), now))
	})
}

func TestIsDueSoon(t *testing.T) {
	tests := []struct {
		due  time.Time
		want bool
	}{
		{day(2021, 4, 19), false},
		{day(2021, 4, 20), true},
		{day(2021, 4, 23), true},
		{day(2021, 4, 24), false},
	}
	for _, tt := range tests {
		t.Run(tt.due.Format(ISO), func(t *testing.T) {
			is := is.New(t)
			is.Equal(IsDueSoon(tt.due, now, DefaultSoonDays), tt.want)
		})
	}
}

func TestDaysBetween_DST(t *testing.T) {
	is := is.New(t)
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skip("no tzdata")
	}
	// clocks go forward on the 28th
	a := time.Date(2021, time.March, 27, 12, 0, 0, 0, loc)
	b := time.Date(2021, time.March, 29, 0, 0, 0, 0, loc)
	is.Equal(DaysBetween(a, b), 2)
}

func TestRelative(t *testing.T) {
	tests := []struct {
		due  time.Time
		want string
	}{
		{day(2021, 4, 10), "overdue"},
		{day(2021, 4, 20), "today"},
		{day(2021, 4, 21), "1 day"},
		{day(2021, 4, 25), "5 days"},
		{day(2021, 5, 8), "2 weeks"},
		{day(2021, 7, 1), "2 months"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			is := is.New(t)
			is.Equal(Relative(tt.due, now), tt.want)
		})
	}
}

func TestFormat(t *testing.T) {
	is := is.New(t)
	d := day(2025, 2, 8)
	is.Equal(FormatISO(&d), "2025-02-08")
	is.Equal(Format(&d), "Feb 8, 2025")
	is.Equal(FormatISO(nil), "")
}
