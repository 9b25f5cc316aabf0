package date

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

// a Tuesday afternoon
var now = time.Date(2021, time.April, 20, 15, 4, 0, 0, time.Local)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseDue(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    time.Time
		wantErr bool
	}{
		{"Case Insensitive", []string{"ToDAY"}, day(2021, 4, 20), false},
		{"today", []string{"today", "tod", "now"}, day(2021, 4, 20), false},
		{"tomorrow", []string{"tomorrow", "tom", "1", "+1", "in 1 day", "1d", "1day", "1 day"}, day(2021, 4, 21), false},
		{"yesterday", []string{"yday", "yesterday", "1 day ago", "1d ago", "-1"}, day(2021, 4, 19), false},
		{"7 days", []string{"7 day", "7 days", "1 week", "7", "in 1w"}, day(2021, 4, 27), false},
		{"1 month", []string{"1 month", "1m"}, day(2021, 5, 20), false},
		{"1 year", []string{"1y", "in 1 year"}, day(2022, 4, 20), false},

		{"absolute", []string{"20/04/22", "20/04/2022", "20 April 2022", "20 Apr 2022", "2022-04-20"}, day(2022, 4, 20), false},
		{"monday", []string{"mon", "monday"}, day(2021, 4, 26), false},
		{"same weekday is next week", []string{"tue", "tuesday"}, day(2021, 4, 27), false},
		{"wednesday", []string{"wed", "wednesday"}, day(2021, 4, 21), false},
		{"sunday", []string{"sun", "sunday"}, day(2021, 4, 25), false},

		{"1st", []string{"1st"}, day(2021, 5, 1), false},
		{"22nd", []string{"22nd"}, day(2021, 4, 22), false},
		{"20th is next month", []string{"20th"}, day(2021, 5, 20), false},
		{"11th", []string{"11th"}, day(2021, 5, 11), false},

		{"1st Jan", []string{"1st Jan", "1st January", "jan 1"}, day(2022, 1, 1), false},
		{"1st Dec", []string{"1st Dec", "december 1"}, day(2021, 12, 1), false},

		{"invalid", []string{"1wek", "11st", "40th", "nope", "-", "1 dayss"}, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, arg := range tt.args {
				got, err := ParseDue(arg, now)
				if (err != nil) != tt.wantErr {
					t.Errorf("ParseDue(%s) error = %v, wantErr %v", arg, err, tt.wantErr)
					return
				}
				if tt.wantErr {
					continue
				}
				if !got.Equal(tt.want) {
					t.Errorf("ParseDue(%s) = %v, want %v", arg, got, tt.want)
				}
			}
		})
	}
}

func TestParseDue_Empty(t *testing.T) {
	is := is.New(t)
	got, err := ParseDue("  ", now)
	is.NoErr(err)
	is.True(got == nil)
}

func TestParseAbsolute(t *testing.T) {
	want := day(2025, 2, 15)
	for _, s := range []string{"2025-02-15", "2/15/2025", "02/15/2025", "2/15/25", "Feb 15, 2025", "15 February 2025", "2025/02/15"} {
		t.Run(s, func(t *testing.T) {
			is := is.New(t)
			got, err := ParseAbsolute(s)
			is.NoErr(err)
			is.True(got.Equal(want))
		})
	}
	t.Run("garbage", func(t *testing.T) {
		is := is.New(t)
		_, err := ParseAbsolute("not-a-date")
		is.Equal(err, ErrParsing)
	})
}
