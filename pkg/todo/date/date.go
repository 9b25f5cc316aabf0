// Package date holds the day level arithmetic used for due dates.
// Due dates carry no time of day: they are stored as local midnight.
package date

import (
	"strconv"
	"time"
)

const (
	ISO     = "2006-01-02"
	Display = "Jan 2, 2006"
)

const DefaultSoonDays = 3

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b, ignoring the time of day and DST shifts.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// IsOverdue reports whether due is a day before today
func IsOverdue(due, now time.Time) bool {
	return DaysBetween(now, due) < 0
}

// IsDueSoon reports whether due is today or within the next days days
func IsDueSoon(due, now time.Time, days int) bool {
	diff := DaysBetween(now, due)
	return diff >= 0 && diff <= days
}

func FormatISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(ISO)
}

func Format(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(Display)
}

// Relative describes due relative to now, e.g. "today", "3 days" or "2 months".
func Relative(due, now time.Time) string {
	switch days := DaysBetween(now, due); {
	case days < 0:
		return "overdue"
	case days == 0:
		return "today"
	case days == 1:
		return "1 day"
	case days < 14:
		return strconv.Itoa(days) + " days"
	// max 1 month
	case days < 31:
		return strconv.Itoa(days/7) + " weeks"
	// months
	default:
		postfix := ""
		months := days / 31
		if months > 1 {
			postfix = "s"
		}
		return strconv.Itoa(months) + " month" + postfix
	}
}
