package date

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrParsing = errors.New("error parsing date")

// ParseDue turns user input such as "tomorrow", "fri", "in 2 weeks", "21st",
// "1st jan" or "20/04/2021" into a due day relative to now.
// An empty string means no due date and returns nil without error.
func ParseDue(s string, now time.Time) (*time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	today := StartOfDay(now)
	due, err := parse(s, today)
	if err != nil {
		return nil, err
	}
	due = StartOfDay(due)
	return &due, nil
}

func parse(s string, today time.Time) (time.Time, error) {
	switch s {
	case "today", "tod", "now":
		return today, nil
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), nil
	case "yesterday", "yday":
		return today.AddDate(0, 0, -1), nil
	}
	if wkd, err := parseWeekday(s); err == nil {
		return nextWeekday(today, wkd), nil
	}
	if days, err := parseDayOffset(s); err == nil {
		return today.AddDate(0, 0, days), nil
	}
	if t, err := parseAnyTimeFormat(s, absoluteFormats, today.Location()); err == nil {
		return t, nil
	}
	if day, err := parseDayOfMonth(s); err == nil {
		return nextDayOfMonth(today, day), nil
	}
	if t, err := parseDayMonth(s, today); err == nil {
		return t, nil
	}
	return time.Time{}, ErrParsing
}

// ParseAbsolute parses a calendar date as found in imported files.
func ParseAbsolute(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrParsing
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		day := StartOfDay(t.In(time.Local))
		return &day, nil
	}
	t, err := parseAnyTimeFormat(s, importFormats, time.Local)
	if err != nil {
		return nil, ErrParsing
	}
	return &t, nil
}

func parseAnyTimeFormat(s string, formats []string, loc *time.Location) (time.Time, error) {
	for _, fmt := range formats {
		t, err := time.ParseInLocation(fmt, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("format not found")
}

var absoluteFormats = []string{
	ISO,
	"_2/01/06",
	"_2/01/2006",
	"_2 Jan 2006",
	"_2 January 2006",
}

// spreadsheets and the export format write month first
var importFormats = []string{
	ISO,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

var dayMonthFormats = []string{
	"_2 Jan",
	"_2 January",
	"Jan _2",
	"January _2",
}

type multiplier struct {
	key   string
	value int
}

var multipliers = []multiplier{
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

func parseDayOffset(s string) (int, error) {
	s = strings.TrimPrefix(s, "in")
	s = strings.TrimSpace(s)
	var (
		n        int
		negative bool
	)
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "+")
	// parse quantity
	{
		s1, n1, err := parseInt(s)
		if err != nil {
			return 0, err
		}
		n = n1
		s = strings.TrimSpace(s1)
	}

	multiplier := 1
	if len(s) > 0 {
		multiplier = 0
		endOfWord := len(s)
		for i, c := range s {
			if c == ' ' {
				endOfWord = i
				break
			}
		}
		for _, m := range multipliers {
			end := min(len(m.key), endOfWord)
			if m.key[:end] == s[:end] && end == endOfWord {
				multiplier = m.value
				s = s[end:]
				break
			}
		}
		s = strings.TrimSpace(s)
		if s == "ago" {
			negative = true
		} else if s != "" {
			return 0, errors.New("unexpected trailing input")
		}
		if multiplier == 0 {
			return 0, errors.New("invalid suffix, expected 'days', 'months', 'weeks', or 'years'")
		}
	}

	if negative {
		n *= -1
	}
	return n * multiplier, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for i := time.Sunday; i <= time.Saturday; i++ {
		fmt := strings.ToLower(i.String())
		if s == fmt || s == fmt[:3] {
			return i, nil
		}
	}
	return 0, errors.New("invalid weekday")
}

// nextWeekday returns the next day falling on w, a week ahead if today is w
func nextWeekday(today time.Time, w time.Weekday) time.Time {
	days := int(w - today.Weekday())
	if days <= 0 {
		days += 7
	}
	return today.AddDate(0, 0, days)
}

func parseDayOfMonth(s string) (int, error) {
	s, n, err := parseInt(s)
	if err != nil {
		return 0, errors.New("failed")
	}
	if !validOrdinal(n, s) {
		return 0, errors.New("invalid postfix")
	}
	return n, nil
}

func validOrdinal(n int, suffix string) bool {
	lastDigit := n % 10
	forceTh := (n%100 - lastDigit) == 10
	switch {
	case n < 1 || n > 31:
		return false
	case lastDigit == 1 && !forceTh:
		return suffix == "st"
	case lastDigit == 2 && !forceTh:
		return suffix == "nd"
	case lastDigit == 3 && !forceTh:
		return suffix == "rd"
	default:
		return suffix == "th"
	}
}

// nextDayOfMonth returns the next date after today whose day of month is day
func nextDayOfMonth(today time.Time, day int) time.Time {
	months := 0
	days := day - today.Day()
	if days <= 0 {
		months = 1
	}
	return today.AddDate(0, months, days)
}

var ordinal = regexp.MustCompile(`([0-9])(st|nd|rd|th)\b`)

// parseDayMonth parses "1st jan" or "jan 1" as the next occurrence of that day
func parseDayMonth(s string, today time.Time) (time.Time, error) {
	s = ordinal.ReplaceAllString(s, "$1")
	t, err := parseAnyTimeFormat(s, dayMonthFormats, today.Location())
	if err != nil {
		return time.Time{}, err
	}
	next := time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	}
	return next, nil
}

func parseInt(s string) (string, int, error) {
	n := 0
	i := 0
	for {
		if i >= len(s) {
			break
		}
		n1, err := strconv.Atoi(s[:i+1])
		// first one can not fail
		if err != nil {
			if i == 0 {
				return s, 0, errors.New("failed to parse")
			}
			break
		}
		n = n1
		i++
	}
	if i == 0 {
		return s, 0, errors.New("failed to parse")
	}
	return s[i:], n, nil
}
