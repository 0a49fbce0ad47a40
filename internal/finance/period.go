package finance

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	minYear = 1
	maxYear = 9999

	weeksPerMonth = 4
	daysPerWeek   = 7
)

// Bucket is a calendar sub-range with the entries that fell into it.
// Start and End are both inclusive.
type Bucket struct {
	Index         int
	Start         time.Time
	End           time.Time
	Total         decimal.Decimal
	Items         []Entry
	ChangePercent *decimal.Decimal
}

// Contains reports whether t lies within the bucket bounds.
func (b *Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// Span returns the range covered by an ordered bucket sequence.
func Span(buckets []Bucket) (start, end time.Time) {
	if len(buckets) == 0 {
		return time.Time{}, time.Time{}
	}
	return buckets[0].Start, buckets[len(buckets)-1].End
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return invalidPeriod("year %d out of range", year)
	}
	return nil
}

func validateYearMonth(year, month int) error {
	if err := validateYear(year); err != nil {
		return err
	}
	if month < 1 || month > 12 {
		return invalidPeriod("month %d out of range", month)
	}
	return nil
}

// ParseYear reads a year from text. Non-numeric or out-of-range values are
// ErrInvalidPeriod.
func ParseYear(year string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0, invalidPeriod("year %q is not a number", year)
	}
	if err = validateYear(y); err != nil {
		return 0, err
	}
	return y, nil
}

// ParseYearMonth reads a year and a month (1 to 12) from text.
func ParseYearMonth(year, month string) (int, int, error) {
	y, err := ParseYear(year)
	if err != nil {
		return 0, 0, err
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return 0, 0, invalidPeriod("month %q is not a number", month)
	}
	if err = validateYearMonth(y, m); err != nil {
		return 0, 0, err
	}
	return y, m, nil
}

func startOfDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// endOfDay is the last nanosecond of the given day.
func endOfDay(year int, month time.Month, day int) time.Time {
	return startOfDay(year, month, day+1).Add(-time.Nanosecond)
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func newBucket(index int, start, end time.Time) Bucket {
	return Bucket{
		Index: index,
		Start: start,
		End:   end,
		Total: decimal.Zero,
		Items: []Entry{},
	}
}

// WeeksOfMonth splits a month into days 1-7, 8-14, 15-21 and 22 to the last day.
func WeeksOfMonth(year, month int) ([]Bucket, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	m := time.Month(month)
	lastDay := DaysIn(year, m)

	buckets := make([]Bucket, 0, weeksPerMonth)
	for i := 0; i < weeksPerMonth; i++ {
		firstDay := i*daysPerWeek + 1
		endDay := firstDay + daysPerWeek - 1
		if i == weeksPerMonth-1 {
			endDay = lastDay
		}
		buckets = append(buckets, newBucket(i+1, startOfDay(year, m, firstDay), endOfDay(year, m, endDay)))
	}
	return buckets, nil
}

// MonthsOfYear returns one bucket per calendar month.
func MonthsOfYear(year int) ([]Bucket, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	buckets := make([]Bucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		buckets = append(buckets, newBucket(int(m), startOfDay(year, m, 1), endOfDay(year, m, DaysIn(year, m))))
	}
	return buckets, nil
}

// ISOWeeksOfYear returns the ISO 8601 weeks (Monday to Sunday) that belong to year.
// Week 1 may start in December of the previous year and the last week may end in
// January of the next one.
func ISOWeeksOfYear(year int) ([]Bucket, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	// January 4th is always in week 1.
	jan4 := startOfDay(year, time.January, 4)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset)

	var buckets []Bucket
	for {
		isoYear, week := monday.ISOWeek()
		if isoYear != year {
			break
		}
		end := monday.AddDate(0, 0, daysPerWeek).Add(-time.Nanosecond)
		buckets = append(buckets, newBucket(week, monday, end))
		monday = monday.AddDate(0, 0, daysPerWeek)
	}
	return buckets, nil
}

// DaysOfMonth returns one bucket per calendar day, ascending.
func DaysOfMonth(year, month int) ([]Bucket, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	m := time.Month(month)
	days := DaysIn(year, m)
	buckets := make([]Bucket, 0, days)
	for d := 1; d <= days; d++ {
		buckets = append(buckets, newBucket(d, startOfDay(year, m, d), endOfDay(year, m, d)))
	}
	return buckets, nil
}

// MonthRange returns the inclusive bounds of a month.
func MonthRange(year, month int) (time.Time, time.Time, error) {
	if err := validateYearMonth(year, month); err != nil {
		return time.Time{}, time.Time{}, err
	}
	m := time.Month(month)
	return startOfDay(year, m, 1), endOfDay(year, m, DaysIn(year, m)), nil
}

// EndOfDay returns the last nanosecond of t's calendar day in UTC.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return endOfDay(t.Year(), t.Month(), t.Day())
}
