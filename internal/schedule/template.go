// Package schedule implements the fixed daily slot template and the
// date-range arithmetic used by the slot catalog generator.  The
// template is deliberately not configurable: every issue date gets
// the same catalog of five-minute windows, so the functions here are
// pure and the generator only has to materialize their output.
package schedule

import (
	"errors"
	"time"
)

// SlotDurationMins is the fixed length of every slot window.
const SlotDurationMins = 5

// DateLayout is the wire format for calendar dates (ISO-8601).
const DateLayout = "2006-01-02"

// TimeLayout is the storage format for slot start times.
const TimeLayout = "15:04:05"

// ErrInvalidDate is returned when a date string cannot be parsed as
// an ISO-8601 calendar date.
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidRange is returned when the end date of a range falls
// before its start date.
var ErrInvalidRange = errors.New("end date before start date")

// window is one contiguous stretch of slot starts, stepped at
// five-minute intervals with both endpoints included.
type window struct {
	fromHour, fromMin int
	toHour, toMin     int
}

// The two distribution windows of a day: morning 09:00–13:25 and
// evening 15:00–20:00.  The last morning start is 13:25 so the final
// morning window closes at the 13:30 lunch break.  54 + 61 = 115
// slots per day.
var dailyWindows = []window{
	{9, 0, 13, 25},
	{15, 0, 20, 0},
}

// DailyTimes returns the start times of every slot in a day as
// HH:MM:SS strings in ascending order.  A fresh slice is allocated on
// each call.
func DailyTimes() []string {
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]string, 0, 128)
	for _, w := range dailyWindows {
		cur := base.Add(time.Duration(w.fromHour)*time.Hour + time.Duration(w.fromMin)*time.Minute)
		end := base.Add(time.Duration(w.toHour)*time.Hour + time.Duration(w.toMin)*time.Minute)
		for !cur.After(end) {
			times = append(times, cur.Format(TimeLayout))
			cur = cur.Add(SlotDurationMins * time.Minute)
		}
	}
	return times
}

// ParseDate parses an ISO-8601 calendar date and normalizes it to
// midnight UTC.  It returns ErrInvalidDate when the string is not a
// valid date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// ParseRange parses start and end date strings and validates their
// ordering.  It returns ErrInvalidDate when either string is not a
// date and ErrInvalidRange when end precedes start.
func ParseRange(start, end string) (time.Time, time.Time, error) {
	s, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return s, e, nil
}

// DateRange returns every calendar date from start through end
// inclusive.  Both bounds must already be normalized to midnight;
// passing end before start yields an empty slice.
func DateRange(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
