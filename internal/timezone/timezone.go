package timezone

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
)

// DefaultOffsetMinutes is UTC-05:00 (Lima).
const DefaultOffsetMinutes = -300

const (
	MinOffsetMinutes = -12 * 60
	MaxOffsetMinutes = 14 * 60
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrInvalidDate = httperr.ErrBusiness("invalid_date_format")
	ErrInvalidTime = httperr.ErrBusiness("invalid_time_format")
)

func IsValidOffset(offsetMinutes int) bool {
	return offsetMinutes >= MinOffsetMinutes && offsetMinutes <= MaxOffsetMinutes
}

// Window maps calendar dates and wall-clock times of a fixed UTC offset to
// absolute instants. The process' local timezone never takes part.
type Window struct {
	offsetMinutes int
	loc           *time.Location
}

func Fixed(offsetMinutes int) Window {
	if !IsValidOffset(offsetMinutes) {
		offsetMinutes = DefaultOffsetMinutes
	}
	return Window{
		offsetMinutes: offsetMinutes,
		loc:           time.FixedZone(zoneName(offsetMinutes), offsetMinutes*60),
	}
}

func zoneName(offsetMinutes int) string {
	sign := '+'
	if offsetMinutes < 0 {
		sign = '-'
		offsetMinutes = -offsetMinutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offsetMinutes/60, offsetMinutes%60)
}

func (w Window) OffsetMinutes() int {
	return w.offsetMinutes
}

func (w Window) Location() *time.Location {
	if w.loc == nil {
		return Fixed(DefaultOffsetMinutes).loc
	}
	return w.loc
}

// ValidateDate checks dateStr is a YYYY-MM-DD calendar date.
func ValidateDate(dateStr string) error {
	if _, err := time.Parse(DateLayout, dateStr); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
	}
	return nil
}

func (w Window) StartOfDay(dateStr string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, dateStr, w.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
	}
	return d, nil
}

// EndOfDay is the last whole second of the local day (23:59:59).
func (w Window) EndOfDay(dateStr string) (time.Time, error) {
	start, err := w.StartOfDay(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(24*time.Hour - time.Second), nil
}

// StoreResolution is the precision of stored instants (Postgres timestamptz).
const StoreResolution = time.Microsecond

// LastInstant widens an inclusive whole-second bound such as EndOfDay to the
// last storable instant of that second.
func LastInstant(t time.Time) time.Time {
	return t.Add(time.Second - StoreResolution)
}

// LastBefore turns an exclusive bound into the inclusive one the stores take.
func LastBefore(t time.Time) time.Time {
	return t.Add(-StoreResolution)
}

func (w Window) Combine(dateStr, clock string) (time.Time, error) {
	day, err := w.StartOfDay(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// ToLocalTime formats an instant as "HH:mm" at the window's offset.
func (w Window) ToLocalTime(t time.Time) string {
	return t.In(w.Location()).Format(ClockLayout)
}

func (w Window) DateOf(t time.Time) string {
	return t.In(w.Location()).Format(DateLayout)
}

func (w Window) In(t time.Time) time.Time {
	return t.In(w.Location())
}

// MonthRange returns [first day 00:00, first day of next month 00:00).
func (w Window) MonthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %04d-%02d", ErrInvalidDate, year, month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, w.Location())
	return start, start.AddDate(0, 1, 0), nil
}

// ParseClock parses a strict "HH:mm" wall-clock time into minutes after midnight.
func ParseClock(clock string) (int, error) {
	if len(clock) != len(ClockLayout) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
