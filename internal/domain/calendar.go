package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DayWindow is a half-open availability window [Start, End) within a single day.
type DayWindow struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Validate checks the window format and that Start < End.
func (w DayWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWindow, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWindow, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Contains reports whether t falls within [Start, End).
func (w DayWindow) Contains(t types.TimeString) bool {
	m := t.Minutes()
	return m >= w.Start.Minutes() && m < w.End.Minutes()
}

// WeeklyAvailability maps a weekday to its availability window.
// A weekday absent from the map is closed.
type WeeklyAvailability map[time.Weekday]DayWindow

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// ParseWeekday parses a lowercase english weekday name.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for day, n := range weekdayNames {
		if n == name {
			return day, true
		}
	}
	return 0, false
}

// WeekdayName returns the lowercase english name used in JSON.
func WeekdayName(day time.Weekday) string {
	return weekdayNames[day]
}

// MarshalJSON encodes as {"monday": {"start": "09:00", "end": "17:00"}, ...}.
func (a WeeklyAvailability) MarshalJSON() ([]byte, error) {
	out := make(map[string]DayWindow, len(a))
	for day, window := range a {
		out[WeekdayName(day)] = window
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes weekday-name keyed windows. A null window means closed.
func (a *WeeklyAvailability) UnmarshalJSON(data []byte) error {
	var raw map[string]*DayWindow
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	result := make(WeeklyAvailability, len(raw))
	for name, window := range raw {
		day, ok := ParseWeekday(name)
		if !ok {
			return fmt.Errorf("unknown weekday %q", name)
		}
		if window == nil {
			continue
		}
		result[day] = *window
	}

	*a = result
	return nil
}

// Value stores availability as JSONB.
func (a WeeklyAvailability) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan reads availability from a JSONB column.
func (a *WeeklyAvailability) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = WeeklyAvailability{}
		return nil
	case []byte:
		return a.UnmarshalJSON(v)
	case string:
		return a.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into WeeklyAvailability", value)
	}
}

// Clone returns an independent copy.
func (a WeeklyAvailability) Clone() WeeklyAvailability {
	if a == nil {
		return nil
	}
	out := make(WeeklyAvailability, len(a))
	for day, window := range a {
		out[day] = window
	}
	return out
}

// Calendar is a tenant-scoped staffing calendar: weekly hours plus slot granularity.
type Calendar struct {
	ID               uuid.UUID
	CompanyID        uuid.UUID
	Name             string
	Description      *string
	Color            string
	IsActive         bool
	TimeSlotDuration int // minutes
	Availability     WeeklyAvailability

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAllowedSlotDuration reports whether minutes is one of AllowedSlotDurations.
func IsAllowedSlotDuration(minutes int) bool {
	return slices.Contains(AllowedSlotDurations, minutes)
}

// ValidateColor checks the #RRGGBB format.
func ValidateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return nil
}

// ValidateSchedule checks slot duration and every enabled window.
// Each window must be well formed and its length a multiple of the slot duration.
func ValidateSchedule(slotDuration int, availability WeeklyAvailability) error {
	if !IsAllowedSlotDuration(slotDuration) {
		return fmt.Errorf("%w: got %d", ErrInvalidSlotDuration, slotDuration)
	}

	for day, window := range availability {
		if err := window.Validate(); err != nil {
			return fmt.Errorf("%s: %w", WeekdayName(day), err)
		}
		length := window.End.Minutes() - window.Start.Minutes()
		if length%slotDuration != 0 {
			return fmt.Errorf("%s: %w: %d minutes window, %d minutes slot",
				WeekdayName(day), ErrWindowNotAligned, length, slotDuration)
		}
	}

	return nil
}

// Validate checks the whole calendar definition.
func (c *Calendar) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidateColor(c.Color); err != nil {
		return err
	}
	return ValidateSchedule(c.TimeSlotDuration, c.Availability)
}

// WindowFor returns the availability window for the weekday of date.
func (c *Calendar) WindowFor(date time.Time) (DayWindow, bool) {
	window, ok := c.Availability[date.Weekday()]
	return window, ok
}

// IsAvailable reports whether t on date is a schedulable slot start:
// the weekday is enabled, t lies in [start, end) and is aligned to the slot
// duration measured from start. Unaligned times are rejected, not rounded.
func (c *Calendar) IsAvailable(date time.Time, t types.TimeString) bool {
	if c.TimeSlotDuration <= 0 || t.Validate() != nil {
		return false
	}

	window, ok := c.WindowFor(date)
	if !ok || !window.Contains(t) {
		return false
	}

	return (t.Minutes()-window.Start.Minutes())%c.TimeSlotDuration == 0
}

// Slots yields slot start times for date in ascending order, stepping by the
// slot duration from start, end exclusive. The sequence is empty on closed days
// and can be ranged over any number of times.
func (c *Calendar) Slots(date time.Time) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		if c.TimeSlotDuration <= 0 {
			return
		}
		window, ok := c.WindowFor(date)
		if !ok || window.Validate() != nil {
			return
		}

		end := window.End.Minutes()
		for m := window.Start.Minutes(); m < end; m += c.TimeSlotDuration {
			slot, err := types.NewTimeStringFromMinutes(m)
			if err != nil {
				return
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// EnumerateSlots collects Slots(date) into a slice.
func (c *Calendar) EnumerateSlots(date time.Time) []types.TimeString {
	slots := slices.Collect(c.Slots(date))
	if slots == nil {
		return []types.TimeString{}
	}
	return slots
}

// ToggleActive flips the active flag.
func (c *Calendar) ToggleActive() {
	c.IsActive = !c.IsActive
}
