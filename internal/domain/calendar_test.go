package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// 2025-10-13 is a Monday
var (
	monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
)

func weekdayCalendar(slot int) *Calendar {
	return &Calendar{
		Name:             "Main crew",
		Color:            DefaultCalendarColor,
		IsActive:         true,
		TimeSlotDuration: slot,
		Availability: WeeklyAvailability{
			time.Monday: {Start: "09:00", End: "17:00"},
		},
	}
}

func TestCalendar_IsAvailable(t *testing.T) {
	cal := weekdayCalendar(30)

	tests := []struct {
		name string
		date time.Time
		time types.TimeString
		want bool
	}{
		{name: "window start", date: monday, time: "09:00", want: true},
		{name: "last slot", date: monday, time: "16:30", want: true},
		{name: "window end is exclusive", date: monday, time: "17:00", want: false},
		{name: "unaligned time", date: monday, time: "09:15", want: false},
		{name: "before window", date: monday, time: "08:30", want: false},
		{name: "disabled sunday", date: sunday, time: "10:00", want: false},
		{name: "malformed time", date: monday, time: "ten", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.IsAvailable(tt.date, tt.time))
		})
	}
}

func TestCalendar_IsAvailable_AlignedFromWindowStart(t *testing.T) {
	cal := &Calendar{
		TimeSlotDuration: 45,
		Availability: WeeklyAvailability{
			time.Monday: {Start: "09:15", End: "12:15"},
		},
	}

	assert.True(t, cal.IsAvailable(monday, "10:00"))
	assert.True(t, cal.IsAvailable(monday, "11:30"))
	assert.False(t, cal.IsAvailable(monday, "10:15"))
}

func TestCalendar_EnumerateSlots(t *testing.T) {
	cal := weekdayCalendar(60)

	slots := cal.EnumerateSlots(monday)
	assert.Equal(t, []types.TimeString{
		"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00",
	}, slots)

	assert.Empty(t, cal.EnumerateSlots(sunday))
	assert.NotNil(t, cal.EnumerateSlots(sunday))
}

func TestCalendar_SlotsIsRestartable(t *testing.T) {
	cal := weekdayCalendar(30)
	seq := cal.Slots(monday)

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}

	assert.Equal(t, 16, count())
	assert.Equal(t, 16, count())

	// early stop
	var first []types.TimeString
	for slot := range seq {
		first = append(first, slot)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, first)
}

func TestCalendar_EverySlotIsAvailable(t *testing.T) {
	cal := weekdayCalendar(15)
	for slot := range cal.Slots(monday) {
		assert.True(t, cal.IsAvailable(monday, slot), "slot %s", slot)
	}
}

func TestCalendar_FullyClosed(t *testing.T) {
	cal := &Calendar{Name: "Closed", Color: "#000000", TimeSlotDuration: 30, Availability: WeeklyAvailability{}}

	require.NoError(t, cal.Validate())
	for d := 0; d < 7; d++ {
		assert.Empty(t, cal.EnumerateSlots(monday.AddDate(0, 0, d)))
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name    string
		slot    int
		avail   WeeklyAvailability
		wantErr error
	}{
		{
			name:  "valid",
			slot:  30,
			avail: WeeklyAvailability{time.Monday: {Start: "09:00", End: "17:00"}},
		},
		{
			name:    "unsupported slot",
			slot:    20,
			avail:   WeeklyAvailability{},
			wantErr: ErrInvalidSlotDuration,
		},
		{
			name:    "zero length window",
			slot:    30,
			avail:   WeeklyAvailability{time.Monday: {Start: "09:00", End: "09:00"}},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "inverted window",
			slot:    30,
			avail:   WeeklyAvailability{time.Friday: {Start: "17:00", End: "09:00"}},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "malformed time",
			slot:    30,
			avail:   WeeklyAvailability{time.Friday: {Start: "9am", End: "17:00"}},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "window not divisible by slot",
			slot:    45,
			avail:   WeeklyAvailability{time.Monday: {Start: "09:00", End: "17:00"}},
			wantErr: ErrWindowNotAligned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.slot, tt.avail)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCalendar_Validate(t *testing.T) {
	cal := weekdayCalendar(30)
	require.NoError(t, cal.Validate())

	cal.Name = "  "
	assert.ErrorIs(t, cal.Validate(), ErrEmptyName)

	cal = weekdayCalendar(30)
	cal.Color = "blue"
	assert.ErrorIs(t, cal.Validate(), ErrInvalidColor)
}

func TestWeeklyAvailability_JSON(t *testing.T) {
	raw := `{"monday":{"start":"09:00","end":"17:00"},"sunday":null}`

	var avail WeeklyAvailability
	require.NoError(t, json.Unmarshal([]byte(raw), &avail))

	assert.Len(t, avail, 1)
	assert.Equal(t, DayWindow{Start: "09:00", End: "17:00"}, avail[time.Monday])

	out, err := json.Marshal(avail)
	require.NoError(t, err)
	assert.JSONEq(t, `{"monday":{"start":"09:00","end":"17:00"}}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"funday":{"start":"09:00","end":"10:00"}}`), &avail))
}

func TestWeeklyAvailability_ScanValue(t *testing.T) {
	avail := WeeklyAvailability{time.Tuesday: {Start: "08:00", End: "12:00"}}

	v, err := avail.Value()
	require.NoError(t, err)

	var scanned WeeklyAvailability
	require.NoError(t, scanned.Scan([]byte(v.(string))))
	assert.Equal(t, avail, scanned)
}

func TestCalendar_ToggleActive(t *testing.T) {
	cal := weekdayCalendar(30)
	cal.ToggleActive()
	assert.False(t, cal.IsActive)
	cal.ToggleActive()
	assert.True(t, cal.IsActive)
}
