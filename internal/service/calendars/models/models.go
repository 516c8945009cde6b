package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// DayWindow окно доступности на день недели ("09:00" - "17:00")
type DayWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityHours недельное расписание, ключ - день недели ("monday").
// null или отсутствующий день означает, что календарь в этот день закрыт.
type AvailabilityHours map[string]*DayWindow

// CreateCalendarRequest запрос на создание календаря
type CreateCalendarRequest struct {
	Name              string            `json:"name"`
	Description       *string           `json:"description,omitempty"`
	Color             *string           `json:"color,omitempty"`
	TimeSlotDuration  *int              `json:"timeSlotDuration,omitempty"`
	AvailabilityHours AvailabilityHours `json:"availabilityHours"`
	IsActive          *bool             `json:"isActive,omitempty"`
}

// UpdateCalendarRequest запрос на обновление календаря (только переданные поля)
type UpdateCalendarRequest struct {
	Name              *string           `json:"name,omitempty"`
	Description       *string           `json:"description,omitempty"`
	Color             *string           `json:"color,omitempty"`
	TimeSlotDuration  *int              `json:"timeSlotDuration,omitempty"`
	AvailabilityHours AvailabilityHours `json:"availabilityHours,omitempty"`
}

// ToDomain конвертирует расписание в доменную модель
func (h AvailabilityHours) ToDomain() (domain.WeeklyAvailability, error) {
	out := make(domain.WeeklyAvailability, len(h))
	for name, window := range h {
		day, ok := domain.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		if window == nil {
			continue
		}

		start, err := types.NewTimeStringFromString(window.Start)
		if err != nil {
			return nil, fmt.Errorf("%s start: %w", name, err)
		}
		end, err := types.NewTimeStringFromString(window.End)
		if err != nil {
			return nil, fmt.Errorf("%s end: %w", name, err)
		}
		out[day] = domain.DayWindow{Start: start, End: end}
	}
	return out, nil
}

// Response модели

// CalendarResponse ответ с данными календаря
type CalendarResponse struct {
	ID                uuid.UUID         `json:"id"`
	CompanyID         uuid.UUID         `json:"companyId"`
	Name              string            `json:"name"`
	Description       *string           `json:"description,omitempty"`
	Color             string            `json:"color"`
	IsActive          bool              `json:"isActive"`
	TimeSlotDuration  int               `json:"timeSlotDuration"`
	AvailabilityHours AvailabilityHours `json:"availabilityHours"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// CalendarListResponse ответ со списком календарей
type CalendarListResponse struct {
	Calendars []CalendarResponse `json:"calendars"`
	Total     int                `json:"total"`
}

// AvailabilityResponse ответ на проверку доступности времени
type AvailabilityResponse struct {
	CalendarID     uuid.UUID `json:"calendarId"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Available      bool      `json:"available"`
	CalendarActive bool      `json:"calendarActive"`
}

// FromDomainAvailability конвертирует расписание в ответ: все семь дней, закрытые как null
func FromDomainAvailability(a domain.WeeklyAvailability) AvailabilityHours {
	out := make(AvailabilityHours, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		window, ok := a[day]
		if !ok {
			out[domain.WeekdayName(day)] = nil
			continue
		}
		out[domain.WeekdayName(day)] = &DayWindow{
			Start: window.Start.String(),
			End:   window.End.String(),
		}
	}
	return out
}

// FromDomainCalendar конвертирует domain.Calendar в CalendarResponse
func FromDomainCalendar(cal *domain.Calendar) *CalendarResponse {
	return &CalendarResponse{
		ID:                cal.ID,
		CompanyID:         cal.CompanyID,
		Name:              cal.Name,
		Description:       cal.Description,
		Color:             cal.Color,
		IsActive:          cal.IsActive,
		TimeSlotDuration:  cal.TimeSlotDuration,
		AvailabilityHours: FromDomainAvailability(cal.Availability),
		CreatedAt:         cal.CreatedAt,
		UpdatedAt:         cal.UpdatedAt,
	}
}

// FromDomainCalendarList конвертирует список календарей
func FromDomainCalendarList(calendars []*domain.Calendar) *CalendarListResponse {
	out := make([]CalendarResponse, 0, len(calendars))
	for _, cal := range calendars {
		out = append(out, *FromDomainCalendar(cal))
	}
	return &CalendarListResponse{
		Calendars: out,
		Total:     len(out),
	}
}
