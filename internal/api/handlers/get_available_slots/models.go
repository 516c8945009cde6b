package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	CalendarID      uuid.UUID       `json:"calendarId"`
	CalendarActive  bool            `json:"calendarActive"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ScheduledJobs   int    `json:"scheduledJobs"`
	IsPast          bool   `json:"isPast"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			ScheduledJobs:   slot.ScheduledJobs,
			IsPast:          slot.IsPast,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		CalendarID:      resp.CalendarID,
		CalendarActive:  resp.CalendarActive,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case
func ToUseCaseRequest(companyID, calendarID uuid.UUID, date time.Time) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		CompanyID:  companyID,
		CalendarID: calendarID,
		Date:       date,
	}
}
