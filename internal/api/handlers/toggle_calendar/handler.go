package toggle_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars"
)

const (
	msgInvalidCalendarID = "некорректный ID календаря"
	msgMissingCompanyID  = "отсутствует ID компании"
	msgNotFound          = "календарь не найден"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/calendars/{calendarId}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID, err := handlers.PathUUID(r, "calendarId")
	if err != nil {
		h.logger.Warn("PATCH /calendars/{id}/toggle - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /calendars/{id}/toggle - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	calendar, err := h.service.ToggleActive(r.Context(), companyID, calendarID)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("PATCH /calendars/{id}/toggle - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /calendars/{id}/toggle - Failed to toggle calendar: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /calendars/{id}/toggle - Calendar toggled: calendar_id=%s, active=%t", calendarID, calendar.IsActive)
	handlers.RespondJSON(w, http.StatusOK, calendar)
}
