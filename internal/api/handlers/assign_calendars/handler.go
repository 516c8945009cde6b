package assign_calendars

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	appointmentTypes "github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types/models"
)

const (
	msgInvalidTypeID      = "некорректный ID типа услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCompanyID   = "отсутствует ID компании"
	msgNotFound           = "тип услуги не найден"
	msgInvalidInput       = "некорректные данные типа услуги"
	msgCalendarNotFound   = "календарь не найден"
)

type Handler struct {
	service AppointmentTypeService
	logger  Logger
}

func NewHandler(service AppointmentTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointment-types/{typeId}/calendars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	typeID, err := handlers.PathUUID(r, "typeId")
	if err != nil {
		h.logger.Warn("PUT /appointment-types/{id}/calendars - Invalid appointment type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("PUT /appointment-types/{id}/calendars - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	var req models.AssignCalendarsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointment-types/{id}/calendars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointmentType, err := h.service.AssignToCalendars(r.Context(), companyID, typeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentTypes.ErrAppointmentTypeNotFound):
			h.logger.Warn("PUT /appointment-types/{id}/calendars - Appointment type not found: type_id=%s", typeID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointmentTypes.ErrCalendarNotFound):
			h.logger.Warn("PUT /appointment-types/{id}/calendars - Calendar not found: type_id=%s, error=%v", typeID, err)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, appointmentTypes.ErrInvalidInput):
			h.logger.Warn("PUT /appointment-types/{id}/calendars - Invalid input: type_id=%s, error=%v", typeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		default:
			h.logger.Error("PUT /appointment-types/{id}/calendars - Failed to assign calendars: type_id=%s, error=%v", typeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointment-types/{id}/calendars - Calendars assigned successfully: type_id=%s", typeID)
	handlers.RespondJSON(w, http.StatusOK, appointmentType)
}
