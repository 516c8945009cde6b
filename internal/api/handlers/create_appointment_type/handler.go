package create_appointment_type

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	appointmentTypes "github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCompanyID   = "отсутствует ID компании"
	msgInvalidType        = "некорректные данные типа услуги"
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

// Handle POST /api/v1/appointment-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointment-types - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	var req models.CreateAppointmentTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointment-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointmentType, err := h.service.Create(r.Context(), companyID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentTypes.ErrInvalidInput):
			h.logger.Warn("POST /appointment-types - Invalid appointment type: company_id=%s, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidType+": "+err.Error())

		default:
			h.logger.Error("POST /appointment-types - Failed to create appointment type: company_id=%s, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointment-types - Appointment type created successfully: type_id=%s, company_id=%s",
		appointmentType.ID, companyID)
	handlers.RespondJSON(w, http.StatusCreated, appointmentType)
}
