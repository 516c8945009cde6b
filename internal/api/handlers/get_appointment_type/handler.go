package get_appointment_type

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	appointmentTypes "github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types"
)

const (
	msgInvalidTypeID    = "некорректный ID типа услуги"
	msgMissingCompanyID = "отсутствует ID компании"
	msgNotFound         = "тип услуги не найден"
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

// Handle GET /api/v1/appointment-types/{typeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	typeID, err := handlers.PathUUID(r, "typeId")
	if err != nil {
		h.logger.Warn("GET /appointment-types/{id} - Invalid appointment type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointment-types/{id} - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	appointmentType, err := h.service.GetByID(r.Context(), companyID, typeID)
	if err != nil {
		switch {
		case errors.Is(err, appointmentTypes.ErrAppointmentTypeNotFound):
			h.logger.Warn("GET /appointment-types/{id} - Appointment type not found: type_id=%s", typeID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointment-types/{id} - Failed to get appointment type: type_id=%s, error=%v", typeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointment-types/{id} - Appointment type retrieved successfully: type_id=%s", typeID)
	handlers.RespondJSON(w, http.StatusOK, appointmentType)
}
