package list_appointment_types

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types/models"
)

const (
	msgMissingCompanyID  = "отсутствует ID компании"
	msgInvalidParams     = "некорректные параметры запроса"
	msgInvalidCalendarID = "некорректный ID календаря"
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

// Handle GET /api/v1/appointment-types
// Query params: active (опционально), calendarId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointment-types - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	activeOnly, err := handlers.QueryBool(r, "active")
	if err != nil {
		h.logger.Warn("GET /appointment-types - Invalid active param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &models.ListAppointmentTypesRequest{
		CompanyID:  companyID,
		ActiveOnly: activeOnly,
	}

	if calendarIDStr := r.URL.Query().Get("calendarId"); calendarIDStr != "" {
		calendarID, err := uuid.Parse(calendarIDStr)
		if err != nil {
			h.logger.Warn("GET /appointment-types - Invalid calendar ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCalendarID)
			return
		}
		req.CalendarID = &calendarID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /appointment-types - Failed to list appointment types: company_id=%s, error=%v", companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointment-types - Appointment types retrieved successfully: company_id=%s, count=%d",
		companyID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
