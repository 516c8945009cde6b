package list_calendars

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const (
	msgMissingCompanyID = "отсутствует ID компании"
	msgInvalidParams    = "некорректные параметры запроса"
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

// Handle GET /api/v1/calendars
// Query params: active (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendars - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	activeOnly, err := handlers.QueryBool(r, "active")
	if err != nil {
		h.logger.Warn("GET /calendars - Invalid active param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), companyID, activeOnly)
	if err != nil {
		h.logger.Error("GET /calendars - Failed to list calendars: company_id=%s, error=%v", companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendars - Calendars retrieved successfully: company_id=%s, count=%d", companyID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
