package create_job

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	createJob "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_job"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingCompanyID       = "отсутствует ID компании"
	msgInvalidDate            = "некорректный формат даты заказа, ожидается YYYY-MM-DD"
	msgInvalidTime            = "некорректный формат времени заказа, ожидается HH:MM"
	msgInvalidInput           = "некорректные данные заказа"
	msgCalendarNotFound       = "календарь не найден"
	msgCalendarInactive       = "календарь отключен"
	msgTypeNotFound           = "тип услуги не найден"
	msgTypeInactive           = "тип услуги отключен"
	msgTypeNotOffered         = "тип услуги не предоставляется в выбранном календаре"
	msgDateInPast             = "дата заказа уже прошла"
	msgSlotUnavailable        = "выбранный временной слот недоступен"
	msgRequiredFieldMissing   = "не заполнены обязательные поля формы"
	msgFormServiceUnavailable = "сервис форм недоступен"
)

type Handler struct {
	useCase CreateJobUseCase
	logger  Logger
}

func NewHandler(useCase CreateJobUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/jobs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("POST /jobs - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	var req CreateJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /jobs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(companyID)
	if err != nil {
		h.logger.Warn("POST /jobs - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createJob.ErrInvalidInput):
			h.logger.Warn("POST /jobs - Invalid input: company_id=%s, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, createJob.ErrRequiredFormFieldMissing):
			h.logger.Warn("POST /jobs - Required form fields missing: company_id=%s, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgRequiredFieldMissing+": "+err.Error())

		case errors.Is(err, createJob.ErrDateInPast):
			h.logger.Warn("POST /jobs - Date in past: company_id=%s, date=%s", companyID, req.ScheduledDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createJob.ErrCalendarNotFound):
			h.logger.Warn("POST /jobs - Calendar not found: calendar_id=%s", req.CalendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, createJob.ErrAppointmentTypeNotFound):
			h.logger.Warn("POST /jobs - Appointment type not found: type_id=%s", req.AppointmentTypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, createJob.ErrCalendarInactive):
			h.logger.Warn("POST /jobs - Calendar inactive: calendar_id=%s", req.CalendarID)
			handlers.RespondBadRequest(w, msgCalendarInactive)

		case errors.Is(err, createJob.ErrAppointmentTypeInactive):
			h.logger.Warn("POST /jobs - Appointment type inactive: type_id=%s", req.AppointmentTypeID)
			handlers.RespondBadRequest(w, msgTypeInactive)

		case errors.Is(err, createJob.ErrAppointmentTypeNotOffered):
			h.logger.Warn("POST /jobs - Appointment type not offered: type_id=%s, calendar_id=%s",
				req.AppointmentTypeID, req.CalendarID)
			handlers.RespondBadRequest(w, msgTypeNotOffered)

		case errors.Is(err, createJob.ErrSlotUnavailable):
			h.logger.Warn("POST /jobs - Slot unavailable: calendar_id=%s, date=%s, time=%s",
				req.CalendarID, req.ScheduledDate, req.ScheduledTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgSlotUnavailable)

		case errors.Is(err, createJob.ErrFormServiceUnavailable):
			h.logger.Error("POST /jobs - Form service unavailable: company_id=%s, error=%v", companyID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgFormServiceUnavailable)

		default:
			h.logger.Error("POST /jobs - Failed to create job: company_id=%s, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /jobs - Job created successfully: job_id=%s, company_id=%s, status=%s",
		result.Job.ID, companyID, result.Job.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
