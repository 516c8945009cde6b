package create_job

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment_type"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
)

const tracerName = "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_job"

// UseCase use case для создания заказа
type UseCase struct {
	calendarRepo        CalendarRepository
	appointmentTypeRepo AppointmentTypeRepository
	jobRepo             JobRepository
	formClient          FormServiceClient
	txManager           TransactionManager
	metrics             Metrics
	timeProvider        TimeProvider
	tracer              trace.Tracer
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendarRepo CalendarRepository,
	appointmentTypeRepo AppointmentTypeRepository,
	jobRepo JobRepository,
	formClient FormServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarRepo:        calendarRepo,
		appointmentTypeRepo: appointmentTypeRepo,
		jobRepo:             jobRepo,
		formClient:          formClient,
		txManager:           txManager,
		metrics:             metrics,
		timeProvider:        &RealTimeProvider{},
		tracer:              otel.Tracer(tracerName),
		logger:              logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания заказа.
// Проверка календаря и запись заказа выполняются в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (_ *Response, err error) {
	ctx, span := uc.tracer.Start(ctx, "CreateJob",
		trace.WithAttributes(
			attribute.String("company.id", req.CompanyID.String()),
			attribute.String("calendar.id", req.CalendarID.String()),
			attribute.String("appointment_type.id", req.AppointmentTypeID.String()),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	uc.logger.Info("CreateJob: company=%s, calendar=%s, type=%s, date=%s, time=%s",
		req.CompanyID, req.CalendarID, req.AppointmentTypeID, req.ScheduledDate.Format(domain.DateFormat), req.ScheduledTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateJob: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if isDateInPast(req.ScheduledDate, now) {
		uc.logger.Warn("CreateJob: date %s is in the past", req.ScheduledDate.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 3. Получаем тип услуги
	at, err := uc.appointmentTypeRepo.GetByID(ctx, req.CompanyID, req.AppointmentTypeID)
	if err != nil {
		if errors.Is(err, appointmentTypeRepo.ErrAppointmentTypeNotFound) {
			uc.logger.Warn("CreateJob: appointment type id=%s not found", req.AppointmentTypeID)
			return nil, ErrAppointmentTypeNotFound
		}
		uc.logger.Error("CreateJob: failed to get appointment type id=%s: %v", req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get appointment type: %w", ErrInternal, err)
	}

	// 4. Проверяем, что тип активен и предлагается на календаре
	if err := validateAppointmentType(at, req.CalendarID); err != nil {
		uc.logger.Warn("CreateJob: appointment type id=%s rejected: %v", at.ID, err)
		return nil, err
	}

	// 5. Получаем формы типа услуги и проверяем обязательные поля
	if len(at.FormIDs) > 0 {
		forms, err := uc.formClient.GetForms(ctx, req.CompanyID, at.FormIDs)
		if err != nil {
			uc.logger.Error("CreateJob: failed to get forms for appointment type id=%s: %v", at.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrFormServiceUnavailable, err)
		}
		if err := validateFormResponses(forms, req.FormResponses); err != nil {
			uc.logger.Warn("CreateJob: form validation failed: %v", err)
			return nil, err
		}
	}

	// 6. Собираем заказ, незаданные значения берем из типа услуги
	job, err := buildJob(req, at)
	if err != nil {
		uc.logger.Warn("CreateJob: job validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Job

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем календарь
		calendar, err := uc.calendarRepo.GetByID(txCtx, req.CompanyID, req.CalendarID)
		if err != nil {
			if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
				uc.logger.Warn("CreateJob: calendar id=%s not found", req.CalendarID)
				return ErrCalendarNotFound
			}
			uc.logger.Error("CreateJob: failed to get calendar id=%s: %v", req.CalendarID, err)
			return fmt.Errorf("%w: failed to get calendar: %w", ErrInternal, err)
		}

		// 7.2. Календарь должен быть активен
		if !calendar.IsActive {
			uc.logger.Warn("CreateJob: calendar id=%s is inactive", calendar.ID)
			return ErrCalendarInactive
		}

		// 7.3. Время должно попадать в окно доступности и быть кратно слоту
		if !calendar.IsAvailable(req.ScheduledDate, req.ScheduledTime) {
			uc.logger.Warn("CreateJob: slot %s %s is not available on calendar id=%s",
				req.ScheduledDate.Format(domain.DateFormat), req.ScheduledTime, calendar.ID)
			return ErrSlotUnavailable
		}

		// 7.4. Сохраняем заказ
		created, err := uc.jobRepo.Create(txCtx, job)
		if err != nil {
			uc.logger.Error("CreateJob: failed to create job: %v", err)
			return fmt.Errorf("%w: failed to create job: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ObserveJobCreated(string(result.Status))
	}
	span.SetAttributes(attribute.String("job.id", result.ID.String()))
	uc.logger.Info("CreateJob: successfully created job id=%s, status=%s, required workers=%d",
		result.ID, result.Status, result.RequiredWorkers)

	return &Response{Job: result}, nil
}

// buildJob собирает заказ из запроса и типа услуги
func buildJob(req *Request, at *domain.AppointmentType) (*domain.Job, error) {
	job := &domain.Job{
		CompanyID:         req.CompanyID,
		CalendarID:        req.CalendarID,
		AppointmentTypeID: at.ID,
		Customer:          req.Customer,
		Title:             buildTitle(req.Title, req.Customer, at, req.Draft),
		Description:       req.Description,
		Status:            domain.JobStatusOpen,
		ScheduledDate:     req.ScheduledDate,
		ScheduledTime:     req.ScheduledTime,
		EstimatedDuration: at.BaseDuration,
		BasePrice:         at.BasePrice,
		MinimumPrice:      at.MinimumPrice,
		LocationAddress:   req.LocationAddress,
		RequiredWorkers:   domain.DefaultRequiredWorkers,
		AssignmentPolicy:  at.AssignmentPolicy,
		FormResponses:     req.FormResponses,
	}

	if req.Draft {
		job.Status = domain.JobStatusDraft
	}
	if req.EstimatedDuration != nil {
		job.EstimatedDuration = *req.EstimatedDuration
	}
	if req.BasePrice != nil {
		job.BasePrice = *req.BasePrice
	}
	if req.MinimumPrice != nil {
		job.MinimumPrice = *req.MinimumPrice
	}
	if req.RequiredWorkers != nil {
		job.RequiredWorkers = *req.RequiredWorkers
	}
	if req.AssignmentPolicy != nil {
		job.AssignmentPolicy = domain.AssignmentPolicy(*req.AssignmentPolicy)
		if !job.AssignmentPolicy.IsValid() {
			return nil, fmt.Errorf("%w: %w: %q", ErrInvalidInput, domain.ErrInvalidAssignmentPolicy, *req.AssignmentPolicy)
		}
	}
	if job.FormResponses == nil {
		job.FormResponses = domain.FormResponses{}
	}

	if err := domain.ValidatePricing(job.EstimatedDuration, job.MinimumPrice, job.BasePrice); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return job, nil
}
