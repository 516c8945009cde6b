package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
)

// UseCase use case для получения слотов календаря на дату
type UseCase struct {
	calendarRepo CalendarRepository
	jobRepo      JobRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendarRepo CalendarRepository,
	jobRepo JobRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarRepo: calendarRepo,
		jobRepo:      jobRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: company=%s, calendar=%s, date=%s",
		req.CompanyID, req.CalendarID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем календарь
	calendar, err := uc.calendarRepo.GetByID(ctx, req.CompanyID, req.CalendarID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			uc.logger.Warn("GetAvailableSlots: calendar id=%s not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get calendar id=%s: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %w", ErrInternal, err)
	}

	response := &Response{
		Date:            req.Date,
		CalendarID:      calendar.ID,
		CalendarActive:  calendar.IsActive,
		DurationMinutes: calendar.TimeSlotDuration,
		Slots:           []Slot{},
	}

	// 4. Выходной день: слотов нет
	if _, open := calendar.WindowFor(req.Date); !open {
		uc.logger.Info("GetAvailableSlots: calendar id=%s is closed on %s", calendar.ID, req.Date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Получаем заказы календаря на эту дату
	jobs, err := uc.jobRepo.List(ctx, domain.JobsFilter{
		CompanyID:  req.CompanyID,
		CalendarID: &calendar.ID,
		Date:       &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get jobs: %v", err)
		return nil, fmt.Errorf("%w: failed to get jobs: %w", ErrInternal, err)
	}

	// 6. Собираем слоты
	response.Slots = buildSlots(calendar, req.Date, now, jobs)

	uc.logger.Info("GetAvailableSlots: generated %d slots for calendar=%s, date=%s",
		len(response.Slots), calendar.ID, req.Date.Format(domain.DateFormat))

	return response, nil
}
