package calendars

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SchedulingService/internal/service/calendars/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service сервис для работы с календарями
type Service struct {
	calendarRepo CalendarRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса календарей
func NewService(calendarRepo CalendarRepository, logger Logger) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// Create создает календарь компании.
// Незаданные цвет и длительность слота заполняются значениями по умолчанию,
// новый календарь активен, если не указано обратное.
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req *models.CreateCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Create: creating calendar name=%q for company=%s", req.Name, companyID)

	availability, err := req.AvailabilityHours.ToDomain()
	if err != nil {
		s.logger.Warn("Create: invalid availability hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cal := &domain.Calendar{
		CompanyID:        companyID,
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Color:            domain.DefaultCalendarColor,
		IsActive:         true,
		TimeSlotDuration: domain.DefaultSlotDuration,
		Availability:     availability,
	}
	if req.Color != nil {
		cal.Color = *req.Color
	}
	if req.TimeSlotDuration != nil {
		cal.TimeSlotDuration = *req.TimeSlotDuration
	}
	if req.IsActive != nil {
		cal.IsActive = *req.IsActive
	}

	if err := validateCalendar(cal); err != nil {
		s.logger.Warn("Create: validation failed for company=%s: %v", companyID, err)
		return nil, err
	}

	created, err := s.calendarRepo.Create(ctx, cal)
	if err != nil {
		s.logger.Error("Create: repository error for company=%s: %v", companyID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created calendar id=%s", created.ID)
	return models.FromDomainCalendar(created), nil
}

// GetByID получает календарь компании
func (s *Service) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.CalendarResponse, error) {
	cal, err := s.get(ctx, "GetByID", companyID, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCalendar(cal), nil
}

// List получает календари компании, при activeOnly только активные
func (s *Service) List(ctx context.Context, companyID uuid.UUID, activeOnly bool) (*models.CalendarListResponse, error) {
	s.logger.Info("List: fetching calendars for company=%s, activeOnly=%t", companyID, activeOnly)

	calendars, err := s.calendarRepo.List(ctx, companyID, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error for company=%s: %v", companyID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d calendars for company=%s", len(calendars), companyID)
	return models.FromDomainCalendarList(calendars), nil
}

// Update частично обновляет календарь: изменяются только переданные поля,
// итоговое расписание валидируется целиком
func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req *models.UpdateCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Update: updating calendar id=%s for company=%s", id, companyID)

	cal, err := s.get(ctx, "Update", companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cal.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		cal.Description = req.Description
	}
	if req.Color != nil {
		cal.Color = *req.Color
	}
	if req.TimeSlotDuration != nil {
		cal.TimeSlotDuration = *req.TimeSlotDuration
	}
	if req.AvailabilityHours != nil {
		availability, err := req.AvailabilityHours.ToDomain()
		if err != nil {
			s.logger.Warn("Update: invalid availability hours for calendar id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		cal.Availability = availability
	}

	if err := validateCalendar(cal); err != nil {
		s.logger.Warn("Update: validation failed for calendar id=%s: %v", id, err)
		return nil, err
	}

	updated, err := s.calendarRepo.Update(ctx, cal)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("Update: repository error for calendar id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated calendar id=%s", id)
	return models.FromDomainCalendar(updated), nil
}

// ToggleActive переключает активность календаря.
// Неактивный календарь не принимает новые заказы, существующие заказы не затрагиваются.
func (s *Service) ToggleActive(ctx context.Context, companyID, id uuid.UUID) (*models.CalendarResponse, error) {
	s.logger.Info("ToggleActive: toggling calendar id=%s for company=%s", id, companyID)

	cal, err := s.calendarRepo.ToggleActive(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("ToggleActive: calendar id=%s not found", id)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("ToggleActive: repository error for calendar id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: ToggleActive - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ToggleActive: calendar id=%s is now active=%t", id, cal.IsActive)
	return models.FromDomainCalendar(cal), nil
}

// CheckAvailability проверяет, является ли время началом доступного слота календаря
func (s *Service) CheckAvailability(ctx context.Context, companyID, id uuid.UUID, date time.Time, t types.TimeString) (*models.AvailabilityResponse, error) {
	cal, err := s.get(ctx, "CheckAvailability", companyID, id)
	if err != nil {
		return nil, err
	}

	available := cal.IsAvailable(date, t)
	s.logger.Info("CheckAvailability: calendar id=%s, date=%s, time=%s, available=%t",
		id, date.Format(domain.DateFormat), t, available)

	return &models.AvailabilityResponse{
		CalendarID:     cal.ID,
		Date:           date.Format(domain.DateFormat),
		Time:           t.String(),
		Available:      available,
		CalendarActive: cal.IsActive,
	}, nil
}

func (s *Service) get(ctx context.Context, op string, companyID, id uuid.UUID) (*domain.Calendar, error) {
	cal, err := s.calendarRepo.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("%s: calendar id=%s not found for company=%s", op, id, companyID)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("%s: repository error for calendar id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return cal, nil
}

func validateCalendar(cal *domain.Calendar) error {
	if len(cal.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if cal.Description != nil && len(*cal.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if err := cal.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
