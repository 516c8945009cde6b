package appointment_types

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment_type"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types/models"
)

// Service сервис каталога типов услуг
type Service struct {
	appointmentTypeRepo AppointmentTypeRepository
	calendarRepo        CalendarRepository
	logger              Logger
}

// NewService создает новый экземпляр сервиса типов услуг
func NewService(
	appointmentTypeRepo AppointmentTypeRepository,
	calendarRepo CalendarRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentTypeRepo: appointmentTypeRepo,
		calendarRepo:        calendarRepo,
		logger:              logger,
	}
}

// Create создает активный тип услуги без назначенных календарей и форм
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, req *models.CreateAppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	s.logger.Info("Create: creating appointment type name=%q for company=%s", req.Name, companyID)

	at := &domain.AppointmentType{
		CompanyID:        companyID,
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		BaseDuration:     req.BaseDuration,
		MinimumPrice:     req.MinimumPrice,
		BasePrice:        req.BasePrice,
		AssignmentPolicy: domain.DefaultAssignmentPolicy,
		IsActive:         true,
		CalendarIDs:      []uuid.UUID{},
		FormIDs:          []uuid.UUID{},
	}
	if req.AssignmentPolicy != nil {
		at.AssignmentPolicy = domain.AssignmentPolicy(*req.AssignmentPolicy)
	}

	if err := validateAppointmentType(at); err != nil {
		s.logger.Warn("Create: validation failed for company=%s: %v", companyID, err)
		return nil, err
	}

	created, err := s.appointmentTypeRepo.Create(ctx, at)
	if err != nil {
		s.logger.Error("Create: repository error for company=%s: %v", companyID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created appointment type id=%s", created.ID)
	return models.FromDomainAppointmentType(created), nil
}

// GetByID получает тип услуги компании
func (s *Service) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.AppointmentTypeResponse, error) {
	at, err := s.get(ctx, "GetByID", companyID, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointmentType(at), nil
}

// List получает типы услуг компании.
// С ActiveOnly возвращает только типы, доступные для новых заказов.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentTypesRequest) (*models.AppointmentTypeListResponse, error) {
	s.logger.Info("List: fetching appointment types for company=%s, activeOnly=%t, calendar=%v",
		req.CompanyID, req.ActiveOnly, req.CalendarID)

	types, err := s.appointmentTypeRepo.List(ctx, domain.AppointmentTypesFilter{
		CompanyID:  req.CompanyID,
		ActiveOnly: req.ActiveOnly,
		CalendarID: req.CalendarID,
	})
	if err != nil {
		s.logger.Error("List: repository error for company=%s: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointment types for company=%s", len(types), req.CompanyID)
	return models.FromDomainAppointmentTypeList(types), nil
}

// Update частично обновляет тип услуги; цены и длительность проверяются
// после слияния с текущими значениями
func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, req *models.UpdateAppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	s.logger.Info("Update: updating appointment type id=%s for company=%s", id, companyID)

	at, err := s.get(ctx, "Update", companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		at.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		at.Description = req.Description
	}
	if req.BaseDuration != nil {
		at.BaseDuration = *req.BaseDuration
	}
	if req.MinimumPrice != nil {
		at.MinimumPrice = *req.MinimumPrice
	}
	if req.BasePrice != nil {
		at.BasePrice = *req.BasePrice
	}
	if req.AssignmentPolicy != nil {
		at.AssignmentPolicy = domain.AssignmentPolicy(*req.AssignmentPolicy)
	}

	if err := validateAppointmentType(at); err != nil {
		s.logger.Warn("Update: validation failed for appointment type id=%s: %v", id, err)
		return nil, err
	}

	updated, err := s.appointmentTypeRepo.Update(ctx, at)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated appointment type id=%s", id)
	return models.FromDomainAppointmentType(updated), nil
}

// ToggleActive переключает активность типа услуги.
// Неактивный тип не предлагается для новых заказов.
func (s *Service) ToggleActive(ctx context.Context, companyID, id uuid.UUID) (*models.AppointmentTypeResponse, error) {
	s.logger.Info("ToggleActive: toggling appointment type id=%s for company=%s", id, companyID)

	at, err := s.appointmentTypeRepo.ToggleActive(ctx, companyID, id)
	if err != nil {
		return nil, s.mapRepoError("ToggleActive", id, err)
	}

	s.logger.Info("ToggleActive: appointment type id=%s is now active=%t", id, at.IsActive)
	return models.FromDomainAppointmentType(at), nil
}

// AssignToCalendars заменяет набор календарей целиком. Пустой набор допустим.
// Каждый календарь должен принадлежать компании.
func (s *Service) AssignToCalendars(ctx context.Context, companyID, id uuid.UUID, req *models.AssignCalendarsRequest) (*models.AppointmentTypeResponse, error) {
	calendarIDs := domain.DedupIDs(req.CalendarIDs)
	s.logger.Info("AssignToCalendars: appointment type id=%s, %d calendars", id, len(calendarIDs))

	for _, calendarID := range calendarIDs {
		if _, err := s.calendarRepo.GetByID(ctx, companyID, calendarID); err != nil {
			if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
				s.logger.Warn("AssignToCalendars: calendar id=%s not found for company=%s", calendarID, companyID)
				return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, calendarID)
			}
			s.logger.Error("AssignToCalendars: repository error for calendar id=%s: %v", calendarID, err)
			return nil, fmt.Errorf("%w: AssignToCalendars - repository error: %w", ErrInternal, err)
		}
	}

	at, err := s.appointmentTypeRepo.SetCalendars(ctx, companyID, id, calendarIDs)
	if err != nil {
		return nil, s.mapRepoError("AssignToCalendars", id, err)
	}

	s.logger.Info("AssignToCalendars: successfully assigned calendars to appointment type id=%s", id)
	return models.FromDomainAppointmentType(at), nil
}

// AssignToForms заменяет набор форм целиком. Пустой набор допустим.
func (s *Service) AssignToForms(ctx context.Context, companyID, id uuid.UUID, req *models.AssignFormsRequest) (*models.AppointmentTypeResponse, error) {
	formIDs := domain.DedupIDs(req.FormIDs)
	s.logger.Info("AssignToForms: appointment type id=%s, %d forms", id, len(formIDs))

	for _, formID := range formIDs {
		if formID == uuid.Nil {
			return nil, fmt.Errorf("%w: form id must not be empty", ErrInvalidInput)
		}
	}

	at, err := s.appointmentTypeRepo.SetForms(ctx, companyID, id, formIDs)
	if err != nil {
		return nil, s.mapRepoError("AssignToForms", id, err)
	}

	s.logger.Info("AssignToForms: successfully assigned forms to appointment type id=%s", id)
	return models.FromDomainAppointmentType(at), nil
}

func (s *Service) get(ctx context.Context, op string, companyID, id uuid.UUID) (*domain.AppointmentType, error) {
	at, err := s.appointmentTypeRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return at, nil
}

func (s *Service) mapRepoError(op string, id uuid.UUID, err error) error {
	if errors.Is(err, appointmentTypeRepo.ErrAppointmentTypeNotFound) {
		s.logger.Warn("%s: appointment type id=%s not found", op, id)
		return ErrAppointmentTypeNotFound
	}
	s.logger.Error("%s: repository error for appointment type id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}

func validateAppointmentType(at *domain.AppointmentType) error {
	if len(at.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if at.Description != nil && len(*at.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if err := at.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
