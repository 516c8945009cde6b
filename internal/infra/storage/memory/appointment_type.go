package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment_type"
)

// AppointmentTypeRepository репозиторий типов услуг в памяти
type AppointmentTypeRepository struct {
	store *Store
}

// NewAppointmentTypeRepository создает репозиторий типов услуг поверх хранилища
func NewAppointmentTypeRepository(store *Store) *AppointmentTypeRepository {
	return &AppointmentTypeRepository{store: store}
}

// Create сохраняет новый тип услуги
func (r *AppointmentTypeRepository) Create(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error) {
	err := r.store.write(ctx, func() error {
		if at.ID == uuid.Nil {
			at.ID = uuid.New()
		}
		now := r.store.now()
		at.CreatedAt = now
		at.UpdatedAt = now

		r.store.appointmentTypes[at.ID] = cloneAppointmentType(at)
		r.store.nextSeq(at.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return at, nil
}

// GetByID получает тип услуги компании по ID
func (r *AppointmentTypeRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.AppointmentType, error) {
	var out *domain.AppointmentType
	err := r.store.read(ctx, func() error {
		at, err := r.get(companyID, id)
		if err != nil {
			return err
		}
		out = cloneAppointmentType(at)
		return nil
	})
	return out, err
}

// List получает типы услуг компании с фильтрацией по активности и календарю
func (r *AppointmentTypeRepository) List(ctx context.Context, filter domain.AppointmentTypesFilter) ([]*domain.AppointmentType, error) {
	out := make([]*domain.AppointmentType, 0)
	err := r.store.read(ctx, func() error {
		for _, at := range r.store.appointmentTypes {
			if at.CompanyID != filter.CompanyID || (filter.ActiveOnly && !at.IsActive) {
				continue
			}
			if filter.CalendarID != nil && !at.IsOfferedOn(*filter.CalendarID) {
				continue
			}
			out = append(out, cloneAppointmentType(at))
		}
		slices.SortFunc(out, func(a, b *domain.AppointmentType) int {
			return cmp.Or(
				cmp.Compare(a.Name, b.Name),
				cmp.Compare(r.store.order[a.ID], r.store.order[b.ID]),
			)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update сохраняет редактируемые поля типа услуги
func (r *AppointmentTypeRepository) Update(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error) {
	return r.update(ctx, at.CompanyID, at.ID, func(current *domain.AppointmentType) {
		current.Name = at.Name
		current.Description = cloneString(at.Description)
		current.BaseDuration = at.BaseDuration
		current.MinimumPrice = at.MinimumPrice
		current.BasePrice = at.BasePrice
		current.AssignmentPolicy = at.AssignmentPolicy
	})
}

// ToggleActive инвертирует флаг is_active
func (r *AppointmentTypeRepository) ToggleActive(ctx context.Context, companyID, id uuid.UUID) (*domain.AppointmentType, error) {
	return r.update(ctx, companyID, id, func(current *domain.AppointmentType) {
		current.ToggleActive()
	})
}

// SetCalendars полностью заменяет набор календарей
func (r *AppointmentTypeRepository) SetCalendars(ctx context.Context, companyID, id uuid.UUID, calendarIDs []uuid.UUID) (*domain.AppointmentType, error) {
	return r.update(ctx, companyID, id, func(current *domain.AppointmentType) {
		current.CalendarIDs = cloneIDs(calendarIDs)
	})
}

// SetForms полностью заменяет набор форм
func (r *AppointmentTypeRepository) SetForms(ctx context.Context, companyID, id uuid.UUID, formIDs []uuid.UUID) (*domain.AppointmentType, error) {
	return r.update(ctx, companyID, id, func(current *domain.AppointmentType) {
		current.FormIDs = cloneIDs(formIDs)
	})
}

func (r *AppointmentTypeRepository) update(ctx context.Context, companyID, id uuid.UUID, apply func(*domain.AppointmentType)) (*domain.AppointmentType, error) {
	var out *domain.AppointmentType
	err := r.store.write(ctx, func() error {
		current, err := r.get(companyID, id)
		if err != nil {
			return err
		}

		updated := cloneAppointmentType(current)
		apply(updated)
		updated.UpdatedAt = r.store.now()

		r.store.appointmentTypes[updated.ID] = updated
		out = cloneAppointmentType(updated)
		return nil
	})
	return out, err
}

func (r *AppointmentTypeRepository) get(companyID, id uuid.UUID) (*domain.AppointmentType, error) {
	at, ok := r.store.appointmentTypes[id]
	if !ok || at.CompanyID != companyID {
		return nil, appointmentTypeRepo.ErrAppointmentTypeNotFound
	}
	return at, nil
}
