package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
)

// CalendarRepository репозиторий календарей в памяти
type CalendarRepository struct {
	store *Store
}

// NewCalendarRepository создает репозиторий календарей поверх хранилища
func NewCalendarRepository(store *Store) *CalendarRepository {
	return &CalendarRepository{store: store}
}

// Create сохраняет новый календарь
func (r *CalendarRepository) Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	err := r.store.write(ctx, func() error {
		if cal.ID == uuid.Nil {
			cal.ID = uuid.New()
		}
		now := r.store.now()
		cal.CreatedAt = now
		cal.UpdatedAt = now

		r.store.calendars[cal.ID] = cloneCalendar(cal)
		r.store.nextSeq(cal.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cal, nil
}

// GetByID получает календарь компании по ID
func (r *CalendarRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Calendar, error) {
	var out *domain.Calendar
	err := r.store.read(ctx, func() error {
		cal, err := r.get(companyID, id)
		if err != nil {
			return err
		}
		out = cloneCalendar(cal)
		return nil
	})
	return out, err
}

// List получает календари компании, отсортированные по названию
func (r *CalendarRepository) List(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]*domain.Calendar, error) {
	out := make([]*domain.Calendar, 0)
	err := r.store.read(ctx, func() error {
		for _, cal := range r.store.calendars {
			if cal.CompanyID != companyID || (activeOnly && !cal.IsActive) {
				continue
			}
			out = append(out, cloneCalendar(cal))
		}
		slices.SortFunc(out, func(a, b *domain.Calendar) int {
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

// Update сохраняет редактируемые поля календаря
func (r *CalendarRepository) Update(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	var out *domain.Calendar
	err := r.store.write(ctx, func() error {
		current, err := r.get(cal.CompanyID, cal.ID)
		if err != nil {
			return err
		}

		updated := cloneCalendar(current)
		updated.Name = cal.Name
		updated.Description = cloneString(cal.Description)
		updated.Color = cal.Color
		updated.TimeSlotDuration = cal.TimeSlotDuration
		updated.Availability = cal.Availability.Clone()
		updated.UpdatedAt = r.store.now()

		r.store.calendars[updated.ID] = updated
		out = cloneCalendar(updated)
		return nil
	})
	return out, err
}

// ToggleActive инвертирует флаг is_active
func (r *CalendarRepository) ToggleActive(ctx context.Context, companyID, id uuid.UUID) (*domain.Calendar, error) {
	var out *domain.Calendar
	err := r.store.write(ctx, func() error {
		current, err := r.get(companyID, id)
		if err != nil {
			return err
		}

		updated := cloneCalendar(current)
		updated.ToggleActive()
		updated.UpdatedAt = r.store.now()

		r.store.calendars[updated.ID] = updated
		out = cloneCalendar(updated)
		return nil
	})
	return out, err
}

func (r *CalendarRepository) get(companyID, id uuid.UUID) (*domain.Calendar, error) {
	cal, ok := r.store.calendars[id]
	if !ok || cal.CompanyID != companyID {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	return cal, nil
}
