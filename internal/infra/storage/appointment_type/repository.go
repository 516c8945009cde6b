package appointment_type

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var appointmentTypeColumns = []string{
	"id",
	"company_id",
	"name",
	"description",
	"base_duration",
	"minimum_price",
	"base_price",
	"assignment_type",
	"is_active",
	"calendar_ids",
	"form_ids",
	"created_at",
	"updated_at",
}

var returningAll = "RETURNING " + strings.Join(appointmentTypeColumns, ", ")

// Repository репозиторий типов услуг (PostgreSQL)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тип услуги
func (r *Repository) Create(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if at.ID == uuid.Nil {
		at.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointment_types").
		Columns(
			"id",
			"company_id",
			"name",
			"description",
			"base_duration",
			"minimum_price",
			"base_price",
			"assignment_type",
			"is_active",
			"calendar_ids",
			"form_ids",
		).
		Values(
			at.ID,
			at.CompanyID,
			at.Name,
			at.Description,
			at.BaseDuration,
			at.MinimumPrice,
			at.BasePrice,
			at.AssignmentPolicy,
			at.IsActive,
			idsToArray(at.CalendarIDs),
			idsToArray(at.FormIDs),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	at.CreatedAt = createdAt.Time
	at.UpdatedAt = updatedAt.Time

	return at, nil
}

// GetByID получает тип услуги компании по ID
func (r *Repository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentTypeColumns...).
		From("appointment_types").
		Where(squirrel.Eq{"id": id.String(), "company_id": companyID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	at, err := scanAppointmentType(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment type: %w", ErrScanRow, err)
	}

	return at, nil
}

// List получает типы услуг компании с фильтрацией по активности и календарю
func (r *Repository) List(ctx context.Context, filter domain.AppointmentTypesFilter) ([]*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentTypeColumns...).
		From("appointment_types").
		Where(squirrel.Eq{"company_id": filter.CompanyID.String()}).
		OrderBy("name ASC", "created_at ASC")

	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	// Тип доступен в календаре, если его id есть в calendar_ids
	// или тип не привязан ни к одному календарю
	if filter.CalendarID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(
			"(cardinality(calendar_ids) = 0 OR ? = ANY(calendar_ids))", filter.CalendarID.String()))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.AppointmentType, 0)
	for rows.Next() {
		at, err := scanAppointmentType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan appointment type: %w", ErrScanRow, err)
		}
		types = append(types, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}

	return types, nil
}

// Update сохраняет редактируемые поля типа услуги
func (r *Repository) Update(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error) {
	return r.update(ctx, "Update", at.CompanyID, at.ID, map[string]interface{}{
		"name":            at.Name,
		"description":     at.Description,
		"base_duration":   at.BaseDuration,
		"minimum_price":   at.MinimumPrice,
		"base_price":      at.BasePrice,
		"assignment_type": at.AssignmentPolicy,
	})
}

// ToggleActive атомарно инвертирует флаг is_active
func (r *Repository) ToggleActive(ctx context.Context, companyID, id uuid.UUID) (*domain.AppointmentType, error) {
	return r.update(ctx, "ToggleActive", companyID, id, map[string]interface{}{
		"is_active": squirrel.Expr("NOT is_active"),
	})
}

// SetCalendars полностью заменяет набор календарей
func (r *Repository) SetCalendars(ctx context.Context, companyID, id uuid.UUID, calendarIDs []uuid.UUID) (*domain.AppointmentType, error) {
	return r.update(ctx, "SetCalendars", companyID, id, map[string]interface{}{
		"calendar_ids": idsToArray(calendarIDs),
	})
}

// SetForms полностью заменяет набор форм
func (r *Repository) SetForms(ctx context.Context, companyID, id uuid.UUID, formIDs []uuid.UUID) (*domain.AppointmentType, error) {
	return r.update(ctx, "SetForms", companyID, id, map[string]interface{}{
		"form_ids": idsToArray(formIDs),
	})
}

func (r *Repository) update(ctx context.Context, op string, companyID, id uuid.UUID, fields map[string]interface{}) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointment_types").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String(), "company_id": companyID.String()}).
		Suffix(returningAll).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	at, err := scanAppointmentType(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	return at, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointmentType(row rowScanner) (*domain.AppointmentType, error) {
	var (
		at                   domain.AppointmentType
		description          sql.NullString
		calendarIDs, formIDs pq.StringArray
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&at.ID,
		&at.CompanyID,
		&at.Name,
		&description,
		&at.BaseDuration,
		&at.MinimumPrice,
		&at.BasePrice,
		&at.AssignmentPolicy,
		&at.IsActive,
		&calendarIDs,
		&formIDs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if at.CalendarIDs, err = arrayToIDs(calendarIDs); err != nil {
		return nil, err
	}
	if at.FormIDs, err = arrayToIDs(formIDs); err != nil {
		return nil, err
	}
	if description.Valid {
		at.Description = &description.String
	}
	at.CreatedAt = createdAt.Time
	at.UpdatedAt = updatedAt.Time

	return &at, nil
}

func idsToArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func arrayToIDs(values pq.StringArray) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q in array: %w", v, err)
		}
		out = append(out, id)
	}
	return out, nil
}
