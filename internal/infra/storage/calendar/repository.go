package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var calendarColumns = []string{
	"id",
	"company_id",
	"name",
	"description",
	"color",
	"is_active",
	"time_slot_duration",
	"availability_hours",
	"created_at",
	"updated_at",
}

// Repository репозиторий календарей (PostgreSQL)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый календарь. ID генерируется на стороне сервиса.
func (r *Repository) Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if cal.ID == uuid.Nil {
		cal.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("calendars").
		Columns(
			"id",
			"company_id",
			"name",
			"description",
			"color",
			"is_active",
			"time_slot_duration",
			"availability_hours",
		).
		Values(
			cal.ID,
			cal.CompanyID,
			cal.Name,
			cal.Description,
			cal.Color,
			cal.IsActive,
			cal.TimeSlotDuration,
			cal.Availability,
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

	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return cal, nil
}

// GetByID получает календарь компании по ID
func (r *Repository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		Where(squirrel.Eq{"id": id.String(), "company_id": companyID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	cal, err := scanCalendar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan calendar: %w", ErrScanRow, err)
	}

	return cal, nil
}

// List получает календари компании, отсортированные по названию
func (r *Repository) List(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		Where(squirrel.Eq{"company_id": companyID.String()}).
		OrderBy("name ASC", "created_at ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
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

	calendars := make([]*domain.Calendar, 0)
	for rows.Next() {
		cal, err := scanCalendar(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan calendar: %w", ErrScanRow, err)
		}
		calendars = append(calendars, cal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}

	return calendars, nil
}

// Update сохраняет редактируемые поля календаря
func (r *Repository) Update(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendars").
		Set("name", cal.Name).
		Set("description", cal.Description).
		Set("color", cal.Color).
		Set("time_slot_duration", cal.TimeSlotDuration).
		Set("availability_hours", cal.Availability).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cal.ID.String(), "company_id": cal.CompanyID.String()}).
		Suffix("RETURNING " + strings.Join(calendarColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanCalendar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// ToggleActive атомарно инвертирует флаг is_active и возвращает обновлённый календарь
func (r *Repository) ToggleActive(ctx context.Context, companyID, id uuid.UUID) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendars").
		Set("is_active", squirrel.Expr("NOT is_active")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String(), "company_id": companyID.String()}).
		Suffix("RETURNING " + strings.Join(calendarColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleActive - build update query: %v", ErrBuildQuery, err)
	}

	cal, err := scanCalendar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleActive - execute update: %w", ErrExecQuery, err)
	}

	return cal, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCalendar(row rowScanner) (*domain.Calendar, error) {
	var (
		cal                  domain.Calendar
		description          sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&cal.ID,
		&cal.CompanyID,
		&cal.Name,
		&description,
		&cal.Color,
		&cal.IsActive,
		&cal.TimeSlotDuration,
		&cal.Availability,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		cal.Description = &description.String
	}
	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return &cal, nil
}
