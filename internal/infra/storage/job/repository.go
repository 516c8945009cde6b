package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerr"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var jobColumns = []string{
	"id",
	"company_id",
	"calendar_id",
	"appointment_type_id",
	"customer_id",
	"customer_first_name",
	"customer_last_name",
	"customer_email",
	"customer_phone",
	"title",
	"description",
	"status",
	"scheduled_date",
	"scheduled_time",
	"estimated_duration",
	"base_price",
	"minimum_price",
	"location_address",
	"worker_count",
	"assignment_type",
	"form_responses",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий заказов и назначений исполнителей (PostgreSQL)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый заказ без исполнителей
func (r *Repository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("jobs").
		Columns(
			"id",
			"company_id",
			"calendar_id",
			"appointment_type_id",
			"customer_id",
			"customer_first_name",
			"customer_last_name",
			"customer_email",
			"customer_phone",
			"title",
			"description",
			"status",
			"scheduled_date",
			"scheduled_time",
			"estimated_duration",
			"base_price",
			"minimum_price",
			"location_address",
			"worker_count",
			"assignment_type",
			"form_responses",
		).
		Values(
			job.ID,
			job.CompanyID,
			job.CalendarID,
			job.AppointmentTypeID,
			job.Customer.ID,
			job.Customer.FirstName,
			job.Customer.LastName,
			job.Customer.Email,
			job.Customer.Phone,
			job.Title,
			job.Description,
			job.Status,
			job.ScheduledDate,
			job.ScheduledTime,
			job.EstimatedDuration,
			job.BasePrice,
			job.MinimumPrice,
			job.LocationAddress,
			job.RequiredWorkers,
			job.AssignmentPolicy,
			job.FormResponses,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if pgerr.IsForeignKeyViolation(err) {
		return nil, fmt.Errorf("%w: %w", ErrReferenceNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	job.CreatedAt = createdAt.Time
	job.UpdatedAt = updatedAt.Time
	if job.Workers == nil {
		job.Workers = []domain.WorkerAssignment{}
	}

	return job, nil
}

// GetByID получает заказ компании вместе с исполнителями
func (r *Repository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Job, error) {
	return r.getByID(ctx, "GetByID", companyID, id, false)
}

// GetByIDForUpdate получает заказ и блокирует его строку до конца транзакции
// (SELECT ... FOR UPDATE). Вне транзакции работает как GetByID.
//
// Используется в сценарии принятия заказа: все параллельные попытки принять
// один и тот же заказ выстраиваются в очередь на этой блокировке, поэтому
// последовательность "добавить исполнителя, пересчитать статус" не перемежается.
func (r *Repository) GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*domain.Job, error) {
	return r.getByID(ctx, "GetByIDForUpdate", companyID, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, op string, companyID, id uuid.UUID, lock bool) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"id": id.String(), "company_id": companyID.String()})

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	job, err := scanJob(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan job: %w", ErrScanRow, op, err)
	}

	workers, err := r.GetWorkers(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	job.Workers = workers[job.ID]
	if job.Workers == nil {
		job.Workers = []domain.WorkerAssignment{}
	}

	return job, nil
}

// List получает заказы компании (новые первыми) с исполнителями.
// Исполнители подгружаются одним запросом для всех заказов.
func (r *Repository) List(ctx context.Context, filter domain.JobsFilter) ([]*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"company_id": filter.CompanyID.String()}).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.CalendarID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"calendar_id": filter.CalendarID.String()})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"scheduled_date": filter.Date.Format(domain.DateFormat)})
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

	jobs := make([]*domain.Job, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan job: %w", ErrScanRow, err)
		}
		jobs = append(jobs, job)
		ids = append(ids, job.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return jobs, nil
	}

	workers, err := r.GetWorkers(ctx, ids...)
	if err != nil {
		return nil, err
	}
	for _, job := range jobs {
		job.Workers = workers[job.ID]
		if job.Workers == nil {
			job.Workers = []domain.WorkerAssignment{}
		}
	}

	return jobs, nil
}

// GetWorkers получает исполнителей для набора заказов в порядке принятия
func (r *Repository) GetWorkers(ctx context.Context, jobIDs ...uuid.UUID) (map[uuid.UUID][]domain.WorkerAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"job_id",
		"worker_id",
		"assigned_at",
		"is_lead",
		"hourly_rate",
	).
		From("job_workers").
		Where(squirrel.Eq{"job_id": idStrings(jobIDs)}).
		OrderBy("assigned_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkers - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.WorkerAssignment, len(jobIDs))
	for rows.Next() {
		var (
			w          domain.WorkerAssignment
			hourlyRate sql.NullFloat64
		)
		if err := rows.Scan(&w.JobID, &w.WorkerID, &w.AssignedAt, &w.IsLead, &hourlyRate); err != nil {
			return nil, fmt.Errorf("%w: GetWorkers - scan worker: %w", ErrScanRow, err)
		}
		if hourlyRate.Valid {
			w.HourlyRate = &hourlyRate.Float64
		}
		result[w.JobID] = append(result[w.JobID], w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWorkers - iterate rows: %w", ErrScanRow, err)
	}

	return result, nil
}

// AddWorker добавляет исполнителя к заказу.
// Повторное назначение отсекается первичным ключом (job_id, worker_id).
func (r *Repository) AddWorker(ctx context.Context, assignment domain.WorkerAssignment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("job_workers").
		Columns("job_id", "worker_id", "assigned_at", "is_lead", "hourly_rate").
		Values(assignment.JobID, assignment.WorkerID, assignment.AssignedAt, assignment.IsLead, assignment.HourlyRate).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddWorker - build insert query: %v", ErrBuildQuery, err)
	}

	_, err = executor.ExecContext(ctx, query, args...)
	switch {
	case err == nil:
		return nil
	case pgerr.IsUniqueViolation(err):
		return ErrDuplicateAssignment
	case pgerr.IsForeignKeyViolation(err):
		return ErrJobNotFound
	default:
		return fmt.Errorf("%w: AddWorker - execute insert: %w", ErrExecQuery, err)
	}
}

// UpdateStatus обновляет статус заказа
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	return r.exec(ctx, "UpdateStatus", psqlbuilder.Update("jobs").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()}))
}

// Cancel переводит заказ в cancelled, сохраняя исполнителей
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason *string, cancelledAt time.Time) error {
	return r.exec(ctx, "Cancel", psqlbuilder.Update("jobs").
		Set("status", domain.JobStatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()}))
}

// UpdateDetails сохраняет редактируемые поля заказа
func (r *Repository) UpdateDetails(ctx context.Context, job *domain.Job) error {
	return r.exec(ctx, "UpdateDetails", psqlbuilder.Update("jobs").
		Set("title", job.Title).
		Set("description", job.Description).
		Set("location_address", job.LocationAddress).
		Set("base_price", job.BasePrice).
		Set("minimum_price", job.MinimumPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": job.ID.String()}))
}

func (r *Repository) exec(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %w", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrJobNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job                                 domain.Job
		email, phone, description, location sql.NullString
		cancellationReason                  sql.NullString
		cancelledAt, createdAt, updatedAt   sql.NullTime
	)

	err := row.Scan(
		&job.ID,
		&job.CompanyID,
		&job.CalendarID,
		&job.AppointmentTypeID,
		&job.Customer.ID,
		&job.Customer.FirstName,
		&job.Customer.LastName,
		&email,
		&phone,
		&job.Title,
		&description,
		&job.Status,
		&job.ScheduledDate,
		&job.ScheduledTime,
		&job.EstimatedDuration,
		&job.BasePrice,
		&job.MinimumPrice,
		&location,
		&job.RequiredWorkers,
		&job.AssignmentPolicy,
		&job.FormResponses,
		&cancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.Customer.Email = nullStringPtr(email)
	job.Customer.Phone = nullStringPtr(phone)
	job.Description = nullStringPtr(description)
	job.LocationAddress = nullStringPtr(location)
	job.CancellationReason = nullStringPtr(cancellationReason)
	if cancelledAt.Valid {
		job.CancelledAt = &cancelledAt.Time
	}
	job.CreatedAt = createdAt.Time
	job.UpdatedAt = updatedAt.Time

	return &job, nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// idStrings конвертирует uuid в строки: squirrel.Eq разворачивает массивы
// (а uuid.UUID это [16]byte) в IN (...), поэтому передаём строковые значения
func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
