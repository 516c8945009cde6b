package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	jobRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/job"
)

// JobRepository репозиторий заказов в памяти
type JobRepository struct {
	store *Store
}

// NewJobRepository создает репозиторий заказов поверх хранилища
func NewJobRepository(store *Store) *JobRepository {
	return &JobRepository{store: store}
}

// Create сохраняет новый заказ без исполнителей.
// Проверяет существование календаря и типа услуги, как внешние ключи в PostgreSQL.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	err := r.store.write(ctx, func() error {
		cal, ok := r.store.calendars[job.CalendarID]
		if !ok || cal.CompanyID != job.CompanyID {
			return jobRepo.ErrReferenceNotFound
		}
		at, ok := r.store.appointmentTypes[job.AppointmentTypeID]
		if !ok || at.CompanyID != job.CompanyID {
			return jobRepo.ErrReferenceNotFound
		}

		if job.ID == uuid.Nil {
			job.ID = uuid.New()
		}
		now := r.store.now()
		job.CreatedAt = now
		job.UpdatedAt = now
		job.Workers = []domain.WorkerAssignment{}

		r.store.jobs[job.ID] = cloneJob(job)
		r.store.nextSeq(job.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// GetByID получает заказ компании вместе с исполнителями
func (r *JobRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Job, error) {
	var out *domain.Job
	err := r.store.read(ctx, func() error {
		job, ok := r.store.jobs[id]
		if !ok || job.CompanyID != companyID {
			return jobRepo.ErrJobNotFound
		}
		out = cloneJob(job)
		return nil
	})
	return out, err
}

// GetByIDForUpdate в памяти совпадает с GetByID: транзакция уже держит
// эксклюзивную блокировку хранилища
func (r *JobRepository) GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*domain.Job, error) {
	return r.GetByID(ctx, companyID, id)
}

// List получает заказы компании, новые первыми
func (r *JobRepository) List(ctx context.Context, filter domain.JobsFilter) ([]*domain.Job, error) {
	out := make([]*domain.Job, 0)
	err := r.store.read(ctx, func() error {
		for _, job := range r.store.jobs {
			if job.CompanyID != filter.CompanyID {
				continue
			}
			if filter.Status != nil && job.Status != *filter.Status {
				continue
			}
			if filter.CalendarID != nil && job.CalendarID != *filter.CalendarID {
				continue
			}
			if filter.Date != nil && !domain.SameDay(job.ScheduledDate, *filter.Date) {
				continue
			}
			out = append(out, cloneJob(job))
		}
		slices.SortFunc(out, func(a, b *domain.Job) int {
			return cmp.Or(
				b.CreatedAt.Compare(a.CreatedAt),
				cmp.Compare(r.store.order[b.ID], r.store.order[a.ID]),
			)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetWorkers получает исполнителей для набора заказов в порядке принятия
func (r *JobRepository) GetWorkers(ctx context.Context, jobIDs ...uuid.UUID) (map[uuid.UUID][]domain.WorkerAssignment, error) {
	result := make(map[uuid.UUID][]domain.WorkerAssignment, len(jobIDs))
	err := r.store.read(ctx, func() error {
		for _, id := range jobIDs {
			job, ok := r.store.jobs[id]
			if !ok || len(job.Workers) == 0 {
				continue
			}
			result[id] = cloneJob(job).Workers
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddWorker добавляет исполнителя к заказу
func (r *JobRepository) AddWorker(ctx context.Context, assignment domain.WorkerAssignment) error {
	return r.update(ctx, assignment.JobID, func(job *domain.Job) error {
		if job.HasWorker(assignment.WorkerID) {
			return jobRepo.ErrDuplicateAssignment
		}
		job.Workers = append(job.Workers, assignment)
		return nil
	})
}

// UpdateStatus обновляет статус заказа
func (r *JobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	return r.update(ctx, id, func(job *domain.Job) error {
		job.Status = status
		job.UpdatedAt = r.store.now()
		return nil
	})
}

// Cancel переводит заказ в cancelled, сохраняя исполнителей
func (r *JobRepository) Cancel(ctx context.Context, id uuid.UUID, reason *string, cancelledAt time.Time) error {
	return r.update(ctx, id, func(job *domain.Job) error {
		job.Status = domain.JobStatusCancelled
		job.CancellationReason = cloneString(reason)
		job.CancelledAt = &cancelledAt
		job.UpdatedAt = r.store.now()
		return nil
	})
}

// UpdateDetails сохраняет редактируемые поля заказа
func (r *JobRepository) UpdateDetails(ctx context.Context, details *domain.Job) error {
	return r.update(ctx, details.ID, func(job *domain.Job) error {
		job.Title = details.Title
		job.Description = cloneString(details.Description)
		job.LocationAddress = cloneString(details.LocationAddress)
		job.BasePrice = details.BasePrice
		job.MinimumPrice = details.MinimumPrice
		job.UpdatedAt = r.store.now()
		return nil
	})
}

func (r *JobRepository) update(ctx context.Context, id uuid.UUID, apply func(*domain.Job) error) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.jobs[id]
		if !ok {
			return jobRepo.ErrJobNotFound
		}

		updated := cloneJob(current)
		if err := apply(updated); err != nil {
			return err
		}

		r.store.jobs[id] = updated
		return nil
	})
}
