package accept_job

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/create_job"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	now        = time.Date(2025, 10, 10, 15, 0, 0, 0, time.UTC)
	nextMonday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type noForms struct{}

func (noForms) GetForms(context.Context, uuid.UUID, []uuid.UUID) ([]*domain.Form, error) {
	return nil, nil
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *countingMetrics) ObserveJobAccept(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[string]int{}
	}
	m.outcomes[outcome]++
}

type testEnv struct {
	uc        *UseCase
	jobs      *memory.JobRepository
	metrics   *countingMetrics
	companyID uuid.UUID
}

// newEnv создает календарь со слотом 60 минут (пн 09:00-17:00), тип услуги
// 60 минут / 75 / 50 и заказ на следующий понедельник 10:00
func newEnv(t *testing.T, requiredWorkers int) (*testEnv, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	calendars := memory.NewCalendarRepository(store)
	apptTypes := memory.NewAppointmentTypeRepository(store)
	jobs := memory.NewJobRepository(store)
	companyID := uuid.New()

	cal, err := calendars.Create(ctx, &domain.Calendar{
		CompanyID:        companyID,
		Name:             "Crew A",
		Color:            domain.DefaultCalendarColor,
		IsActive:         true,
		TimeSlotDuration: 60,
		Availability: domain.WeeklyAvailability{
			time.Monday: {Start: types.TimeString("09:00"), End: types.TimeString("17:00")},
		},
	})
	require.NoError(t, err)

	at, err := apptTypes.Create(ctx, &domain.AppointmentType{
		CompanyID:        companyID,
		Name:             "Deep clean",
		BaseDuration:     60,
		MinimumPrice:     50,
		BasePrice:        75,
		AssignmentPolicy: domain.AssignmentSelfAssign,
		IsActive:         true,
	})
	require.NoError(t, err)

	created, err := create_job.NewUseCase(calendars, apptTypes, jobs, noForms{}, store, nil, logger.Nop{}).
		WithTimeProvider(fixedTime{t: now}).
		Execute(ctx, &create_job.Request{
			CompanyID:         companyID,
			CalendarID:        cal.ID,
			AppointmentTypeID: at.ID,
			Customer:          domain.Customer{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"},
			ScheduledDate:     nextMonday,
			ScheduledTime:     types.TimeString("10:00"),
			RequiredWorkers:   ptr.Ptr(requiredWorkers),
		})
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusOpen, created.Job.Status)

	metrics := &countingMetrics{}
	return &testEnv{
		uc:        NewUseCase(jobs, store, metrics, logger.Nop{}).WithTimeProvider(fixedTime{t: now}),
		jobs:      jobs,
		metrics:   metrics,
		companyID: companyID,
	}, created.Job.ID
}

func (e *testEnv) accept(jobID, workerID uuid.UUID) (*Response, error) {
	return e.uc.Execute(context.Background(), &Request{CompanyID: e.companyID, JobID: jobID, WorkerID: workerID})
}

func TestUseCase_Execute_StaffingScenario(t *testing.T) {
	env, jobID := newEnv(t, 2)
	workerA, workerB, workerC := uuid.New(), uuid.New(), uuid.New()

	// Исполнитель A: open -> scheduling, 1/2
	res, err := env.accept(jobID, workerA)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusScheduling, res.Result.Status)
	assert.Equal(t, 1, res.Result.AcceptedWorkers)
	assert.Equal(t, 2, res.Result.RequiredWorkers)
	assert.Equal(t, now, res.Result.AssignedAt)
	assert.Equal(t, "Successfully accepted job. 1 more worker(s) needed.", res.Message)

	// Повторное принятие тем же исполнителем
	_, err = env.accept(jobID, workerA)
	assert.ErrorIs(t, err, ErrDuplicateAssignment)

	// Исполнитель B: scheduling -> scheduled, 2/2
	res, err = env.accept(jobID, workerB)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusScheduled, res.Result.Status)
	assert.Equal(t, 2, res.Result.AcceptedWorkers)
	assert.Equal(t, "Job fully staffed and scheduled!", res.Message)

	// Исполнитель C: заказ уже укомплектован
	_, err = env.accept(jobID, workerC)
	assert.ErrorIs(t, err, ErrInvalidState)

	job, err := env.jobs.GetByID(context.Background(), env.companyID, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusScheduled, job.Status)
	require.Len(t, job.Workers, 2)
	assert.Equal(t, workerA, job.Workers[0].WorkerID)
	assert.Equal(t, workerB, job.Workers[1].WorkerID)

	assert.Equal(t, map[string]int{
		outcomeAccepted:     1,
		outcomeDuplicate:    1,
		outcomeScheduled:    1,
		outcomeInvalidState: 1,
	}, env.metrics.outcomes)
}

func TestUseCase_Execute_SingleWorkerSchedulesImmediately(t *testing.T) {
	env, jobID := newEnv(t, 1)

	res, err := env.accept(jobID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusScheduled, res.Result.Status)
}

func TestUseCase_Execute_ConcurrentAccept(t *testing.T) {
	env, jobID := newEnv(t, 2)
	workers := []uuid.UUID{uuid.New(), uuid.New()}

	var wg sync.WaitGroup
	errs := make([]error, len(workers))
	start := make(chan struct{})
	for i, workerID := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, errs[i] = env.accept(jobID, workerID)
		}()
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	job, err := env.jobs.GetByID(context.Background(), env.companyID, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusScheduled, job.Status)
	assert.Len(t, job.Workers, 2)
	assert.True(t, job.HasWorker(workers[0]))
	assert.True(t, job.HasWorker(workers[1]))
}

func TestUseCase_Execute_ConcurrentOverflow(t *testing.T) {
	env, jobID := newEnv(t, 3)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.accept(jobID, uuid.New())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var accepted, rejected int
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidState)
		rejected++
	}
	assert.Equal(t, 3, accepted)
	assert.Equal(t, attempts-3, rejected)

	job, err := env.jobs.GetByID(context.Background(), env.companyID, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusScheduled, job.Status)
	assert.Len(t, job.Workers, 3)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	env, jobID := newEnv(t, 2)

	_, err := env.accept(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = env.uc.Execute(context.Background(), &Request{CompanyID: uuid.New(), JobID: jobID, WorkerID: uuid.New()})
	assert.ErrorIs(t, err, ErrJobNotFound, "job of another company")

	_, err = env.accept(jobID, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_CancelledJobKeepsWorkers(t *testing.T) {
	env, jobID := newEnv(t, 2)
	ctx := context.Background()

	worker := uuid.New()
	_, err := env.accept(jobID, worker)
	require.NoError(t, err)

	require.NoError(t, env.jobs.Cancel(ctx, jobID, nil, now))

	_, err = env.accept(jobID, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidState)

	job, err := env.jobs.GetByID(ctx, env.companyID, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCancelled, job.Status)
	require.Len(t, job.Workers, 1)
	assert.Equal(t, worker, job.Workers[0].WorkerID)
}

func TestUseCase_Execute_DraftJob(t *testing.T) {
	env, jobID := newEnv(t, 2)
	ctx := context.Background()
	require.NoError(t, env.jobs.UpdateStatus(ctx, jobID, domain.JobStatusDraft))

	_, err := env.accept(jobID, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidState)
}
