package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/calendar"
	jobRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/job"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fixture struct {
	store     *Store
	calendars *CalendarRepository
	types     *AppointmentTypeRepository
	jobs      *JobRepository
	companyID uuid.UUID
	calendar  *domain.Calendar
	apptType  *domain.AppointmentType
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := NewStore()
	f := &fixture{
		store:     store,
		calendars: NewCalendarRepository(store),
		types:     NewAppointmentTypeRepository(store),
		jobs:      NewJobRepository(store),
		companyID: uuid.New(),
	}

	ctx := context.Background()
	var err error
	f.calendar, err = f.calendars.Create(ctx, &domain.Calendar{
		CompanyID:        f.companyID,
		Name:             "Crew A",
		Color:            domain.DefaultCalendarColor,
		IsActive:         true,
		TimeSlotDuration: 60,
		Availability: domain.WeeklyAvailability{
			time.Monday: {Start: types.TimeString("09:00"), End: types.TimeString("17:00")},
		},
	})
	require.NoError(t, err)

	f.apptType, err = f.types.Create(ctx, &domain.AppointmentType{
		CompanyID:        f.companyID,
		Name:             "Deep clean",
		BaseDuration:     60,
		MinimumPrice:     50,
		BasePrice:        75,
		AssignmentPolicy: domain.AssignmentSelfAssign,
		IsActive:         true,
	})
	require.NoError(t, err)

	return f
}

func (f *fixture) newJob(t *testing.T, required int) *domain.Job {
	t.Helper()

	job, err := f.jobs.Create(context.Background(), &domain.Job{
		CompanyID:         f.companyID,
		CalendarID:        f.calendar.ID,
		AppointmentTypeID: f.apptType.ID,
		Customer:          domain.Customer{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"},
		Title:             "Deep clean",
		Status:            domain.JobStatusOpen,
		ScheduledDate:     time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		ScheduledTime:     types.TimeString("10:00"),
		EstimatedDuration: 60,
		BasePrice:         75,
		MinimumPrice:      50,
		RequiredWorkers:   required,
		AssignmentPolicy:  domain.AssignmentSelfAssign,
	})
	require.NoError(t, err)
	return job
}

func TestCalendarRepository_TenantIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.calendars.GetByID(ctx, uuid.New(), f.calendar.ID)
	assert.ErrorIs(t, err, calendarRepo.ErrCalendarNotFound)

	list, err := f.calendars.List(ctx, uuid.New(), false)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCalendarRepository_ReturnsCopies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.calendars.GetByID(ctx, f.companyID, f.calendar.ID)
	require.NoError(t, err)
	got.Name = "mutated"
	delete(got.Availability, time.Monday)

	again, err := f.calendars.GetByID(ctx, f.companyID, f.calendar.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crew A", again.Name)
	assert.Contains(t, again.Availability, time.Monday)
}

func TestCalendarRepository_ToggleAndActiveFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	toggled, err := f.calendars.ToggleActive(ctx, f.companyID, f.calendar.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err := f.calendars.List(ctx, f.companyID, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := f.calendars.List(ctx, f.companyID, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAppointmentTypeRepository_SetCalendarsReplacesSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := uuid.New()

	_, err := f.types.SetCalendars(ctx, f.companyID, f.apptType.ID, []uuid.UUID{f.calendar.ID, other})
	require.NoError(t, err)

	updated, err := f.types.SetCalendars(ctx, f.companyID, f.apptType.ID, []uuid.UUID{other})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{other}, updated.CalendarIDs)

	calID := f.calendar.ID
	byCalendar, err := f.types.List(ctx, domain.AppointmentTypesFilter{CompanyID: f.companyID, CalendarID: &calID})
	require.NoError(t, err)
	assert.Empty(t, byCalendar)
}

func TestJobRepository_CreateChecksReferences(t *testing.T) {
	f := newFixture(t)

	_, err := f.jobs.Create(context.Background(), &domain.Job{
		CompanyID:         f.companyID,
		CalendarID:        uuid.New(),
		AppointmentTypeID: f.apptType.ID,
	})
	assert.ErrorIs(t, err, jobRepo.ErrReferenceNotFound)
}

func TestJobRepository_AddWorker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.newJob(t, 2)
	worker := uuid.New()

	require.NoError(t, f.jobs.AddWorker(ctx, domain.WorkerAssignment{JobID: job.ID, WorkerID: worker, AssignedAt: time.Now()}))
	err := f.jobs.AddWorker(ctx, domain.WorkerAssignment{JobID: job.ID, WorkerID: worker, AssignedAt: time.Now()})
	assert.ErrorIs(t, err, jobRepo.ErrDuplicateAssignment)

	err = f.jobs.AddWorker(ctx, domain.WorkerAssignment{JobID: uuid.New(), WorkerID: worker})
	assert.ErrorIs(t, err, jobRepo.ErrJobNotFound)

	got, err := f.jobs.GetByID(ctx, f.companyID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AcceptedWorkers())
}

func TestJobRepository_ListFiltersAndOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.newJob(t, 1)
	second := f.newJob(t, 1)
	require.NoError(t, f.jobs.UpdateStatus(ctx, first.ID, domain.JobStatusScheduled))

	all, err := f.jobs.List(ctx, domain.JobsFilter{CompanyID: f.companyID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	open := domain.JobStatusOpen
	onlyOpen, err := f.jobs.List(ctx, domain.JobsFilter{CompanyID: f.companyID, Status: &open})
	require.NoError(t, err)
	require.Len(t, onlyOpen, 1)
	assert.Equal(t, second.ID, onlyOpen[0].ID)
}

func TestJobRepository_CancelKeepsWorkers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.newJob(t, 1)
	require.NoError(t, f.jobs.AddWorker(ctx, domain.WorkerAssignment{JobID: job.ID, WorkerID: uuid.New()}))

	reason := "customer request"
	require.NoError(t, f.jobs.Cancel(ctx, job.ID, &reason, time.Now()))

	got, err := f.jobs.GetByID(ctx, f.companyID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCancelled, got.Status)
	assert.Equal(t, 1, got.AcceptedWorkers())
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, reason, *got.CancellationReason)
}

func TestStore_RollbackOnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.newJob(t, 2)
	boom := errors.New("boom")

	err := f.store.DoSerializable(ctx, func(ctx context.Context) error {
		require.NoError(t, f.jobs.AddWorker(ctx, domain.WorkerAssignment{JobID: job.ID, WorkerID: uuid.New()}))
		require.NoError(t, f.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusScheduling))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := f.jobs.GetByID(ctx, f.companyID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusOpen, got.Status)
	assert.Zero(t, got.AcceptedWorkers())
}

func TestStore_TransactionsAreSerialized(t *testing.T) {
	f := newFixture(t)
	job := f.newJob(t, 50)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			err := f.store.DoSerializable(context.Background(), func(ctx context.Context) error {
				current, err := f.jobs.GetByIDForUpdate(ctx, f.companyID, job.ID)
				if err != nil {
					return err
				}
				if err := f.jobs.AddWorker(ctx, domain.WorkerAssignment{JobID: job.ID, WorkerID: uuid.New()}); err != nil {
					return err
				}
				return f.jobs.UpdateStatus(ctx, job.ID, current.StatusAfterAccept(current.AcceptedWorkers()+1))
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := f.jobs.GetByID(context.Background(), f.companyID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.AcceptedWorkers())
	assert.Equal(t, domain.JobStatusScheduling, got.Status)
}

func TestStore_CancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.calendars.GetByID(ctx, f.companyID, f.calendar.ID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAppointmentTypeRepository_ListByCalendarMatchesIsOfferedOn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	calID := f.calendar.ID

	// тип из фикстуры не привязан ни к одному календарю
	require.Empty(t, f.apptType.CalendarIDs)
	byCalendar, err := f.types.List(ctx, domain.AppointmentTypesFilter{CompanyID: f.companyID, CalendarID: &calID})
	require.NoError(t, err)
	require.Len(t, byCalendar, 1)
	assert.True(t, byCalendar[0].IsOfferedOn(calID))
}
