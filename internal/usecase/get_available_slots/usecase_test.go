package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type testEnv struct {
	store     *memory.Store
	jobs      *memory.JobRepository
	companyID uuid.UUID
	calendar  *domain.Calendar
	typeID    uuid.UUID
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	companyID := uuid.New()

	cal, err := memory.NewCalendarRepository(store).Create(ctx, &domain.Calendar{
		CompanyID:        companyID,
		Name:             "Crew A",
		Color:            domain.DefaultCalendarColor,
		IsActive:         true,
		TimeSlotDuration: 30,
		Availability: domain.WeeklyAvailability{
			time.Monday: {Start: types.TimeString("09:00"), End: types.TimeString("17:00")},
		},
	})
	require.NoError(t, err)

	at, err := memory.NewAppointmentTypeRepository(store).Create(ctx, &domain.AppointmentType{
		CompanyID:        companyID,
		Name:             "Deep clean",
		BaseDuration:     60,
		MinimumPrice:     50,
		BasePrice:        75,
		AssignmentPolicy: domain.AssignmentSelfAssign,
		IsActive:         true,
	})
	require.NoError(t, err)

	return &testEnv{
		store:     store,
		jobs:      memory.NewJobRepository(store),
		companyID: companyID,
		calendar:  cal,
		typeID:    at.ID,
	}
}

func (e *testEnv) useCase(now time.Time) *UseCase {
	return NewUseCase(memory.NewCalendarRepository(e.store), e.jobs, logger.Nop{}).
		WithTimeProvider(fixedTime{t: now})
}

func (e *testEnv) addJob(t *testing.T, date time.Time, at string, status domain.JobStatus) {
	t.Helper()
	_, err := e.jobs.Create(context.Background(), &domain.Job{
		CompanyID:         e.companyID,
		CalendarID:        e.calendar.ID,
		AppointmentTypeID: e.typeID,
		Customer:          domain.Customer{ID: uuid.New(), FirstName: "Ada"},
		Title:             "Ada - Deep clean",
		Status:            status,
		ScheduledDate:     date,
		ScheduledTime:     types.TimeString(at),
		EstimatedDuration: 60,
		BasePrice:         75,
		MinimumPrice:      50,
		RequiredWorkers:   1,
		AssignmentPolicy:  domain.AssignmentSelfAssign,
	})
	require.NoError(t, err)
}

func TestUseCase_Execute_EnumeratesSlots(t *testing.T) {
	env := newEnv(t)
	env.addJob(t, monday, "10:00", domain.JobStatusOpen)
	env.addJob(t, monday, "10:00", domain.JobStatusScheduled)
	env.addJob(t, monday, "11:00", domain.JobStatusCancelled)
	env.addJob(t, monday.AddDate(0, 0, 7), "09:00", domain.JobStatusOpen)

	res, err := env.useCase(monday.AddDate(0, 0, -3)).Execute(context.Background(), &Request{
		CompanyID:  env.companyID,
		CalendarID: env.calendar.ID,
		Date:       monday,
	})
	require.NoError(t, err)

	require.Len(t, res.Slots, 16)
	assert.Equal(t, types.TimeString("09:00"), res.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("16:30"), res.Slots[15].StartTime)
	assert.Equal(t, 30, res.DurationMinutes)
	assert.True(t, res.CalendarActive)

	counts := map[types.TimeString]int{}
	for _, slot := range res.Slots {
		assert.False(t, slot.IsPast)
		assert.Equal(t, 30, slot.DurationMinutes)
		counts[slot.StartTime] = slot.ScheduledJobs
	}
	assert.Equal(t, 2, counts["10:00"])
	assert.Equal(t, 0, counts["11:00"], "cancelled jobs do not occupy a slot")
	assert.Equal(t, 0, counts["09:00"], "jobs of another date are not counted")
}

func TestUseCase_Execute_MarksPastSlotsToday(t *testing.T) {
	env := newEnv(t)

	res, err := env.useCase(monday.Add(10*time.Hour+15*time.Minute)).Execute(context.Background(), &Request{
		CompanyID:  env.companyID,
		CalendarID: env.calendar.ID,
		Date:       monday,
	})
	require.NoError(t, err)

	past := map[types.TimeString]bool{}
	for _, slot := range res.Slots {
		past[slot.StartTime] = slot.IsPast
	}
	assert.True(t, past["09:00"])
	assert.True(t, past["10:00"])
	assert.False(t, past["10:30"])
	assert.False(t, past["16:30"])
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	env := newEnv(t)

	res, err := env.useCase(monday).Execute(context.Background(), &Request{
		CompanyID:  env.companyID,
		CalendarID: env.calendar.ID,
		Date:       monday.AddDate(0, 0, 6),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	env := newEnv(t)
	uc := env.useCase(monday)

	_, err := uc.Execute(context.Background(), &Request{CompanyID: env.companyID, CalendarID: uuid.New(), Date: monday})
	assert.ErrorIs(t, err, ErrCalendarNotFound)

	_, err = uc.Execute(context.Background(), &Request{CompanyID: uuid.New(), CalendarID: env.calendar.ID, Date: monday})
	assert.ErrorIs(t, err, ErrCalendarNotFound)

	_, err = uc.Execute(context.Background(), &Request{CompanyID: env.companyID, CalendarID: env.calendar.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
