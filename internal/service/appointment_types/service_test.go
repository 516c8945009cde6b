package appointment_types

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type testEnv struct {
	svc       *Service
	calendars *memory.CalendarRepository
	companyID uuid.UUID
}

func newEnv() *testEnv {
	store := memory.NewStore()
	calendars := memory.NewCalendarRepository(store)
	return &testEnv{
		svc:       NewService(memory.NewAppointmentTypeRepository(store), calendars, logger.Nop{}),
		calendars: calendars,
		companyID: uuid.New(),
	}
}

func (e *testEnv) createType(t *testing.T, name string) *models.AppointmentTypeResponse {
	t.Helper()
	at, err := e.svc.Create(context.Background(), e.companyID, &models.CreateAppointmentTypeRequest{
		Name:         name,
		BaseDuration: 60,
		MinimumPrice: 50,
		BasePrice:    75,
	})
	require.NoError(t, err)
	return at
}

func (e *testEnv) createCalendar(t *testing.T) uuid.UUID {
	t.Helper()
	cal, err := e.calendars.Create(context.Background(), &domain.Calendar{
		CompanyID:        e.companyID,
		Name:             "Crew",
		Color:            domain.DefaultCalendarColor,
		IsActive:         true,
		TimeSlotDuration: 30,
		Availability: domain.WeeklyAvailability{
			time.Monday: {Start: types.TimeString("09:00"), End: types.TimeString("17:00")},
		},
	})
	require.NoError(t, err)
	return cal.ID
}

func TestService_Create(t *testing.T) {
	env := newEnv()
	at := env.createType(t, "Deep clean")

	assert.True(t, at.IsActive)
	assert.Equal(t, string(domain.DefaultAssignmentPolicy), at.AssignmentPolicy)
	assert.Empty(t, at.CalendarIDs)
	assert.Empty(t, at.FormIDs)
}

func TestService_CreatePricing(t *testing.T) {
	tests := []struct {
		name    string
		min     float64
		base    float64
		wantErr error
	}{
		{name: "base below minimum", min: 50, base: 40, wantErr: domain.ErrPriceBelowMinimum},
		{name: "base equals minimum", min: 50, base: 50},
		{name: "negative minimum", min: -1, base: 10, wantErr: domain.ErrNegativePrice},
	}

	env := newEnv()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Create(context.Background(), env.companyID, &models.CreateAppointmentTypeRequest{
				Name:         "Window wash",
				BaseDuration: 30,
				MinimumPrice: tt.min,
				BasePrice:    tt.base,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_CreateRejectsUnknownPolicy(t *testing.T) {
	env := newEnv()
	_, err := env.svc.Create(context.Background(), env.companyID, &models.CreateAppointmentTypeRequest{
		Name:             "Window wash",
		BaseDuration:     30,
		BasePrice:        10,
		AssignmentPolicy: ptr.Ptr("round_robin"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateValidatesMergedValues(t *testing.T) {
	env := newEnv()
	ctx := context.Background()
	at := env.createType(t, "Deep clean")

	// base 75 stays, new minimum 80 breaks base >= minimum
	_, err := env.svc.Update(ctx, env.companyID, at.ID, &models.UpdateAppointmentTypeRequest{MinimumPrice: ptr.Ptr(80.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := env.svc.Update(ctx, env.companyID, at.ID, &models.UpdateAppointmentTypeRequest{
		MinimumPrice: ptr.Ptr(80.0),
		BasePrice:    ptr.Ptr(90.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, updated.MinimumPrice)
	assert.Equal(t, 90.0, updated.BasePrice)
	assert.Equal(t, "Deep clean", updated.Name)

	_, err = env.svc.Update(ctx, env.companyID, uuid.New(), &models.UpdateAppointmentTypeRequest{})
	assert.ErrorIs(t, err, ErrAppointmentTypeNotFound)
}

func TestService_ToggleExcludesFromActiveList(t *testing.T) {
	env := newEnv()
	ctx := context.Background()
	at := env.createType(t, "Deep clean")
	env.createType(t, "Window wash")

	toggled, err := env.svc.ToggleActive(ctx, env.companyID, at.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err := env.svc.List(ctx, &models.ListAppointmentTypesRequest{CompanyID: env.companyID, ActiveOnly: true})
	require.NoError(t, err)
	require.Equal(t, 1, active.Total)
	assert.Equal(t, "Window wash", active.AppointmentTypes[0].Name)
}

func TestService_AssignToCalendarsReplacesSet(t *testing.T) {
	env := newEnv()
	ctx := context.Background()
	at := env.createType(t, "Deep clean")
	calA, calB := env.createCalendar(t), env.createCalendar(t)

	res, err := env.svc.AssignToCalendars(ctx, env.companyID, at.ID, &models.AssignCalendarsRequest{CalendarIDs: []uuid.UUID{calA, calB, calA}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{calA, calB}, res.CalendarIDs)

	res, err = env.svc.AssignToCalendars(ctx, env.companyID, at.ID, &models.AssignCalendarsRequest{CalendarIDs: []uuid.UUID{calB}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{calB}, res.CalendarIDs)

	res, err = env.svc.AssignToCalendars(ctx, env.companyID, at.ID, &models.AssignCalendarsRequest{})
	require.NoError(t, err)
	assert.Empty(t, res.CalendarIDs)

	_, err = env.svc.AssignToCalendars(ctx, env.companyID, at.ID, &models.AssignCalendarsRequest{CalendarIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestService_AssignToFormsReplacesSet(t *testing.T) {
	env := newEnv()
	ctx := context.Background()
	at := env.createType(t, "Deep clean")
	formA, formB := uuid.New(), uuid.New()

	_, err := env.svc.AssignToForms(ctx, env.companyID, at.ID, &models.AssignFormsRequest{FormIDs: []uuid.UUID{formA, formB}})
	require.NoError(t, err)

	res, err := env.svc.AssignToForms(ctx, env.companyID, at.ID, &models.AssignFormsRequest{FormIDs: []uuid.UUID{formB}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{formB}, res.FormIDs)

	_, err = env.svc.AssignToForms(ctx, env.companyID, uuid.New(), &models.AssignFormsRequest{})
	assert.ErrorIs(t, err, ErrAppointmentTypeNotFound)
}

func TestService_ListByCalendarIncludesUnassignedTypes(t *testing.T) {
	env := newEnv()
	ctx := context.Background()
	calA, calB := env.createCalendar(t), env.createCalendar(t)

	assigned := env.createType(t, "Deep clean")
	elsewhere := env.createType(t, "Window wash")
	unassigned := env.createType(t, "Carpet")

	_, err := env.svc.AssignToCalendars(ctx, env.companyID, assigned.ID, &models.AssignCalendarsRequest{CalendarIDs: []uuid.UUID{calA}})
	require.NoError(t, err)
	_, err = env.svc.AssignToCalendars(ctx, env.companyID, elsewhere.ID, &models.AssignCalendarsRequest{CalendarIDs: []uuid.UUID{calB}})
	require.NoError(t, err)

	res, err := env.svc.List(ctx, &models.ListAppointmentTypesRequest{CompanyID: env.companyID, CalendarID: &calA})
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, res.Total)
	for _, at := range res.AppointmentTypes {
		ids = append(ids, at.ID)
	}
	// тип без календарей можно выбрать при создании заказа в любом календаре
	assert.ElementsMatch(t, []uuid.UUID{assigned.ID, unassigned.ID}, ids)
}
