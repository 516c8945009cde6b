package create_job

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	jobModels "github.com/m04kA/SMC-SchedulingService/internal/service/jobs/models"
	createJob "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_job"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var now = time.Date(2025, 10, 10, 15, 0, 0, 0, time.UTC)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

type stubForms struct{ err error }

func (s stubForms) GetForms(context.Context, uuid.UUID, []uuid.UUID) ([]*domain.Form, error) {
	return nil, s.err
}

type testEnv struct {
	handler    http.Handler
	types      *memory.AppointmentTypeRepository
	companyID  uuid.UUID
	calendarID uuid.UUID
	typeID     uuid.UUID
}

func newEnv(t *testing.T, forms stubForms) *testEnv {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	calendars := memory.NewCalendarRepository(store)
	apptTypes := memory.NewAppointmentTypeRepository(store)
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

	uc := createJob.NewUseCase(calendars, apptTypes, memory.NewJobRepository(store), forms, store, nil, logger.Nop{}).
		WithTimeProvider(fixedTime{})

	return &testEnv{
		handler:    middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.Nop{}).Handle)),
		types:      apptTypes,
		companyID:  companyID,
		calendarID: cal.ID,
		typeID:     at.ID,
	}
}

func (e *testEnv) body(overrides map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{
		"calendarId":        e.calendarID,
		"appointmentTypeId": e.typeID,
		"customer":          map[string]interface{}{"id": uuid.New(), "firstName": "Ada", "lastName": "Lovelace"},
		"scheduledDate":     "2025-10-13",
		"scheduledTime":     "10:00",
		"requiredWorkers":   2,
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

func (e *testEnv) post(t *testing.T, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(payload))
	req.Header.Set(middleware.HeaderCompanyID, e.companyID.String())
	req.Header.Set(middleware.HeaderUserID, uuid.NewString())
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	env := newEnv(t, stubForms{})

	rec := env.post(t, env.body(nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var job jobModels.JobResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&job))
	assert.Equal(t, "open", job.Status)
	assert.Equal(t, env.companyID, job.CompanyID)
	assert.Equal(t, "2025-10-13", job.ScheduledDate)
	assert.Equal(t, "10:00", job.ScheduledTime)
	assert.Equal(t, 2, job.RequiredWorkers)
	assert.Equal(t, 0, job.AcceptedWorkers)
	assert.Equal(t, "Ada Lovelace - Deep clean", job.Title)
}

func TestHandler_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		overrides  map[string]interface{}
		wantStatus int
	}{
		{name: "unaligned time", overrides: map[string]interface{}{"scheduledTime": "10:30"}, wantStatus: http.StatusUnprocessableEntity},
		{name: "closed day", overrides: map[string]interface{}{"scheduledDate": "2025-10-12"}, wantStatus: http.StatusUnprocessableEntity},
		{name: "date in the past", overrides: map[string]interface{}{"scheduledDate": "2025-10-06"}, wantStatus: http.StatusBadRequest},
		{name: "malformed date", overrides: map[string]interface{}{"scheduledDate": "13.10.2025"}, wantStatus: http.StatusBadRequest},
		{name: "malformed time", overrides: map[string]interface{}{"scheduledTime": "ten"}, wantStatus: http.StatusBadRequest},
		{name: "price below minimum", overrides: map[string]interface{}{"basePrice": 40}, wantStatus: http.StatusBadRequest},
		{name: "zero workers", overrides: map[string]interface{}{"requiredWorkers": 0}, wantStatus: http.StatusBadRequest},
		{name: "unknown calendar", overrides: map[string]interface{}{"calendarId": uuid.New()}, wantStatus: http.StatusNotFound},
		{name: "unknown field", overrides: map[string]interface{}{"status": "scheduled"}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, stubForms{})
			rec := env.post(t, env.body(tt.overrides))
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_FormServiceUnavailable(t *testing.T) {
	env := newEnv(t, stubForms{err: errors.New("connection refused")})
	_, err := env.types.SetForms(context.Background(), env.companyID, env.typeID, []uuid.UUID{uuid.New()})
	require.NoError(t, err)

	rec := env.post(t, env.body(nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
