package accept_job

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	acceptJob "github.com/m04kA/SMC-SchedulingService/internal/usecase/accept_job"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeUseCase struct {
	got *acceptJob.Request
	res *acceptJob.Response
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *acceptJob.Request) (*acceptJob.Response, error) {
	f.got = req
	return f.res, f.err
}

func serve(uc AcceptJobUseCase, jobID string, companyID, userID uuid.UUID) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/jobs/{jobId}/accept", middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.Nop{}).Handle)))

	req := httptest.NewRequest(http.MethodPost, "/jobs/"+jobID+"/accept", nil)
	req.Header.Set(middleware.HeaderCompanyID, companyID.String())
	req.Header.Set(middleware.HeaderUserID, userID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Accepted(t *testing.T) {
	companyID, workerID, jobID := uuid.New(), uuid.New(), uuid.New()
	uc := &fakeUseCase{res: &acceptJob.Response{
		Result: domain.AcceptResult{
			JobID:           jobID,
			WorkerID:        workerID,
			Status:          domain.JobStatusScheduling,
			AcceptedWorkers: 1,
			RequiredWorkers: 2,
			AssignedAt:      time.Date(2025, 10, 10, 15, 0, 0, 0, time.UTC),
		},
		Message: "Successfully accepted job. 1 more worker(s) needed.",
	}}

	rec := serve(uc, jobID.String(), companyID, workerID)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, companyID, uc.got.CompanyID)
	assert.Equal(t, jobID, uc.got.JobID)
	assert.Equal(t, workerID, uc.got.WorkerID, "worker comes from the caller identity")

	var body AcceptJobResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "scheduling", body.Status)
	assert.Equal(t, 1, body.AcceptedWorkers)
	assert.Equal(t, 2, body.RequiredWorkers)
	assert.Equal(t, 1, body.RemainingWorkers)
	assert.Equal(t, uc.res.Message, body.Message)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: acceptJob.ErrJobNotFound, wantStatus: http.StatusNotFound},
		{name: "duplicate", err: acceptJob.ErrDuplicateAssignment, wantStatus: http.StatusConflict},
		{name: "invalid state", err: fmt.Errorf("%w: status is scheduled", acceptJob.ErrInvalidState), wantStatus: http.StatusConflict},
		{name: "invalid input", err: acceptJob.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: acceptJob.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, uuid.NewString(), uuid.New(), uuid.New())
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestHandler_InvalidJobID(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "not-a-uuid", uuid.New(), uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
