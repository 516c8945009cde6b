package cancel_job

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs"
	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestHandler_CancelKeepsWorkers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewJobRepository(store)
	companyID := uuid.New()

	job, err := repo.Create(ctx, &domain.Job{
		CompanyID:         companyID,
		CalendarID:        uuid.New(),
		AppointmentTypeID: uuid.New(),
		Customer:          domain.Customer{ID: uuid.New(), FirstName: "Ada"},
		Title:             "Ada - Deep clean",
		Status:            domain.JobStatusOpen,
		ScheduledDate:     time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		ScheduledTime:     types.TimeString("10:00"),
		EstimatedDuration: 60,
		BasePrice:         75,
		MinimumPrice:      50,
		RequiredWorkers:   2,
		AssignmentPolicy:  domain.AssignmentSelfAssign,
	})
	require.NoError(t, err)
	require.NoError(t, repo.AddWorker(ctx, domain.WorkerAssignment{JobID: job.ID, WorkerID: uuid.New(), AssignedAt: time.Now()}))
	require.NoError(t, repo.UpdateStatus(ctx, job.ID, domain.JobStatusScheduling))

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/jobs/{jobId}/cancel",
		NewHandler(jobs.NewService(repo, store, logger.Nop{}), logger.Nop{}).Handle).Methods(http.MethodPatch)

	cancel := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/jobs/"+job.ID.String()+"/cancel", strings.NewReader(body))
		req.Header.Set(middleware.HeaderCompanyID, companyID.String())
		req.Header.Set(middleware.HeaderUserID, uuid.NewString())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, cancel(`{"reason":`).Code)

	rec := cancel("")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body models.JobResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "cancelled", body.Status)
	assert.Equal(t, 1, body.AcceptedWorkers)
	assert.Len(t, body.Workers, 1)
	assert.Nil(t, body.CancellationReason)

	assert.Equal(t, http.StatusConflict, cancel(`{"reason":"customer asked"}`).Code)
}
