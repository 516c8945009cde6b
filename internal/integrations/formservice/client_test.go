package formservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func newTestServer(t *testing.T, companyID uuid.UUID, forms map[uuid.UUID]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for id, body := range forms {
			if r.URL.Path == fmt.Sprintf("/internal/companies/%s/forms/%s", companyID, id) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetForm(t *testing.T) {
	companyID, formID := uuid.New(), uuid.New()
	first, second := uuid.New(), uuid.New()
	body := fmt.Sprintf(`{
		"id": %q,
		"company_id": %q,
		"name": "Pre-visit",
		"form_required": true,
		"fields": [
			{"id": %q, "label": "Notes", "field_type": "textbox", "required": false, "order_index": 2},
			{"id": %q, "label": "Gate code", "field_type": "textbox", "required": true, "order_index": 1}
		]
	}`, formID, companyID, second, first)

	srv := newTestServer(t, companyID, map[uuid.UUID]string{formID: body})
	client := NewClient(srv.URL, time.Second, logger.Nop{})

	form, err := client.GetForm(context.Background(), companyID, formID)
	require.NoError(t, err)
	assert.True(t, form.FormRequired)
	require.Len(t, form.Fields, 2)
	assert.Equal(t, first, form.Fields[0].ID)
	assert.True(t, form.Fields[0].Required)
}

func TestClient_GetForm_NotFound(t *testing.T) {
	srv := newTestServer(t, uuid.New(), nil)
	client := NewClient(srv.URL, time.Second, logger.Nop{})

	formID := uuid.New()
	_, err := client.GetForm(context.Background(), uuid.New(), formID)
	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.Contains(t, err.Error(), formID.String())
}

func TestClient_GetForm_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	client := NewClient(srv.URL, time.Second, logger.Nop{})

	_, err := client.GetForm(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetForms_SkipsMissing(t *testing.T) {
	companyID, formID := uuid.New(), uuid.New()
	body := fmt.Sprintf(`{"id": %q, "name": "Intake", "form_required": false, "fields": []}`, formID)
	srv := newTestServer(t, companyID, map[uuid.UUID]string{formID: body})
	client := NewClient(srv.URL, time.Second, logger.Nop{})

	forms, err := client.GetForms(context.Background(), companyID, []uuid.UUID{uuid.New(), formID})
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, formID, forms[0].ID)
}

func TestClient_GetForms_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger.Nop{})

	_, err := client.GetForms(context.Background(), uuid.New(), []uuid.UUID{uuid.New()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
}
