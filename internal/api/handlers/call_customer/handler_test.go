package call_customer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/api/handlers"
	"github.com/m04kA/SMC-QueueService/internal/service/queue"
	"github.com/m04kA/SMC-QueueService/internal/service/queue/models"
)

type fakeQueueService struct {
	resp *models.CallResponse
	err  error
}

func (f *fakeQueueService) Call(_ context.Context, _ int64) (*models.CallResponse, error) {
	return f.resp, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc QueueService, entryID string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, noopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/queue/"+entryID+"/call", nil)
	req = mux.SetURLVars(req, map[string]string{"entryId": entryID})

	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeQueueService{resp: &models.CallResponse{Status: "called"}}

		rec := doRequest(t, svc, "1")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.CallResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "called", resp.Status)
	})

	t.Run("invalid entry id", func(t *testing.T) {
		rec := doRequest(t, &fakeQueueService{}, "abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeQueueService{err: queue.ErrEntryNotFound}

		rec := doRequest(t, svc, "42")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("invalid transition", func(t *testing.T) {
		svc := &fakeQueueService{
			err: fmt.Errorf("%w: cannot call entry in status called", queue.ErrInvalidTransition),
		}

		rec := doRequest(t, svc, "1")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		svc := &fakeQueueService{err: queue.ErrInternal}

		rec := doRequest(t, svc, "1")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
