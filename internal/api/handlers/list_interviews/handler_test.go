package list_interviews

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/interviews/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	lastReq *models.ListInterviewsRequest
	err     error
}

func (f *fakeService) List(_ context.Context, req *models.ListInterviewsRequest) (*models.InterviewListResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.InterviewListResponse{Interviews: []models.InterviewResponse{{ID: 1}}}, nil
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_ParsesFilter(t *testing.T) {
	svc := &fakeService{}
	w := get(NewHandler(svc, nopLogger{}),
		"/api/v1/interviews?calendarId=7&applicationId=42&startFrom=2024-03-04T00:00:00Z&startTo=2024-03-05T00:00:00Z&includeCanceled=true")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastReq)
	assert.Equal(t, int64(7), *svc.lastReq.CalendarID)
	assert.Equal(t, int64(42), *svc.lastReq.ApplicationID)
	require.NotNil(t, svc.lastReq.StartFrom)
	require.NotNil(t, svc.lastReq.StartTo)
	assert.True(t, svc.lastReq.IncludeCanceled)
	assert.JSONEq(t, `{"interviews":[{"id":1,"calendarId":0,"slotId":0,"startTime":"","canceled":false,"createdAt":""}]}`, w.Body.String())
}

func TestHandle_NoFilter(t *testing.T) {
	svc := &fakeService{}
	w := get(NewHandler(svc, nopLogger{}), "/api/v1/interviews")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastReq.CalendarID)
	assert.False(t, svc.lastReq.IncludeCanceled)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "bad calendar", target: "/api/v1/interviews?calendarId=x", want: http.StatusBadRequest},
		{name: "bad flag", target: "/api/v1/interviews?includeCanceled=maybe", want: http.StatusBadRequest},
		{name: "bad time", target: "/api/v1/interviews?startFrom=2024-03-04", want: http.StatusBadRequest},
		{name: "invalid period", target: "/api/v1/interviews", err: interviews.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/interviews", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(NewHandler(&fakeService{err: tt.err}, nopLogger{}), tt.target)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
