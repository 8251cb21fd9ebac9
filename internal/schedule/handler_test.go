package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ptslot/internal/availability"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetWeek(ctx context.Context) ([]availability.WeekdaySchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.WeekdaySchedule), args.Error(1)
}

func (m *MockService) UpdateWeek(ctx context.Context, req UpdateScheduleRequest) ([]availability.WeekdaySchedule, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.WeekdaySchedule), args.Error(1)
}

func (m *MockService) ListHolidays(ctx context.Context) ([]Holiday, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Holiday), args.Error(1)
}

func (m *MockService) AddHoliday(ctx context.Context, req CreateHolidayRequest) (*Holiday, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Holiday), args.Error(1)
}

func (m *MockService) RemoveHoliday(ctx context.Context, date string) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.GET("/schedule", h.GetSchedule)
	r.PUT("/admin/schedule", h.UpdateSchedule)
	r.GET("/admin/holidays", h.ListHolidays)
	r.POST("/admin/holidays", h.CreateHoliday)
	r.DELETE("/admin/holidays/:date", h.DeleteHoliday)
	return r
}

func TestHandler_GetSchedule(t *testing.T) {
	svc := new(MockService)
	week := []availability.WeekdaySchedule{availability.DefaultSchedule(0)}
	svc.On("GetWeek", mock.Anything).Return(week, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	newTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []availability.WeekdaySchedule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, week, got)
}

func TestHandler_UpdateSchedule_Invalid(t *testing.T) {
	svc := new(MockService)
	svc.On("UpdateWeek", mock.Anything, mock.Anything).Return(nil, ErrInvalidSchedule)

	body := `{"days":[{"day_of_week":1,"start_time":"18:00","end_time":"09:00"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/schedule", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_schedule")
}

func TestHandler_UpdateSchedule_EmptyBody(t *testing.T) {
	svc := new(MockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/schedule", bytes.NewBufferString(`{"days":[]}`))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateWeek", mock.Anything, mock.Anything)
}

func TestHandler_CreateHoliday(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"duplicate", ErrHolidayExists, http.StatusConflict},
		{"bad date", availability.ErrInvalidDate, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			req := CreateHolidayRequest{Date: "2025-06-06", Label: "Memorial Day"}
			if tt.err != nil {
				svc.On("AddHoliday", mock.Anything, req).Return(nil, tt.err)
			} else {
				svc.On("AddHoliday", mock.Anything, req).Return(&Holiday{Date: req.Date, Label: req.Label}, nil)
			}

			body, _ := json.Marshal(req)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/admin/holidays", bytes.NewBuffer(body))
			r.Header.Set("Content-Type", "application/json")
			newTestRouter(svc).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_DeleteHoliday_NotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("RemoveHoliday", mock.Anything, "2025-06-06").Return(ErrHolidayNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/holidays/2025-06-06", nil)
	newTestRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
