package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]Accommodation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Accommodation), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, name string) (*Accommodation, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Accommodation), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, req CreateAccommodationRequest) (*Accommodation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Accommodation), args.Error(1)
}

func (m *MockService) UpdateQuantity(ctx context.Context, name string, req UpdateQuantityRequest) (*Accommodation, error) {
	args := m.Called(ctx, name, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Accommodation), args.Error(1)
}

func (m *MockService) Availability(ctx context.Context, name string, iv calendar.Interval) (*Availability, error) {
	args := m.Called(ctx, name, iv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Availability), args.Error(1)
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/accommodations", h.List)
	r.GET("/accommodations/:type", h.Get)
	r.GET("/accommodations/:type/availability", h.Availability)
	r.POST("/admin/accommodations", h.Create)
	r.PUT("/admin/accommodations/:type", h.UpdateQuantity)
	return r
}

func TestHandler_Availability(t *testing.T) {
	iv, err := calendar.Parse("2026-01-10", "2026-01-13")
	require.NoError(t, err)

	tests := []struct {
		name       string
		url        string
		setupMock  func(*MockService)
		wantStatus int
	}{
		{
			name: "ok",
			url:  "/accommodations/Su%C3%ADte%20Pequena/availability?start=2026-01-10&end=2026-01-13",
			setupMock: func(m *MockService) {
				m.On("Availability", mock.Anything, "Suíte Pequena", iv).
					Return(&Availability{Type: "Suíte Pequena", FreeUnits: 1, TotalQuantity: 2}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing end",
			url:        "/accommodations/Chal%C3%A9/availability?start=2026-01-10",
			setupMock:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "end before start",
			url:        "/accommodations/Chal%C3%A9/availability?start=2026-01-13&end=2026-01-10",
			setupMock:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown type",
			url:  "/accommodations/Chal%C3%A9/availability?start=2026-01-10&end=2026-01-13",
			setupMock: func(m *MockService) {
				m.On("Availability", mock.Anything, "Chalé", iv).Return(nil, apperror.NotFound("accommodation type"))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Create(t *testing.T) {
	svc := new(MockService)
	req := CreateAccommodationRequest{Type: "Chalé", TotalQuantity: 2}
	svc.On("Create", mock.Anything, req).Return(&Accommodation{ID: 4, Type: "Chalé", TotalQuantity: 2}, nil)

	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/admin/accommodations", bytes.NewBuffer(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got Accommodation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 4, got.ID)
	svc.AssertExpectations(t)
}

func TestHandler_UpdateQuantityRejectsNegative(t *testing.T) {
	svc := new(MockService)

	httpReq := httptest.NewRequest(http.MethodPut, "/admin/accommodations/Chal%C3%A9", bytes.NewBufferString(`{"total_quantity":-1}`))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_ListStorageFailure(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything).Return(nil, apperror.ErrStorage)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accommodations", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "storage failure")
}

func TestHandler_Get(t *testing.T) {
	svc := new(MockService)
	svc.On("Get", mock.Anything, "Suíte Média").Return(&Accommodation{ID: 2, Type: "Suíte Média", TotalQuantity: 1}, nil)
	svc.On("Get", mock.Anything, "Chalé").Return(nil, apperror.NotFound("accommodation type %q", "Chalé"))
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accommodations/Su%C3%ADte%20M%C3%A9dia", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var got Accommodation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.TotalQuantity)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accommodations/Chal%C3%A9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}
