package finance

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) RecordPayment(ctx context.Context, memberID int, req RecordPaymentRequest) (*Transaction, error) {
	args := m.Called(ctx, memberID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transaction), args.Error(1)
}

func (m *MockService) Statement(ctx context.Context, memberID int) (*Statement, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Statement), args.Error(1)
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/members/:id/transactions", h.List)
	r.POST("/members/:id/transactions", h.Record)
	return r
}

func TestHandler_Record(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		setupMock  func(*MockService)
		wantStatus int
	}{
		{
			name: "created",
			url:  "/members/1/transactions",
			body: `{"amount":"1400.00","description":"Quota 2026","mark_paid":true}`,
			setupMock: func(m *MockService) {
				m.On("RecordPayment", mock.Anything, 1, RecordPaymentRequest{Amount: "1400.00", Description: "Quota 2026", MarkPaid: true}).
					Return(&Transaction{ID: 3, MemberID: 1, Amount: decimal.NewFromInt(1400)}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing description",
			url:        "/members/1/transactions",
			body:       `{"amount":"1400.00"}`,
			setupMock:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "negative amount",
			url:  "/members/1/transactions",
			body: `{"amount":"-1","description":"refund"}`,
			setupMock: func(m *MockService) {
				m.On("RecordPayment", mock.Anything, 1, mock.Anything).Return(nil, apperror.Validation("amount must be positive"))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown member",
			url:  "/members/8/transactions",
			body: `{"amount":"10","description":"x"}`,
			setupMock: func(m *MockService) {
				m.On("RecordPayment", mock.Anything, 8, mock.Anything).Return(nil, apperror.NotFound("member %d", 8))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, tt.url, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_List(t *testing.T) {
	svc := new(MockService)
	svc.On("Statement", mock.Anything, 1).Return(&Statement{MemberID: 1, TotalPaid: decimal.NewFromInt(800), Transactions: []Transaction{}}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members/1/transactions", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_paid":"800"`)
}
