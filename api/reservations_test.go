package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/travelbook/internal/domain"
	"github.com/zvrva/travelbook/internal/repository"
	"github.com/zvrva/travelbook/internal/service/reservation"
)

// MockReservationUseCase is a mock implementation of reservation.ReservationUseCase
type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) CreateReservation(ctx context.Context, input reservation.CreateReservationInput) (*domain.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationUseCase) CancelReservation(ctx context.Context, reservationID string, principalID int64) (bool, error) {
	args := m.Called(ctx, reservationID, principalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationUseCase) ListReservations(ctx context.Context, principalID int64) ([]domain.ReservationDetail, error) {
	args := m.Called(ctx, principalID)
	return args.Get(0).([]domain.ReservationDetail), args.Error(1)
}

func (m *MockReservationUseCase) AuditInventory(ctx context.Context) ([]repository.InventoryDrift, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.InventoryDrift), args.Error(1)
}

func newReservationRouter(service reservation.ReservationUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewReservationHandler(service).Register(router.Group("/reservations"))
	return router
}

func TestReservationHandler_create(t *testing.T) {
	mockService := &MockReservationUseCase{}
	router := newReservationRouter(mockService)

	created := &domain.Reservation{
		ID:              "res-1",
		Code:            "BK20260831001",
		OfferingID:      "off-1",
		PrincipalID:     7,
		Seats:           2,
		TotalPriceCents: 59998,
		Status:          domain.ReservationStatusConfirmed,
		CreatedAt:       time.Now(),
	}
	mockService.On("CreateReservation", mock.Anything, reservation.CreateReservationInput{
		OfferingID:  "off-1",
		PrincipalID: 7,
		Seats:       2,
		Email:       "test@example.com",
	}).Return(created, nil).Once()

	body, _ := json.Marshal(map[string]interface{}{
		"offering_id": "off-1",
		"seats":       2,
		"email":       "test@example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/reservations/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(principalHeader, "7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp reservationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BK20260831001", resp.Code)
	assert.Equal(t, int64(59998), resp.TotalPriceCents)
	assert.Equal(t, "CONFIRMED", resp.Status)
	mockService.AssertExpectations(t)
}

func TestReservationHandler_create_MissingPrincipal(t *testing.T) {
	mockService := &MockReservationUseCase{}
	router := newReservationRouter(mockService)

	body, _ := json.Marshal(map[string]interface{}{"offering_id": "off-1", "seats": 1})
	req := httptest.NewRequest(http.MethodPost, "/reservations/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "CreateReservation")
}

func TestReservationHandler_create_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid request", err: domain.ErrInvalidRequest, wantStatus: http.StatusBadRequest},
		{name: "offering not found", err: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "offering departed", err: domain.ErrOfferingUnavailable, wantStatus: http.StatusConflict},
		{name: "sold out", err: domain.ErrInsufficientCapacity, wantStatus: http.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockReservationUseCase{}
			router := newReservationRouter(mockService)
			mockService.On("CreateReservation", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			body, _ := json.Marshal(map[string]interface{}{"offering_id": "off-1", "seats": 1})
			req := httptest.NewRequest(http.MethodPost, "/reservations/", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(principalHeader, "7")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestReservationHandler_list_ScopeFilter(t *testing.T) {
	mockService := &MockReservationUseCase{}
	router := newReservationRouter(mockService)

	details := []domain.ReservationDetail{
		{
			Reservation: domain.Reservation{ID: "res-upcoming", Status: domain.ReservationStatusConfirmed},
			Offering:    domain.Offering{ID: "off-1", DepartureTime: time.Now().Add(48 * time.Hour)},
		},
		{
			Reservation: domain.Reservation{ID: "res-past", Status: domain.ReservationStatusConfirmed},
			Offering:    domain.Offering{ID: "off-2", DepartureTime: time.Now().Add(-48 * time.Hour)},
		},
	}
	mockService.On("ListReservations", mock.Anything, int64(7)).Return(details, nil)

	req := httptest.NewRequest(http.MethodGet, "/reservations/?scope=upcoming", nil)
	req.Header.Set(principalHeader, "7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []reservationDetailResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "res-upcoming", resp[0].ID)
	assert.True(t, resp[0].Upcoming)

	req = httptest.NewRequest(http.MethodGet, "/reservations/?scope=past", nil)
	req.Header.Set(principalHeader, "7")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp = nil
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "res-past", resp[0].ID)
}

func TestReservationHandler_cancel(t *testing.T) {
	mockService := &MockReservationUseCase{}
	router := newReservationRouter(mockService)

	mockService.On("CancelReservation", mock.Anything, "res-1", int64(7)).Return(true, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/reservations/res-1", nil)
	req.Header.Set(principalHeader, "7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelled":true`)
	mockService.AssertExpectations(t)
}

func TestReservationHandler_cancel_NotCancellable(t *testing.T) {
	mockService := &MockReservationUseCase{}
	router := newReservationRouter(mockService)

	mockService.On("CancelReservation", mock.Anything, "res-1", int64(7)).Return(false, domain.ErrNotCancellable).Once()

	req := httptest.NewRequest(http.MethodDelete, "/reservations/res-1", nil)
	req.Header.Set(principalHeader, "7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelled":false`)
}
