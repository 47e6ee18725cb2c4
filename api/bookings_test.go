package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/service/auth"
	"github.com/Domenick1991/travelbook/internal/service/bookings"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of bookings.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockBookingUseCase) AddFavorite(ctx context.Context, userID int64, fav domain.Favorite) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID, fav)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockBookingUseCase) RemoveFavorite(ctx context.Context, userID int64, favID int64, favType string) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID, favID, favType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockBookingUseCase) ListBookedFlights(ctx context.Context, userID int64) ([]domain.BookedFlight, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.BookedFlight), args.Error(1)
}

func (m *MockBookingUseCase) BookFlight(ctx context.Context, email string, input bookings.BookFlightInput) ([]domain.BookedFlight, error) {
	args := m.Called(ctx, email, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookedFlight), args.Error(1)
}

func (m *MockBookingUseCase) CancelFlightBooking(ctx context.Context, userID int64, email, bookingID string) ([]domain.BookedFlight, error) {
	args := m.Called(ctx, userID, email, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookedFlight), args.Error(1)
}

func (m *MockBookingUseCase) ListBookedHotels(ctx context.Context, userID int64) ([]domain.BookedHotel, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.BookedHotel), args.Error(1)
}

func (m *MockBookingUseCase) BookHotel(ctx context.Context, email string, input bookings.BookHotelInput) ([]domain.BookedHotel, error) {
	args := m.Called(ctx, email, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookedHotel), args.Error(1)
}

func (m *MockBookingUseCase) EditHotelBooking(ctx context.Context, userID int64, bookingID string, patch []byte) (*domain.BookedHotel, error) {
	args := m.Called(ctx, userID, bookingID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookedHotel), args.Error(1)
}

func (m *MockBookingUseCase) CancelHotelBooking(ctx context.Context, userID int64, email, bookingID string) ([]domain.BookedHotel, error) {
	args := m.Called(ctx, userID, email, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookedHotel), args.Error(1)
}

func ownedContext(t *testing.T, mockAuth *MockAuthUseCase, method, target, body string) (*httptest.ResponseRecorder, *gin.Context, *auth.Principal) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	p := &auth.Principal{ID: 1, Email: "ana@example.com"}
	c.Set(principalKey, p)
	mockAuth.On("Authorize", p, int64(1)).Return(nil)
	return w, c, p
}

func TestBookingHandler_addFavorite_mapsRequest(t *testing.T) {
	mockService := &MockBookingUseCase{}
	mockAuth := &MockAuthUseCase{}
	handler := NewBookingHandler(mockService, mockAuth)

	body := `{"favoriteId":10,"type":"flight","airline":"SkyLine","from":"Cairo","to":"Rome","price":120}`
	w, c, _ := ownedContext(t, mockAuth, "POST", "/api/users/1/favorites", body)

	want := domain.Favorite{ID: 10, Type: "flight", Airline: "SkyLine", From: "Cairo", To: "Rome", Price: 120}
	mockService.On("AddFavorite", c.Request.Context(), int64(1), want).Return([]domain.Favorite{want}, nil)

	handler.addFavorite(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"favorites"`)

	mockService.AssertExpectations(t)
	mockAuth.AssertExpectations(t)
}

func TestBookingHandler_addFavorite_duplicate(t *testing.T) {
	mockService := &MockBookingUseCase{}
	mockAuth := &MockAuthUseCase{}
	handler := NewBookingHandler(mockService, mockAuth)

	body := `{"favoriteId":10,"type":"flight"}`
	w, c, _ := ownedContext(t, mockAuth, "POST", "/api/users/1/favorites", body)

	mockService.On("AddFavorite", c.Request.Context(), int64(1), mock.Anything).Return(nil, domain.ErrConflict)

	handler.addFavorite(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_bookFlight_usesPrincipalEmail(t *testing.T) {
	mockService := &MockBookingUseCase{}
	mockAuth := &MockAuthUseCase{}
	handler := NewBookingHandler(mockService, mockAuth)

	body := `{"flightId":10,"adults":2,"children":1}`
	w, c, _ := ownedContext(t, mockAuth, "POST", "/api/users/1/bookings", body)

	input := bookings.BookFlightInput{FlightID: 10, Adults: 2, Children: 1}
	booked := []domain.BookedFlight{{BookingID: "b-1", Adults: 2, Children: 1}}
	mockService.On("BookFlight", c.Request.Context(), "ana@example.com", input).Return(booked, nil)

	handler.bookFlight(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookedFlights"`)

	mockService.AssertExpectations(t)
	mockAuth.AssertExpectations(t)
}

func TestBookingHandler_cancelFlight(t *testing.T) {
	mockService := &MockBookingUseCase{}
	mockAuth := &MockAuthUseCase{}
	handler := NewBookingHandler(mockService, mockAuth)

	w, c, _ := ownedContext(t, mockAuth, "POST", "/api/users/1/cancel-booking", `{"bookingId":"b-1"}`)

	mockService.On("CancelFlightBooking", c.Request.Context(), int64(1), "ana@example.com", "b-1").Return([]domain.BookedFlight{}, nil)

	handler.cancelFlight(c)

	assert.Equal(t, http.StatusOK, w.Code)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_editHotel_passesRawPatch(t *testing.T) {
	mockService := &MockBookingUseCase{}
	mockAuth := &MockAuthUseCase{}
	handler := NewBookingHandler(mockService, mockAuth)

	patch := `{"checkIn":"2025-08-01","checkOut":"2025-08-05"}`
	w, c, _ := ownedContext(t, mockAuth, "PUT", "/api/users/1/hotel-bookings/h-1", patch)
	c.Params = append(c.Params, gin.Param{Key: "bookingId", Value: "h-1"})

	booking := &domain.BookedHotel{BookingID: "h-1", CheckIn: "2025-08-01", CheckOut: "2025-08-05"}
	mockService.On("EditHotelBooking", c.Request.Context(), int64(1), "h-1", []byte(patch)).Return(booking, nil)

	handler.editHotel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancelHotel_missingBooking(t *testing.T) {
	mockService := &MockBookingUseCase{}
	mockAuth := &MockAuthUseCase{}
	handler := NewBookingHandler(mockService, mockAuth)

	w, c, _ := ownedContext(t, mockAuth, "POST", "/api/users/1/cancel-hotel-booking", `{"bookingId":"nope"}`)

	mockService.On("CancelHotelBooking", c.Request.Context(), int64(1), "ana@example.com", "nope").Return(nil, domain.ErrNotFound)

	handler.cancelHotel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	mockService.AssertExpectations(t)
}
