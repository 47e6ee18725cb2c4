package bookings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/kafka"
	"github.com/Domenick1991/travelbook/internal/repository"
	"github.com/Domenick1991/travelbook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type fixture struct {
	service *BookingService
	users   repository.UserRepository
	hotels  repository.HotelRepository
	flights repository.FlightRepository
}

func newFixture(t *testing.T, producer Producer) *fixture {
	t.Helper()
	s := store.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, s.Update(func(doc *domain.Document) error {
		doc.Flights = append(doc.Flights, domain.Flight{
			ID: 10, From: "CAI", To: "JFK", Date: "2025-09-01", Price: 100,
		})
		doc.Hotels = append(doc.Hotels, domain.Hotel{
			ID:   20,
			Name: "Nile View",
			City: "Cairo",
			AvailableRooms: []domain.Room{
				{Type: "Single", Quantity: 5},
			},
		})
		return nil
	}))

	users := repository.NewUserRepository(s)
	flights := repository.NewFlightRepository(s)
	return &fixture{
		service: NewBookingService(users, flights, producer, "booking-events"),
		users:   users,
		hotels:  repository.NewHotelRepository(s),
		flights: flights,
	}
}

func TestFlightCharge(t *testing.T) {
	testCases := []struct {
		name     string
		base     float64
		adults   int
		children int
		want     float64
	}{
		{name: "two adults two children", base: 100, adults: 2, children: 2, want: 300},
		{name: "adults only", base: 80, adults: 3, children: 0, want: 240},
		{name: "single adult", base: 120.5, adults: 1, children: 0, want: 120.5},
		{name: "odd child count halves", base: 100, adults: 1, children: 1, want: 150},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FlightCharge(tc.base, tc.adults, tc.children))
		})
	}
}

func TestBookingService_BookFlight_StoresChargeNotBasePrice(t *testing.T) {
	producer := &MockProducer{}
	producer.On("Publish", mock.Anything, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()
	f := newFixture(t, producer)
	ctx := context.Background()

	booked, err := f.service.BookFlight(ctx, "a@x.com", BookFlightInput{FlightID: 10, Adults: 2, Children: 2})

	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, 300.0, booked[0].Price)
	assert.NotEmpty(t, booked[0].BookingID)
	assert.Equal(t, 2, booked[0].Adults)

	// The canonical flight keeps its base price.
	flight, err := f.flights.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 100.0, flight.Price)

	producer.AssertExpectations(t)
}

func TestBookingService_BookFlight_ValidationErrors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.service.BookFlight(ctx, "a@x.com", BookFlightInput{Adults: 1})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = f.service.BookFlight(ctx, "a@x.com", BookFlightInput{FlightID: 10, Adults: 0})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = f.service.BookFlight(ctx, "a@x.com", BookFlightInput{FlightID: 999, Adults: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_CancelFlightBooking_RemovesEntry(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	booked, err := f.service.BookFlight(ctx, "a@x.com", BookFlightInput{FlightID: 10, Adults: 1})
	require.NoError(t, err)
	user, err := f.users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	remaining, err := f.service.CancelFlightBooking(ctx, user.ID, user.Email, booked[0].BookingID)

	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = f.service.CancelFlightBooking(ctx, user.ID, user.Email, booked[0].BookingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_BookHotel_DenormalizesUserDetails(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.users.Create(ctx, domain.User{Email: "a@x.com", Name: "Ana", Phone: "123"})
	require.NoError(t, err)

	booked, err := f.service.BookHotel(ctx, "a@x.com", BookHotelInput{
		BookingID:   "bk-1",
		HotelID:     20,
		HotelName:   "Nile View",
		City:        "Cairo",
		Rooms:       []domain.RoomCount{{Type: "Single", Count: 2}},
		TotalCost:   200,
		CheckIn:     "2025-09-01",
		CheckOut:    "2025-09-05",
		BookingDate: "2025-08-20",
	})

	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, "Ana", booked[0].FullName)
	assert.Equal(t, "123", booked[0].Phone)
	assert.Equal(t, "2025-09-05", booked[0].CheckOut)
}

func TestBookingService_BookHotel_MissingFields(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.service.BookHotel(ctx, "a@x.com", BookHotelInput{
		HotelID: 20, HotelName: "Nile View", City: "Cairo",
		Rooms: []domain.RoomCount{{Type: "Single", Count: 1}}, TotalCost: 100, BookingDate: "2025-08-20",
	})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = f.service.BookHotel(ctx, "a@x.com", BookHotelInput{
		BookingID: "bk-1", HotelID: 20, HotelName: "Nile View", City: "Cairo",
		TotalCost: 100, BookingDate: "2025-08-20",
	})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestBookingService_CancelHotelBooking_RestoresLedger(t *testing.T) {
	producer := &MockProducer{}
	producer.On("Publish", mock.Anything, "booking-events", mock.Anything, mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(kafka.BookingEvent)
		return ok && event.Type == kafka.EventHotelCanceled
	})).Return(nil).Once()
	producer.On("Publish", mock.Anything, "booking-events", mock.Anything, mock.Anything).Return(nil)
	f := newFixture(t, producer)
	ctx := context.Background()

	_, err := f.hotels.BookRooms(ctx, 20, "Single", 2)
	require.NoError(t, err)
	_, err = f.service.BookHotel(ctx, "a@x.com", BookHotelInput{
		BookingID: "bk-1", HotelID: 20, HotelName: "Nile View", City: "Cairo",
		Rooms: []domain.RoomCount{{Type: "Single", Count: 2}}, TotalCost: 200, BookingDate: "2025-08-20",
	})
	require.NoError(t, err)
	user, err := f.users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	remaining, err := f.service.CancelHotelBooking(ctx, user.ID, user.Email, "bk-1")

	require.NoError(t, err)
	assert.Empty(t, remaining)

	hotel, err := f.hotels.GetByID(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 5, hotel.AvailableRooms[0].Quantity)
}

func TestBookingService_AddFavorite_FlightDefaults(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user, err := f.users.Create(ctx, domain.User{Email: "a@x.com"})
	require.NoError(t, err)

	favs, err := f.service.AddFavorite(ctx, user.ID, domain.Favorite{ID: 10, Type: "flight", From: "CAI"})

	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "CAI", favs[0].From)
	assert.Equal(t, "Unknown", favs[0].To)
	assert.Equal(t, "Unknown Airline", favs[0].Airline)

	_, err = f.service.AddFavorite(ctx, user.ID, domain.Favorite{ID: 10, Type: "flight"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
