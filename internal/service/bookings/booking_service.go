package bookings

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/kafka"
	"github.com/Domenick1991/travelbook/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, userID int64, fav domain.Favorite) ([]domain.Favorite, error)
	RemoveFavorite(ctx context.Context, userID int64, favID int64, favType string) ([]domain.Favorite, error)

	ListBookedFlights(ctx context.Context, userID int64) ([]domain.BookedFlight, error)
	BookFlight(ctx context.Context, email string, input BookFlightInput) ([]domain.BookedFlight, error)
	CancelFlightBooking(ctx context.Context, userID int64, email, bookingID string) ([]domain.BookedFlight, error)

	ListBookedHotels(ctx context.Context, userID int64) ([]domain.BookedHotel, error)
	BookHotel(ctx context.Context, email string, input BookHotelInput) ([]domain.BookedHotel, error)
	EditHotelBooking(ctx context.Context, userID int64, bookingID string, patch []byte) (*domain.BookedHotel, error)
	CancelHotelBooking(ctx context.Context, userID int64, email, bookingID string) ([]domain.BookedHotel, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	users       repository.UserRepository
	flights     repository.FlightRepository
	producer    Producer
	eventsTopic string
}

type BookFlightInput struct {
	FlightID int64 `json:"flightId"`
	Adults   int   `json:"adults"`
	Children int   `json:"children"`
}

type BookHotelInput struct {
	BookingID       string             `json:"bookingId"`
	HotelID         int64              `json:"hotelId"`
	HotelName       string             `json:"hotelName"`
	City            string             `json:"city"`
	Rooms           []domain.RoomCount `json:"rooms"`
	TotalCost       float64            `json:"totalCost"`
	CheckIn         string             `json:"checkIn"`
	CheckOut        string             `json:"checkOut"`
	BookingDate     string             `json:"bookingDate"`
	DiscountApplied bool               `json:"discountApplied"`
}

func NewBookingService(users repository.UserRepository, flights repository.FlightRepository, producer Producer, eventsTopic string) *BookingService {
	return &BookingService{
		users:       users,
		flights:     flights,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
}

// FlightCharge derives the charged price for a flight booking: every adult
// pays the base price, every child half of it. Plain float64 arithmetic, no
// rounding.
func FlightCharge(basePrice float64, adults, children int) float64 {
	return basePrice * (float64(adults) + float64(children)/2)
}

func (s *BookingService) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Favorites, nil
}

func (s *BookingService) AddFavorite(ctx context.Context, userID int64, fav domain.Favorite) ([]domain.Favorite, error) {
	if fav.ID == 0 || fav.Type == "" {
		return nil, fmt.Errorf("%w: id and type are required", domain.ErrInvalid)
	}
	applyFavoriteDefaults(&fav)
	return s.users.AddFavorite(ctx, userID, fav)
}

func (s *BookingService) RemoveFavorite(ctx context.Context, userID int64, favID int64, favType string) ([]domain.Favorite, error) {
	if favID == 0 || favType == "" {
		return nil, fmt.Errorf("%w: id and type are required", domain.ErrInvalid)
	}
	return s.users.RemoveFavorite(ctx, userID, favID, favType)
}

func (s *BookingService) ListBookedFlights(ctx context.Context, userID int64) ([]domain.BookedFlight, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.BookedFlights, nil
}

// BookFlight snapshots the flight into the user's bookings with the computed
// charge as its price. The canonical flight record keeps its base price.
func (s *BookingService) BookFlight(ctx context.Context, email string, input BookFlightInput) ([]domain.BookedFlight, error) {
	if input.FlightID == 0 {
		return nil, fmt.Errorf("%w: flightId is required", domain.ErrInvalid)
	}
	if input.Adults < 1 || input.Children < 0 {
		return nil, fmt.Errorf("%w: adults must be at least 1 and children non-negative", domain.ErrInvalid)
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	booking := domain.BookedFlight{
		BookingID: uuid.NewString(),
		Flight:    *flight,
		Adults:    input.Adults,
		Children:  input.Children,
		BookedAt:  time.Now().UnixMilli(),
	}
	booking.Price = FlightCharge(flight.Price, input.Adults, input.Children)

	booked, err := s.users.AddBookedFlight(ctx, email, booking)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.BookingEvent{
		Type:      kafka.EventFlightBooked,
		BookingID: booking.BookingID,
		UserEmail: email,
		FlightID:  flight.ID,
		Amount:    booking.Price,
	})
	return booked, nil
}

// CancelFlightBooking removes the stored booking. Flights carry no inventory
// ledger, so nothing is restored anywhere.
func (s *BookingService) CancelFlightBooking(ctx context.Context, userID int64, email, bookingID string) ([]domain.BookedFlight, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: bookingId is required", domain.ErrInvalid)
	}
	booked, err := s.users.RemoveBookedFlight(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.BookingEvent{
		Type:      kafka.EventFlightCanceled,
		BookingID: bookingID,
		UserEmail: email,
	})
	return booked, nil
}

func (s *BookingService) ListBookedHotels(ctx context.Context, userID int64) ([]domain.BookedHotel, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.BookedHotels, nil
}

// BookHotel records a stay under the user. The rooms were already deducted by
// the hotel booking endpoint; this stores what was deducted so cancellation
// can replay it.
func (s *BookingService) BookHotel(ctx context.Context, email string, input BookHotelInput) ([]domain.BookedHotel, error) {
	switch {
	case input.BookingID == "":
		return nil, fmt.Errorf("%w: bookingId is required", domain.ErrInvalid)
	case input.HotelID == 0:
		return nil, fmt.Errorf("%w: hotelId is required", domain.ErrInvalid)
	case input.HotelName == "" || input.City == "":
		return nil, fmt.Errorf("%w: hotelName and city are required", domain.ErrInvalid)
	case len(input.Rooms) == 0:
		return nil, fmt.Errorf("%w: rooms are required", domain.ErrInvalid)
	case input.TotalCost <= 0:
		return nil, fmt.Errorf("%w: totalCost must be positive", domain.ErrInvalid)
	case input.BookingDate == "":
		return nil, fmt.Errorf("%w: bookingDate is required", domain.ErrInvalid)
	}

	user, err := s.users.GetOrCreate(ctx, email)
	if err != nil {
		return nil, err
	}

	booking := domain.BookedHotel{
		BookingID:       input.BookingID,
		HotelID:         input.HotelID,
		HotelName:       input.HotelName,
		City:            input.City,
		Rooms:           input.Rooms,
		TotalCost:       input.TotalCost,
		FullName:        user.Name,
		Phone:           user.Phone,
		CheckIn:         input.CheckIn,
		CheckOut:        input.CheckOut,
		BookingDate:     input.BookingDate,
		DiscountApplied: input.DiscountApplied,
	}

	booked, err := s.users.AddBookedHotel(ctx, email, booking)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.BookingEvent{
		Type:      kafka.EventHotelBooked,
		BookingID: booking.BookingID,
		UserEmail: email,
		HotelID:   booking.HotelID,
		Amount:    booking.TotalCost,
	})
	return booked, nil
}

func (s *BookingService) EditHotelBooking(ctx context.Context, userID int64, bookingID string, patch []byte) (*domain.BookedHotel, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: bookingId is required", domain.ErrInvalid)
	}
	return s.users.UpdateBookedHotel(ctx, userID, bookingID, patch)
}

func (s *BookingService) CancelHotelBooking(ctx context.Context, userID int64, email, bookingID string) ([]domain.BookedHotel, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: bookingId is required", domain.ErrInvalid)
	}
	booked, err := s.users.CancelBookedHotel(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.BookingEvent{
		Type:      kafka.EventHotelCanceled,
		BookingID: bookingID,
		UserEmail: email,
	})
	return booked, nil
}

func (s *BookingService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event.CreatedAt = time.Now()
	if err := s.producer.Publish(ctx, s.eventsTopic, event.BookingID, event); err != nil {
		log.Printf("publish %s event for booking %s: %v", event.Type, event.BookingID, err)
	}
}

func applyFavoriteDefaults(fav *domain.Favorite) {
	if fav.Type != "flight" {
		return
	}
	if fav.Airline == "" {
		fav.Airline = "Unknown Airline"
	}
	if fav.FlightNumber == "" {
		fav.FlightNumber = "N/A"
	}
	if fav.From == "" {
		fav.From = "Unknown"
	}
	if fav.To == "" {
		fav.To = "Unknown"
	}
	if fav.DepartureTime == "" {
		fav.DepartureTime = "N/A"
	}
	if fav.ArrivalTime == "" {
		fav.ArrivalTime = "N/A"
	}
	if fav.Date == "" {
		fav.Date = "N/A"
	}
}

var _ BookingUseCase = (*BookingService)(nil)
