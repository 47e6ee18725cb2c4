package hotels

import (
	"context"
	"fmt"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/repository"
)

type HotelUseCase interface {
	List(ctx context.Context, city string) ([]domain.Hotel, error)
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	Create(ctx context.Context, hotel domain.Hotel) (*domain.Hotel, error)
	Update(ctx context.Context, id int64, patch []byte) (*domain.Hotel, error)
	Delete(ctx context.Context, id int64) error
	BookRooms(ctx context.Context, hotelID int64, roomType string, quantity int) (*repository.BookingReceipt, error)
	CancelRooms(ctx context.Context, hotelID int64, rooms []domain.RoomCount) error
}

type HotelService struct {
	repo repository.HotelRepository
}

func NewHotelService(repo repository.HotelRepository) *HotelService {
	return &HotelService{repo: repo}
}

func (s *HotelService) List(ctx context.Context, city string) ([]domain.Hotel, error) {
	return s.repo.List(ctx, city)
}

func (s *HotelService) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *HotelService) Create(ctx context.Context, hotel domain.Hotel) (*domain.Hotel, error) {
	if hotel.Name == "" || hotel.City == "" {
		return nil, fmt.Errorf("%w: name and city are required", domain.ErrInvalid)
	}
	for _, r := range hotel.AvailableRooms {
		if r.Type == "" || r.Quantity < 0 {
			return nil, fmt.Errorf("%w: rooms need a type and a non-negative quantity", domain.ErrInvalid)
		}
	}
	return s.repo.Create(ctx, hotel)
}

func (s *HotelService) Update(ctx context.Context, id int64, patch []byte) (*domain.Hotel, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *HotelService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// BookRooms reserves quantity rooms of the given type. The room-type match is
// case-insensitive; the deducted quantity only changes when the whole request
// can be satisfied.
func (s *HotelService) BookRooms(ctx context.Context, hotelID int64, roomType string, quantity int) (*repository.BookingReceipt, error) {
	if roomType == "" || quantity <= 0 {
		return nil, fmt.Errorf("%w: roomType and a positive quantity are required", domain.ErrInvalid)
	}
	return s.repo.BookRooms(ctx, hotelID, roomType, quantity)
}

// CancelRooms returns previously booked quantities to the hotel. Every room
// type must resolve or nothing is restored.
func (s *HotelService) CancelRooms(ctx context.Context, hotelID int64, rooms []domain.RoomCount) error {
	if hotelID == 0 || len(rooms) == 0 {
		return fmt.Errorf("%w: hotelId and rooms are required", domain.ErrInvalid)
	}
	for _, rc := range rooms {
		if rc.Type == "" || rc.Count <= 0 {
			return fmt.Errorf("%w: each room needs a type and a positive count", domain.ErrInvalid)
		}
	}
	return s.repo.RestoreRooms(ctx, hotelID, rooms)
}

var _ HotelUseCase = (*HotelService)(nil)
