package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/store"
)

// BookingReceipt reports the outcome of a room booking.
type BookingReceipt struct {
	RoomType  string `json:"roomType"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
}

type HotelRepository interface {
	List(ctx context.Context, city string) ([]domain.Hotel, error)
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	Create(ctx context.Context, hotel domain.Hotel) (*domain.Hotel, error)
	Update(ctx context.Context, id int64, patch []byte) (*domain.Hotel, error)
	Delete(ctx context.Context, id int64) error
	BookRooms(ctx context.Context, hotelID int64, roomType string, quantity int) (*BookingReceipt, error)
	RestoreRooms(ctx context.Context, hotelID int64, rooms []domain.RoomCount) error
}

type DocHotelRepository struct {
	store *store.Store
}

func NewHotelRepository(s *store.Store) HotelRepository {
	return &DocHotelRepository{store: s}
}

func (r *DocHotelRepository) List(ctx context.Context, city string) ([]domain.Hotel, error) {
	var hotels []domain.Hotel
	err := r.store.View(func(doc *domain.Document) error {
		hotels = make([]domain.Hotel, 0, len(doc.Hotels))
		for _, h := range doc.Hotels {
			if city != "" && !strings.EqualFold(h.City, city) {
				continue
			}
			hotels = append(hotels, h)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *DocHotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var hotel *domain.Hotel
	err := r.store.View(func(doc *domain.Document) error {
		h := findHotel(doc, id)
		if h == nil {
			return fmt.Errorf("hotel %d: %w", id, domain.ErrNotFound)
		}
		cp := *h
		hotel = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hotel, nil
}

func (r *DocHotelRepository) Create(ctx context.Context, hotel domain.Hotel) (*domain.Hotel, error) {
	err := r.store.Update(func(doc *domain.Document) error {
		hotel.ID = newID()
		for findHotel(doc, hotel.ID) != nil {
			hotel.ID++
		}
		if hotel.AvailableRooms == nil {
			hotel.AvailableRooms = []domain.Room{}
		}
		doc.Hotels = append(doc.Hotels, hotel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *DocHotelRepository) Update(ctx context.Context, id int64, patch []byte) (*domain.Hotel, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	var updated domain.Hotel
	err := r.store.Update(func(doc *domain.Document) error {
		h := findHotel(doc, id)
		if h == nil {
			return fmt.Errorf("hotel %d: %w", id, domain.ErrNotFound)
		}
		if err := json.Unmarshal(patch, h); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalid, err)
		}
		h.ID = id
		updated = *h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *DocHotelRepository) Delete(ctx context.Context, id int64) error {
	return r.store.Update(func(doc *domain.Document) error {
		for i := range doc.Hotels {
			if doc.Hotels[i].ID == id {
				doc.Hotels = append(doc.Hotels[:i], doc.Hotels[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("hotel %d: %w", id, domain.ErrNotFound)
	})
}

// BookRooms decrements the available quantity for a room type. The whole
// check-and-decrement runs inside one store update so the quantity can never
// go negative.
func (r *DocHotelRepository) BookRooms(ctx context.Context, hotelID int64, roomType string, quantity int) (*BookingReceipt, error) {
	var receipt BookingReceipt
	err := r.store.Update(func(doc *domain.Document) error {
		h := findHotel(doc, hotelID)
		if h == nil {
			return fmt.Errorf("hotel %d: %w", hotelID, domain.ErrNotFound)
		}
		room := findRoom(h, roomType)
		if room == nil {
			return fmt.Errorf("room type %q: %w", roomType, domain.ErrNotFound)
		}
		if room.Quantity < quantity {
			return fmt.Errorf("%w: not enough rooms available", domain.ErrInvalid)
		}
		room.Quantity -= quantity
		receipt = BookingReceipt{RoomType: room.Type, Booked: quantity, Remaining: room.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// RestoreRooms returns booked quantities to the hotel's inventory. Every room
// type is resolved before anything is incremented, so an unknown type leaves
// the ledger untouched.
func (r *DocHotelRepository) RestoreRooms(ctx context.Context, hotelID int64, rooms []domain.RoomCount) error {
	return r.store.Update(func(doc *domain.Document) error {
		h := findHotel(doc, hotelID)
		if h == nil {
			return fmt.Errorf("hotel %d: %w", hotelID, domain.ErrNotFound)
		}
		return restoreRooms(h, rooms)
	})
}

func restoreRooms(h *domain.Hotel, rooms []domain.RoomCount) error {
	matched := make([]*domain.Room, len(rooms))
	for i, rc := range rooms {
		room := findRoom(h, rc.Type)
		if room == nil {
			return fmt.Errorf("%w: room type %q not found", domain.ErrInvalid, rc.Type)
		}
		matched[i] = room
	}
	for i, rc := range rooms {
		matched[i].Quantity += rc.Count
	}
	return nil
}

func findHotel(doc *domain.Document, id int64) *domain.Hotel {
	for i := range doc.Hotels {
		if doc.Hotels[i].ID == id {
			return &doc.Hotels[i]
		}
	}
	return nil
}

func findRoom(h *domain.Hotel, roomType string) *domain.Room {
	for i := range h.AvailableRooms {
		if strings.EqualFold(h.AvailableRooms[i].Type, roomType) {
			return &h.AvailableRooms[i]
		}
	}
	return nil
}

var _ HotelRepository = (*DocHotelRepository)(nil)
