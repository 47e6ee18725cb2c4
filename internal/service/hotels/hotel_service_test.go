package hotels

import (
	"context"
	"testing"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) List(ctx context.Context, city string) ([]domain.Hotel, error) {
	args := m.Called(ctx, city)
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Create(ctx context.Context, hotel domain.Hotel) (*domain.Hotel, error) {
	args := m.Called(ctx, hotel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Update(ctx context.Context, id int64, patch []byte) (*domain.Hotel, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHotelRepository) BookRooms(ctx context.Context, hotelID int64, roomType string, quantity int) (*repository.BookingReceipt, error) {
	args := m.Called(ctx, hotelID, roomType, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BookingReceipt), args.Error(1)
}

func (m *MockHotelRepository) RestoreRooms(ctx context.Context, hotelID int64, rooms []domain.RoomCount) error {
	args := m.Called(ctx, hotelID, rooms)
	return args.Error(0)
}

func TestHotelService_BookRooms_Success(t *testing.T) {
	repo := &MockHotelRepository{}
	service := NewHotelService(repo)
	ctx := context.Background()

	receipt := &repository.BookingReceipt{RoomType: "Single", Booked: 2, Remaining: 3}
	repo.On("BookRooms", ctx, int64(1), "single", 2).Return(receipt, nil).Once()

	got, err := service.BookRooms(ctx, 1, "single", 2)

	require.NoError(t, err)
	assert.Equal(t, 3, got.Remaining)
	repo.AssertExpectations(t)
}

func TestHotelService_BookRooms_ValidationErrors(t *testing.T) {
	repo := &MockHotelRepository{}
	service := NewHotelService(repo)
	ctx := context.Background()

	testCases := []struct {
		name     string
		roomType string
		quantity int
	}{
		{name: "missing room type", roomType: "", quantity: 1},
		{name: "zero quantity", roomType: "Single", quantity: 0},
		{name: "negative quantity", roomType: "Single", quantity: -2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.BookRooms(ctx, 1, tc.roomType, tc.quantity)
			assert.ErrorIs(t, err, domain.ErrInvalid)
		})
	}
	repo.AssertNotCalled(t, "BookRooms", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHotelService_CancelRooms_ValidatesInput(t *testing.T) {
	repo := &MockHotelRepository{}
	service := NewHotelService(repo)
	ctx := context.Background()

	err := service.CancelRooms(ctx, 0, []domain.RoomCount{{Type: "Single", Count: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	err = service.CancelRooms(ctx, 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	err = service.CancelRooms(ctx, 1, []domain.RoomCount{{Type: "Single", Count: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	repo.AssertNotCalled(t, "RestoreRooms", mock.Anything, mock.Anything, mock.Anything)
}

func TestHotelService_CancelRooms_DelegatesToLedger(t *testing.T) {
	repo := &MockHotelRepository{}
	service := NewHotelService(repo)
	ctx := context.Background()

	rooms := []domain.RoomCount{{Type: "Single", Count: 2}, {Type: "Double", Count: 1}}
	repo.On("RestoreRooms", ctx, int64(1), rooms).Return(nil).Once()

	require.NoError(t, service.CancelRooms(ctx, 1, rooms))
	repo.AssertExpectations(t)
}

func TestHotelService_Create_Validation(t *testing.T) {
	service := NewHotelService(&MockHotelRepository{})
	ctx := context.Background()

	_, err := service.Create(ctx, domain.Hotel{Name: "Nile View"})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = service.Create(ctx, domain.Hotel{
		Name: "Nile View",
		City: "Cairo",
		AvailableRooms: []domain.Room{
			{Type: "Single", Quantity: -1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
