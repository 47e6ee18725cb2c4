package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/store"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetOrCreate is an idempotent upsert keyed by email, used when an
	// authenticated action arrives for an email with no backing record.
	GetOrCreate(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, patch []byte) (*domain.User, error)
	Delete(ctx context.Context, id int64) error

	SetPassword(ctx context.Context, id int64, hash string) error
	SetResetToken(ctx context.Context, id int64, tokenHash string, expiry int64) error
	ClearExpiredResetTokens(ctx context.Context, now int64) (int, error)
	SetPhoto(ctx context.Context, id int64, url string) error

	AddFavorite(ctx context.Context, id int64, fav domain.Favorite) ([]domain.Favorite, error)
	RemoveFavorite(ctx context.Context, id int64, favID int64, favType string) ([]domain.Favorite, error)

	AddBookedFlight(ctx context.Context, email string, booking domain.BookedFlight) ([]domain.BookedFlight, error)
	RemoveBookedFlight(ctx context.Context, id int64, bookingID string) ([]domain.BookedFlight, error)
	AddBookedHotel(ctx context.Context, email string, booking domain.BookedHotel) ([]domain.BookedHotel, error)
	UpdateBookedHotel(ctx context.Context, id int64, bookingID string, patch []byte) (*domain.BookedHotel, error)
	CancelBookedHotel(ctx context.Context, id int64, bookingID string) ([]domain.BookedHotel, error)
}

type DocUserRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) UserRepository {
	return &DocUserRepository{store: s}
}

func (r *DocUserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.store.View(func(doc *domain.Document) error {
		users = append([]domain.User{}, doc.Users...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *DocUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := r.store.View(func(doc *domain.Document) error {
		u := findUserByID(doc, id)
		if u == nil {
			return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		cp := *u
		user = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *DocUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := r.store.View(func(doc *domain.Document) error {
		u := findUserByEmail(doc, email)
		if u == nil {
			return fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		cp := *u
		user = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *DocUserRepository) GetOrCreate(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.store.Update(func(doc *domain.Document) error {
		if u := findUserByEmail(doc, email); u != nil {
			user = *u
			return nil
		}
		user = newUser(doc, email)
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create registers a new user. The email must not already be taken.
func (r *DocUserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	err := r.store.Update(func(doc *domain.Document) error {
		if findUserByEmail(doc, user.Email) != nil {
			return fmt.Errorf("%w: user already exists", domain.ErrConflict)
		}
		user.ID = newID()
		for findUserByID(doc, user.ID) != nil {
			user.ID++
		}
		if user.Favorites == nil {
			user.Favorites = []domain.Favorite{}
		}
		if user.BookedFlights == nil {
			user.BookedFlights = []domain.BookedFlight{}
		}
		if user.BookedHotels == nil {
			user.BookedHotels = []domain.BookedHotel{}
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update merges profile fields over the existing record. Credentials, reset
// state and the owned sub-collections never change through this path.
func (r *DocUserRepository) Update(ctx context.Context, id int64, patch []byte) (*domain.User, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	var updated domain.User
	err := r.store.Update(func(doc *domain.Document) error {
		u := findUserByID(doc, id)
		if u == nil {
			return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		prev := *u
		if err := json.Unmarshal(patch, u); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalid, err)
		}
		u.ID = prev.ID
		u.Password = prev.Password
		u.ResetTokenHash = prev.ResetTokenHash
		u.ResetTokenExpiry = prev.ResetTokenExpiry
		u.Favorites = prev.Favorites
		u.BookedFlights = prev.BookedFlights
		u.BookedHotels = prev.BookedHotels
		if u.Email != prev.Email {
			for i := range doc.Users {
				if doc.Users[i].ID != id && doc.Users[i].Email == u.Email {
					return fmt.Errorf("%w: email already taken", domain.ErrConflict)
				}
			}
		}
		updated = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *DocUserRepository) Delete(ctx context.Context, id int64) error {
	return r.store.Update(func(doc *domain.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	})
}

// SetPassword replaces the stored hash and invalidates any reset token.
func (r *DocUserRepository) SetPassword(ctx context.Context, id int64, hash string) error {
	return r.withUser(id, func(doc *domain.Document, u *domain.User) error {
		u.Password = hash
		u.ResetTokenHash = ""
		u.ResetTokenExpiry = 0
		return nil
	})
}

func (r *DocUserRepository) SetResetToken(ctx context.Context, id int64, tokenHash string, expiry int64) error {
	return r.withUser(id, func(doc *domain.Document, u *domain.User) error {
		u.ResetTokenHash = tokenHash
		u.ResetTokenExpiry = expiry
		return nil
	})
}

// ClearExpiredResetTokens drops reset state past its expiry and reports how
// many users were swept.
func (r *DocUserRepository) ClearExpiredResetTokens(ctx context.Context, now int64) (int, error) {
	cleared := 0
	err := r.store.Update(func(doc *domain.Document) error {
		for i := range doc.Users {
			u := &doc.Users[i]
			if u.ResetTokenHash != "" && u.ResetTokenExpiry < now {
				u.ResetTokenHash = ""
				u.ResetTokenExpiry = 0
				cleared++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cleared, nil
}

func (r *DocUserRepository) SetPhoto(ctx context.Context, id int64, url string) error {
	return r.withUser(id, func(doc *domain.Document, u *domain.User) error {
		u.PhotoURL = url
		return nil
	})
}

// AddFavorite appends a favorite, rejecting duplicates of the same (id, type).
func (r *DocUserRepository) AddFavorite(ctx context.Context, id int64, fav domain.Favorite) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	err := r.withUser(id, func(doc *domain.Document, u *domain.User) error {
		for _, f := range u.Favorites {
			if f.ID == fav.ID && f.Type == fav.Type {
				return fmt.Errorf("%w: already favorited", domain.ErrConflict)
			}
		}
		u.Favorites = append(u.Favorites, fav)
		favorites = append([]domain.Favorite{}, u.Favorites...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *DocUserRepository) RemoveFavorite(ctx context.Context, id int64, favID int64, favType string) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	err := r.withUser(id, func(doc *domain.Document, u *domain.User) error {
		kept := u.Favorites[:0]
		for _, f := range u.Favorites {
			if !(f.ID == favID && f.Type == favType) {
				kept = append(kept, f)
			}
		}
		u.Favorites = kept
		favorites = append([]domain.Favorite{}, u.Favorites...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *DocUserRepository) AddBookedFlight(ctx context.Context, email string, booking domain.BookedFlight) ([]domain.BookedFlight, error) {
	var booked []domain.BookedFlight
	err := r.store.Update(func(doc *domain.Document) error {
		u := findUserByEmail(doc, email)
		if u == nil {
			created := newUser(doc, email)
			doc.Users = append(doc.Users, created)
			u = &doc.Users[len(doc.Users)-1]
		}
		u.BookedFlights = append(u.BookedFlights, booking)
		booked = append([]domain.BookedFlight{}, u.BookedFlights...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booked, nil
}

func (r *DocUserRepository) RemoveBookedFlight(ctx context.Context, id int64, bookingID string) ([]domain.BookedFlight, error) {
	var booked []domain.BookedFlight
	err := r.withUser(id, func(doc *domain.Document, u *domain.User) error {
		idx := -1
		for i, b := range u.BookedFlights {
			if b.BookingID == bookingID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
		}
		u.BookedFlights = append(u.BookedFlights[:idx], u.BookedFlights[idx+1:]...)
		booked = append([]domain.BookedFlight{}, u.BookedFlights...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booked, nil
}

func (r *DocUserRepository) AddBookedHotel(ctx context.Context, email string, booking domain.BookedHotel) ([]domain.BookedHotel, error) {
	var booked []domain.BookedHotel
	err := r.store.Update(func(doc *domain.Document) error {
		if findHotel(doc, booking.HotelID) == nil {
			return fmt.Errorf("hotel %d: %w", booking.HotelID, domain.ErrNotFound)
		}
		u := findUserByEmail(doc, email)
		if u == nil {
			created := newUser(doc, email)
			doc.Users = append(doc.Users, created)
			u = &doc.Users[len(doc.Users)-1]
		}
		for _, b := range u.BookedHotels {
			if b.BookingID == booking.BookingID {
				return fmt.Errorf("%w: booking id already used", domain.ErrConflict)
			}
		}
		u.BookedHotels = append(u.BookedHotels, booking)
		booked = append([]domain.BookedHotel{}, u.BookedHotels...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booked, nil
}

// UpdateBookedHotel merges stay fields over a stored hotel booking. The room
// list and identifiers are fixed; changing rooms means cancel and rebook so
// the inventory ledger stays in step with what was deducted.
func (r *DocUserRepository) UpdateBookedHotel(ctx context.Context, id int64, bookingID string, patch []byte) (*domain.BookedHotel, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	var updated domain.BookedHotel
	err := r.withUser(id, func(doc *domain.Document, u *domain.User) error {
		for i := range u.BookedHotels {
			b := &u.BookedHotels[i]
			if b.BookingID != bookingID {
				continue
			}
			prev := *b
			if err := json.Unmarshal(patch, b); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrInvalid, err)
			}
			b.BookingID = prev.BookingID
			b.HotelID = prev.HotelID
			b.HotelName = prev.HotelName
			b.City = prev.City
			b.Rooms = prev.Rooms
			updated = *b
			return nil
		}
		return fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CancelBookedHotel removes the booking and replays its rooms back into the
// hotel's inventory in the same store update. If the hotel has since been
// deleted there is no inventory left to restore and the cancellation still
// goes through; an unknown room type on a live hotel is an error.
func (r *DocUserRepository) CancelBookedHotel(ctx context.Context, id int64, bookingID string) ([]domain.BookedHotel, error) {
	var booked []domain.BookedHotel
	err := r.withUser(id, func(doc *domain.Document, u *domain.User) error {
		idx := -1
		for i, b := range u.BookedHotels {
			if b.BookingID == bookingID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
		}
		booking := u.BookedHotels[idx]
		if h := findHotel(doc, booking.HotelID); h != nil {
			if err := restoreRooms(h, booking.Rooms); err != nil {
				return err
			}
		}
		u.BookedHotels = append(u.BookedHotels[:idx], u.BookedHotels[idx+1:]...)
		booked = append([]domain.BookedHotel{}, u.BookedHotels...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booked, nil
}

func (r *DocUserRepository) withUser(id int64, fn func(doc *domain.Document, u *domain.User) error) error {
	return r.store.Update(func(doc *domain.Document) error {
		u := findUserByID(doc, id)
		if u == nil {
			return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return fn(doc, u)
	})
}

func newUser(doc *domain.Document, email string) domain.User {
	u := domain.User{
		ID:            newID(),
		Email:         email,
		Favorites:     []domain.Favorite{},
		BookedFlights: []domain.BookedFlight{},
		BookedHotels:  []domain.BookedHotel{},
	}
	for findUserByID(doc, u.ID) != nil {
		u.ID++
	}
	return u
}

func findUserByID(doc *domain.Document, id int64) *domain.User {
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			return &doc.Users[i]
		}
	}
	return nil
}

// Emails match case-sensitively, exactly as stored.
func findUserByEmail(doc *domain.Document, email string) *domain.User {
	for i := range doc.Users {
		if doc.Users[i].Email == email {
			return &doc.Users[i]
		}
	}
	return nil
}

var _ UserRepository = (*DocUserRepository)(nil)
