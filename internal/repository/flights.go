package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/store"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight domain.Flight) (*domain.Flight, error)
	Update(ctx context.Context, id int64, patch []byte) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type DocFlightRepository struct {
	store *store.Store
}

func NewFlightRepository(s *store.Store) FlightRepository {
	return &DocFlightRepository{store: s}
}

func (r *DocFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	err := r.store.View(func(doc *domain.Document) error {
		flights = make([]domain.Flight, 0, len(doc.Flights))
		for _, f := range doc.Flights {
			resolveAirline(&f, doc)
			flights = append(flights, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *DocFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	var flight *domain.Flight
	err := r.store.View(func(doc *domain.Document) error {
		for _, f := range doc.Flights {
			if f.ID == id {
				resolveAirline(&f, doc)
				flight = &f
				return nil
			}
		}
		return fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return flight, nil
}

func (r *DocFlightRepository) Create(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	err := r.store.Update(func(doc *domain.Document) error {
		flight.ID = newID()
		for flightExists(doc, flight.ID) {
			flight.ID++
		}
		doc.Flights = append(doc.Flights, flight)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *DocFlightRepository) Update(ctx context.Context, id int64, patch []byte) (*domain.Flight, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	var updated domain.Flight
	err := r.store.Update(func(doc *domain.Document) error {
		for i := range doc.Flights {
			if doc.Flights[i].ID != id {
				continue
			}
			if err := json.Unmarshal(patch, &doc.Flights[i]); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrInvalid, err)
			}
			doc.Flights[i].ID = id
			updated = doc.Flights[i]
			return nil
		}
		return fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *DocFlightRepository) Delete(ctx context.Context, id int64) error {
	return r.store.Update(func(doc *domain.Document) error {
		for i := range doc.Flights {
			if doc.Flights[i].ID == id {
				doc.Flights = append(doc.Flights[:i], doc.Flights[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	})
}

// resolveAirline fills the denormalized airline name. A dangling airlineId
// reads as "Unknown Airline" rather than failing the lookup.
func resolveAirline(f *domain.Flight, doc *domain.Document) {
	if f.AirlineID != 0 {
		for _, a := range doc.Airlines {
			if a.ID == f.AirlineID {
				f.Airline = a.Name
				return
			}
		}
		f.Airline = "Unknown Airline"
		return
	}
	if f.Airline == "" {
		f.Airline = "Unknown Airline"
	}
}

func flightExists(doc *domain.Document, id int64) bool {
	for _, f := range doc.Flights {
		if f.ID == id {
			return true
		}
	}
	return false
}

var _ FlightRepository = (*DocFlightRepository)(nil)
