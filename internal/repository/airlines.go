package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/store"
)

type AirlineRepository interface {
	List(ctx context.Context) ([]domain.Airline, error)
	GetByID(ctx context.Context, id int64) (*domain.Airline, error)
	Create(ctx context.Context, name string) (*domain.Airline, error)
	Delete(ctx context.Context, id int64) error
}

type DocAirlineRepository struct {
	store *store.Store
}

func NewAirlineRepository(s *store.Store) AirlineRepository {
	return &DocAirlineRepository{store: s}
}

func (r *DocAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	var airlines []domain.Airline
	err := r.store.View(func(doc *domain.Document) error {
		airlines = append([]domain.Airline{}, doc.Airlines...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return airlines, nil
}

func (r *DocAirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	var airline *domain.Airline
	err := r.store.View(func(doc *domain.Document) error {
		for _, a := range doc.Airlines {
			if a.ID == id {
				airline = &a
				return nil
			}
		}
		return fmt.Errorf("airline %d: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return airline, nil
}

// Create assigns sequential ids: max existing id plus one, starting at 1.
func (r *DocAirlineRepository) Create(ctx context.Context, name string) (*domain.Airline, error) {
	var airline domain.Airline
	err := r.store.Update(func(doc *domain.Document) error {
		var maxID int64
		for _, a := range doc.Airlines {
			if a.ID > maxID {
				maxID = a.ID
			}
		}
		airline = domain.Airline{ID: maxID + 1, Name: name}
		doc.Airlines = append(doc.Airlines, airline)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &airline, nil
}

// Delete refuses to remove an airline while any flight still references it.
func (r *DocAirlineRepository) Delete(ctx context.Context, id int64) error {
	return r.store.Update(func(doc *domain.Document) error {
		idx := -1
		for i := range doc.Airlines {
			if doc.Airlines[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("airline %d: %w", id, domain.ErrNotFound)
		}
		for _, f := range doc.Flights {
			if f.AirlineID == id {
				return fmt.Errorf("%w: airline is used in existing flights", domain.ErrConflict)
			}
		}
		doc.Airlines = append(doc.Airlines[:idx], doc.Airlines[idx+1:]...)
		return nil
	})
}

var _ AirlineRepository = (*DocAirlineRepository)(nil)
