package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/store"
)

type PlaceRepository interface {
	Cities(ctx context.Context) ([]domain.CityPlaces, error)
	PlacesIn(ctx context.Context, city string) ([]domain.Place, error)
	FindPlace(ctx context.Context, id int64) (*domain.Place, error)
	AddCity(ctx context.Context, city string, places []domain.Place) error
	ReplacePlaces(ctx context.Context, city string, places []domain.Place) error
	DeleteCity(ctx context.Context, city string) error
}

type DocPlaceRepository struct {
	store *store.Store
}

func NewPlaceRepository(s *store.Store) PlaceRepository {
	return &DocPlaceRepository{store: s}
}

func (r *DocPlaceRepository) Cities(ctx context.Context) ([]domain.CityPlaces, error) {
	var cities []domain.CityPlaces
	err := r.store.View(func(doc *domain.Document) error {
		cities = append([]domain.CityPlaces{}, doc.Places...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cities, nil
}

// PlacesIn returns the places of one city, or an empty list for a city the
// document does not know about.
func (r *DocPlaceRepository) PlacesIn(ctx context.Context, city string) ([]domain.Place, error) {
	places := []domain.Place{}
	err := r.store.View(func(doc *domain.Document) error {
		for _, cp := range doc.Places {
			if strings.EqualFold(cp.City, city) {
				places = append(places, cp.Places...)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return places, nil
}

// FindPlace scans every city for the place id. There is no global index.
func (r *DocPlaceRepository) FindPlace(ctx context.Context, id int64) (*domain.Place, error) {
	var place *domain.Place
	err := r.store.View(func(doc *domain.Document) error {
		for _, cp := range doc.Places {
			for _, p := range cp.Places {
				if p.ID == id {
					place = &p
					return nil
				}
			}
		}
		return fmt.Errorf("place %d: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return place, nil
}

func (r *DocPlaceRepository) AddCity(ctx context.Context, city string, places []domain.Place) error {
	return r.store.Update(func(doc *domain.Document) error {
		for _, cp := range doc.Places {
			if strings.EqualFold(cp.City, city) {
				return fmt.Errorf("%w: city already exists", domain.ErrConflict)
			}
		}
		if places == nil {
			places = []domain.Place{}
		}
		doc.Places = append(doc.Places, domain.CityPlaces{City: city, Places: places})
		return nil
	})
}

func (r *DocPlaceRepository) ReplacePlaces(ctx context.Context, city string, places []domain.Place) error {
	return r.store.Update(func(doc *domain.Document) error {
		for i := range doc.Places {
			if strings.EqualFold(doc.Places[i].City, city) {
				doc.Places[i].Places = places
				return nil
			}
		}
		return fmt.Errorf("city %q: %w", city, domain.ErrNotFound)
	})
}

func (r *DocPlaceRepository) DeleteCity(ctx context.Context, city string) error {
	return r.store.Update(func(doc *domain.Document) error {
		for i := range doc.Places {
			if strings.EqualFold(doc.Places[i].City, city) {
				doc.Places = append(doc.Places[:i], doc.Places[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("city %q: %w", city, domain.ErrNotFound)
	})
}

var _ PlaceRepository = (*DocPlaceRepository)(nil)
