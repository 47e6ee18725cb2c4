package trips

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight domain.Flight) (*domain.Flight, error)
	Update(ctx context.Context, id int64, patch []byte) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

// FlightFilter narrows a listing. Empty fields mean no constraint; from/to
// match case-insensitively, date exactly.
type FlightFilter struct {
	From string
	To   string
	Date string
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	flights, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if filter.From != "" && !strings.EqualFold(f.From, filter.From) {
			continue
		}
		if filter.To != "" && !strings.EqualFold(f.To, filter.To) {
			continue
		}
		if filter.Date != "" && f.Date != filter.Date {
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered, nil
}

func (s *FlightService) listAll(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	if flight.From == "" || flight.To == "" {
		return nil, fmt.Errorf("%w: from and to are required", domain.ErrInvalid)
	}
	created, err := s.repo.Create(ctx, flight)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, patch []byte) (*domain.Flight, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
