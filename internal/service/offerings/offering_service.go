package offerings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zvrva/travelbook/internal/domain"
	"github.com/zvrva/travelbook/internal/repository"
)

type OfferingUseCase interface {
	Create(ctx context.Context, input CreateOfferingInput) (*domain.Offering, error)
	List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error)
	GetByID(ctx context.Context, id string) (*domain.Offering, error)
}

type Cache interface {
	GetOfferings(ctx context.Context) ([]domain.Offering, error)
	SetOfferings(ctx context.Context, offerings []domain.Offering) error
	InvalidateOfferings(ctx context.Context) error
}

type CreateOfferingInput struct {
	Category      domain.OfferingCategory `json:"category"`
	Origin        string                  `json:"origin"`
	Destination   string                  `json:"destination"`
	DepartureTime time.Time               `json:"departure_time"`
	PriceCents    int64                   `json:"price_cents"`
	TotalSeats    int                     `json:"total_seats"`
}

type OfferingService struct {
	repo  repository.OfferingRepository
	cache Cache
}

func NewOfferingService(repo repository.OfferingRepository, cache Cache) *OfferingService {
	return &OfferingService{repo: repo, cache: cache}
}

func (s *OfferingService) Create(ctx context.Context, input CreateOfferingInput) (*domain.Offering, error) {
	if !input.Category.Valid() {
		return nil, domain.ErrInvalidRequest
	}
	if input.Origin == "" || input.Destination == "" {
		return nil, domain.ErrInvalidRequest
	}
	if input.TotalSeats < 1 || input.PriceCents < 0 {
		return nil, domain.ErrInvalidRequest
	}

	offering := &domain.Offering{
		ID:            uuid.NewString(),
		Category:      input.Category,
		Origin:        input.Origin,
		Destination:   input.Destination,
		DepartureTime: input.DepartureTime,
		PriceCents:    input.PriceCents,
		TotalSeats:    input.TotalSeats,
	}
	if err := s.repo.Create(ctx, offering); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateOfferings(ctx)
	}
	return offering, nil
}

// List returns bookable offerings. Only the unfiltered listing goes through
// the cache; filtered queries hit the database directly.
func (s *OfferingService) List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error) {
	if filter.Empty() && s.cache != nil {
		if cached, err := s.cache.GetOfferings(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	offerings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.Empty() && s.cache != nil {
		_ = s.cache.SetOfferings(ctx, offerings)
	}
	return offerings, nil
}

func (s *OfferingService) GetByID(ctx context.Context, id string) (*domain.Offering, error) {
	return s.repo.GetByID(ctx, id)
}

var _ OfferingUseCase = (*OfferingService)(nil)
