package reservation

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/zvrva/travelbook/internal/domain"
	"github.com/zvrva/travelbook/internal/kafka"
	"github.com/zvrva/travelbook/internal/repository"
)

type ReservationUseCase interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, reservationID string, principalID int64) (bool, error)
	ListReservations(ctx context.Context, principalID int64) ([]domain.ReservationDetail, error)
	AuditInventory(ctx context.Context) ([]repository.InventoryDrift, error)
}

type Cache interface {
	GetOfferings(ctx context.Context) ([]domain.Offering, error)
	SetOfferings(ctx context.Context, offerings []domain.Offering) error
	InvalidateOfferings(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateReservationInput struct {
	OfferingID  string `json:"offering_id"`
	PrincipalID int64  `json:"principal_id"`
	Seats       int    `json:"seats"`
	Email       string `json:"email"`
}

type ReservationService struct {
	reservations       repository.ReservationRepository
	offerings          repository.OfferingRepository
	cache              Cache
	producer           Producer
	reservationsTopic  string
	notificationsTopic string
}

type ReservationServiceOption func(*ReservationService)

func WithNotificationsTopic(topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.notificationsTopic = topic
	}
}

func NewReservationService(
	reservations repository.ReservationRepository,
	offerings repository.OfferingRepository,
	cache Cache,
	producer Producer,
	reservationsTopic string,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		reservations:      reservations,
		offerings:         offerings,
		cache:             cache,
		producer:          producer,
		reservationsTopic: reservationsTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateReservation books seats on an offering. The capacity check and the
// reservation insert run as one transaction in the repository, so a returned
// reservation always has its seats deducted and an error leaves inventory
// untouched.
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	if input.Seats < 1 || input.Seats > domain.MaxSeatsPerReservation {
		return nil, domain.ErrInvalidRequest
	}
	if input.PrincipalID <= 0 {
		return nil, domain.ErrInvalidRequest
	}

	offering, err := s.offerings.GetByID(ctx, input.OfferingID)
	if err != nil {
		return nil, err
	}
	if !offering.DepartureTime.After(time.Now()) {
		return nil, domain.ErrOfferingUnavailable
	}

	reservation := &domain.Reservation{
		ID:          uuid.NewString(),
		OfferingID:  offering.ID,
		PrincipalID: input.PrincipalID,
		Seats:       input.Seats,
		// price snapshot: later repricing of the offering must not move this
		TotalPriceCents: offering.PriceCents * int64(input.Seats),
		Email:           input.Email,
	}

	if err := s.reservations.CreateConfirmed(ctx, reservation); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateOfferings(ctx)
	}
	if err := s.publish(ctx, "reservation_confirmed", reservation); err != nil {
		log.Printf("WARNING: failed to publish reservation_confirmed event for %s: %v", reservation.Code, err)
	}
	return reservation, nil
}

// CancelReservation flips the caller's CONFIRMED reservation to CANCELLED and
// restores its seats. Cancelling an already-cancelled reservation returns
// false with ErrNotCancellable and changes nothing.
func (s *ReservationService) CancelReservation(ctx context.Context, reservationID string, principalID int64) (bool, error) {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return false, err
	}
	// a reservation that belongs to someone else looks like a missing one
	if reservation.PrincipalID != principalID {
		return false, domain.ErrNotFound
	}
	if reservation.Status != domain.ReservationStatusConfirmed {
		return false, domain.ErrNotCancellable
	}

	offering, err := s.offerings.GetByID(ctx, reservation.OfferingID)
	if err != nil {
		return false, err
	}
	if !offering.DepartureTime.After(time.Now()) {
		return false, domain.ErrNotCancellable
	}

	if err := s.reservations.CancelConfirmed(ctx, reservationID); err != nil {
		return false, err
	}

	reservation.Status = domain.ReservationStatusCancelled
	if s.cache != nil {
		_ = s.cache.InvalidateOfferings(ctx)
	}
	if err := s.publish(ctx, "reservation_cancelled", reservation); err != nil {
		log.Printf("WARNING: failed to publish reservation_cancelled event for %s: %v", reservation.Code, err)
	}
	return true, nil
}

func (s *ReservationService) ListReservations(ctx context.Context, principalID int64) ([]domain.ReservationDetail, error) {
	return s.reservations.ListByPrincipal(ctx, principalID)
}

func (s *ReservationService) AuditInventory(ctx context.Context) ([]repository.InventoryDrift, error) {
	return s.offerings.AuditInventory(ctx)
}

func (s *ReservationService) publish(ctx context.Context, eventType string, reservation *domain.Reservation) error {
	if s.producer == nil || s.reservationsTopic == "" {
		return nil
	}
	event := kafka.ReservationEvent{
		Type:            eventType,
		ReservationID:   reservation.ID,
		ReservationCode: reservation.Code,
		OfferingID:      reservation.OfferingID,
		PrincipalID:     reservation.PrincipalID,
		Seats:           reservation.Seats,
		TotalPriceCents: reservation.TotalPriceCents,
		Email:           reservation.Email,
		Status:          string(reservation.Status),
	}
	if err := s.producer.Publish(ctx, s.reservationsTopic, reservation.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, reservation.ID, event)
	}
	return nil
}

var _ ReservationUseCase = (*ReservationService)(nil)
