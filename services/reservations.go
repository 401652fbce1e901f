package services

import (
	"context"
	"fmt"
	"time"

	"go_trial/foodhub/events"
	"go_trial/foodhub/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type CreateReservationInput struct {
	Restaurant      primitive.ObjectID `json:"restaurant" validate:"required"`
	Date            string             `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string             `json:"time" validate:"required,clock"`
	PartySize       int                `json:"partySize" validate:"required,min=1"`
	SpecialRequests string             `json:"specialRequests"`
	TableNumber     string             `json:"tableNumber"`
	Duration        int                `json:"duration" validate:"omitempty,min=15"`
}

// UpdateReservationInput takes the day as text; the embedded update carries the rest.
type UpdateReservationInput struct {
	Date *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	models.ReservationUpdate
}

type ReservationService struct {
	reservations ReservationRepository
	restaurants  RestaurantRepository
	seq          Sequencer
	events       EventPublisher
	now          func() time.Time
}

func NewReservationService(reservations ReservationRepository, restaurants RestaurantRepository, seq Sequencer, publisher EventPublisher) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		restaurants:  restaurants,
		seq:          seq,
		events:       publisher,
		now:          time.Now,
	}
}

// Create books a slot unless a reservation other than a cancelled or completed one holds it.
func (s *ReservationService) Create(ctx context.Context, customer primitive.ObjectID, in CreateReservationInput) (*models.Reservation, error) {
	ctx, span := tracer.Start(ctx, "ReservationService.Create")
	defer span.End()

	day, err := models.ParseDay(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if in.PartySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", ErrValidation)
	}
	if _, err := s.restaurants.GetByID(ctx, in.Restaurant); err != nil {
		return nil, notFound(err, "restaurant "+in.Restaurant.Hex())
	}

	if err := s.ensureFree(ctx, in.Restaurant, day, in.Time, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := s.now()
	number, err := dayNumber(ctx, s.seq, reservationSequence, "RES", now)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		ReservationNumber: number,
		Customer:          customer,
		Restaurant:        in.Restaurant,
		Date:              day,
		Time:              in.Time,
		PartySize:         in.PartySize,
		Status:            models.ReservationPending,
		SpecialRequests:   in.SpecialRequests,
		TableNumber:       in.TableNumber,
		Duration:          in.Duration,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if reservation.Duration == 0 {
		reservation.Duration = 120
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("reservation.number", number))
	reservationsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("restaurant", in.Restaurant.Hex())))

	s.publish(ctx, events.ReservationCreated, reservation)
	return reservation, nil
}

func (s *ReservationService) Get(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "reservation "+id.Hex())
	}
	return reservation, nil
}

// Update changes only date, time, party size, special requests and status.
func (s *ReservationService) Update(ctx context.Context, id primitive.ObjectID, in UpdateReservationInput) (*models.Reservation, error) {
	update := in.ReservationUpdate
	if in.Date != nil {
		day, err := models.ParseDay(*in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		update.Date = &day
	}
	if update.PartySize != nil && *update.PartySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", ErrValidation)
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown reservation status %q", ErrValidation, *update.Status)
	}

	current, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "reservation "+id.Hex())
	}
	day, clock, status := current.Date, current.Time, current.Status
	if update.Date != nil {
		day = *update.Date
	}
	if update.Time != nil {
		clock = *update.Time
	}
	if update.Status != nil {
		status = *update.Status
	}
	moved := !day.Equal(current.Date) || clock != current.Time
	if holdsSlot(status) && (moved || !holdsSlot(current.Status)) {
		if err := s.ensureFree(ctx, current.Restaurant, day, clock, id); err != nil {
			return nil, err
		}
	}

	reservation, err := s.reservations.Update(ctx, id, update)
	if err != nil {
		return nil, notFound(err, "reservation "+id.Hex())
	}
	return reservation, nil
}

// holdsSlot reports whether a reservation in status blocks other bookings of its slot.
func holdsSlot(status models.ReservationStatus) bool {
	for _, released := range models.ReservationReleasedOnCreate {
		if status == released {
			return false
		}
	}
	return true
}

func (s *ReservationService) ensureFree(ctx context.Context, restaurant primitive.ObjectID, day time.Time, clock string, self primitive.ObjectID) error {
	taken, err := s.reservations.CountInSlot(ctx, restaurant, day, clock, models.ReservationReleasedOnCreate, self)
	if err != nil {
		return err
	}
	if taken > 0 {
		return fmt.Errorf("%w: %s at %s is already booked, please choose another time", ErrConflict, day.Format(models.DayLayout), clock)
	}
	return nil
}

func (s *ReservationService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReservationStatus) (*models.Reservation, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown reservation status %q", ErrValidation, status)
	}
	if holdsSlot(status) {
		current, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			return nil, notFound(err, "reservation "+id.Hex())
		}
		if !holdsSlot(current.Status) {
			if err := s.ensureFree(ctx, current.Restaurant, current.Date, current.Time, id); err != nil {
				return nil, err
			}
		}
	}
	var completedAt *time.Time
	if status.Terminal() {
		now := s.now()
		completedAt = &now
	}
	reservation, err := s.reservations.SetStatus(ctx, id, status, completedAt)
	if err != nil {
		return nil, notFound(err, "reservation "+id.Hex())
	}
	s.publish(ctx, events.ReservationStatusChanged, reservation)
	return reservation, nil
}

// Cancel replaces the special requests with the cancellation note.
func (s *ReservationService) Cancel(ctx context.Context, id primitive.ObjectID, reason string) (*models.Reservation, error) {
	note := "No reason given"
	if reason != "" {
		note = "Cancellation reason: " + reason
	}
	reservation, err := s.reservations.Cancel(ctx, id, reason, note, s.now())
	if err != nil {
		return nil, notFound(err, "reservation "+id.Hex())
	}
	s.publish(ctx, events.ReservationCancelled, reservation)
	return reservation, nil
}

// Available reports whether the slot is free of live bookings; no-shows release it too.
func (s *ReservationService) Available(ctx context.Context, restaurant primitive.ObjectID, day time.Time, clock string) (bool, error) {
	n, err := s.reservations.CountInSlot(ctx, restaurant, models.StartOfDay(day), clock, models.ReservationReleasedOnLookup, primitive.NilObjectID)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (s *ReservationService) ListByCustomer(ctx context.Context, customer primitive.ObjectID) ([]models.Reservation, error) {
	return s.reservations.List(ctx, models.ReservationFilter{Customer: &customer})
}

func (s *ReservationService) ListByRestaurant(ctx context.Context, restaurant primitive.ObjectID, status models.ReservationStatus, day *time.Time) ([]models.Reservation, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown reservation status %q", ErrValidation, status)
	}
	filter := models.ReservationFilter{Restaurant: &restaurant, Status: status}
	if day != nil {
		start := models.StartOfDay(*day)
		filter.Day = &start
	}
	return s.reservations.List(ctx, filter)
}

// CountForDay counts the day's reservations other than cancelled and no-show ones.
func (s *ReservationService) CountForDay(ctx context.Context, restaurant primitive.ObjectID, day time.Time) (int64, error) {
	return s.reservations.CountForDay(ctx, restaurant, models.StartOfDay(day), models.ReservationUncounted)
}

func (s *ReservationService) publish(ctx context.Context, kind string, r *models.Reservation) {
	bestEffort(ctx, "event", logrus.Fields{"event": kind}, func(ctx context.Context) error {
		return s.events.Publish(ctx, events.Event{
			Type:       kind,
			ID:         r.ID.Hex(),
			Number:     r.ReservationNumber,
			Restaurant: r.Restaurant.Hex(),
			Customer:   r.Customer.Hex(),
			Status:     string(r.Status),
			Timestamp:  s.now().UTC(),
		})
	})
}
