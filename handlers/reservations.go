package handlers

import (
	"fmt"
	"net/http"

	"go_trial/foodhub/models"
	"go_trial/foodhub/services"
)

type reservationStatusRequest struct {
	Status models.ReservationStatus `json:"status" validate:"required,oneof=pending confirmed cancelled completed no-show"`
}

func (h *Handler) loadReservation(r *http.Request) (*models.Reservation, services.Access, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, services.AccessNone, err
	}
	reservation, err := h.Reservations.Get(r.Context(), id)
	if err != nil {
		return nil, services.AccessNone, err
	}
	access, err := h.accessTo(r.Context(), caller(r), reservation.Customer, reservation.Restaurant)
	if err != nil {
		return nil, services.AccessNone, err
	}
	return reservation, access, nil
}

func (h *Handler) CreateReservationHandler(w http.ResponseWriter, r *http.Request) {
	var in services.CreateReservationInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	reservation, err := h.Reservations.Create(r.Context(), caller(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) MyReservationsHandler(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Reservations.ListByCustomer(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *Handler) GetReservationHandler(w http.ResponseWriter, r *http.Request) {
	reservation, access, err := h.loadReservation(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Any() {
		writeError(w, r, forbidden("view this reservation"))
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handler) UpdateReservationStatusHandler(w http.ResponseWriter, r *http.Request) {
	reservation, access, err := h.loadReservation(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Owner() {
		writeError(w, r, forbidden("change the status of this reservation"))
		return
	}
	var in reservationStatusRequest
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.Reservations.UpdateStatus(r.Context(), reservation.ID, in.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UpdateReservationHandler lets a customer edit a pending booking; the status
// stays with the owner.
func (h *Handler) UpdateReservationHandler(w http.ResponseWriter, r *http.Request) {
	reservation, access, err := h.loadReservation(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in services.UpdateReservationInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	switch {
	case access.Owner():
	case access.Customer():
		if reservation.Status != models.ReservationPending {
			writeError(w, r, forbidden(fmt.Sprintf("edit a reservation that is %s", reservation.Status)))
			return
		}
		if in.Status != nil {
			writeError(w, r, forbidden("change the status of this reservation"))
			return
		}
	default:
		writeError(w, r, forbidden("edit this reservation"))
		return
	}
	updated, err := h.Reservations.Update(r.Context(), reservation.ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) CancelReservationHandler(w http.ResponseWriter, r *http.Request) {
	reservation, access, err := h.loadReservation(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	switch {
	case access.Owner():
	case access.Customer():
		if reservation.Status != models.ReservationPending && reservation.Status != models.ReservationConfirmed {
			writeError(w, r, forbidden(fmt.Sprintf("cancel a reservation that is %s", reservation.Status)))
			return
		}
	default:
		writeError(w, r, forbidden("cancel this reservation"))
		return
	}
	var in cancelRequest
	if err := h.decodeOptional(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	cancelled, err := h.Reservations.Cancel(r.Context(), reservation.ID, in.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelled)
}

// AvailabilityHandler needs both ?date and ?time.
func (h *Handler) AvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := pathID(r, "restaurantId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	if q.Get("date") == "" || q.Get("time") == "" {
		writeError(w, r, fmt.Errorf("%w: date and time are required", services.ErrValidation))
		return
	}
	day, err := parseDay(q.Get("date"), "date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	clock := q.Get("time")
	if !clockPattern.MatchString(clock) {
		writeError(w, r, fmt.Errorf("%w: time must be HH:MM", services.ErrValidation))
		return
	}
	available, err := h.Reservations.Available(r.Context(), restaurant, day, clock)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isAvailable": available})
}
