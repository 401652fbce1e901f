package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go_trial/foodhub/models"
	"go_trial/foodhub/services"
)

func (h *Handler) ListRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	h.listRestaurants(w, r, models.RestaurantFilter{ActiveOnly: true})
}

func (h *Handler) SearchRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	h.listRestaurants(w, r, models.RestaurantFilter{ActiveOnly: true, Search: strings.TrimSpace(r.URL.Query().Get("q"))})
}

func (h *Handler) FilterRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.listRestaurants(w, r, models.RestaurantFilter{ActiveOnly: true, CuisineType: q.Get("cuisine"), PriceRange: q.Get("price")})
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request, filter models.RestaurantFilter) {
	restaurants, err := h.Restaurants.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) GetRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	restaurant, err := h.Restaurants.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) CreateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var in services.CreateRestaurantInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	restaurant, err := h.Restaurants.Create(r.Context(), caller(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, restaurant)
}

func (h *Handler) UpdateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.ownedRestaurant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var update models.RestaurantUpdate
	if err := h.decode(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.Restaurants.Update(r.Context(), restaurant.ID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.ownedRestaurant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	deleted, err := h.Restaurants.Delete(r.Context(), restaurant.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Restaurant deleted", "restaurant": deleted})
}

func (h *Handler) MyRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.ListByOwner(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) RestaurantMenuHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.Menu.ListByRestaurant(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// RestaurantOrdersHandler narrows to one status when ?status is given.
func (h *Handler) RestaurantOrdersHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.ownedRestaurant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var orders []models.Order
	if status := models.OrderStatus(r.URL.Query().Get("status")); status != "" {
		orders, err = h.Orders.ListByStatus(r.Context(), restaurant.ID, status)
	} else {
		orders, err = h.Orders.ListByRestaurant(r.Context(), restaurant.ID, "")
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) RestaurantReservationsHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.ownedRestaurant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	var day *time.Time
	if raw := q.Get("date"); raw != "" {
		parsed, err := parseDay(raw, "date")
		if err != nil {
			writeError(w, r, err)
			return
		}
		day = &parsed
	}
	reservations, err := h.Reservations.ListByRestaurant(r.Context(), restaurant.ID, models.ReservationStatus(q.Get("status")), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

// RestaurantReservationCountHandler counts the live reservations of ?date, today by default.
func (h *Handler) RestaurantReservationCountHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.ownedRestaurant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	day := models.StartOfDay(h.now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		if day, err = parseDay(raw, "date"); err != nil {
			writeError(w, r, err)
			return
		}
	}
	n, err := h.Reservations.CountForDay(r.Context(), restaurant.ID, day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"date": day.Format(models.DayLayout), "count": n})
}

// RestaurantStatsHandler reports daily revenue between ?start and ?end, both
// inclusive. The window defaults to the last 30 days.
func (h *Handler) RestaurantStatsHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.ownedRestaurant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	today := models.StartOfDay(h.now())
	from, to := today.AddDate(0, 0, -30), today
	q := r.URL.Query()
	if raw := q.Get("start"); raw != "" {
		if from, err = parseDay(raw, "start"); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if raw := q.Get("end"); raw != "" {
		if to, err = parseDay(raw, "end"); err != nil {
			writeError(w, r, err)
			return
		}
	}
	stats, err := h.Orders.DailyStats(r.Context(), restaurant.ID, from, to.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func parseDay(raw, name string) (time.Time, error) {
	day, err := models.ParseDay(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", services.ErrValidation, name)
	}
	return day, nil
}
