package handlers

import (
	"net/http"

	"go_trial/foodhub/models"
	"go_trial/foodhub/services"
)

type responseRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (h *Handler) loadReview(r *http.Request) (*models.Review, services.Access, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, services.AccessNone, err
	}
	review, err := h.Reviews.Get(r.Context(), id)
	if err != nil {
		return nil, services.AccessNone, err
	}
	access, err := h.accessTo(r.Context(), caller(r), review.Customer, review.Restaurant)
	if err != nil {
		return nil, services.AccessNone, err
	}
	return review, access, nil
}

func (h *Handler) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var in services.CreateReviewInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	review, err := h.Reviews.Create(r.Context(), caller(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) GetReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	review, err := h.Reviews.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *Handler) RestaurantReviewsHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := pathID(r, "restaurantId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	reviews, err := h.Reviews.ListByRestaurant(r.Context(), restaurant)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) ReviewAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := pathID(r, "restaurantId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	buckets, err := h.Reviews.Analytics(r.Context(), restaurant)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (h *Handler) MyReviewsHandler(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListByCustomer(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) UpdateReviewHandler(w http.ResponseWriter, r *http.Request) {
	review, access, err := h.loadReview(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Customer() {
		writeError(w, r, forbidden("edit this review"))
		return
	}
	var update models.ReviewUpdate
	if err := h.decode(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.Reviews.Update(r.Context(), review.ID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	review, access, err := h.loadReview(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Any() {
		writeError(w, r, forbidden("delete this review"))
		return
	}
	deleted, err := h.Reviews.Delete(r.Context(), review.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Review deleted", "review": deleted})
}

func (h *Handler) RespondReviewHandler(w http.ResponseWriter, r *http.Request) {
	review, access, err := h.loadReview(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Owner() {
		writeError(w, r, forbidden("respond to this review"))
		return
	}
	var in responseRequest
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	responded, err := h.Reviews.Respond(r.Context(), review.ID, in.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, responded)
}
