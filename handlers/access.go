package handlers

import (
	"context"
	"errors"
	"net/http"

	"go_trial/foodhub/models"
	"go_trial/foodhub/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// restaurantOwner yields the zero id when the restaurant is gone so that
// only the customer side of an access check can still match.
func (h *Handler) restaurantOwner(ctx context.Context, restaurant primitive.ObjectID) (primitive.ObjectID, error) {
	r, err := h.Restaurants.Get(ctx, restaurant)
	if errors.Is(err, services.ErrNotFound) {
		return primitive.NilObjectID, nil
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return r.Owner, nil
}

func (h *Handler) accessTo(ctx context.Context, user *models.User, customer, restaurant primitive.ObjectID) (services.Access, error) {
	owner, err := h.restaurantOwner(ctx, restaurant)
	if err != nil {
		return services.AccessNone, err
	}
	return services.AccessFor(user.ID, customer, owner), nil
}

// ownedRestaurant loads the restaurant named by the {id} route variable and
// requires the caller to own it.
func (h *Handler) ownedRestaurant(r *http.Request) (*models.Restaurant, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.requireOwner(r, id)
}

func (h *Handler) requireOwner(r *http.Request, restaurant primitive.ObjectID) (*models.Restaurant, error) {
	found, err := h.Restaurants.Get(r.Context(), restaurant)
	if err != nil {
		return nil, err
	}
	if found.Owner != caller(r).ID {
		return nil, forbidden("manage this restaurant")
	}
	return found, nil
}
