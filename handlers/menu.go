package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"go_trial/foodhub/models"
	"go_trial/foodhub/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requiredRestaurant(r *http.Request) (primitive.ObjectID, error) {
	id, err := queryID(r, "restaurantId")
	if err != nil {
		return primitive.NilObjectID, err
	}
	if id == nil {
		return primitive.NilObjectID, fmt.Errorf("%w: restaurantId is required", services.ErrValidation)
	}
	return *id, nil
}

func (h *Handler) ListMenuHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := requiredRestaurant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.Menu.ListByRestaurant(r.Context(), restaurant)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) SearchMenuHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := queryID(r, "restaurantId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.Menu.Search(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")), restaurant)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.Menu.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) MenuByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	category, err := pathID(r, "categoryId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	restaurant, err := requiredRestaurant(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.Menu.ListByCategory(r.Context(), restaurant, category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) RestaurantCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := pathID(r, "restaurantId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ids, err := h.Menu.Categories(r.Context(), restaurant)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *Handler) CreateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	var in services.CreateMenuItemInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.requireOwner(r, in.Restaurant); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.Menu.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ownedMenuItem loads {id} and requires the caller to own the item's restaurant.
func (h *Handler) ownedMenuItem(r *http.Request) (*models.MenuItem, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, err
	}
	item, err := h.Menu.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	owner, err := h.restaurantOwner(r.Context(), item.Restaurant)
	if err != nil {
		return nil, err
	}
	if owner.IsZero() || owner != caller(r).ID {
		return nil, forbidden("manage this menu item")
	}
	return item, nil
}

func (h *Handler) UpdateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.ownedMenuItem(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var update models.MenuItemUpdate
	if err := h.decode(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.Menu.Update(r.Context(), item.ID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.ownedMenuItem(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	deleted, err := h.Menu.Delete(r.Context(), item.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Menu item deleted", "menuItem": deleted})
}

func (h *Handler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.Categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var in services.CreateCategoryInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.Categories.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var update models.CategoryUpdate
	if err := h.decode(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	category, err := h.Categories.Update(r.Context(), id, update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *Handler) CategorySlugHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ByCategorySlug(r.Context(), mux.Vars(r)["categorySlug"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) ProductSlugHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	item, err := h.Menu.BySlug(r.Context(), vars["categorySlug"], vars["productSlug"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
