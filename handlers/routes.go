package handlers

import (
	"context"
	"net/http"

	"go_trial/foodhub/middleware"
	"go_trial/foodhub/models"

	"github.com/gorilla/mux"
)

// Route variables holding document ids only match 24 hex characters, so
// literal segments such as /orders/my-orders never reach an id route.
const (
	byID         = "{id:[0-9a-fA-F]{24}}"
	byRestaurant = "{restaurantId:[0-9a-fA-F]{24}}"
	byCategory   = "{categoryId:[0-9a-fA-F]{24}}"
)

func withBody(f http.HandlerFunc) http.Handler {
	return middleware.RequireJSON(f)
}

// Routes builds the API router. Public and private routes live in sibling
// subrouters; only the private one authenticates.
func (h *Handler) Routes(auth middleware.Authenticator) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	public := r.PathPrefix("/api").Subrouter()
	private := r.PathPrefix("/api").Subrouter()
	private.Use(middleware.RequireAuth(auth))

	// auth
	public.Handle("/auth/signup", withBody(h.SignupHandler)).Methods(http.MethodPost)
	public.Handle("/auth/login", withBody(h.LoginHandler)).Methods(http.MethodPost)
	public.Handle("/auth/refresh", withBody(h.RefreshTokenHandler)).Methods(http.MethodPost)
	public.Handle("/auth/forgotpassword", withBody(h.ForgotPasswordHandler)).Methods(http.MethodPost)
	public.Handle("/auth/resetpassword/{token}", withBody(h.ResetPasswordHandler)).Methods(http.MethodPost)
	private.HandleFunc("/auth/me", h.GetCurrentUserHandler).Methods(http.MethodGet)
	private.HandleFunc("/auth/logout", h.LogoutHandler).Methods(http.MethodPost)
	private.Handle("/auth/changepassword", withBody(h.ChangePasswordHandler)).Methods(http.MethodPost)

	// restaurants
	public.HandleFunc("/restaurants", h.ListRestaurantsHandler).Methods(http.MethodGet)
	public.HandleFunc("/restaurants/search", h.SearchRestaurantsHandler).Methods(http.MethodGet)
	public.HandleFunc("/restaurants/filter", h.FilterRestaurantsHandler).Methods(http.MethodGet)
	public.HandleFunc("/restaurants/"+byID, h.GetRestaurantHandler).Methods(http.MethodGet)
	public.HandleFunc("/restaurants/"+byID+"/menu", h.RestaurantMenuHandler).Methods(http.MethodGet)
	public.HandleFunc("/restaurants/"+byRestaurant+"/reviews", h.RestaurantReviewsHandler).Methods(http.MethodGet)
	private.Handle("/restaurants", withBody(h.CreateRestaurantHandler)).Methods(http.MethodPost)
	private.HandleFunc("/restaurants/user/my-restaurants", h.MyRestaurantsHandler).Methods(http.MethodGet)
	private.Handle("/restaurants/"+byID, withBody(h.UpdateRestaurantHandler)).Methods(http.MethodPut)
	private.HandleFunc("/restaurants/"+byID, h.DeleteRestaurantHandler).Methods(http.MethodDelete)
	private.HandleFunc("/restaurants/"+byID+"/orders", h.RestaurantOrdersHandler).Methods(http.MethodGet)
	private.HandleFunc("/restaurants/"+byID+"/reservations", h.RestaurantReservationsHandler).Methods(http.MethodGet)
	private.HandleFunc("/restaurants/"+byID+"/reservations/count", h.RestaurantReservationCountHandler).Methods(http.MethodGet)
	private.HandleFunc("/restaurants/"+byID+"/stats", h.RestaurantStatsHandler).Methods(http.MethodGet)

	// menu
	public.HandleFunc("/menu", h.ListMenuHandler).Methods(http.MethodGet)
	public.HandleFunc("/menu/search", h.SearchMenuHandler).Methods(http.MethodGet)
	public.HandleFunc("/menu/"+byID, h.GetMenuItemHandler).Methods(http.MethodGet)
	public.HandleFunc("/menu/category/"+byCategory, h.MenuByCategoryHandler).Methods(http.MethodGet)
	public.HandleFunc("/menu/categories/"+byRestaurant, h.RestaurantCategoriesHandler).Methods(http.MethodGet)
	private.Handle("/menu", withBody(h.CreateMenuItemHandler)).Methods(http.MethodPost)
	private.Handle("/menu/"+byID, withBody(h.UpdateMenuItemHandler)).Methods(http.MethodPut)
	private.HandleFunc("/menu/"+byID, h.DeleteMenuItemHandler).Methods(http.MethodDelete)

	// categories
	public.HandleFunc("/categories", h.ListCategoriesHandler).Methods(http.MethodGet)
	public.HandleFunc("/categories/"+byID, h.GetCategoryHandler).Methods(http.MethodGet)
	staff := private.PathPrefix("/categories").Subrouter()
	staff.Use(middleware.RequireRole(models.RoleAdmin, models.RoleMod))
	staff.Handle("", withBody(h.CreateCategoryHandler)).Methods(http.MethodPost)
	staff.Handle("/"+byID, withBody(h.UpdateCategoryHandler)).Methods(http.MethodPut)

	// orders
	private.HandleFunc("/orders/my-orders", h.MyOrdersHandler).Methods(http.MethodGet)
	private.Handle("/orders", withBody(h.CreateOrderHandler)).Methods(http.MethodPost)
	private.HandleFunc("/orders/"+byID, h.GetOrderHandler).Methods(http.MethodGet)
	private.HandleFunc("/orders/"+byID+"/ticket", h.OrderTicketHandler).Methods(http.MethodGet)
	private.Handle("/orders/"+byID+"/status", withBody(h.UpdateOrderStatusHandler)).Methods(http.MethodPut)
	private.Handle("/orders/"+byID+"/payment", withBody(h.UpdatePaymentStatusHandler)).Methods(http.MethodPut)
	private.HandleFunc("/orders/"+byID+"/cancel", h.CancelOrderHandler).Methods(http.MethodPut)
	private.Handle("/orders/"+byID+"/pay", withBody(h.PayOrderHandler)).Methods(http.MethodPost)

	// reservations
	public.HandleFunc("/reservations/availability/"+byRestaurant, h.AvailabilityHandler).Methods(http.MethodGet)
	private.HandleFunc("/reservations/my-reservations", h.MyReservationsHandler).Methods(http.MethodGet)
	private.Handle("/reservations", withBody(h.CreateReservationHandler)).Methods(http.MethodPost)
	private.HandleFunc("/reservations/"+byID, h.GetReservationHandler).Methods(http.MethodGet)
	private.Handle("/reservations/"+byID, withBody(h.UpdateReservationHandler)).Methods(http.MethodPut)
	private.Handle("/reservations/"+byID+"/status", withBody(h.UpdateReservationStatusHandler)).Methods(http.MethodPut)
	private.HandleFunc("/reservations/"+byID+"/cancel", h.CancelReservationHandler).Methods(http.MethodPut)

	// reviews
	public.HandleFunc("/reviews/restaurant/"+byRestaurant, h.RestaurantReviewsHandler).Methods(http.MethodGet)
	public.HandleFunc("/reviews/analytics/"+byRestaurant, h.ReviewAnalyticsHandler).Methods(http.MethodGet)
	public.HandleFunc("/reviews/"+byID, h.GetReviewHandler).Methods(http.MethodGet)
	private.HandleFunc("/reviews/my-reviews", h.MyReviewsHandler).Methods(http.MethodGet)
	private.Handle("/reviews", withBody(h.CreateReviewHandler)).Methods(http.MethodPost)
	private.Handle("/reviews/"+byID, withBody(h.UpdateReviewHandler)).Methods(http.MethodPut)
	private.HandleFunc("/reviews/"+byID, h.DeleteReviewHandler).Methods(http.MethodDelete)
	private.Handle("/reviews/"+byID+"/response", withBody(h.RespondReviewHandler)).Methods(http.MethodPost)

	// slug lookups
	public.HandleFunc("/slug/{categorySlug}", h.CategorySlugHandler).Methods(http.MethodGet)
	public.HandleFunc("/slug/{categorySlug}/{productSlug}", h.ProductSlugHandler).Methods(http.MethodGet)

	return r
}

// HealthHandler pings the database when a Ping func is configured.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"success":false,"message":"database unreachable"}`))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
