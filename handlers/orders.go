package handlers

import (
	"fmt"
	"net/http"

	"go_trial/foodhub/models"
	"go_trial/foodhub/services"
)

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=pending confirmed preparing ready delivered cancelled"`
}

type paymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"paymentStatus" validate:"required,oneof=pending paid failed refunded"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// loadOrder resolves {id} together with the caller's relation to it.
func (h *Handler) loadOrder(r *http.Request) (*models.Order, services.Access, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, services.AccessNone, err
	}
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		return nil, services.AccessNone, err
	}
	access, err := h.accessTo(r.Context(), caller(r), order.Customer, order.Restaurant)
	if err != nil {
		return nil, services.AccessNone, err
	}
	return order, access, nil
}

func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var in services.CreateOrderInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.Orders.Create(r.Context(), caller(r).ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) MyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListByCustomer(r.Context(), caller(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, access, err := h.loadOrder(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Any() {
		writeError(w, r, forbidden("view this order"))
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// OrderTicketHandler serves the pickup QR code as a PNG.
func (h *Handler) OrderTicketHandler(w http.ResponseWriter, r *http.Request) {
	order, access, err := h.loadOrder(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Any() {
		writeError(w, r, forbidden("view this order"))
		return
	}
	png, err := h.Orders.Ticket(r.Context(), order.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", order.OrderNumber+".png"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	order, access, err := h.loadOrder(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Owner() {
		writeError(w, r, forbidden("change the status of this order"))
		return
	}
	var in orderStatusRequest
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.Orders.UpdateStatus(r.Context(), order.ID, in.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) UpdatePaymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	order, access, err := h.loadOrder(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Owner() {
		writeError(w, r, forbidden("change the payment status of this order"))
		return
	}
	var in paymentStatusRequest
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.Orders.UpdatePaymentStatus(r.Context(), order.ID, in.PaymentStatus)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// CancelOrderHandler lets the owner cancel at any time and the customer only
// before preparation starts.
func (h *Handler) CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, access, err := h.loadOrder(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	switch {
	case access.Owner():
	case access.Customer():
		if order.Status != models.OrderPending && order.Status != models.OrderConfirmed {
			writeError(w, r, forbidden(fmt.Sprintf("cancel an order that is %s", order.Status)))
			return
		}
	default:
		writeError(w, r, forbidden("cancel this order"))
		return
	}
	var in cancelRequest
	if err := h.decodeOptional(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	cancelled, err := h.Orders.Cancel(r.Context(), order.ID, in.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelled)
}

func (h *Handler) PayOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, access, err := h.loadOrder(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !access.Customer() {
		writeError(w, r, forbidden("pay for this order"))
		return
	}
	var in services.PayOrderInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	paid, err := h.Orders.Pay(r.Context(), order.ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paid)
}
