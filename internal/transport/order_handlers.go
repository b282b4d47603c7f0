package transport

import (
	"encoding/json"
	"net/http"

	"otherproteins-be/internal/order"
	"otherproteins-be/internal/utils"
)

type checkoutRequest struct {
	Delivery order.DeliveryOptions `json:"delivery"`
}

type checkoutResponse struct {
	OrderID uint `json:"order_id"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	orderID, err := h.orders.Checkout(r.Context(), requesterFrom(r.Context()), req.Delivery)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{OrderID: orderID})
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.orders.ListOrdersForUser(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	o, err := h.orders.GetOrder(r.Context(), id, requesterFrom(r.Context()))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) ConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.orders.ConfirmReceipt(r.Context(), id, requesterFrom(r.Context())); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.orders.Cancel(r.Context(), id, requesterFrom(r.Context()))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAllOrders(r.Context(), requesterFrom(r.Context()))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

type statusRequest struct {
	Status order.Status `json:"status"`
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, req.Status, requesterFrom(r.Context())); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
