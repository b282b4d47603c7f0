package transport

import (
	"encoding/json"
	"net/http"

	"otherproteins-be/internal/cart"
	"otherproteins-be/internal/utils"
)

type cartResponse struct {
	Lines []*cart.CartLine `json:"lines"`
	Total float64          `json:"total"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	lines, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	if lines == nil {
		lines = []*cart.CartLine{}
	}

	writeJSON(w, http.StatusOK, cartResponse{Lines: lines, Total: total})
}

type cartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	line, err := h.carts.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, line)
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}

	var req cartQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	if err := h.carts.SetItemQuantity(r.Context(), userID, productID, req.Quantity); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	if err := h.carts.RemoveItem(r.Context(), userID, productID); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
