package transport

import (
	"encoding/json"
	"net/http"

	"otherproteins-be/internal/product"
)

type createProductRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	ImageURL        *string `json:"image_url,omitempty"`
	CategoryID      *uint   `json:"category_id,omitempty"`
	Stock           int     `json:"stock"`
	Ingredients     *string `json:"ingredients,omitempty"`
	NutritionFacts  *string `json:"nutrition_facts,omitempty"`
	UsageDirections *string `json:"usage_directions,omitempty"`
}

type createProductResponse struct {
	ID uint `json:"id"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	id, err := h.products.Create(r.Context(), product.NewProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		CategoryID:      req.CategoryID,
		Stock:           req.Stock,
		Ingredients:     req.Ingredients,
		NutritionFacts:  req.NutritionFacts,
		UsageDirections: req.UsageDirections,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createProductResponse{ID: id})
}

// UpdateProduct applies a partial edit to one product. Absent fields are
// left alone; it reuses the batch path so per-field outcomes are reported
// the same way everywhere.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var update product.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	update.ProductID = id

	result, err := h.products.BatchUpdate(r.Context(), []product.ProductUpdate{update})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) BatchUpdateProducts(w http.ResponseWriter, r *http.Request) {
	var updates []product.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	result, err := h.products.BatchUpdate(r.Context(), updates)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type stockRequest struct {
	Stock int `json:"stock"`
}

func (h *Handler) SetProductStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if err := h.products.UpdateStock(r.Context(), id, req.Stock); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
