package transport

import (
	"net/http"

	"otherproteins-be/internal/utils"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sort := r.URL.Query().Get("sort")
	direction := r.URL.Query().Get("direction")

	if categoryParam := r.URL.Query().Get("category"); categoryParam != "" {
		categoryID, err := utils.ToUint(categoryParam)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid category"})
			return
		}

		products, err := h.products.ListByCategory(r.Context(), categoryID, sort, direction)
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(w, http.StatusOK, products)
		return
	}

	products, err := h.products.List(r.Context(), sort, direction)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
