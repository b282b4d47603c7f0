package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"otherproteins-be/internal/cart"
	"otherproteins-be/internal/category"
	"otherproteins-be/internal/logger"
	"otherproteins-be/internal/order"
	"otherproteins-be/internal/product"
	"otherproteins-be/internal/stock"
	"otherproteins-be/internal/user"
	"otherproteins-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the services behind the HTTP surface. Handlers stay thin:
// decode, call, map the error, encode.
type Handler struct {
	users      user.Service
	categories category.Repository
	products   product.Service
	carts      cart.Service
	orders     order.Service
}

func New(users user.Service, categories category.Repository, products product.Service, carts cart.Service, orders order.Service) *Handler {
	return &Handler{
		users:      users,
		categories: categories,
		products:   products,
		carts:      carts,
		orders:     orders,
	}
}

type errorResponse struct {
	Error    string   `json:"error"`
	Products []string `json:"products,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError translates domain errors into HTTP statuses. Business-rule
// rejections keep their message; anything unrecognized becomes an opaque
// 500 so internals never leak.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var insufficientOne *stock.InsufficientStockError
	var insufficientMany *stock.InsufficientError

	switch {
	case errors.As(err, &insufficientOne):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:    insufficientOne.Error(),
			Products: []string{insufficientOne.ProductName},
		})
	case errors.As(err, &insufficientMany):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:    insufficientMany.Error(),
			Products: insufficientMany.Products,
		})
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, stock.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, product.ErrUnauthorized),
		errors.Is(err, order.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, order.ErrAlreadyCancelled),
		errors.Is(err, order.ErrAlreadyCompleted),
		errors.Is(err, order.ErrCancelWindowExpired),
		errors.Is(err, order.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidDeliveryType),
		errors.Is(err, order.ErrIncompleteAddress),
		errors.Is(err, order.ErrInvalidDeliveryCost),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, stock.ErrInvalidQuantity),
		errors.Is(err, stock.ErrNegativeStock),
		errors.Is(err, product.ErrEmptyName),
		errors.Is(err, product.ErrNameTooLong),
		errors.Is(err, product.ErrNegativePrice),
		errors.Is(err, user.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.FromCtx(ctx).Error("unhandled error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// requesterFrom builds the explicit identity passed into order operations.
// Route guards guarantee a user is present before these handlers run.
func requesterFrom(ctx context.Context) order.Requester {
	userID, _ := utils.GetUserIDFromContext(ctx)
	return order.Requester{
		UserID: userID,
		Role:   user.Role(utils.GetUserRoleFromContext(ctx)),
	}
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (uint, bool) {
	id, err := utils.ToUint(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + param})
		return 0, false
	}
	return id, true
}
