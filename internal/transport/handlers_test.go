package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"otherproteins-be/internal/cart"
	"otherproteins-be/internal/order"
	"otherproteins-be/internal/product"
	"otherproteins-be/internal/stock"
	"otherproteins-be/internal/user"
	"otherproteins-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	users      *mockUserService
	categories *mockCategoryRepo
	products   *mockProductService
	carts      *mockCartService
	orders     *mockOrderService
	router     http.Handler
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:      new(mockUserService),
		categories: new(mockCategoryRepo),
		products:   new(mockProductService),
		carts:      new(mockCartService),
		orders:     new(mockOrderService),
	}
	h := New(env.users, env.categories, env.products, env.carts, env.orders)
	env.router = NewRouter(h)
	return env
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

func authedRequest(t *testing.T, method, target string, body *bytes.Buffer, userID uint, role user.Role) *http.Request {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := user.GenerateJWT(userID, "test@example.com", role)
	require.NoError(t, err)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := newTestEnv()
		env.users.On("Register", mock.Anything, mock.Anything).
			Return(&user.User{ID: 1, Email: "a@b.com", Role: user.RoleCustomer}, nil)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
			jsonBody(t, registerRequest{Email: "a@b.com", Password: "secret", FirstName: "A", LastName: "B"})))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		env := newTestEnv()
		env.users.On("Register", mock.Anything, mock.Anything).
			Return(nil, user.ErrEmailExists)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register",
			jsonBody(t, registerRequest{Email: "a@b.com", Password: "secret"})))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Wrong password", func(t *testing.T) {
		env := newTestEnv()
		env.users.On("Login", mock.Anything, "a@b.com", "nope").
			Return("", nil, user.ErrInvalidCredentials)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, loginRequest{Email: "a@b.com", Password: "nope"})))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCartRoutes(t *testing.T) {
	t.Run("Anonymous cart read is rejected", func(t *testing.T) {
		env := newTestEnv()
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Add item", func(t *testing.T) {
		env := newTestEnv()
		env.carts.On("AddItem", mock.Anything, uint(1), uint(10), 3).
			Return(&cart.CartLine{UserID: 1, ProductID: 10, Quantity: 3, ProductName: "Whey Protein"}, nil)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/cart/items",
			jsonBody(t, cartItemRequest{ProductID: 10, Quantity: 3}), 1, user.RoleCustomer))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Add over stock maps to conflict", func(t *testing.T) {
		env := newTestEnv()
		env.carts.On("AddItem", mock.Anything, uint(1), uint(10), 3).
			Return(nil, &stock.InsufficientStockError{ProductName: "Whey Protein", Available: 5})

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/cart/items",
			jsonBody(t, cartItemRequest{ProductID: 10, Quantity: 3}), 1, user.RoleCustomer))

		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp errorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, []string{"Whey Protein"}, resp.Products)
	})

	t.Run("Remove item", func(t *testing.T) {
		env := newTestEnv()
		env.carts.On("RemoveItem", mock.Anything, uint(1), uint(10)).Return(nil)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodDelete, "/cart/items/10", nil, 1, user.RoleCustomer))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestCheckout(t *testing.T) {
	pickup := order.DeliveryOptions{Type: order.DeliveryPickup}
	customer := order.Requester{UserID: 1, Role: user.RoleCustomer}

	t.Run("Success", func(t *testing.T) {
		env := newTestEnv()
		env.orders.On("Checkout", mock.Anything, customer, pickup).Return(uint(7), nil)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/orders",
			jsonBody(t, checkoutRequest{Delivery: pickup}), 1, user.RoleCustomer))

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp checkoutResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, uint(7), resp.OrderID)
	})

	t.Run("Empty cart", func(t *testing.T) {
		env := newTestEnv()
		env.orders.On("Checkout", mock.Anything, customer, pickup).Return(uint(0), order.ErrEmptyCart)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/orders",
			jsonBody(t, checkoutRequest{Delivery: pickup}), 1, user.RoleCustomer))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Shortage reports every blocking product", func(t *testing.T) {
		env := newTestEnv()
		env.orders.On("Checkout", mock.Anything, customer, pickup).
			Return(uint(0), &stock.InsufficientError{Products: []string{"Whey Protein", "BCAA"}})

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/orders",
			jsonBody(t, checkoutRequest{Delivery: pickup}), 1, user.RoleCustomer))

		require.Equal(t, http.StatusConflict, rec.Code)

		var resp errorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, []string{"Whey Protein", "BCAA"}, resp.Products)
	})
}

func TestOrderRoutes(t *testing.T) {
	customer := order.Requester{UserID: 1, Role: user.RoleCustomer}

	t.Run("Cancel after window maps to conflict", func(t *testing.T) {
		env := newTestEnv()
		env.orders.On("Cancel", mock.Anything, uint(7), customer).
			Return(nil, order.ErrCancelWindowExpired)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/orders/7/cancel", nil, 1, user.RoleCustomer))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Someone else's order maps to forbidden", func(t *testing.T) {
		env := newTestEnv()
		env.orders.On("GetOrder", mock.Anything, uint(7), customer).
			Return(nil, order.ErrUnauthorized)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/orders/7", nil, 1, user.RoleCustomer))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Confirm receipt", func(t *testing.T) {
		env := newTestEnv()
		env.orders.On("ConfirmReceipt", mock.Anything, uint(7), customer).Return(nil)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/orders/7/confirm", nil, 1, user.RoleCustomer))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Invalid order id", func(t *testing.T) {
		env := newTestEnv()

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/orders/abc", nil, 1, user.RoleCustomer))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminRoutes(t *testing.T) {
	t.Run("Customer cannot reach the admin subtree", func(t *testing.T) {
		env := newTestEnv()

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/admin/orders", nil, 1, user.RoleCustomer))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Admin updates order status", func(t *testing.T) {
		admin := order.Requester{UserID: 2, Role: user.RoleAdmin}
		env := newTestEnv()
		env.orders.On("UpdateStatus", mock.Anything, uint(7), order.StatusShipped, admin).Return(nil)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodPut, "/admin/orders/7/status",
			jsonBody(t, statusRequest{Status: order.StatusShipped}), 2, user.RoleAdmin))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Admin batch update", func(t *testing.T) {
		env := newTestEnv()
		env.products.On("BatchUpdate", mock.Anything, mock.Anything).
			Return(&product.BatchResult{PricesUpdated: 2}, nil)

		updates := []map[string]any{
			{"product_id": 1, "price": 9.99},
			{"product_id": 2, "price": 19.99},
		}
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/admin/products/batch",
			jsonBody(t, updates), 2, user.RoleAdmin))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequesterFrom(t *testing.T) {
	ctx := utils.WithUser(httptest.NewRequest(http.MethodGet, "/", nil).Context(), 5, "x@y.com", "admin")

	requester := requesterFrom(ctx)
	assert.Equal(t, uint(5), requester.UserID)
	assert.True(t, requester.IsAdmin())
}
