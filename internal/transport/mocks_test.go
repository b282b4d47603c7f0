package transport

import (
	"context"

	"otherproteins-be/internal/cart"
	"otherproteins-be/internal/category"
	"otherproteins-be/internal/order"
	"otherproteins-be/internal/product"
	"otherproteins-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Register(ctx context.Context, params user.RegisterParams) (*user.User, error) {
	args := m.Called(ctx, params)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	args := m.Called(ctx, email, password)
	if u, ok := args.Get(1).(*user.User); ok {
		return args.String(0), u, args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}

func (m *mockUserService) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) List(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	if cs, ok := args.Get(0).([]*category.Category); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uint) (*category.Category, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*category.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProductService struct{ mock.Mock }

func (m *mockProductService) List(ctx context.Context, sort, direction string) ([]*product.Product, error) {
	args := m.Called(ctx, sort, direction)
	if ps, ok := args.Get(0).([]*product.Product); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductService) ListByCategory(ctx context.Context, categoryID uint, sort, direction string) ([]*product.Product, error) {
	args := m.Called(ctx, categoryID, sort, direction)
	if ps, ok := args.Get(0).([]*product.Product); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductService) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductService) Create(ctx context.Context, input product.NewProductInput) (uint, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockProductService) UpdateName(ctx context.Context, id uint, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *mockProductService) UpdatePrice(ctx context.Context, id uint, price float64) error {
	return m.Called(ctx, id, price).Error(0)
}

func (m *mockProductService) UpdateDescription(ctx context.Context, id uint, description string) error {
	return m.Called(ctx, id, description).Error(0)
}

func (m *mockProductService) UpdateImageURL(ctx context.Context, id uint, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

func (m *mockProductService) UpdateStock(ctx context.Context, id uint, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *mockProductService) BatchUpdate(ctx context.Context, updates []product.ProductUpdate) (*product.BatchResult, error) {
	args := m.Called(ctx, updates)
	if result, ok := args.Get(0).(*product.BatchResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockCartService struct{ mock.Mock }

func (m *mockCartService) GetCart(ctx context.Context, userID uint) ([]*cart.CartLine, error) {
	args := m.Called(ctx, userID)
	if lines, ok := args.Get(0).([]*cart.CartLine); ok {
		return lines, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*cart.CartLine, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if line, ok := args.Get(0).(*cart.CartLine); ok {
		return line, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartService) SetItemQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}

func (m *mockCartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockCartService) ClearCart(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) Checkout(ctx context.Context, requester order.Requester, opts order.DeliveryOptions) (uint, error) {
	args := m.Called(ctx, requester, opts)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockOrderService) ConfirmReceipt(ctx context.Context, orderID uint, requester order.Requester) error {
	return m.Called(ctx, orderID, requester).Error(0)
}

func (m *mockOrderService) Cancel(ctx context.Context, orderID uint, requester order.Requester) (*order.CancelResult, error) {
	args := m.Called(ctx, orderID, requester)
	if result, ok := args.Get(0).(*order.CancelResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, orderID uint, to order.Status, requester order.Requester) error {
	return m.Called(ctx, orderID, to, requester).Error(0)
}

func (m *mockOrderService) GetOrder(ctx context.Context, orderID uint, requester order.Requester) (*order.Order, error) {
	args := m.Called(ctx, orderID, requester)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) ListOrdersForUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) ListAllOrders(ctx context.Context, requester order.Requester) ([]*order.Order, error) {
	args := m.Called(ctx, requester)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}
