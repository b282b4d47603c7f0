package order

import (
	"context"
	"time"

	"otherproteins-be/internal/logger"

	"go.uber.org/zap"
)

// PaymentPolicy decides the status a new order starts in. Payment
// processing itself lives outside this system; the policy is the seam
// where a real gateway would plug in.
type PaymentPolicy interface {
	InitialStatus(requester Requester) Status
}

// RolePaymentPolicy marks staff orders as already paid and everything else
// as processing.
type RolePaymentPolicy struct{}

func (RolePaymentPolicy) InitialStatus(requester Requester) Status {
	if requester.IsAdmin() {
		return StatusPaid
	}
	return StatusProcessing
}

type Service interface {
	Checkout(ctx context.Context, requester Requester, opts DeliveryOptions) (uint, error)
	ConfirmReceipt(ctx context.Context, orderID uint, requester Requester) error
	Cancel(ctx context.Context, orderID uint, requester Requester) (*CancelResult, error)
	UpdateStatus(ctx context.Context, orderID uint, to Status, requester Requester) error
	GetOrder(ctx context.Context, orderID uint, requester Requester) (*Order, error)
	ListOrdersForUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAllOrders(ctx context.Context, requester Requester) ([]*Order, error)
}

type service struct {
	repo   Repository
	policy PaymentPolicy
	now    func() time.Time
}

func NewService(repo Repository, policy PaymentPolicy) Service {
	if policy == nil {
		policy = RolePaymentPolicy{}
	}
	return &service{repo: repo, policy: policy, now: time.Now}
}

func (s *service) Checkout(ctx context.Context, requester Requester, opts DeliveryOptions) (uint, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Uint("user_id", requester.UserID),
	)

	if err := opts.Validate(); err != nil {
		return 0, err
	}

	initial := s.policy.InitialStatus(requester)
	orderID, err := s.repo.CreateOrderTx(ctx, requester.UserID, opts, initial)
	if err != nil {
		return 0, err
	}

	log.Info("checkout complete",
		zap.Uint("order_id", orderID),
		zap.String("initial_status", string(initial)),
	)
	return orderID, nil
}

// ConfirmReceipt moves an order to completed on behalf of its owner.
func (s *service) ConfirmReceipt(ctx context.Context, orderID uint, requester Requester) error {
	o, err := s.authorizedOrder(ctx, orderID, requester)
	if err != nil {
		return err
	}

	switch o.Status {
	case StatusCompleted:
		return ErrAlreadyCompleted
	case StatusCancelled:
		return ErrAlreadyCancelled
	}
	if !CanTransition(o.Status, StatusCompleted) {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatusFrom(ctx, o.ID, o.Status, StatusCompleted)
}

// Cancel restores the order's stock and marks it cancelled. Only the
// owner or an admin may cancel, and only inside the cancel window.
func (s *service) Cancel(ctx context.Context, orderID uint, requester Requester) (*CancelResult, error) {
	o, err := s.authorizedOrder(ctx, orderID, requester)
	if err != nil {
		return nil, err
	}

	switch o.Status {
	case StatusCancelled:
		return nil, ErrAlreadyCancelled
	case StatusCompleted:
		return nil, ErrAlreadyCompleted
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return nil, ErrInvalidTransition
	}
	if s.now().Sub(o.CreatedAt) >= CancelWindow {
		return nil, ErrCancelWindowExpired
	}

	return s.repo.CancelTx(ctx, o)
}

// UpdateStatus is the admin lifecycle control for paid/shipped moves.
func (s *service) UpdateStatus(ctx context.Context, orderID uint, to Status, requester Requester) error {
	if !requester.IsAdmin() {
		return ErrUnauthorized
	}
	if !to.Valid() {
		return ErrInvalidStatus
	}

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if !CanTransition(o.Status, to) {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatusFrom(ctx, o.ID, o.Status, to)
}

func (s *service) GetOrder(ctx context.Context, orderID uint, requester Requester) (*Order, error) {
	return s.authorizedOrder(ctx, orderID, requester)
}

func (s *service) ListOrdersForUser(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) ListAllOrders(ctx context.Context, requester Requester) ([]*Order, error) {
	if !requester.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.repo.ListAll(ctx)
}

func (s *service) authorizedOrder(ctx context.Context, orderID uint, requester Requester) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != requester.UserID && !requester.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return o, nil
}
