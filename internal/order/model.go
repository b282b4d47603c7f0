package order

import (
	"strings"
	"time"

	"otherproteins-be/internal/user"
)

// Delivery types stored on the order row.
const (
	DeliveryPickup = "tienda"
	DeliveryHome   = "etxera"
)

// DeliveryOptions is the checkout input. Home delivery requires a full
// address; store pickup carries none and costs nothing.
type DeliveryOptions struct {
	Type       string  `json:"type"`
	Cost       float64 `json:"cost"`
	Street     string  `json:"street"`
	Number     string  `json:"number"`
	City       string  `json:"city"`
	Province   string  `json:"province"`
	PostalCode string  `json:"postal_code"`
}

func (d DeliveryOptions) Validate() error {
	if d.Cost < 0 {
		return ErrInvalidDeliveryCost
	}

	switch d.Type {
	case DeliveryPickup:
		return nil
	case DeliveryHome:
		if strings.TrimSpace(d.Street) == "" ||
			strings.TrimSpace(d.City) == "" ||
			strings.TrimSpace(d.PostalCode) == "" {
			return ErrIncompleteAddress
		}
		return nil
	default:
		return ErrInvalidDeliveryType
	}
}

type Order struct {
	ID           uint         `json:"id"`
	UserID       uint         `json:"user_id"`
	Status       Status       `json:"status"`
	DeliveryType string       `json:"delivery_type"`
	DeliveryCost float64      `json:"delivery_cost"`
	Street       *string      `json:"street,omitempty"`
	Number       *string      `json:"number,omitempty"`
	City         *string      `json:"city,omitempty"`
	Province     *string      `json:"province,omitempty"`
	PostalCode   *string      `json:"postal_code,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	Lines        []*OrderLine `json:"lines,omitempty"`
}

// Total sums the snapshot line prices plus the delivery cost.
func (o *Order) Total() float64 {
	total := o.DeliveryCost
	for _, l := range o.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// OrderLine snapshots name and unit price at checkout time; later catalog
// edits never rewrite history.
type OrderLine struct {
	OrderID     uint    `json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Requester identifies who is performing an operation. Authorization is
// decided from the carried role, never from any particular identity.
type Requester struct {
	UserID uint
	Role   user.Role
}

func (r Requester) IsAdmin() bool {
	return r.Role == user.RoleAdmin
}

// CancelResult reports the per-product outcome of a cancellation's stock
// restore. The status flip happens regardless; NotRestored names lines
// whose product no longer exists.
type CancelResult struct {
	OrderID     uint     `json:"order_id"`
	Restored    []string `json:"restored"`
	NotRestored []string `json:"not_restored,omitempty"`
}
