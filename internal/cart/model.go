package cart

// CartLine is a (user, product) row joined against the live product for
// display. Price/name/stock are read-time snapshots, not reservations;
// the authoritative stock check happens again at checkout.
type CartLine struct {
	UserID      uint    `json:"user_id"`
	ProductID   uint    `json:"product_id"`
	Quantity    int     `json:"quantity"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	ImageURL    *string `json:"image_url,omitempty"`
	Stock       int     `json:"stock"`
}
