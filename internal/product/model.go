package product

type Product struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	ImageURL        *string `json:"image_url,omitempty"`
	CategoryID      *uint   `json:"category_id,omitempty"`
	CategoryName    *string `json:"category_name,omitempty"`
	Stock           int     `json:"stock"`
	Ingredients     *string `json:"ingredients,omitempty"`
	NutritionFacts  *string `json:"nutrition_facts,omitempty"`
	UsageDirections *string `json:"usage_directions,omitempty"`
}

type NewProductInput struct {
	Name            string
	Description     *string
	Price           float64
	ImageURL        *string
	CategoryID      *uint
	Stock           int
	Ingredients     *string
	NutritionFacts  *string
	UsageDirections *string
}

// ProductUpdate carries the admin batch fields; nil means "leave alone".
type ProductUpdate struct {
	ProductID   uint     `json:"product_id"`
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

type BatchFailure struct {
	ProductID uint   `json:"product_id"`
	Field     string `json:"field"`
	Reason    string `json:"reason"`
}

// BatchResult reports how many products each field touched. The batch is
// best-effort, not a transaction; Failed lists what didn't apply.
type BatchResult struct {
	NamesUpdated        int            `json:"names_updated"`
	PricesUpdated       int            `json:"prices_updated"`
	DescriptionsUpdated int            `json:"descriptions_updated"`
	ImagesUpdated       int            `json:"images_updated"`
	StocksUpdated       int            `json:"stocks_updated"`
	Failed              []BatchFailure `json:"failed,omitempty"`
}

type ListOptions struct {
	Sort       string
	Direction  string
	CategoryID *uint
}
