package models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateOrderRequest struct {
	Name         string  `json:"name"`
	Phone1       string  `json:"phone_1"`
	Phone2       string  `json:"phone_2"`
	Email        string  `json:"email"`
	District     string  `json:"district"`
	Address      string  `json:"address"`
	Size         string  `json:"size"`
	Shipping     string  `json:"shipping"`
	ProductCount int     `json:"product_count"`
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	// Ignored on input; the server recomputes it.
	TotalCost float64 `json:"total_cost"`
}

// UpdateOrderRequest carries the only admin-editable fields. Anything
// else in the payload is silently dropped.
type UpdateOrderRequest struct {
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
	TrackingNumber *string `json:"tracking_number"`
}

type CreateProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Price       float64     `json:"price" binding:"required"`
	Description string      `json:"description" binding:"required"`
	Features    []string    `json:"features"`
	Sizes       []string    `json:"sizes"`
	Images      []string    `json:"images"`
	MainImage   string      `json:"main_image"`
	SizeChart   []SizeChart `json:"size_chart"`
}

type UpdateProductRequest struct {
	Name        string      `json:"name"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Features    []string    `json:"features"`
	Sizes       []string    `json:"sizes"`
	Images      []string    `json:"images"`
	MainImage   string      `json:"main_image"`
	SizeChart   []SizeChart `json:"size_chart"`
}

type UpdateHeroRequest struct {
	MainTitle     string `json:"main_title"`
	OriginalPrice string `json:"original_price"`
	CurrentPrice  string `json:"current_price"`
	ButtonText    string `json:"button_text"`
}

type UpdateDeliveryRequest struct {
	InsideCity  string  `json:"inside_city"`
	OutsideCity string  `json:"outside_city"`
	InsideCost  float64 `json:"inside_cost"`
	OutsideCost float64 `json:"outside_cost"`
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type OrderListResponse struct {
	Success bool           `json:"success"`
	Orders  []Order        `json:"orders"`
	Meta    PaginationMeta `json:"meta"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  AdminUser `json:"user"`
}
