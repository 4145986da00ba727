package models

import (
	"strings"
	"time"
)

type Order struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone1         string    `json:"phone_1"`
	Phone2         *string   `json:"phone_2,omitempty"`
	Email          *string   `json:"email,omitempty"`
	District       string    `json:"district"`
	Address        string    `json:"address"`
	Size           string    `json:"size"`
	Shipping       string    `json:"shipping"`
	ProductCount   int       `json:"product_count"`
	Subtotal       float64   `json:"subtotal"`
	ShippingCost   float64   `json:"shipping_cost"`
	TotalCost      float64   `json:"total_cost"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	TrackingNumber *string   `json:"tracking_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var orderStatuses = []string{
	StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Sort fields accepted by the order listing query. Anything else falls
// back to created_at so clients cannot sort by arbitrary columns.
var orderSortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"totalCost": "total_cost",
	"status":    "status",
}

func OrderSortColumn(sortBy string) string {
	if col, ok := orderSortColumns[sortBy]; ok {
		return col
	}
	return "created_at"
}

// SanitizeOrderInput trims and clamps a raw submission into a persistable
// order. Required-field checks happen in ValidateOrderInput; here we only
// normalize. The total is always recomputed from subtotal + shipping cost,
// whatever the client sent.
func SanitizeOrderInput(req *CreateOrderRequest) Order {
	order := Order{
		Name:         clampString(req.Name, 100),
		Phone1:       clampString(req.Phone1, 20),
		District:     clampString(req.District, 50),
		Address:      clampString(req.Address, 200),
		Size:         clampString(req.Size, 20),
		Shipping:     clampString(req.Shipping, 20),
		ProductCount: clampInt(req.ProductCount, 1, 100),
		Subtotal:     clampNonNegative(req.Subtotal),
		ShippingCost: clampNonNegative(req.ShippingCost),
		Status:       StatusPending,
	}
	order.TotalCost = order.Subtotal + order.ShippingCost

	if phone2 := clampString(req.Phone2, 20); phone2 != "" {
		order.Phone2 = &phone2
	}
	if email := clampString(req.Email, 100); email != "" {
		order.Email = &email
	}
	return order
}

// ValidateOrderInput returns the names of missing required fields.
func ValidateOrderInput(req *CreateOrderRequest) []string {
	missing := []string{}
	required := map[string]string{
		"name":     req.Name,
		"phone_1":  req.Phone1,
		"district": req.District,
		"address":  req.Address,
		"size":     req.Size,
		"shipping": req.Shipping,
	}
	for _, field := range []string{"name", "phone_1", "district", "address", "size", "shipping"} {
		if strings.TrimSpace(required[field]) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func clampString(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max]
	}
	return s
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// ShortID mirrors the dashboard's order-number display (#last 8 chars).
func (o *Order) ShortID() string {
	if len(o.ID) > 8 {
		return o.ID[len(o.ID)-8:]
	}
	return o.ID
}

func (o *Order) OrderNumber() string {
	return "ORD-" + strings.ToUpper(o.ShortID())
}
