package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		Name:         "Maya Perera",
		Phone1:       "0771234567",
		District:     "Colombo",
		Address:      "12 Galle Road",
		Size:         "L",
		Shipping:     "standard",
		ProductCount: 2,
		Subtotal:     990,
		ShippingCost: 120,
	}
}

func TestSanitizeOrderInputComputesTotal(t *testing.T) {
	req := validRequest()
	req.TotalCost = 1 // whatever the client sent is ignored

	order := SanitizeOrderInput(req)

	assert.Equal(t, 1110.0, order.TotalCost)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, 990.0, order.Subtotal)
	assert.Equal(t, 120.0, order.ShippingCost)
}

func TestSanitizeOrderInputClampsFields(t *testing.T) {
	req := validRequest()
	req.Name = "  " + strings.Repeat("a", 150) + "  "
	req.Phone1 = strings.Repeat("9", 30)
	req.District = strings.Repeat("d", 60)
	req.Address = strings.Repeat("x", 250)
	req.ProductCount = 500
	req.Subtotal = -10
	req.ShippingCost = -5

	order := SanitizeOrderInput(req)

	assert.Len(t, order.Name, 100)
	assert.Len(t, order.Phone1, 20)
	assert.Len(t, order.District, 50)
	assert.Len(t, order.Address, 200)
	assert.Equal(t, 100, order.ProductCount)
	assert.Equal(t, 0.0, order.Subtotal)
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 0.0, order.TotalCost)
}

func TestSanitizeOrderInputOptionalFields(t *testing.T) {
	req := validRequest()
	order := SanitizeOrderInput(req)
	assert.Nil(t, order.Phone2)
	assert.Nil(t, order.Email)

	req.Phone2 = " 0769876543 "
	req.Email = "maya@example.com"
	order = SanitizeOrderInput(req)
	if assert.NotNil(t, order.Phone2) {
		assert.Equal(t, "0769876543", *order.Phone2)
	}
	if assert.NotNil(t, order.Email) {
		assert.Equal(t, "maya@example.com", *order.Email)
	}
}

func TestSanitizeOrderInputProductCountFloor(t *testing.T) {
	req := validRequest()
	req.ProductCount = 0
	assert.Equal(t, 1, SanitizeOrderInput(req).ProductCount)
}

func TestValidateOrderInput(t *testing.T) {
	assert.Empty(t, ValidateOrderInput(validRequest()))

	req := validRequest()
	req.Name = "   "
	req.District = ""
	assert.Equal(t, []string{"name", "district"}, ValidateOrderInput(req))
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, IsValidOrderStatus(s), s)
	}
	assert.False(t, IsValidOrderStatus("archived"))
	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("Pending"))
}

func TestOrderSortColumn(t *testing.T) {
	assert.Equal(t, "created_at", OrderSortColumn("createdAt"))
	assert.Equal(t, "total_cost", OrderSortColumn("totalCost"))
	assert.Equal(t, "name", OrderSortColumn("name"))
	assert.Equal(t, "status", OrderSortColumn("status"))

	// Unknown or hostile input falls back to the default column.
	assert.Equal(t, "created_at", OrderSortColumn("id; DROP TABLE orders"))
	assert.Equal(t, "created_at", OrderSortColumn(""))
}

func TestOrderNumber(t *testing.T) {
	o := Order{ID: "0b5c9d3e-8f4a-4f6b-9c2d-a1b2c3d4e5f6"}
	assert.Equal(t, "c3d4e5f6", o.ShortID())
	assert.Equal(t, "ORD-C3D4E5F6", o.OrderNumber())

	short := Order{ID: "abc"}
	assert.Equal(t, "abc", short.ShortID())
}
