package controllers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tshirt-store/middleware"
	"tshirt-store/models"
	"tshirt-store/notify"
)

type OrderController struct {
	Publisher *notify.Publisher
	Mailer    *models.EmailService
}

const orderColumns = `id, name, phone_1, phone_2, email, district, address, size, shipping,
	product_count, subtotal, shipping_cost, total_cost, status, notes, tracking_number,
	created_at, updated_at`

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.Name, &o.Phone1, &o.Phone2, &o.Email, &o.District, &o.Address,
		&o.Size, &o.Shipping, &o.ProductCount, &o.Subtotal, &o.ShippingCost,
		&o.TotalCost, &o.Status, &o.Notes, &o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (ctrl *OrderController) getPaginationParams(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}

	offset = (page - 1) * limit
	return page, limit, offset
}

// @Summary List orders
// @Description List orders with status filter, pagination and restricted sorting (Admin). With limit=1 and sortBy=createdAt this doubles as the dashboard poll query.
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page (max 100)"
// @Param status query string false "Filter by status"
// @Param sortBy query string false "Sort field" Enums(createdAt, name, totalCost, status)
// @Success 200 {object} models.OrderListResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit, offset := ctrl.getPaginationParams(c, 50)

	sortColumn := models.OrderSortColumn(c.Query("sortBy"))

	where := ""
	args := []interface{}{}
	status := c.Query("status")
	if status != "" && status != "all" && models.IsValidOrderStatus(status) {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	if err := models.DB.QueryRow(c.Request.Context(), "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		log.Println("Count orders failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to count orders"})
		return
	}

	query := fmt.Sprintf(
		"SELECT %s FROM orders%s ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		orderColumns, where, sortColumn, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := models.DB.Query(c.Request.Context(), query, args...)
	if err != nil {
		log.Println("Query orders failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Println("Scan order failed:", err)
			continue
		}
		orders = append(orders, o)
	}

	totalPages := (total + limit - 1) / limit

	c.JSON(200, models.OrderListResponse{
		Success: true,
		Orders:  orders,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	})
}

// @Summary Get order by ID
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := scanOrder(models.DB.QueryRow(c.Request.Context(),
		fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns), id))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Order retrieved successfully", Data: order})
}

// @Summary Submit order
// @Description Customer order submission. Strings are trimmed and clamped, the product count is forced into 1-100 and the total is recomputed from subtotal + shipping cost.
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body models.CreateOrderRequest true "Order data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if missing := models.ValidateOrderInput(&req); len(missing) > 0 {
		middleware.RecordOrderOperation("create", false)
		c.JSON(400, gin.H{
			"success": false,
			"message": "Missing required fields: " + strings.Join(missing, ", "),
		})
		return
	}

	order := models.SanitizeOrderInput(&req)
	order.ID = uuid.NewString()
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := models.DB.Exec(c.Request.Context(), `
		INSERT INTO orders (id, name, phone_1, phone_2, email, district, address, size, shipping,
			product_count, subtotal, shipping_cost, total_cost, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		order.ID, order.Name, order.Phone1, order.Phone2, order.Email, order.District,
		order.Address, order.Size, order.Shipping, order.ProductCount, order.Subtotal,
		order.ShippingCost, order.TotalCost, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		log.Println("Insert order failed:", err)
		middleware.RecordOrderOperation("create", false)
		c.JSON(500, gin.H{"success": false, "message": "Failed to create order"})
		return
	}

	middleware.RecordOrderOperation("create", true)

	// The order is committed; everything below is best-effort.
	ctrl.Publisher.OrderCreated(order)
	ctrl.sendConfirmation(order)

	c.JSON(201, models.Response{Success: true, Message: "Order created successfully", Data: order})
}

func (ctrl *OrderController) sendConfirmation(order models.Order) {
	if ctrl.Mailer == nil || order.Email == nil {
		return
	}
	go func() {
		if err := ctrl.Mailer.SendOrderConfirmation(*order.Email, &order); err != nil {
			log.Printf("Order confirmation mail failed for %s: %v", order.ID, err)
		}
	}()
}

// @Summary Update order
// @Description Update status, notes or tracking number (Admin). Other fields in the payload are ignored. Last write wins on concurrent updates.
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body models.UpdateOrderRequest true "Fields to update"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [put]
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.Status == nil && req.Notes == nil && req.TrackingNumber == nil {
		c.JSON(400, gin.H{"success": false, "message": "No updatable fields provided"})
		return
	}

	if req.Status != nil && !models.IsValidOrderStatus(*req.Status) {
		c.JSON(400, gin.H{"success": false, "message": "Invalid status value"})
		return
	}

	order, err := scanOrder(models.DB.QueryRow(c.Request.Context(), fmt.Sprintf(`
		UPDATE orders SET
			status = COALESCE($1, status),
			notes = COALESCE($2, notes),
			tracking_number = COALESCE($3, tracking_number),
			updated_at = $4
		WHERE id = $5
		RETURNING %s`, orderColumns),
		req.Status, req.Notes, req.TrackingNumber, time.Now(), id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			c.JSON(404, gin.H{"success": false, "message": "Order not found"})
			return
		}
		log.Println("Update order failed:", err)
		middleware.RecordOrderOperation("update", false)
		c.JSON(500, gin.H{"success": false, "message": "Failed to update order"})
		return
	}

	middleware.RecordOrderOperation("update", true)
	ctrl.Publisher.OrderUpdated(order)

	c.JSON(200, models.Response{Success: true, Message: "Order updated successfully", Data: order})
}

// @Summary Delete order
// @Description Delete an order permanently (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [delete]
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	tag, err := models.DB.Exec(c.Request.Context(), "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		log.Println("Delete order failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete order"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}

	middleware.RecordOrderOperation("delete", true)
	c.JSON(200, models.Response{Success: true, Message: "Order deleted successfully"})
}

func parseOrderID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID format"})
		return "", false
	}
	return id, true
}
