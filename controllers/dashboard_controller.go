package controllers

import (
	"fmt"
	"log"
	"math"

	"github.com/gin-gonic/gin"

	"tshirt-store/models"
)

type DashboardController struct{}

// @Summary Dashboard stats
// @Description Order totals, revenue and the five most recent orders (Admin)
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/dashboard [get]
func (ctrl *DashboardController) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var totalOrders, pendingOrders, productsCount int
	var totalRevenue, averageOrder float64

	err := models.DB.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COALESCE(SUM(total_cost), 0),
			COALESCE(AVG(total_cost), 0)
		FROM orders`,
	).Scan(&totalOrders, &pendingOrders, &totalRevenue, &averageOrder)
	if err != nil {
		log.Println("Dashboard stats failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch dashboard data"})
		return
	}

	if err := models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&productsCount); err != nil {
		log.Println("Dashboard product count failed:", err)
	}

	rows, err := models.DB.Query(ctx,
		fmt.Sprintf("SELECT %s FROM orders ORDER BY created_at DESC LIMIT 5", orderColumns))
	if err != nil {
		log.Println("Dashboard recent orders failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch dashboard data"})
		return
	}
	defer rows.Close()

	recentOrders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			continue
		}
		recentOrders = append(recentOrders, o)
	}

	c.JSON(200, gin.H{
		"success": true,
		"stats": gin.H{
			"total_orders":   totalOrders,
			"pending_orders": pendingOrders,
			"total_revenue":  totalRevenue,
			"products_count": productsCount,
			"average_order":  math.Round(averageOrder),
		},
		"recent_orders": recentOrders,
	})
}
