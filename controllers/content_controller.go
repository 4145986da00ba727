package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tshirt-store/models"
)

// ContentController serves the storefront configuration: hero banner,
// delivery pricing and the currently featured product. Each is a
// single-row table created with defaults on first read.
type ContentController struct{}

// @Summary Get hero banner
// @Tags Content
// @Produce json
// @Success 200 {object} models.Response
// @Router /hero [get]
func (ctrl *ContentController) GetHero(c *gin.Context) {
	ctx := c.Request.Context()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, "hero").Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	var hero models.Hero
	err := models.DB.QueryRow(ctx, `
		INSERT INTO hero (id) VALUES (1)
		ON CONFLICT (id) DO UPDATE SET id = hero.id
		RETURNING id, main_title, original_price, current_price, button_text, created_at, updated_at`,
	).Scan(&hero.ID, &hero.MainTitle, &hero.OriginalPrice, &hero.CurrentPrice,
		&hero.ButtonText, &hero.CreatedAt, &hero.UpdatedAt)
	if err != nil {
		log.Println("Fetch hero failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch hero data"})
		return
	}

	response := models.Response{Success: true, Message: "Hero retrieved", Data: hero}
	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, "hero", string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Update hero banner
// @Tags Admin - Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param hero body models.UpdateHeroRequest true "Hero data"
// @Success 200 {object} models.Response
// @Router /admin/hero [put]
func (ctrl *ContentController) UpdateHero(c *gin.Context) {
	var req models.UpdateHeroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if _, err := models.DB.Exec(c.Request.Context(),
		"INSERT INTO hero (id) VALUES (1) ON CONFLICT (id) DO NOTHING"); err != nil {
		log.Println("Ensure hero row failed:", err)
	}

	var hero models.Hero
	err := models.DB.QueryRow(c.Request.Context(), `
		UPDATE hero SET
			main_title = COALESCE(NULLIF($1, ''), main_title),
			original_price = COALESCE(NULLIF($2, ''), original_price),
			current_price = COALESCE(NULLIF($3, ''), current_price),
			button_text = COALESCE(NULLIF($4, ''), button_text),
			updated_at = $5
		WHERE id = 1
		RETURNING id, main_title, original_price, current_price, button_text, created_at, updated_at`,
		req.MainTitle, req.OriginalPrice, req.CurrentPrice, req.ButtonText, time.Now(),
	).Scan(&hero.ID, &hero.MainTitle, &hero.OriginalPrice, &hero.CurrentPrice,
		&hero.ButtonText, &hero.CreatedAt, &hero.UpdatedAt)
	if err != nil {
		log.Println("Update hero failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to update hero data"})
		return
	}

	if models.RedisClient != nil {
		models.RedisClient.Del(c.Request.Context(), "hero")
	}

	c.JSON(200, models.Response{Success: true, Message: "Hero updated successfully", Data: hero})
}

// @Summary Get delivery pricing
// @Tags Content
// @Produce json
// @Success 200 {object} models.Response
// @Router /delivery [get]
func (ctrl *ContentController) GetDelivery(c *gin.Context) {
	var charge models.DeliveryCharge
	err := models.DB.QueryRow(c.Request.Context(), `
		INSERT INTO delivery_charges (id) VALUES (1)
		ON CONFLICT (id) DO UPDATE SET id = delivery_charges.id
		RETURNING id, inside_city, outside_city, inside_cost, outside_cost, created_at, updated_at`,
	).Scan(&charge.ID, &charge.InsideCity, &charge.OutsideCity, &charge.InsideCost,
		&charge.OutsideCost, &charge.CreatedAt, &charge.UpdatedAt)
	if err != nil {
		log.Println("Fetch delivery charge failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch delivery pricing"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Delivery pricing retrieved", Data: charge})
}

// @Summary Update delivery pricing
// @Tags Admin - Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param delivery body models.UpdateDeliveryRequest true "Delivery pricing"
// @Success 200 {object} models.Response
// @Router /admin/delivery [put]
func (ctrl *ContentController) UpdateDelivery(c *gin.Context) {
	var req models.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.InsideCost < 0 || req.OutsideCost < 0 {
		c.JSON(400, gin.H{"success": false, "message": "Delivery costs cannot be negative"})
		return
	}

	if _, err := models.DB.Exec(c.Request.Context(),
		"INSERT INTO delivery_charges (id) VALUES (1) ON CONFLICT (id) DO NOTHING"); err != nil {
		log.Println("Ensure delivery row failed:", err)
	}

	var charge models.DeliveryCharge
	err := models.DB.QueryRow(c.Request.Context(), `
		UPDATE delivery_charges SET
			inside_city = COALESCE(NULLIF($1, ''), inside_city),
			outside_city = COALESCE(NULLIF($2, ''), outside_city),
			inside_cost = $3,
			outside_cost = $4,
			updated_at = $5
		WHERE id = 1
		RETURNING id, inside_city, outside_city, inside_cost, outside_cost, created_at, updated_at`,
		req.InsideCity, req.OutsideCity, req.InsideCost, req.OutsideCost, time.Now(),
	).Scan(&charge.ID, &charge.InsideCity, &charge.OutsideCity, &charge.InsideCost,
		&charge.OutsideCost, &charge.CreatedAt, &charge.UpdatedAt)
	if err != nil {
		log.Println("Update delivery charge failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to update delivery pricing"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Delivery pricing updated", Data: charge})
}

// @Summary Get featured product
// @Tags Content
// @Produce json
// @Success 200 {object} models.Response
// @Router /selected-product [get]
func (ctrl *ContentController) GetSelectedProduct(c *gin.Context) {
	ctx := c.Request.Context()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, "selected_product").Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	p, err := scanProduct(models.DB.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM products
		WHERE id = (SELECT product_id FROM selected_product ORDER BY selected_at DESC LIMIT 1)`,
		productColumns)))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "No product selected"})
		return
	}

	response := models.Response{Success: true, Message: "Selected product retrieved", Data: p}
	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, "selected_product", string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Set featured product
// @Tags Admin - Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body object true "{\"product_id\": \"...\"}"
// @Success 200 {object} models.Response
// @Router /admin/selected-product [put]
func (ctrl *ContentController) SetSelectedProduct(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "product_id is required"})
		return
	}
	if _, err := uuid.Parse(req.ProductID); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID format"})
		return
	}

	ctx := c.Request.Context()
	tx, err := models.DB.Begin(ctx)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to start transaction"})
		return
	}
	defer tx.Rollback(ctx)

	// One featured product at a time.
	if _, err := tx.Exec(ctx, "DELETE FROM selected_product"); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to set selected product"})
		return
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO selected_product (product_id, selected_at) VALUES ($1, $2)",
		req.ProductID, time.Now()); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to set selected product"})
		return
	}
	if err := tx.Commit(ctx); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to commit transaction"})
		return
	}

	if models.RedisClient != nil {
		models.RedisClient.Del(ctx, "selected_product")
	}

	c.JSON(200, models.Response{Success: true, Message: "Selected product updated"})
}
