package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tshirt-store/libs"
	"tshirt-store/models"
)

type ProductController struct{}

const productCacheTTL = 5 * time.Minute

func productCacheKey(page, limit int) string {
	return fmt.Sprintf("products_list_p%d_l%d", page, limit)
}

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
	models.RedisClient.Del(ctx, "selected_product")
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	var sizeChart, details []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Features, &p.Sizes, &p.Images,
		&p.MainImage, &sizeChart, &details, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	if len(sizeChart) > 0 {
		json.Unmarshal(sizeChart, &p.SizeChart)
	}
	if len(details) > 0 {
		json.Unmarshal(details, &p.Details)
	}
	return p, nil
}

const productColumns = `id, name, price, description, features, sizes, images,
	COALESCE(main_image, ''), size_chart, details, created_at, updated_at`

// @Summary Get all products
// @Description Paginated product list (public, cached)
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	cacheKey := productCacheKey(page, limit)
	ctx := c.Request.Context()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	offset := (page - 1) * limit

	var total int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&total)

	rows, err := models.DB.Query(ctx,
		fmt.Sprintf("SELECT %s FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2", productColumns),
		limit, offset)
	if err != nil {
		log.Println("Query products failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Println("Scan product failed:", err)
			continue
		}
		products = append(products, p)
	}

	response := gin.H{
		"success": true, "message": "Products retrieved", "data": products,
		"meta": gin.H{
			"page": page, "limit": limit, "total_items": total,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), productCacheTTL)
	}

	c.JSON(200, response)
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID format"})
		return
	}

	p, err := scanProduct(models.DB.QueryRow(c.Request.Context(),
		fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns), id))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(200, models.Response{Success: true, Message: "Product retrieved", Data: p})
}

// @Summary Create product
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product data"
// @Success 201 {object} models.Response
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Name, price and description are required"})
		return
	}

	if len(req.Sizes) == 0 {
		req.Sizes = []string{"M", "L", "XL", "2XL"}
	}

	sizeChart, _ := json.Marshal(req.SizeChart)
	now := time.Now()
	id := uuid.NewString()

	_, err := models.DB.Exec(c.Request.Context(), `
		INSERT INTO products (id, name, price, description, features, sizes, images, main_image, size_chart, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		id, req.Name, req.Price, req.Description, req.Features, req.Sizes, req.Images,
		req.MainImage, sizeChart, now, now,
	)
	if err != nil {
		log.Println("Insert product failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	invalidateProductCache()

	c.JSON(201, models.Response{Success: true, Message: "Product created successfully", Data: gin.H{"id": id}})
}

// @Summary Update product
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Product data"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID format"})
		return
	}

	p, err := scanProduct(models.DB.QueryRow(c.Request.Context(),
		fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns), id))
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Price > 0 {
		p.Price = req.Price
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Features != nil {
		p.Features = req.Features
	}
	if req.Sizes != nil {
		p.Sizes = req.Sizes
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.MainImage != "" {
		p.MainImage = req.MainImage
	}
	if req.SizeChart != nil {
		p.SizeChart = req.SizeChart
	}

	sizeChart, _ := json.Marshal(p.SizeChart)

	_, err = models.DB.Exec(c.Request.Context(), `
		UPDATE products SET name=$1, price=$2, description=$3, features=$4, sizes=$5,
			images=$6, main_image=$7, size_chart=$8, updated_at=$9
		WHERE id=$10`,
		p.Name, p.Price, p.Description, p.Features, p.Sizes, p.Images, p.MainImage,
		sizeChart, time.Now(), id,
	)
	if err != nil {
		log.Println("Update product failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	invalidateProductCache()

	c.JSON(200, models.Response{Success: true, Message: "Product updated successfully", Data: p})
}

// @Summary Delete product
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID format"})
		return
	}

	tag, err := models.DB.Exec(c.Request.Context(), "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		log.Println("Delete product failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	invalidateProductCache()

	c.JSON(200, models.Response{Success: true, Message: "Product deleted successfully"})
}

// @Summary Upload product image
// @Description Stores the image on Cloudinary when configured, otherwise in the local upload directory
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response
// @Router /admin/products/upload [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image file is required"})
		return
	}

	localPath, err := saveUpload(c, file)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	url, err := libs.UploadToCloudinary(localPath)
	if err != nil {
		// Keep the local copy and serve it from /uploads.
		log.Println("Cloudinary upload failed, using local file:", err)
		url = "/uploads/" + filepath.Base(localPath)
	}

	c.JSON(200, models.Response{Success: true, Message: "Image uploaded", Data: gin.H{"url": url}})
}

func saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > 5*1024*1024 {
		return "", fmt.Errorf("file too large (max 5MB)")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("invalid file type")
	}

	uploadDir := getEnv("UPLOAD_DIR", "./uploads")
	os.MkdirAll(uploadDir, os.ModePerm)

	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(file.Filename, " ", "_"))
	fullPath := filepath.Join(uploadDir, filename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
