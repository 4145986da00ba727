package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"tshirt-store/models"
	"tshirt-store/utils"
)

type AuthController struct{}

// Login godoc
// @Summary Admin login
// @Description Authenticate an admin and issue a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /admin/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	var user models.AdminUser
	err := models.DB.QueryRow(c.Request.Context(),
		"SELECT id, name, email, password_hash, role, created_at FROM admin_users WHERE email = $1",
		req.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		c.JSON(401, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		c.JSON(401, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if user.Role != "admin" {
		c.JSON(403, gin.H{"success": false, "message": "Admin access required"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Println("Token generation failed:", err)
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(200, models.LoginResponse{Token: token, User: user})
}

// Verify godoc
// @Summary Verify token
// @Description Confirm the bearer token is still valid
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/auth/verify [get]
func (ctrl *AuthController) Verify(c *gin.Context) {
	c.JSON(200, gin.H{
		"valid": true,
		"user": gin.H{
			"id":    c.GetInt("user_id"),
			"email": c.GetString("user_email"),
			"role":  c.GetString("user_role"),
		},
	})
}
