package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"spinnerbot/internal/auth"
	"spinnerbot/internal/middleware"
	"spinnerbot/internal/models"
	dbconfig "spinnerbot/pkg/config"
	mcsolana "spinnerbot/pkg/solana"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required"`
}

func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":             user.ID,
		"email":          user.Email,
		"username":       user.Username,
		"wallet_address": user.WalletAddress,
		"sol_balance":    user.SolBalance,
		"is_active":      user.IsActive,
		"last_login":     user.LastLogin,
		"created_at":     user.CreatedAt,
	}
}

// Register creates a new user with a freshly generated custodial wallet and
// a default bot configuration.
func Register(c *gin.Context) {
	var request RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(request.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must have at least 6 characters"})
		return
	}

	var existing models.User
	err := dbconfig.DB.Where("email = ? OR username = ?", request.Email, request.Username).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already exists"})
		return
	}

	km := mcsolana.NewKeyManager()
	account, err := km.GenerateKeyPair()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate wallet"})
		return
	}

	encryptedKey, err := km.EncryptPrivateKey(account.PrivateKey, auth.Secret())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to protect wallet key"})
		return
	}

	hashed, err := auth.HashPassword(request.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:         request.Email,
		Username:      request.Username,
		Password:      hashed,
		WalletAddress: account.PublicKey.ToBase58(),
		PrivateKey:    encryptedKey,
	}

	if err := dbconfig.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Default bot configuration; getOrCreateBotConfig covers older rows.
	if err := dbconfig.DB.Create(models.NewBotConfig(user.ID)).Error; err != nil {
		log.Errorf("Failed to create bot config for user %d: %v", user.ID, err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    userResponse(&user),
	})
}

// Login authenticates a user and issues a bearer token.
func Login(c *gin.Context) {
	var request LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := dbconfig.DB.Where("email = ?", request.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := auth.VerifyPassword(user.Password, request.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	now := time.Now()
	user.LastLogin = &now
	if err := dbconfig.DB.Save(&user).Error; err != nil {
		log.Errorf("Failed to update last login for user %d: %v", user.ID, err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userResponse(&user),
	})
}

// GetProfile returns the authenticated user, refreshing the cached balance.
func GetProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := dbconfig.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	balance, err := mcsolana.GetSolBalance(mcsolana.RPCClient(), user.WalletAddress)
	if err == nil {
		user.SolBalance = balance
		if err := dbconfig.DB.Save(&user).Error; err != nil {
			log.Errorf("Failed to persist balance for user %d: %v", user.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(&user)})
}

// UpdateProfile changes the username.
func UpdateProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var request UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	err := dbconfig.DB.Where("username = ? AND id <> ?", request.Username, userID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}

	var user models.User
	if err := dbconfig.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Username = request.Username
	if err := dbconfig.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userResponse(&user),
	})
}

// VerifyToken confirms the bearer token still maps to a user.
func VerifyToken(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := dbconfig.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  userResponse(&user),
	})
}
