package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"spinnerbot/internal/auth"
	"spinnerbot/internal/middleware"
	"spinnerbot/internal/models"
	dbconfig "spinnerbot/pkg/config"
	mcsolana "spinnerbot/pkg/solana"
)

// WithdrawRequest represents the request body for withdrawals
type WithdrawRequest struct {
	ToAddress string  `json:"to_address" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
}

// ValidateAddressRequest represents the request body for address validation
type ValidateAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// GetBalance returns the on-chain SOL balance and refreshes the cached copy.
func GetBalance(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := dbconfig.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	balance, err := mcsolana.GetSolBalance(mcsolana.RPCClient(), user.WalletAddress)
	if err != nil {
		balance = user.SolBalance
	} else {
		user.SolBalance = balance
		if err := dbconfig.DB.Save(&user).Error; err != nil {
			log.Errorf("Failed to persist balance for user %d: %v", user.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet_address":    user.WalletAddress,
		"balance":           balance,
		"balance_formatted": fmt.Sprintf("%.4f SOL", balance),
	})
}

// Withdraw sends SOL to an external address, settling the configured fee to
// the admin wallet, and records both ledger rows.
func Withdraw(c *gin.Context) {
	userID := middleware.UserID(c)

	var request WithdrawRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than zero"})
		return
	}

	withdrawalCfg := mcsolana.WithdrawalConfigFromEnv()
	if request.Amount < withdrawalCfg.MinWithdrawal {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Minimum withdrawal is %v SOL", withdrawalCfg.MinWithdrawal),
		})
		return
	}

	if !mcsolana.IsValidAddress(request.ToAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Solana address"})
		return
	}

	var user models.User
	if err := dbconfig.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	km := mcsolana.NewKeyManager()
	account, err := km.AccountFromEncrypted(user.PrivateKey, auth.Secret())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlock wallet"})
		return
	}

	result := mcsolana.WithdrawWithFee(
		mcsolana.RPCClient(),
		solanago.PrivateKey(account.PrivateKey),
		user.WalletAddress,
		request.ToAddress,
		request.Amount,
		withdrawalCfg,
	)
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{"error": result.Err.Error()})
		return
	}

	withdrawal := models.Transaction{
		UserID:      user.ID,
		Type:        models.TxTypeWithdrawal,
		Amount:      request.Amount - result.FeeAmount,
		Signature:   result.Signature,
		Status:      models.TxStatusConfirmed,
		FeeAmount:   result.FeeAmount,
		FromAddress: user.WalletAddress,
		ToAddress:   request.ToAddress,
		Metadata: models.JSONB{
			"original_amount": request.Amount,
			"fee_percentage":  withdrawalCfg.FeePercentage,
		},
	}
	if err := dbconfig.DB.Create(&withdrawal).Error; err != nil {
		log.Errorf("Failed to record withdrawal for user %d: %v", user.ID, err)
	}

	if result.FeeAmount > 0 {
		fee := models.Transaction{
			UserID:      user.ID,
			Type:        models.TxTypeFee,
			Amount:      result.FeeAmount,
			Signature:   result.Signature + "_fee",
			Status:      models.TxStatusConfirmed,
			FromAddress: user.WalletAddress,
			ToAddress:   withdrawalCfg.AdminWalletAddress,
			Metadata: models.JSONB{
				"fee_percentage":      withdrawalCfg.FeePercentage,
				"original_withdrawal": request.Amount,
			},
		}
		if err := dbconfig.DB.Create(&fee).Error; err != nil {
			log.Errorf("Failed to record fee for user %d: %v", user.ID, err)
		}
	}

	newBalance, err := mcsolana.GetSolBalance(mcsolana.RPCClient(), user.WalletAddress)
	if err == nil {
		user.SolBalance = newBalance
		dbconfig.DB.Save(&user)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Withdrawal successful",
		"transaction": gin.H{
			"signature":  result.Signature,
			"amount":     request.Amount - result.FeeAmount,
			"fee_amount": result.FeeAmount,
			"to_address": request.ToAddress,
			"timestamp":  time.Now(),
		},
		"new_balance": newBalance,
	})
}

// GetDepositAddress returns the user's custodial wallet address.
func GetDepositAddress(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := dbconfig.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deposit_address": user.WalletAddress,
		"message":         "Send SOL to this address to make deposits",
		"network":         "Solana",
		"minimum_deposit": "0.001 SOL",
	})
}

// ValidateAddress checks whether a string is a valid Solana address.
func ValidateAddress(c *gin.Context) {
	var request ValidateAddressRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isValid := mcsolana.IsValidAddress(request.Address)

	message := "Invalid address"
	if isValid {
		message = "Valid address"
	}

	c.JSON(http.StatusOK, gin.H{
		"address":  request.Address,
		"is_valid": isValid,
		"message":  message,
	})
}

// ListTransactions returns the user's ledger, newest first, paginated.
func ListTransactions(c *gin.Context) {
	userID := middleware.UserID(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	query := dbconfig.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var transactions []models.Transaction
	err = query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&transactions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetTransaction returns one ledger row by its signature.
func GetTransaction(c *gin.Context) {
	userID := middleware.UserID(c)
	signature := c.Param("signature")

	var transaction models.Transaction
	err := dbconfig.DB.Where("user_id = ? AND signature = ?", userID, signature).
		First(&transaction).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	// Simulated trades never settle on-chain; everything else pending gets
	// its status refreshed.
	if transaction.Status == models.TxStatusPending && !strings.HasPrefix(transaction.Signature, "simulated_") {
		status, err := mcsolana.CheckTransactionStatus(mcsolana.RPCClient(), transaction.Signature)
		if err == nil && status != transaction.Status {
			transaction.Status = status
			if err := dbconfig.DB.Save(&transaction).Error; err != nil {
				log.Errorf("Failed to persist status for %s: %v", transaction.Signature, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}
