package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/janus-id/janus/core"
	"github.com/janus-id/janus/service"
)

// AuthHandlers contains HTTP handlers for the auth endpoints.
type AuthHandlers struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(auth *service.AuthService, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{auth: auth, logger: logger}
}

// UserResponse is the wire shape of a user record. The password hash never
// leaves the service.
type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toUserResponse(u *core.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		WalletAddress: u.WalletAddress,
		Verified:      u.Verified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// Nonce handles the nonce request for a wallet address.
func (h *AuthHandlers) Nonce(c *gin.Context) {
	walletAddress := c.Query("walletAddress")

	nonce, err := h.auth.IssueNonce(c.Request.Context(), walletAddress)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nonce": nonce})
}

// UserByWallet returns the account registered for a wallet address.
func (h *AuthHandlers) UserByWallet(c *gin.Context) {
	user, err := h.auth.UserByWallet(c.Request.Context(), c.Query("walletAddress"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// WalletLogin handles wallet login and first-time registration.
func (h *AuthHandlers) WalletLogin(c *gin.Context) {
	var req struct {
		Username      string `json:"username"`
		Email         string `json:"email"`
		WalletAddress string `json:"walletAddress" binding:"required"`
		Signature     string `json:"signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet address and signature are required"})
		return
	}

	user, token, err := h.auth.LoginWithWallet(c.Request.Context(), req.Username, req.Email, req.WalletAddress, req.Signature)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        toUserResponse(user),
		"accessToken": token,
	})
}

// ConnectWallet links a wallet to the authenticated account.
func (h *AuthHandlers) ConnectWallet(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"walletAddress" binding:"required"`
		Signature     string `json:"signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet address and signature are required"})
		return
	}

	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	updated, err := h.auth.ConnectWallet(c.Request.Context(), user.ID, req.WalletAddress, req.Signature)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(updated)})
}

// SignUp handles credential registration.
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
		return
	}

	user, err := h.auth.SignUp(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

// VerifyOTP handles email verification.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		OTP      string `json:"otp" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and otp are required"})
		return
	}

	user, err := h.auth.VerifyOTP(c.Request.Context(), req.Username, req.OTP)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// ResendOTP issues a fresh verification code.
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	if err := h.auth.ResendOTP(c.Request.Context(), req.Username); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "new otp sent"})
}

// SignIn handles credential login. The token is returned in the body and
// also set as an httpOnly cookie.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, token, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.SetCookie(accessTokenCookie, token, int(time.Hour.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"user":        toUserResponse(user),
		"accessToken": token,
	})
}

// CurrentUser returns the authenticated user.
func (h *AuthHandlers) CurrentUser(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// Authorize reports that the wallet-signature middleware accepted the
// request.
func (h *AuthHandlers) Authorize(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": true,
		"user":       toUserResponse(user),
	})
}
