package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/janus-id/janus/core"
	"github.com/janus-id/janus/service"
)

const (
	accessTokenCookie = "accessToken"
	userContextKey    = "user"
)

// currentUser returns the user attached by an auth middleware, or nil.
func currentUser(c *gin.Context) *core.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*core.User)
	if !ok {
		return nil
	}
	return user
}

// AuthMiddleware validates a bearer token from the Authorization header or
// the access token cookie and attaches the live user to the context.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := auth.ValidateSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// WalletSignatureMiddleware authenticates a request by a caller-supplied
// message/signature/address triple for an already-registered wallet. There
// is no server-held nonce in this mode, so it has weaker replay protection
// than the challenge-backed login; use it only for capability checks.
func WalletSignatureMiddleware(auth *service.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		walletAddress := c.GetHeader("X-Wallet-Address")
		signature := c.GetHeader("X-Wallet-Signature")
		message := c.GetHeader("X-Wallet-Message")

		if walletAddress == "" || signature == "" || message == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "wallet address, signature and message are required",
			})
			return
		}

		user, err := auth.UserByWallet(c.Request.Context(), walletAddress)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		ok, err := service.VerifyWalletSignature(walletAddress, signature, message)
		if err != nil {
			respondError(c, logger, err)
			c.Abort()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// bearerToken extracts the access token from the Authorization header,
// falling back to the cookie set at signin.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return cookie
	}

	return ""
}
