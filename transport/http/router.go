package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/janus-id/janus/service"
)

// SetupRouter sets up the Gin router.
func SetupRouter(auth *service.AuthService, logger *slog.Logger) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(auth, logger)
	authed := AuthMiddleware(auth)

	// Wallet login and registration.
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/nonce", handlers.Nonce)
		authGroup.GET("", handlers.UserByWallet)
		authGroup.POST("", handlers.WalletLogin)
	}

	// Wallet management for signed-in accounts, plus the out-of-band
	// signature check.
	wallet := router.Group("/wallet")
	{
		wallet.POST("/connect", authed, handlers.ConnectWallet)
		wallet.GET("/authorize", WalletSignatureMiddleware(auth, logger), handlers.Authorize)
	}

	// Credential signup and session management.
	users := router.Group("/users")
	{
		users.POST("/signup", handlers.SignUp)
		users.POST("/verify", handlers.VerifyOTP)
		users.POST("/resend-otp", handlers.ResendOTP)
		users.POST("/signin", handlers.SignIn)
		users.GET("/get-user", authed, handlers.CurrentUser)
	}

	return router
}
