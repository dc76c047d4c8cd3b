package router

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/adapter/api/handler"
	"waypost/internal/adapter/api/middleware"
)

func SetupVerificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, verifyLimiter *middleware.RateLimiter) {
	verificationHandler := handler.GetVerificationHandler()

	verifyGroup := e.Group("/v1/verify")

	// Proof verification is expensive on the verifier side, keep it rate limited
	verifyGroup.POST("", verificationHandler.Verify, authMiddleware.Authenticate, verifyLimiter.RateLimitMiddleware())
	verifyGroup.GET("/status", verificationHandler.Status, authMiddleware.Authenticate)

	// Public check, discloses the flag only
	verifyGroup.GET("/status/:userId", verificationHandler.StatusByUser)
}
