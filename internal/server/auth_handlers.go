// internal/server/auth_handlers.go
package server

import (
	"net/http"

	"jobswipe-api/internal/auth"
	"jobswipe-api/internal/common/errors"
	"jobswipe-api/internal/common/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the token endpoints.
type AuthHandler struct {
	service *auth.Service
	errs    *errors.ErrorHandler
	logger  logger.Logger
}

func NewAuthHandler(service *auth.Service, errs *errors.ErrorHandler, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		errs:    errs,
		logger:  log.WithFields(map[string]interface{}{"component": "auth_handler"}),
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": []string{"email and password are required"},
		})
		return
	}

	pair, err := h.service.Login(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pair,
	})
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": []string{"refreshToken: required field missing or empty"},
		})
		return
	}

	pair, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    pair,
	})
}

// Me handles GET /api/auth/me; RequireAuth guarantees the identity is set.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"email": c.GetString(contextKeyUserEmail),
		},
	})
}
