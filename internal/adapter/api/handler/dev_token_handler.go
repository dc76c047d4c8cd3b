package handler

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/infrastructure/firebase"
	"waypost/pkg/errors"
	"waypost/pkg/response"
)

type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient) *DevTokenHandler {
	return &DevTokenHandler{
		firebaseAuth: firebaseAuth,
	}
}

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient) {
	devTokenHandler = NewDevTokenHandler(firebaseAuth)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

type devTokenRequest struct {
	UID string `json:"uid" validate:"required"`
}

func (h *DevTokenHandler) GetLongLivedToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.firebaseAuth.GenerateLongLivedToken(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"uid":   req.UID,
	})
}
