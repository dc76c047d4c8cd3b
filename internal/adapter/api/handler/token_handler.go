package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"waypost/internal/usecase"
	"waypost/pkg/errors"
	"waypost/pkg/response"
)

type TokenHandler struct {
	serviceUseCase *usecase.ServiceUseCase
}

func NewTokenHandler(serviceUseCase *usecase.ServiceUseCase) *TokenHandler {
	return &TokenHandler{
		serviceUseCase: serviceUseCase,
	}
}

func (h *TokenHandler) GetToken(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return response.Error(c, errors.BadRequest("Invalid token id", err))
	}

	token, err := h.serviceUseCase.GetToken(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, token)
}
