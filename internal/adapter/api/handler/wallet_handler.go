package handler

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/usecase"
	"waypost/pkg/errors"
	"waypost/pkg/response"
	"waypost/pkg/utils"
)

type WalletHandler struct {
	walletUseCase *usecase.WalletUseCase
}

func NewWalletHandler(walletUseCase *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
	}
}

type topupRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *WalletHandler) GetWallet(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}

	wallet, err := h.walletUseCase.GetWallet(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, wallet)
}

func (h *WalletHandler) Topup(c echo.Context) error {
	var req topupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}

	wallet, err := h.walletUseCase.Topup(c.Request().Context(), userID, req.Amount)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, wallet)
}

func (h *WalletHandler) ListTransactions(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}
	pagination := utils.GetPaginationParams(c)

	transactions, err := h.walletUseCase.ListTransactions(c.Request().Context(), userID, pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"transactions": transactions,
		"page":         pagination.Page,
		"page_size":    pagination.PageSize,
	})
}
