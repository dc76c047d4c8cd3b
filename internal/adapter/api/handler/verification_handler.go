package handler

import (
	"encoding/json"

	"github.com/labstack/echo/v4"

	"waypost/internal/domain/service"
	"waypost/internal/usecase"
	"waypost/pkg/errors"
	"waypost/pkg/response"
)

type VerificationHandler struct {
	verificationUseCase *usecase.VerificationUseCase
}

func NewVerificationHandler(verificationUseCase *usecase.VerificationUseCase) *VerificationHandler {
	return &VerificationHandler{
		verificationUseCase: verificationUseCase,
	}
}

type verifyRequest struct {
	AttestationID   string          `json:"attestation_id" validate:"required"`
	Proof           json.RawMessage `json:"proof" validate:"required"`
	PublicSignals   json.RawMessage `json:"public_signals" validate:"required"`
	UserContextData json.RawMessage `json:"user_context_data"`
}

func (h *VerificationHandler) Verify(c echo.Context) error {
	var req verifyRequest
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

	verification, err := h.verificationUseCase.Verify(c.Request().Context(), userID, service.AttestationRequest{
		AttestationID:   req.AttestationID,
		Proof:           req.Proof,
		PublicSignals:   req.PublicSignals,
		UserContextData: req.UserContextData,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, verification)
}

func (h *VerificationHandler) Status(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}

	verification, err := h.verificationUseCase.Status(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, verification)
}

// StatusByUser is the public probe: it discloses the verified flag and
// nothing from the identity record.
func (h *VerificationHandler) StatusByUser(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User id is required", nil))
	}

	verified, err := h.verificationUseCase.IsVerified(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user_id":     userID,
		"is_verified": verified,
	})
}
