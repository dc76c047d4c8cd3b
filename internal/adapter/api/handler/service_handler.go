package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"waypost/internal/usecase"
	"waypost/pkg/errors"
	"waypost/pkg/response"
	"waypost/pkg/utils"
)

type ServiceHandler struct {
	serviceUseCase *usecase.ServiceUseCase
}

func NewServiceHandler(serviceUseCase *usecase.ServiceUseCase) *ServiceHandler {
	return &ServiceHandler{
		serviceUseCase: serviceUseCase,
	}
}

type createServiceRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	StartLat     int64   `json:"start_lat" validate:"gte=-90000000,lte=90000000"`
	StartLon     int64   `json:"start_lon" validate:"gte=-180000000,lte=180000000"`
	StartAddress string  `json:"start_address"`
	EndLat       int64   `json:"end_lat" validate:"gte=-90000000,lte=90000000"`
	EndLon       int64   `json:"end_lon" validate:"gte=-180000000,lte=180000000"`
	EndAddress   string  `json:"end_address"`
	Reward       float64 `json:"reward" validate:"required"`
	Deadline     int64   `json:"deadline" validate:"required"` // unix seconds
}

func (h *ServiceHandler) CreateService(c echo.Context) error {
	var req createServiceRequest
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

	service, err := h.serviceUseCase.CreateService(c.Request().Context(), userID, usecase.CreateServiceInput{
		Title:        req.Title,
		Description:  req.Description,
		StartLat:     req.StartLat,
		StartLon:     req.StartLon,
		StartAddress: req.StartAddress,
		EndLat:       req.EndLat,
		EndLon:       req.EndLon,
		EndAddress:   req.EndAddress,
		Reward:       req.Reward,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, service)
}

func (h *ServiceHandler) GetService(c echo.Context) error {
	id, err := parseServiceID(c)
	if err != nil {
		return response.Error(c, err)
	}

	service, err := h.serviceUseCase.GetService(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service)
}

func (h *ServiceHandler) GetServiceEscrow(c echo.Context) error {
	if _, ok := c.Get("uid").(string); !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}

	id, err := parseServiceID(c)
	if err != nil {
		return response.Error(c, err)
	}

	escrow, err := h.serviceUseCase.GetEscrow(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, escrow)
}

func (h *ServiceHandler) ListActiveServices(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	services, total, err := h.serviceUseCase.ListActiveServices(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, services, total, pagination.Page, pagination.PageSize)
}

func (h *ServiceHandler) ListMyServices(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}
	pagination := utils.GetPaginationParams(c)

	services, total, err := h.serviceUseCase.ListCreatedServices(c.Request().Context(), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, services, total, pagination.Page, pagination.PageSize)
}

func (h *ServiceHandler) ListAcceptedServices(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}
	pagination := utils.GetPaginationParams(c)

	services, total, err := h.serviceUseCase.ListAcceptedServices(c.Request().Context(), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, services, total, pagination.Page, pagination.PageSize)
}

func (h *ServiceHandler) AcceptService(c echo.Context) error {
	id, err := parseServiceID(c)
	if err != nil {
		return response.Error(c, err)
	}

	userID, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}

	service, err := h.serviceUseCase.AcceptService(c.Request().Context(), id, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service)
}

func (h *ServiceHandler) CompleteService(c echo.Context) error {
	id, err := parseServiceID(c)
	if err != nil {
		return response.Error(c, err)
	}

	userID, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}

	service, err := h.serviceUseCase.CompleteService(c.Request().Context(), id, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service)
}

func (h *ServiceHandler) CancelService(c echo.Context) error {
	id, err := parseServiceID(c)
	if err != nil {
		return response.Error(c, err)
	}

	userID, ok := c.Get("uid").(string)
	if !ok {
		return response.Error(c, errors.Unauthorized("User not authenticated", nil))
	}

	service, err := h.serviceUseCase.CancelService(c.Request().Context(), id, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service)
}

func parseServiceID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid service id", err)
	}
	return id, nil
}
