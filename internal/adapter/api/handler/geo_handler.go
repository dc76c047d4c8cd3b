package handler

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/domain/service"
	"waypost/pkg/errors"
	"waypost/pkg/response"
)

type GeoHandler struct {
	geoService *service.GeoService
}

func NewGeoHandler(geoService *service.GeoService) *GeoHandler {
	return &GeoHandler{
		geoService: geoService,
	}
}

type distanceRequest struct {
	FromLat float64 `json:"from_lat" validate:"gte=-90,lte=90"`
	FromLon float64 `json:"from_lon" validate:"gte=-180,lte=180"`
	ToLat   float64 `json:"to_lat" validate:"gte=-90,lte=90"`
	ToLon   float64 `json:"to_lon" validate:"gte=-180,lte=180"`
}

func (h *GeoHandler) Distance(c echo.Context) error {
	var req distanceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	km, err := h.geoService.Distance(c.Request().Context(), req.FromLat, req.FromLon, req.ToLat, req.ToLon)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"distance_km": km,
	})
}

type reverseGeocodeRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (h *GeoHandler) ReverseGeocode(c echo.Context) error {
	var req reverseGeocodeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	address, err := h.geoService.ReverseGeocode(c.Request().Context(), req.Lat, req.Lon)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"address": address,
	})
}
