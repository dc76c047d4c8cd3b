package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"waypost/pkg/logger"
)

// GeoService answers best-effort distance and reverse-geocoding queries.
// Distances come from the Mapbox Matrix API when a token is configured and
// fall back to a Haversine estimate otherwise. Results never gate a
// lifecycle transition.
type GeoService struct {
	mapboxToken   string
	googleApiKey  string
	mapboxBaseURL string
	googleBaseURL string
	httpClient    *http.Client
}

func NewGeoService(mapboxToken, googleApiKey string) *GeoService {
	return &GeoService{
		mapboxToken:   mapboxToken,
		googleApiKey:  googleApiKey,
		mapboxBaseURL: "https://api.mapbox.com",
		googleBaseURL: "https://maps.googleapis.com",
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewGeoServiceWithBaseURLs is used by tests to point the client at stub
// servers.
func NewGeoServiceWithBaseURLs(mapboxToken, googleApiKey, mapboxBaseURL, googleBaseURL string) *GeoService {
	s := NewGeoService(mapboxToken, googleApiKey)
	s.mapboxBaseURL = mapboxBaseURL
	s.googleBaseURL = googleBaseURL
	return s
}

type mapboxMatrixResponse struct {
	Code      string      `json:"code"`
	Distances [][]float64 `json:"distances"`
}

// Distance returns the driving distance in kilometers between two points,
// falling back to straight-line distance when Mapbox is unavailable.
func (s *GeoService) Distance(ctx context.Context, fromLat, fromLon, toLat, toLon float64) (float64, error) {
	if s.mapboxToken == "" {
		return Haversine(fromLat, fromLon, toLat, toLon), nil
	}

	endpoint := fmt.Sprintf(
		"%s/directions-matrix/v1/mapbox/driving/%f,%f;%f,%f?sources=0&destinations=1&annotations=distance&access_token=%s",
		s.mapboxBaseURL, fromLon, fromLat, toLon, toLat, url.QueryEscape(s.mapboxToken),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn("Mapbox matrix request failed, falling back to haversine: %v", err)
		return Haversine(fromLat, fromLon, toLat, toLon), nil
	}
	defer resp.Body.Close()

	var matrix mapboxMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrix); err != nil {
		logger.Warn("Mapbox matrix decode failed, falling back to haversine: %v", err)
		return Haversine(fromLat, fromLon, toLat, toLon), nil
	}

	if matrix.Code != "Ok" || len(matrix.Distances) == 0 || len(matrix.Distances[0]) == 0 {
		logger.Warn("Mapbox matrix returned code %q, falling back to haversine", matrix.Code)
		return Haversine(fromLat, fromLon, toLat, toLon), nil
	}

	return matrix.Distances[0][0] / 1000, nil // meters to kilometers
}

type googleGeocodeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status string `json:"status"`
}

// ReverseGeocode returns a human-readable address for a coordinate pair.
func (s *GeoService) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if s.googleApiKey == "" {
		return "", fmt.Errorf("geocoding is not configured")
	}

	endpoint := fmt.Sprintf(
		"%s/maps/api/geocode/json?latlng=%f,%f&key=%s",
		s.googleBaseURL, lat, lon, url.QueryEscape(s.googleApiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var geocode googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geocode); err != nil {
		return "", err
	}

	if geocode.Status != "OK" || len(geocode.Results) == 0 {
		return "", fmt.Errorf("reverse geocoding failed: %s", geocode.Status)
	}

	return geocode.Results[0].FormattedAddress, nil
}

const earthRadiusKm = 6371

// Haversine returns the great-circle distance in kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
