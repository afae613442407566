// Package plantdb is the HTTP client for the external collection-management
// service (inventory list, single-plant detail, care predictions).
package plantdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cladari-assistant/internal/common/config"
	apperrors "cladari-assistant/internal/common/errors"
	"cladari-assistant/internal/models"
)

// Client wraps the collection-management service API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	timeout        time.Duration
	predictTimeout time.Duration
}

// NewClient creates a new inventory service client.
func NewClient(cfg config.PlantDBConfig) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{},
		timeout:        config.GetDuration(cfg.Timeout),
		predictTimeout: config.GetDuration(cfg.PredictTimeout),
	}
}

// ListPlants fetches the full inventory list.
func (c *Client) ListPlants(ctx context.Context) ([]models.Plant, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/plants", nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePlantDBUnreachable, "build list request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePlantDBUnreachable, "list plants", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrCodePlantDBBadStatus, fmt.Sprintf("list plants: status %d", resp.StatusCode))
	}

	var plants []models.Plant
	if err := json.NewDecoder(resp.Body).Decode(&plants); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePlantDBBadStatus, "decode plant list", err)
	}

	return plants, nil
}

// GetPlant fetches a single plant by its public identifier.
func (c *Client) GetPlant(ctx context.Context, id string) (*models.Plant, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/plants/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePlantDBUnreachable, "build detail request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePlantDBUnreachable, "get plant", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.New(apperrors.ErrCodePlantNotFound, fmt.Sprintf("plant %s not found", id))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrCodePlantDBBadStatus, fmt.Sprintf("get plant: status %d", resp.StatusCode))
	}

	var plant models.Plant
	if err := json.NewDecoder(resp.Body).Decode(&plant); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePlantDBBadStatus, "decode plant detail", err)
	}

	return &plant, nil
}

// PredictCare calls the ML prediction endpoint for the given care type
// (currently only "water" is used).
func (c *Client) PredictCare(ctx context.Context, careType string) ([]models.CarePrediction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.predictTimeout)
	defer cancel()

	body, _ := json.Marshal(map[string]string{"careType": careType})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ml/predict-care", bytes.NewBuffer(body))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePlantDBUnreachable, "build predict request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePlantDBUnreachable, "predict care", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrCodePlantDBBadStatus, fmt.Sprintf("predict care: status %d", resp.StatusCode))
	}

	var apiResponse struct {
		Predictions []models.CarePrediction `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePlantDBBadStatus, "decode predictions", err)
	}

	return apiResponse.Predictions, nil
}

// Snapshot fetches the inventory list and aggregates it. The result is scoped
// to the call; nothing is cached.
func (c *Client) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	plants, err := c.ListPlants(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSnapshot(plants), nil
}
