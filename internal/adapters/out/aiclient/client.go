// Package aiclient calls the external AI store recommendation service over
// HTTP. The service is advisory: any failure or empty answer makes the caller
// fall back to deterministic geographic selection.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Client implements ports.AIRecommender against the recommendation service's
// JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a recommendation service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type recommendationRequestDTO struct {
	OrderID          string    `json:"order_id"`
	ExcludedStoreIDs []string  `json:"excluded_store_ids"`
	Lines            []lineDTO `json:"lines"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
}

type lineDTO struct {
	ProductColorID string `json:"product_color_id"`
	Quantity       int    `json:"quantity"`
}

type recommendationResponseDTO struct {
	StoreID    *string `json:"store_id"`
	Confidence float64 `json:"confidence"`
	Score      float64 `json:"score"`
}

// RecommendStore asks the service for a reassignment target.
// A response without a store means the service had no suggestion; that is
// reported as (nil, nil), not as an error.
func (c *Client) RecommendStore(
	ctx context.Context,
	request ports.RecommendationRequest,
) (*ports.Recommendation, error) {
	payload := recommendationRequestDTO{
		OrderID:          request.OrderID.String(),
		ExcludedStoreIDs: make([]string, 0, len(request.ExcludedStoreIDs)),
		Lines:            make([]lineDTO, 0, len(request.Lines)),
		Latitude:         request.Origin.Latitude(),
		Longitude:        request.Origin.Longitude(),
	}
	for _, id := range request.ExcludedStoreIDs {
		payload.ExcludedStoreIDs = append(payload.ExcludedStoreIDs, id.String())
	}
	for _, line := range request.Lines {
		payload.Lines = append(payload.Lines, lineDTO{
			ProductColorID: line.ProductColorID().String(),
			Quantity:       line.Quantity(),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/recommendations",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommendation service returned status %d", resp.StatusCode)
	}

	var dto recommendationResponseDTO
	if err = json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, err
	}

	if dto.StoreID == nil || *dto.StoreID == "" {
		return nil, nil
	}

	storeID, err := kernel.UUIDFromString(*dto.StoreID)
	if err != nil {
		return nil, fmt.Errorf("recommendation service returned malformed store id: %w", err)
	}

	return &ports.Recommendation{
		StoreID:    storeID,
		Confidence: dto.Confidence,
		Score:      dto.Score,
	}, nil
}
