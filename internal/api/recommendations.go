package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
)

// Recommendations returns the analysis results of a student. No results
// yet is reported as an empty list, not as an error.
func (c *Client) Recommendations(ctx context.Context, userID string) ([]entities.Recommendation, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/recommendations/results/" + url.PathEscape(userID),
	}, &raw)
	if err != nil {
		if IsNotFound(err) {
			return []entities.Recommendation{}, nil
		}
		return nil, fmt.Errorf("get recommendations: %w", err)
	}

	return decodeRecommendations(raw)
}

// decodeRecommendations accepts a list, a single object or null.
func decodeRecommendations(raw json.RawMessage) ([]entities.Recommendation, error) {
	var list []entities.Recommendation
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			list = []entities.Recommendation{}
		}
		return list, nil
	}

	var single entities.Recommendation
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	return []entities.Recommendation{single}, nil
}
