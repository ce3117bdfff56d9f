package service

import (
	"context"

	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
)

type RecommendationService struct {
	api RecommendationAPI
}

func NewRecommendationService(api RecommendationAPI) *RecommendationService {
	return &RecommendationService{api: api}
}

// ForAccount returns the analysis results of a logged-in student.
func (s *RecommendationService) ForAccount(ctx context.Context, account *entities.Account) ([]entities.Recommendation, error) {
	if account == nil {
		return nil, ErrNotLoggedIn
	}
	if !account.IsStudent() {
		return nil, ErrForbidden
	}
	return s.api.Recommendations(ctx, account.RemoteID)
}
