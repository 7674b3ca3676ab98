package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/mealmerge/backend/config"
	"github.com/pageza/mealmerge/backend/internal/types"
)

const mealdbCacheTTL = 5 * time.Minute

// MealDBService handles interactions with TheMealDB API
type MealDBService struct {
	baseURL string
	client  *http.Client
	redis   *redis.Client
	logger  *zap.Logger
}

// NewMealDBService creates a new MealDBService instance. The redis client is
// optional; when present, parsed search responses are cached per term.
func NewMealDBService(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) *MealDBService {
	timeout := cfg.MealDBTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MealDBService{
		baseURL: cfg.MealDBURL,
		client:  &http.Client{Timeout: timeout},
		redis:   redisClient,
		logger:  logger,
	}
}

// Search fetches meals matching the term from TheMealDB. A nil "meals" field
// in the response means no matches and yields an empty slice.
func (s *MealDBService) Search(ctx context.Context, term string) ([]types.Meal, error) {
	cacheKey := "mealdb:search:" + strings.ToLower(term)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var meals []types.Meal
			if err := json.Unmarshal([]byte(cached), &meals); err == nil {
				return meals, nil
			}
		}
	}

	reqURL := fmt.Sprintf("%s?s=%s", s.baseURL, url.QueryEscape(term))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build MealDB request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("MealDB request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MealDB returned status %d", resp.StatusCode)
	}

	var payload struct {
		Meals []map[string]interface{} `json:"meals"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode MealDB response: %w", err)
	}

	meals := make([]types.Meal, 0, len(payload.Meals))
	for _, raw := range payload.Meals {
		meals = append(meals, normalizeMealDBMeal(raw))
	}

	if s.redis != nil {
		if data, err := json.Marshal(meals); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, mealdbCacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache MealDB response", zap.Error(err))
			}
		}
	}

	return meals, nil
}

// normalizeMealDBMeal maps a raw MealDB record into the unified wire shape,
// collecting the numbered strIngredient1..strIngredient20 fields into an
// ordered list.
func normalizeMealDBMeal(raw map[string]interface{}) types.Meal {
	ingredients := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		v := stringField(raw, fmt.Sprintf("strIngredient%d", i))
		if v = strings.TrimSpace(v); v != "" {
			ingredients = append(ingredients, v)
		}
	}

	return types.Meal{
		IDMeal:          stringField(raw, "idMeal"),
		StrMeal:         stringField(raw, "strMeal"),
		StrCategory:     stringField(raw, "strCategory"),
		StrArea:         stringField(raw, "strArea"),
		StrInstructions: stringField(raw, "strInstructions"),
		StrMealThumb:    stringField(raw, "strMealThumb"),
		StrIngredients:  ingredients,
		Source:          types.SourceMealDB,
	}
}

func stringField(raw map[string]interface{}, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		// idMeal is stringified if the API ever returns it as a number
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
