package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealmerge/backend/internal/model"
	"github.com/pageza/mealmerge/backend/internal/types"
)

// AddMealInput carries the fields for a new user-submitted meal. Only the
// name is required; the rest default when absent.
type AddMealInput struct {
	Name         string
	Category     string
	Area         string
	Instructions string
	Images       string
	Ingredients  []string
	Minutes      *int
}

// MealStoreService handles meal operations against the extra_meals table
type MealStoreService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMealStoreService creates a new MealStoreService instance
func NewMealStoreService(db *gorm.DB, logger *zap.Logger) *MealStoreService {
	return &MealStoreService{
		db:     db,
		logger: logger,
	}
}

// Search performs a case-insensitive substring match against the name
// column. Exact case-insensitive matches rank before partial matches.
func (s *MealStoreService) Search(ctx context.Context, term string) ([]types.Meal, error) {
	var rows []model.Meal
	err := s.db.WithContext(ctx).
		Model(&model.Meal{}).
		Select("*, CASE WHEN LOWER(name) = LOWER(?) THEN 1 ELSE 2 END AS match_priority", term).
		Where("LOWER(name) LIKE LOWER(?)", "%"+term+"%").
		Order("match_priority ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	meals := make([]types.Meal, 0, len(rows))
	for _, row := range rows {
		meals = append(meals, normalizeStoredMeal(row))
	}
	return meals, nil
}

// Add inserts one meal row. A row with the same name already present makes
// the insert a no-op rather than an error; the return value reports whether
// a row was actually created.
func (s *MealStoreService) Add(ctx context.Context, input AddMealInput) (bool, error) {
	meal := model.Meal{
		Name:         input.Name,
		Category:     input.Category,
		Area:         input.Area,
		Instructions: input.Instructions,
		Images:       input.Images,
		Ingredients:  model.StringArray(input.Ingredients),
		Minutes:      input.Minutes,
	}
	if meal.Category == "" {
		meal.Category = "Unknown"
	}
	if meal.Area == "" {
		meal.Area = "Unknown"
	}
	if meal.Ingredients == nil {
		meal.Ingredients = model.StringArray{}
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&meal)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// normalizeStoredMeal maps a datastore row into the unified wire shape.
func normalizeStoredMeal(row model.Meal) types.Meal {
	ingredients := []string(row.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	return types.Meal{
		IDMeal:          row.ID.String(),
		StrMeal:         row.Name,
		StrCategory:     row.Category,
		StrArea:         row.Area,
		StrInstructions: row.Instructions,
		StrMealThumb:    row.Images,
		StrIngredients:  ingredients,
		Minutes:         row.Minutes,
		Source:          types.SourceSupabase,
	}
}
