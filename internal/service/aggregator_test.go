package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/pageza/mealmerge/backend/internal/types"
)

type fakeSearcher struct {
	meals []types.Meal
	err   error
}

func (f *fakeSearcher) Search(ctx context.Context, term string) ([]types.Meal, error) {
	return f.meals, f.err
}

func makeMeals(source string, n int) []types.Meal {
	meals := make([]types.Meal, 0, n)
	for i := 0; i < n; i++ {
		meals = append(meals, types.Meal{
			IDMeal:         fmt.Sprintf("%s-%d", source, i),
			StrMeal:        fmt.Sprintf("Meal %d", i),
			StrIngredients: []string{},
			Source:         source,
		})
	}
	return meals
}

func newTestAggregator(mealdb, store MealSearcher) *Aggregator {
	agg := NewAggregator(mealdb, store, zap.NewNop())
	agg.rng = rand.New(rand.NewSource(1))
	return agg
}

func countBySource(meals []types.Meal) map[string]int {
	counts := map[string]int{}
	for _, m := range meals {
		counts[m.Source]++
	}
	return counts
}

func TestSearchRejectsShortTerm(t *testing.T) {
	agg := newTestAggregator(&fakeSearcher{}, &fakeSearcher{})
	for _, term := range []string{"", "a", "  a  ", " "} {
		_, err := agg.Search(context.Background(), term)
		assert.ErrorIs(t, err, ErrTermTooShort)
	}
}

func TestSearchBothSourcesUnderCap(t *testing.T) {
	mealdb := &fakeSearcher{meals: makeMeals(types.SourceMealDB, 15)}
	store := &fakeSearcher{meals: makeMeals(types.SourceSupabase, 3)}
	agg := newTestAggregator(mealdb, store)

	result, err := agg.Search(context.Background(), "Chicken")
	assert.NoError(t, err)
	assert.Equal(t, 18, result.TotalAvailable)
	assert.Equal(t, 15, result.MealDBCount)
	assert.Equal(t, 3, result.SupabaseCount)
	assert.Equal(t, 18, result.ReturnedResults)
	assert.Equal(t, MaxResults, result.MaxResults)
	assert.Len(t, result.Data, 18)

	counts := countBySource(result.Data)
	assert.Equal(t, 15, counts[types.SourceMealDB])
	assert.Equal(t, 3, counts[types.SourceSupabase])
}

func TestSearchBothSourcesOverCap(t *testing.T) {
	mealdb := &fakeSearcher{meals: makeMeals(types.SourceMealDB, 30)}
	store := &fakeSearcher{meals: makeMeals(types.SourceSupabase, 25)}
	agg := newTestAggregator(mealdb, store)

	result, err := agg.Search(context.Background(), "Chicken")
	assert.NoError(t, err)
	assert.Equal(t, 55, result.TotalAvailable)
	assert.Equal(t, MaxResults, result.ReturnedResults)

	// Balanced split: half the cap each when both sources can fill it.
	counts := countBySource(result.Data)
	assert.Equal(t, MaxResults/2, counts[types.SourceMealDB])
	assert.Equal(t, MaxResults/2, counts[types.SourceSupabase])
}

func TestSearchShortfallNotRedistributed(t *testing.T) {
	// MealDB has fewer than half the cap; the datastore gets the remainder
	// of the cap, not the cap minus what MealDB actually used plus extra.
	mealdb := &fakeSearcher{meals: makeMeals(types.SourceMealDB, 3)}
	store := &fakeSearcher{meals: makeMeals(types.SourceSupabase, 40)}
	agg := newTestAggregator(mealdb, store)

	result, err := agg.Search(context.Background(), "Chicken")
	assert.NoError(t, err)
	assert.Equal(t, MaxResults, result.ReturnedResults)

	counts := countBySource(result.Data)
	assert.Equal(t, 3, counts[types.SourceMealDB])
	assert.Equal(t, MaxResults-3, counts[types.SourceSupabase])
}

func TestSearchSingleSourceUsesFullCap(t *testing.T) {
	mealdb := &fakeSearcher{meals: makeMeals(types.SourceMealDB, 35)}
	store := &fakeSearcher{meals: nil}
	agg := newTestAggregator(mealdb, store)

	result, err := agg.Search(context.Background(), "Chicken")
	assert.NoError(t, err)
	assert.Equal(t, 35, result.TotalAvailable)
	assert.Equal(t, MaxResults, result.ReturnedResults)
	assert.Equal(t, MaxResults, countBySource(result.Data)[types.SourceMealDB])
}

func TestSearchSourceFailureIsIsolated(t *testing.T) {
	mealdb := &fakeSearcher{meals: makeMeals(types.SourceMealDB, 4)}
	store := &fakeSearcher{err: errors.New("connection refused")}
	agg := newTestAggregator(mealdb, store)

	result, err := agg.Search(context.Background(), "Chicken")
	assert.NoError(t, err)
	assert.Equal(t, 4, result.TotalAvailable)
	assert.Equal(t, 0, result.SupabaseCount)
	assert.Equal(t, 4, result.ReturnedResults)
}

func TestSearchBothSourcesEmpty(t *testing.T) {
	mealdb := &fakeSearcher{err: errors.New("timeout")}
	store := &fakeSearcher{err: errors.New("down")}
	agg := newTestAggregator(mealdb, store)

	result, err := agg.Search(context.Background(), "aa")
	assert.NoError(t, err)
	assert.Equal(t, 0, result.TotalAvailable)
	assert.Equal(t, 0, result.MealDBCount)
	assert.Equal(t, 0, result.SupabaseCount)
	assert.Equal(t, 0, result.ReturnedResults)
	assert.NotNil(t, result.Data)
	assert.Len(t, result.Data, 0)
}

func TestSearchNilStore(t *testing.T) {
	mealdb := &fakeSearcher{meals: makeMeals(types.SourceMealDB, 2)}
	agg := newTestAggregator(mealdb, nil)

	result, err := agg.Search(context.Background(), "Chicken")
	assert.NoError(t, err)
	assert.Equal(t, 2, result.ReturnedResults)
	assert.Equal(t, 0, result.SupabaseCount)
}

func TestSearchEveryMealHasProvenance(t *testing.T) {
	mealdb := &fakeSearcher{meals: makeMeals(types.SourceMealDB, 12)}
	store := &fakeSearcher{meals: makeMeals(types.SourceSupabase, 12)}
	agg := newTestAggregator(mealdb, store)

	result, err := agg.Search(context.Background(), "Chicken")
	assert.NoError(t, err)
	for _, m := range result.Data {
		assert.Contains(t, []string{types.SourceMealDB, types.SourceSupabase}, m.Source)
	}
}
