package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pageza/mealmerge/backend/internal/metrics"
	"github.com/pageza/mealmerge/backend/internal/types"
)

// MaxResults caps the number of meals returned by one search.
const MaxResults = 20

// ErrTermTooShort signals a search term below the minimum length.
var ErrTermTooShort = errors.New("search term must be at least 2 characters")

// MealSearcher is implemented by every meal source.
type MealSearcher interface {
	Search(ctx context.Context, term string) ([]types.Meal, error)
}

// fetchOutcome is the explicit result of one source fetch. A failed branch
// is logged and converted to an empty set; it never aborts the sibling.
type fetchOutcome struct {
	meals []types.Meal
	err   error
}

// Aggregator merges meals from TheMealDB and the datastore with balanced
// random sampling.
type Aggregator struct {
	mealdb MealSearcher
	store  MealSearcher // nil when the datastore is disabled
	logger *zap.Logger

	// rng is only set in tests for deterministic sampling; when nil the
	// package-level rand functions are used.
	rng *rand.Rand
	mu  sync.Mutex
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(mealdb MealSearcher, store MealSearcher, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		mealdb: mealdb,
		store:  store,
		logger: logger,
	}
}

// Search queries both sources concurrently and returns a bounded, shuffled
// selection. A failure in either source yields an empty set for that source;
// both sources empty yields a zero-valued result, not an error.
func (a *Aggregator) Search(ctx context.Context, term string) (*types.SearchResult, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < 2 {
		return nil, ErrTermTooShort
	}

	var (
		wg       sync.WaitGroup
		mealdbFO fetchOutcome
		storeFO  fetchOutcome
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		mealdbFO.meals, mealdbFO.err = a.mealdb.Search(ctx, term)
	}()
	go func() {
		defer wg.Done()
		if a.store == nil {
			return
		}
		storeFO.meals, storeFO.err = a.store.Search(ctx, term)
	}()
	wg.Wait()

	if mealdbFO.err != nil {
		a.logger.Warn("MealDB fetch failed", zap.String("term", term), zap.Error(mealdbFO.err))
		mealdbFO.meals = nil
	}
	if storeFO.err != nil {
		a.logger.Warn("datastore fetch failed", zap.String("term", term), zap.Error(storeFO.err))
		storeFO.meals = nil
	}

	mealdbMeals, storeMeals := mealdbFO.meals, storeFO.meals
	metrics.ObserveSourceResults(types.SourceMealDB, len(mealdbMeals))
	metrics.ObserveSourceResults(types.SourceSupabase, len(storeMeals))

	result := &types.SearchResult{
		TotalAvailable: len(mealdbMeals) + len(storeMeals),
		MealDBCount:    len(mealdbMeals),
		SupabaseCount:  len(storeMeals),
		MaxResults:     MaxResults,
		Data:           []types.Meal{},
	}
	if result.TotalAvailable == 0 {
		return result, nil
	}

	// Balanced random selection: TheMealDB gets up to half the cap, the
	// datastore the remainder. A source's unused share is not redistributed.
	var selected []types.Meal
	switch {
	case len(mealdbMeals) > 0 && len(storeMeals) > 0:
		mealdbShare := min(len(mealdbMeals), MaxResults/2)
		storeShare := MaxResults - mealdbShare
		selected = append(selected, a.sample(mealdbMeals, mealdbShare)...)
		selected = append(selected, a.sample(storeMeals, storeShare)...)
	case len(mealdbMeals) > 0:
		selected = a.sample(mealdbMeals, MaxResults)
	default:
		selected = a.sample(storeMeals, MaxResults)
	}
	a.shuffle(selected)

	result.ReturnedResults = len(selected)
	result.Data = selected
	return result, nil
}

// sample returns up to n meals chosen uniformly without replacement.
func (a *Aggregator) sample(meals []types.Meal, n int) []types.Meal {
	if len(meals) <= n {
		out := make([]types.Meal, len(meals))
		copy(out, meals)
		return out
	}
	idx := a.perm(len(meals))
	out := make([]types.Meal, 0, n)
	for _, i := range idx[:n] {
		out = append(out, meals[i])
	}
	return out
}

func (a *Aggregator) perm(n int) []int {
	if a.rng != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.rng.Perm(n)
	}
	return rand.Perm(n)
}

func (a *Aggregator) shuffle(meals []types.Meal) {
	swap := func(i, j int) { meals[i], meals[j] = meals[j], meals[i] }
	if a.rng != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.rng.Shuffle(len(meals), swap)
		return
	}
	rand.Shuffle(len(meals), swap)
}
