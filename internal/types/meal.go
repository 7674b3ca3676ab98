package types

// Provenance tags identifying which upstream source produced a meal.
const (
	SourceMealDB   = "MealDB"
	SourceSupabase = "Supabase DB"
)

// Meal is the unified wire shape for a meal regardless of source.
// Field names follow TheMealDB's API so external records pass through
// unchanged; datastore rows are normalized into the same shape.
type Meal struct {
	IDMeal          string   `json:"idMeal"`
	StrMeal         string   `json:"strMeal"`
	StrCategory     string   `json:"strCategory"`
	StrArea         string   `json:"strArea"`
	StrInstructions string   `json:"strInstructions"`
	StrMealThumb    string   `json:"strMealThumb"`
	StrIngredients  []string `json:"strIngredients"`
	Minutes         *int     `json:"minutes,omitempty"`
	Source          string   `json:"source"`
}

// SearchResult is the response body for an aggregated meal search.
type SearchResult struct {
	TotalAvailable  int    `json:"total_available"`
	MealDBCount     int    `json:"mealdb_count"`
	SupabaseCount   int    `json:"supabase_count"`
	ReturnedResults int    `json:"returned_results"`
	MaxResults      int    `json:"max_results"`
	Data            []Meal `json:"data"`
}
