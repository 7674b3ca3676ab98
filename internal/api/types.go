package api

// AddMealRequest is the request body for POST /add_meal/. Only the name is
// required; other fields are defaulted when absent.
type AddMealRequest struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category"`
	Area         string   `json:"area"`
	Instructions string   `json:"instructions"`
	Images       string   `json:"images"`
	Ingredients  []string `json:"ingredients"`
	Minutes      *int     `json:"minutes"`
}
