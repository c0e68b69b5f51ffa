package entity

// RecipePreferences пожелания пользователя к рецепту
type RecipePreferences struct {
	MealType     string          `json:"mealType"`
	DietaryNeeds []string        `json:"dietaryNeeds"`
	CuisineType  string          `json:"cuisineType"`
	Inventory    []InventoryItem `json:"inventory,omitempty"`
}

// Recipe рецепт от внешнего сервиса
type Recipe struct {
	Name            string   `json:"Recipe_name"`
	Ingredients     []string `json:"Ingredients"`
	Steps           []string `json:"Step by step instructions"`
	NutritionalNote string   `json:"Nutritional_note"`
}
