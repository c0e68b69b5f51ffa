package app

import (
	"context"
	"errors"
	"log/slog"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

// RecipeService передаёт пожелания и текущий инвентарь генератору рецептов
type RecipeService struct {
	source    port.RecipeSource
	inventory *InventoryStore
}

// NewRecipeService создаёт сервис рецептов
func NewRecipeService(source port.RecipeSource, inventory *InventoryStore) *RecipeService {
	return &RecipeService{source: source, inventory: inventory}
}

// Generate запрашивает рецепт. Если инвентарь в пожеланиях не задан, подставляется
// текущий вид холодильника.
func (s *RecipeService) Generate(ctx context.Context, prefs entity.RecipePreferences) (*entity.Recipe, error) {
	if s.source == nil {
		return nil, errors.New("recipe source is not configured")
	}

	if len(prefs.Inventory) == 0 && s.inventory != nil {
		prefs.Inventory = s.inventory.Current()
	}

	recipe, err := s.source.GetRecipe(ctx, prefs)
	if err != nil {
		slog.Error("recipe request failed", "meal_type", prefs.MealType, "error", err)
		return nil, err
	}

	slog.Info("recipe generated", "recipe", recipe.Name, "ingredients", len(recipe.Ingredients))
	return recipe, nil
}
