package port

import (
	"context"

	"smart-fridge/internal/domain/entity"
)

// RecipeSource интерфейс внешнего генератора рецептов
type RecipeSource interface {
	GetRecipe(ctx context.Context, prefs entity.RecipePreferences) (*entity.Recipe, error)
}
