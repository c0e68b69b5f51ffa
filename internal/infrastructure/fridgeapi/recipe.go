package fridgeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

// GetRecipe запрашивает рецепт у POST /getrecipe
func (c *Client) GetRecipe(ctx context.Context, prefs entity.RecipePreferences) (*entity.Recipe, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/getrecipe", prefs)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: getrecipe returned status %d", entity.ErrNetwork, status)
	}

	var recipe entity.Recipe
	if err := json.Unmarshal(body, &recipe); err != nil {
		return nil, fmt.Errorf("%w: parse recipe: %v", entity.ErrNetwork, err)
	}

	return &recipe, nil
}

var _ port.RecipeSource = (*Client)(nil)
