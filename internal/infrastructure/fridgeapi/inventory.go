package fridgeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

// FetchInventory читает GET /inventory. Любой статус кроме 200 считается ошибкой.
func (c *Client) FetchInventory(ctx context.Context) ([]entity.InventoryItem, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/inventory", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: inventory returned status %d", entity.ErrNetwork, status)
	}

	var items []entity.InventoryItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: parse inventory: %v", entity.ErrNetwork, err)
	}
	for _, it := range items {
		if it.Count < 0 {
			return nil, fmt.Errorf("%w: inventory item %q has negative count %d", entity.ErrNetwork, it.Name, it.Count)
		}
	}

	return entity.CloneInventory(items), nil
}

var _ port.InventorySource = (*Client)(nil)
