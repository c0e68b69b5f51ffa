package port

import (
	"context"

	"smart-fridge/internal/domain/entity"
)

// InventorySource интерфейс удалённого списка продуктов
type InventorySource interface {
	// FetchInventory читает текущий список продуктов целиком
	FetchInventory(ctx context.Context) ([]entity.InventoryItem, error)
}
