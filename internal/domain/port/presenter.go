package port

import (
	"context"

	"smart-fridge/internal/domain/entity"
)

// NotificationView отображение уведомления (страница киоска, Telegram, MQTT)
type NotificationView interface {
	// Show показывает новое уведомление, вытесняя прежнее
	Show(ctx context.Context, n entity.NotificationState) error

	// Hide скрывает уведомление
	Hide(ctx context.Context, n entity.NotificationState) error
}

// InventoryView получает каждый применённый снимок инвентаря
type InventoryView interface {
	InventoryUpdated(ctx context.Context, items []entity.InventoryItem) error
}
