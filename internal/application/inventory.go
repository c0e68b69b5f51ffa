package app

import (
	"context"
	"log/slog"
	"sync"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

// InventoryStore локальный вид содержимого холодильника.
// Содержимое всегда равно последнему применённому успешному ответу сервиса.
type InventoryStore struct {
	source port.InventorySource

	mu      sync.RWMutex
	items   []entity.InventoryItem
	ticket  uint64 // последний выданный номер запроса
	applied uint64 // номер запроса, чей ответ сейчас в items
	views   []port.InventoryView
}

// NewInventoryStore создаёт пустое хранилище
func NewInventoryStore(source port.InventorySource, views ...port.InventoryView) *InventoryStore {
	return &InventoryStore{
		source: source,
		items:  []entity.InventoryItem{},
		views:  views,
	}
}

// Attach подключает получателя снимков инвентаря
func (s *InventoryStore) Attach(view port.InventoryView) {
	s.mu.Lock()
	s.views = append(s.views, view)
	s.mu.Unlock()
}

// Refresh перечитывает инвентарь. При ошибке прежний список сохраняется, а ошибка
// возвращается вызывающему. Ответ, пришедший позже ответа на более новый запрос,
// не применяется.
func (s *InventoryStore) Refresh(ctx context.Context) ([]entity.InventoryItem, error) {
	s.mu.Lock()
	s.ticket++
	ticket := s.ticket
	s.mu.Unlock()

	items, err := s.source.FetchInventory(ctx)
	if err != nil {
		slog.Warn("inventory refresh failed, keeping previous view", "ticket", ticket, "error", err)
		return nil, err
	}

	s.mu.Lock()
	if ticket <= s.applied {
		current := entity.CloneInventory(s.items)
		s.mu.Unlock()
		slog.Debug("inventory response superseded by newer refresh", "ticket", ticket, "applied", s.applied)
		return current, nil
	}
	s.items = entity.CloneInventory(items)
	s.applied = ticket
	current := entity.CloneInventory(s.items)
	views := append([]port.InventoryView(nil), s.views...)
	s.mu.Unlock()

	slog.Info("inventory refreshed", "ticket", ticket, "items", len(current), "total", entity.TotalCount(current))

	for _, v := range views {
		if err := v.InventoryUpdated(ctx, entity.CloneInventory(current)); err != nil {
			slog.Warn("inventory view update failed", "error", err)
		}
	}

	return current, nil
}

// Current возвращает копию последнего применённого списка
func (s *InventoryStore) Current() []entity.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.CloneInventory(s.items)
}
