package storage

import (
	"context"
	"sort"
	"sync"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

// MemorySubscriberRepository in-memory хранилище подписчиков на время работы процесса
type MemorySubscriberRepository struct {
	mu          sync.RWMutex
	subscribers map[int64]*entity.Subscriber
}

// NewMemorySubscriberRepository создаёт пустое хранилище
func NewMemorySubscriberRepository() *MemorySubscriberRepository {
	return &MemorySubscriberRepository{
		subscribers: make(map[int64]*entity.Subscriber),
	}
}

// Subscribe добавляет чат или возвращает уже подписанный
func (r *MemorySubscriberRepository) Subscribe(ctx context.Context, chatID, userID int64) (*entity.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub, exists := r.subscribers[chatID]; exists {
		cp := *sub
		return &cp, nil
	}

	sub := entity.NewSubscriber(chatID, userID)
	r.subscribers[chatID] = sub

	cp := *sub
	return &cp, nil
}

// Unsubscribe удаляет чат, отсутствие чата не ошибка
func (r *MemorySubscriberRepository) Unsubscribe(ctx context.Context, chatID int64) error {
	r.mu.Lock()
	delete(r.subscribers, chatID)
	r.mu.Unlock()

	return nil
}

// List возвращает копии подписчиков, упорядоченные по ChatID
func (r *MemorySubscriberRepository) List(ctx context.Context) ([]entity.Subscriber, error) {
	r.mu.RLock()
	out := make([]entity.Subscriber, 0, len(r.subscribers))
	for _, sub := range r.subscribers {
		out = append(out, *sub)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out, nil
}

// SetLastMessage запоминает ID последнего уведомления
func (r *MemorySubscriberRepository) SetLastMessage(ctx context.Context, chatID int64, messageID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub, exists := r.subscribers[chatID]; exists {
		sub.LastMessageID = messageID
	}

	return nil
}

// Проверка реализации интерфейса
var _ port.SubscriberRepository = (*MemorySubscriberRepository)(nil)
