package port

import (
	"context"

	"smart-fridge/internal/domain/entity"
)

// SubscriberRepository интерфейс хранилища подписчиков Telegram
type SubscriberRepository interface {
	// Subscribe добавляет чат, повторный вызов возвращает существующего подписчика
	Subscribe(ctx context.Context, chatID, userID int64) (*entity.Subscriber, error)

	// Unsubscribe удаляет чат
	Unsubscribe(ctx context.Context, chatID int64) error

	// List возвращает всех подписчиков
	List(ctx context.Context) ([]entity.Subscriber, error)

	// SetLastMessage запоминает последнее уведомление в чате
	SetLastMessage(ctx context.Context, chatID int64, messageID int) error
}
