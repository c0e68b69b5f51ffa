package entity

// Subscriber чат Telegram, который получает уведомления киоска
type Subscriber struct {
	ChatID        int64 // Telegram Chat ID
	UserID        int64 // Telegram User ID
	LastMessageID int   // последнее отправленное уведомление, 0 если не было
}

// NewSubscriber создаёт подписчика без отправленных уведомлений
func NewSubscriber(chatID, userID int64) *Subscriber {
	return &Subscriber{ChatID: chatID, UserID: userID}
}
