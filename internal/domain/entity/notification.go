package entity

import (
	"fmt"
	"time"
)

// NotificationState итог последнего успешного распознавания
type NotificationState struct {
	Visible bool           // показано ли уведомление сейчас
	Item    string         // распознанный продукт
	Intent  ClassifyIntent // с каким намерением был снимок
	Seq     uint64         // порядковый номер цикла, который показал уведомление
	CycleID string         // идентификатор цикла для логов
	ShownAt time.Time      // когда уведомление было показано
}

// Message текст уведомления для пользователя
func (n NotificationState) Message() string {
	if n.Item == "" {
		return ""
	}
	return fmt.Sprintf("%s %s the fridge", n.Item, n.Intent.Verb())
}
