package entity

import (
	"fmt"
	"strings"
)

// ClassifyIntent намерение пользователя: положить продукт или достать
type ClassifyIntent string

const (
	IntentAdd    ClassifyIntent = "add"    // продукт кладут в холодильник
	IntentRemove ClassifyIntent = "remove" // продукт достают
)

// ParseIntent разбирает намерение из строки без учёта регистра
func ParseIntent(s string) (ClassifyIntent, error) {
	switch ClassifyIntent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentAdd:
		return IntentAdd, nil
	case IntentRemove:
		return IntentRemove, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, s)
	}
}

// Valid сообщает, является ли значение одним из известных намерений
func (i ClassifyIntent) Valid() bool {
	return i == IntentAdd || i == IntentRemove
}

// Verb возвращает глагол для текста уведомления
func (i ClassifyIntent) Verb() string {
	if i == IntentRemove {
		return "removed from"
	}
	return "added to"
}
