package entity

import "errors"

var (
	// ErrDevice камера недоступна или доступ запрещён
	ErrDevice = errors.New("capture device unavailable")
	// ErrNetwork сбой транспорта или разбора ответа удалённого сервиса
	ErrNetwork = errors.New("network error")
	// ErrNoFrame кадра нет: камера не подключена или кадр пустой
	ErrNoFrame = errors.New("no frame available")
	// ErrUnknownIntent неизвестное намерение
	ErrUnknownIntent = errors.New("unknown intent")
)
