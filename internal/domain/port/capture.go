package port

import (
	"context"

	"smart-fridge/internal/domain/entity"
)

// CaptureDevice интерфейс камеры киоска
type CaptureDevice interface {
	// Acquire открывает поток с камеры; при отказе возвращает ошибку с entity.ErrDevice
	Acquire(ctx context.Context) error

	// Snapshot возвращает текущий кадр; false если кадра нет
	Snapshot() (*entity.CaptureFrame, bool)

	// Release останавливает поток, повторный вызов безопасен
	Release() error
}
