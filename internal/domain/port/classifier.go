package port

import (
	"context"

	"smart-fridge/internal/domain/entity"
)

// Classifier интерфейс сервиса распознавания продуктов
type Classifier interface {
	// Classify отправляет кадр с намерением и возвращает распознанный продукт
	Classify(ctx context.Context, frame *entity.CaptureFrame, intent entity.ClassifyIntent) (*entity.ClassifyResult, error)
}
