package entity

import "time"

// CaptureFrame снимок текущего кадра камеры.
// Принадлежит только тому циклу, который его получил, и нигде не кэшируется.
type CaptureFrame struct {
	Width      int       // ширина кадра в пикселях
	Height     int       // высота кадра в пикселях
	DataURL    string    // data:image/jpeg;base64,...
	CapturedAt time.Time // момент снимка
}

// Empty сообщает, что кадр непригоден для отправки
func (f *CaptureFrame) Empty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0 || f.DataURL == ""
}

// ClassifyResult ответ сервиса распознавания
type ClassifyResult struct {
	Item string `json:"item"`
}
