package camera

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"smart-fridge/internal/domain/entity"
	"smart-fridge/internal/domain/port"
)

// DefaultJPEGQuality качество JPEG для снимков по умолчанию
const DefaultJPEGQuality = 90

// Stream источник кадров живого видео
type Stream interface {
	// Read возвращает текущий кадр; nil без ошибки значит, что кадра пока нет
	Read() (image.Image, error)
	Close() error
}

// Opener открывает поток с камеры
type Opener func(ctx context.Context) (Stream, error)

// Device адаптер камеры киоска: захват, снимок, освобождение
type Device struct {
	open    Opener
	quality int
	now     func() time.Time

	mu        sync.Mutex
	stream    Stream
	acquiring bool
	released  uint64 // число вызовов Release
}

// NewDevice создаёт адаптер; поток открывается только в Acquire
func NewDevice(open Opener, quality int) *Device {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Device{
		open:    open,
		quality: quality,
		now:     time.Now,
	}
}

// Acquire открывает поток. Если поток уже открыт или открывается, ничего не делает.
func (d *Device) Acquire(ctx context.Context) error {
	d.mu.Lock()
	if d.stream != nil || d.acquiring {
		d.mu.Unlock()
		return nil
	}
	d.acquiring = true
	released := d.released
	d.mu.Unlock()

	// Открываем без блокировки, чтобы Snapshot в это время сразу возвращал "нет кадра".
	stream, err := d.open(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.acquiring = false

	if err != nil {
		slog.Error("camera acquire failed", "error", err)
		return fmt.Errorf("%w: %v", entity.ErrDevice, err)
	}
	if stream == nil {
		slog.Error("camera acquire returned no stream")
		return fmt.Errorf("%w: no stream", entity.ErrDevice)
	}
	// Release пришёл, пока поток открывался: поток закрываем сразу.
	if released != d.released {
		if err := stream.Close(); err != nil {
			slog.Warn("close stream opened after release failed", "error", err)
		}
		slog.Info("camera released while acquiring, stream closed")
		return fmt.Errorf("%w: released while acquiring", entity.ErrDevice)
	}

	d.stream = stream
	slog.Info("camera stream acquired")
	return nil
}

// Snapshot кодирует текущий кадр. Возвращает false, если поток не открыт, кадр не
// прочитан или у него нулевой размер.
func (d *Device) Snapshot() (*entity.CaptureFrame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stream == nil {
		slog.Debug("snapshot skipped: camera is not bound")
		return nil, false
	}

	img, err := d.stream.Read()
	if err != nil {
		slog.Warn("snapshot read failed", "error", err)
		return nil, false
	}
	if img == nil {
		slog.Debug("snapshot skipped: no frame yet")
		return nil, false
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		slog.Debug("snapshot skipped: zero dimensions")
		return nil, false
	}

	dataURL, err := EncodeDataURL(img, d.quality)
	if err != nil {
		slog.Warn("snapshot encode failed", "error", err)
		return nil, false
	}

	return &entity.CaptureFrame{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		DataURL:    dataURL,
		CapturedAt: d.now(),
	}, true
}

// Release останавливает поток; повторный вызов возвращает nil.
// Поток, который ещё открывается в Acquire, будет закрыт по завершении открытия.
func (d *Device) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.released++

	if d.stream == nil {
		return nil
	}

	err := d.stream.Close()
	d.stream = nil
	if err != nil {
		return fmt.Errorf("release camera: %w", err)
	}

	slog.Info("camera stream released")
	return nil
}

// Bound сообщает, открыт ли поток
func (d *Device) Bound() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stream != nil
}

var _ port.CaptureDevice = (*Device)(nil)
