//go:build gocv
// +build gocv

package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strconv"

	"gocv.io/x/gocv"
)

// gocvStream поток с камеры через OpenCV
type gocvStream struct {
	vc  *gocv.VideoCapture
	mat gocv.Mat
}

// OpenGoCV открывает камеру по индексу ("0") или по URL/пути к файлу
func OpenGoCV(device string, width, height int) Opener {
	return func(ctx context.Context) (Stream, error) {
		_ = ctx

		var source interface{} = device
		if idx, err := strconv.Atoi(device); err == nil {
			source = idx
		}

		vc, err := gocv.OpenVideoCapture(source)
		if err != nil {
			return nil, fmt.Errorf("open video capture %q: %w", device, err)
		}
		if !vc.IsOpened() {
			vc.Close()
			return nil, fmt.Errorf("video capture %q is not opened", device)
		}

		if width > 0 && height > 0 {
			vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
			vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
		}

		return &gocvStream{vc: vc, mat: gocv.NewMat()}, nil
	}
}

// Read читает очередной кадр из камеры
func (s *gocvStream) Read() (image.Image, error) {
	if ok := s.vc.Read(&s.mat); !ok {
		return nil, errors.New("video capture read failed")
	}
	if s.mat.Empty() {
		return nil, nil
	}
	return s.mat.ToImage()
}

// Close освобождает Mat и камеру
func (s *gocvStream) Close() error {
	if err := s.mat.Close(); err != nil {
		_ = s.vc.Close()
		return err
	}
	return s.vc.Close()
}
