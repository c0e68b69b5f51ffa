package camera

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// stillStream отдаёт одну и ту же картинку на каждый кадр
type stillStream struct {
	img image.Image
}

func (s *stillStream) Read() (image.Image, error) { return s.img, nil }

func (s *stillStream) Close() error { return nil }

// OpenStill открывает поток из готовой картинки
func OpenStill(img image.Image) Opener {
	return func(ctx context.Context) (Stream, error) {
		if img == nil {
			return nil, fmt.Errorf("still image is nil")
		}
		return &stillStream{img: img}, nil
	}
}

// OpenImageFile открывает поток из файла JPEG или PNG, для стенда без камеры
func OpenImageFile(path string) Opener {
	return func(ctx context.Context) (Stream, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return OpenStill(img)(ctx)
	}
}
