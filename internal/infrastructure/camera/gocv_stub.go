//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"errors"
)

// OpenGoCV возвращает ошибку, если сборка без тега gocv.
func OpenGoCV(device string, width, height int) Opener {
	return func(ctx context.Context) (Stream, error) {
		_ = ctx
		_ = device
		_ = width
		_ = height
		return nil, errors.New("gocv build tag is not enabled")
	}
}
