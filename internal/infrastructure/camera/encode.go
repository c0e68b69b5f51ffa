package camera

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
)

const dataURLPrefix = "data:image/jpeg;base64,"

// EncodeDataURL кодирует кадр в JPEG и упаковывает в data URL
func EncodeDataURL(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
