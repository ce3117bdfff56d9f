package camera

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
)

const jpegQuality = 85

// toJPEG passes JPEG frames through and re-encodes other image formats.
func toJPEG(frame []byte) ([]byte, error) {
	if http.DetectContentType(frame) == "image/jpeg" {
		return frame, nil
	}

	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrameEncoding, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrameEncoding, err)
	}

	return buf.Bytes(), nil
}
