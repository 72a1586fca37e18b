package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// ImageFormat is a supported upload format and the extension it is stored under.
type ImageFormat struct {
	ContentType string
	Extension   string
}

var supportedImageFormats = map[string]ImageFormat{
	"image/jpeg": {ContentType: "image/jpeg", Extension: ".jpg"},
	"image/png":  {ContentType: "image/png", Extension: ".png"},
}

// DetectImageFormat sniffs the leading bytes of raw and reports whether it is a supported image.
func DetectImageFormat(raw []byte) (ImageFormat, bool) {
	f, ok := supportedImageFormats[http.DetectContentType(raw)]
	return f, ok
}

// ContentTypeForPath maps a stored image path back to its content type.
func ContentTypeForPath(path string) string {
	for _, f := range supportedImageFormats {
		if len(path) >= len(f.Extension) && path[len(path)-len(f.Extension):] == f.Extension {
			return f.ContentType
		}
	}
	return "application/octet-stream"
}

// ImageProcessor produces package thumbnails.
type ImageProcessor struct {
	quality int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{quality: 80}
}

// GenerateThumbnail fits the source image inside maxWidth x maxHeight and encodes it as JPEG.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbnail := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumbnail, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf, nil
}
