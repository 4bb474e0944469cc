package services

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"resumelens/resume-extractor/internal/models"
)

type ImageNormalizerService interface {
	Normalize(data []byte) ([]byte, error)
}

type imageNormalizerService struct{}

func NewImageNormalizerService() ImageNormalizerService {
	return &imageNormalizerService{}
}

// Normalize prepares a raster image for OCR: grayscale, then sharpen, then
// contrast stretch. The order matters for OCR yield. Output is always PNG.
func (s *imageNormalizerService) Normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", models.ErrImageProcessing, err)
	}

	out := imaging.Grayscale(img)
	out = imaging.Sharpen(out, 1.0)
	out = imaging.AdjustContrast(out, 20)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", models.ErrImageProcessing, err)
	}

	return buf.Bytes(), nil
}
