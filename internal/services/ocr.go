package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"resumelens/resume-extractor/internal/models"
)

const defaultOCRLanguage = "eng"

type OCRService interface {
	Recognize(ctx context.Context, image []byte, language string) (string, error)
}

type ocrService struct {
	binaryPath string
	timeout    time.Duration
	logger     *zap.Logger
}

func NewOCRService(binaryPath string, timeout time.Duration, logger *zap.Logger) OCRService {
	if binaryPath == "" {
		binaryPath = "tesseract"
	}
	return &ocrService{
		binaryPath: binaryPath,
		timeout:    timeout,
		logger:     logger,
	}
}

// Recognize runs a single tesseract invocation over the image and returns
// the recognized text. The image is staged in a request-scoped temp file
// that is removed before returning. No retry happens at this layer.
func (s *ocrService) Recognize(ctx context.Context, image []byte, language string) (string, error) {
	if language == "" {
		language = defaultOCRLanguage
	}

	tmp, err := os.CreateTemp("", "resume-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", models.ErrOCR, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: write temp file: %v", models.ErrOCR, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close temp file: %v", models.ErrOCR, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Debug("running ocr",
		zap.String("language", language),
		zap.Int("image_bytes", len(image)),
	)

	cmd := exec.CommandContext(ctx, s.binaryPath, tmp.Name(), "stdout", "-l", language)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("%w: %s", models.ErrOCR, detail)
	}

	return stdout.String(), nil
}
