package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"

	"resumelens/resume-extractor/internal/models"
)

// Supported upload MIME types.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
)

// IsSupportedMime reports whether the declared MIME type is one the
// pipeline can extract text from.
func IsSupportedMime(mimeType string) bool {
	switch mimeType {
	case MimePDF, MimeDOCX, MimeText, MimePNG, MimeJPEG:
		return true
	}
	return false
}

type FormatExtractorService interface {
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

type formatExtractorService struct {
	normalizer ImageNormalizerService
	ocr        OCRService
	ocrLang    string
	logger     *zap.Logger
}

func NewFormatExtractorService(
	normalizer ImageNormalizerService,
	ocr OCRService,
	ocrLang string,
	logger *zap.Logger,
) FormatExtractorService {
	return &formatExtractorService{
		normalizer: normalizer,
		ocr:        ocr,
		ocrLang:    ocrLang,
		logger:     logger,
	}
}

func (s *formatExtractorService) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	s.logger.Debug("extracting text",
		zap.String("mime_type", mimeType),
		zap.Int("size", len(data)),
	)

	var (
		text string
		err  error
	)

	switch mimeType {
	case MimePDF:
		text, err = extractPDFText(data)
	case MimeDOCX:
		text, err = extractDocxText(data)
	case MimeText:
		text = string(data)
	case MimePNG, MimeJPEG:
		var normalized []byte
		normalized, err = s.normalizer.Normalize(data)
		if err == nil {
			text, err = s.ocr.Recognize(ctx, normalized, s.ocrLang)
		}
	default:
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, mimeType)
	}

	if err != nil {
		return "", err
	}

	return CollapseNewlines(text), nil
}

// extractPDFText reads the PDF text layer page by page. An image-only PDF
// yields near-empty text; there is no OCR fallback for that case.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

// extractDocxText pulls the raw text layer out of a DOCX, discarding
// styling.
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

var newlineRuns = regexp.MustCompile(`\n{3,}`)

// CollapseNewlines squeezes runs of 3+ newlines down to exactly 2 so the
// extracted text stays compact inside the prompt.
func CollapseNewlines(text string) string {
	return newlineRuns.ReplaceAllString(text, "\n\n")
}
