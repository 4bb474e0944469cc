package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"resumelens/resume-extractor/internal/models"
)

type fakeNormalizer struct {
	output []byte
	err    error
	called bool
}

func (f *fakeNormalizer) Normalize(data []byte) ([]byte, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	if f.output != nil {
		return f.output, nil
	}
	return data, nil
}

type fakeOCR struct {
	text     string
	err      error
	gotImage []byte
	gotLang  string
}

func (f *fakeOCR) Recognize(ctx context.Context, image []byte, language string) (string, error) {
	f.gotImage = image
	f.gotLang = language
	return f.text, f.err
}

func newTestExtractor(normalizer ImageNormalizerService, ocr OCRService) FormatExtractorService {
	return NewFormatExtractorService(normalizer, ocr, "eng", zap.NewNop())
}

func TestExtractPlainText(t *testing.T) {
	extractor := newTestExtractor(&fakeNormalizer{}, &fakeOCR{})

	text, err := extractor.Extract(context.Background(), []byte("John Smith\nEngineer"), MimeText)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "John Smith\nEngineer" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractCollapsesNewlineRuns(t *testing.T) {
	extractor := newTestExtractor(&fakeNormalizer{}, &fakeOCR{})

	text, err := extractor.Extract(context.Background(), []byte("a\n\n\n\n\nb\n\nc"), MimeText)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "a\n\nb\n\nc" {
		t.Fatalf("expected newline runs collapsed to two, got %q", text)
	}
}

func TestExtractUnsupportedMime(t *testing.T) {
	extractor := newTestExtractor(&fakeNormalizer{}, &fakeOCR{})

	_, err := extractor.Extract(context.Background(), []byte("zip bytes"), "application/zip")
	if !errors.Is(err, models.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractImageRoutesThroughNormalizerAndOCR(t *testing.T) {
	normalizer := &fakeNormalizer{output: []byte("normalized")}
	ocr := &fakeOCR{text: "Jane Doe\n\n\n\nDesigner"}
	extractor := newTestExtractor(normalizer, ocr)

	text, err := extractor.Extract(context.Background(), []byte("png bytes"), MimePNG)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !normalizer.called {
		t.Fatal("expected normalizer to run before OCR")
	}
	if string(ocr.gotImage) != "normalized" {
		t.Fatalf("expected OCR to receive the normalized image, got %q", ocr.gotImage)
	}
	if ocr.gotLang != "eng" {
		t.Fatalf("unexpected OCR language: %q", ocr.gotLang)
	}
	if text != "Jane Doe\n\nDesigner" {
		t.Fatalf("expected post-processed OCR text, got %q", text)
	}
}

func TestExtractImageNormalizationFailureIsFatal(t *testing.T) {
	normalizer := &fakeNormalizer{err: models.ErrImageProcessing}
	extractor := newTestExtractor(normalizer, &fakeOCR{text: "never used"})

	_, err := extractor.Extract(context.Background(), []byte("jpeg bytes"), MimeJPEG)
	if !errors.Is(err, models.ErrImageProcessing) {
		t.Fatalf("expected ErrImageProcessing, got %v", err)
	}
}

func TestExtractOCRFailure(t *testing.T) {
	ocr := &fakeOCR{err: models.ErrOCR}
	extractor := newTestExtractor(&fakeNormalizer{}, ocr)

	_, err := extractor.Extract(context.Background(), []byte("png bytes"), MimePNG)
	if !errors.Is(err, models.ErrOCR) {
		t.Fatalf("expected ErrOCR, got %v", err)
	}
}

func TestIsSupportedMime(t *testing.T) {
	for _, mime := range []string{MimePDF, MimeDOCX, MimeText, MimePNG, MimeJPEG} {
		if !IsSupportedMime(mime) {
			t.Fatalf("expected %s to be supported", mime)
		}
	}
	if IsSupportedMime("application/zip") || IsSupportedMime("") {
		t.Fatal("unexpected MIME type accepted")
	}
}
