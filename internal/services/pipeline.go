package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"resumelens/resume-extractor/internal/models"
)

type PipelineService interface {
	// Process runs the full intake-to-record pipeline for one upload. It
	// returns either a complete ResumeRecord or one typed error from the
	// models package, never a half-populated record.
	Process(ctx context.Context, data []byte, mimeType string) (*models.ResumeRecord, error)
}

type pipelineService struct {
	extractor    FormatExtractorService
	gemini       GeminiService
	sanitizer    SanitizerService
	modelTimeout time.Duration
	logger       *zap.Logger
}

func NewPipelineService(
	extractor FormatExtractorService,
	gemini GeminiService,
	sanitizer SanitizerService,
	modelTimeout time.Duration,
	logger *zap.Logger,
) PipelineService {
	return &pipelineService{
		extractor:    extractor,
		gemini:       gemini,
		sanitizer:    sanitizer,
		modelTimeout: modelTimeout,
		logger:       logger,
	}
}

func (p *pipelineService) Process(ctx context.Context, data []byte, mimeType string) (*models.ResumeRecord, error) {
	// The upload layer already filters MIME types; check again anyway
	if !IsSupportedMime(mimeType) {
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, mimeType)
	}

	text, err := p.extractor.Extract(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("text extracted", zap.Int("length", len(text)))

	callCtx := ctx
	if p.modelTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.modelTimeout)
		defer cancel()
	}

	raw, err := p.gemini.ExtractStructured(callCtx, text)
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeModelResponse(raw)
	if err != nil {
		return nil, err
	}

	record := p.sanitizer.Sanitize(decoded)
	record.Confidence = ScoreRecord(record)

	p.logger.Info("resume extracted",
		zap.Int("confidence", record.Confidence),
		zap.Int("work_experience", len(record.WorkExperience)),
		zap.Int("education", len(record.Education)),
	)

	return record, nil
}
