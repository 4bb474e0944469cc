package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumelens/resume-extractor/internal/models"
	"resumelens/resume-extractor/internal/services"
)

type ExtractHandler struct {
	pipeline    services.PipelineService
	maxFileSize int64
	logger      *zap.Logger
}

func NewExtractHandler(
	pipeline services.PipelineService,
	maxFileSize int64,
	logger *zap.Logger,
) *ExtractHandler {
	return &ExtractHandler{
		pipeline:    pipeline,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// HandleExtract handles POST /extract. The resume comes as the multipart
// field "resume"; the response is the sanitized record or one typed error.
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file was uploaded.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File too large.",
		})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !services.IsSupportedMime(mimeType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Only PDF, DOCX, TXT, PNG, and JPG are allowed.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file.",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file.",
		})
	}

	requestID := uuid.New().String()
	log := h.logger.With(
		zap.String("request_id", requestID),
		zap.String("filename", fileHeader.Filename),
		zap.String("mime_type", mimeType),
	)
	log.Info("processing resume upload", zap.Int64("size", fileHeader.Size))

	record, err := h.pipeline.Process(c.UserContext(), data, mimeType)
	if err != nil {
		log.Error("extraction failed", zap.Error(err))
		return writeError(c, err)
	}

	log.Info("extraction succeeded", zap.Int("confidence", record.Confidence))
	return c.Status(fiber.StatusOK).JSON(record)
}

// writeError maps the pipeline error taxonomy onto HTTP status codes.
func writeError(c *fiber.Ctx, err error) error {
	var exhausted *models.ModelsExhaustedError

	switch {
	case errors.Is(err, models.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Only PDF, DOCX, TXT, PNG, and JPG are allowed.",
		})
	case errors.Is(err, models.ErrContentBlocked):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "The AI declined to process this document. Please try a different file.",
		})
	case errors.As(err, &exhausted):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "No AI model is currently available. Please try again later.",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process the uploaded file.",
		})
	}
}
