// Package api serves the report parser over HTTP.
package api

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/credit-report-parser/internal/extractor"
	"github.com/insightdelivered/credit-report-parser/internal/models"
	"github.com/insightdelivered/credit-report-parser/internal/parser"
	"github.com/insightdelivered/credit-report-parser/internal/pipeline"
)

// ParseResponse is the JSON response from the /api/parse endpoint.
type ParseResponse struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	RequestID string         `json:"request_id"`
	Bureau    models.Bureau  `json:"bureau,omitempty"`
	Scores    parser.Scores  `json:"scores,omitempty"`
	Head      string         `json:"head,omitempty"`
	Report    *models.Report `json:"report,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Pipeline       *pipeline.Pipeline
	Logger         *logrus.Logger
	Version        string
	MaxUploadBytes int
}

// NewApp returns a fiber app with the API routes registered. Bodies larger
// than MaxUploadBytes are rejected with 413.
func (h *Handler) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             h.MaxUploadBytes,
		DisableStartupMessage: true,
		ErrorHandler:          h.handleError,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
}

// HandleHealth reports liveness and the build version.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": h.Version,
	})
}

// HandleParse accepts a multipart PDF in "file" or pre-extracted text in
// "text" and responds with the parsed report.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	c.Set("X-Request-ID", requestID)
	log := h.Logger.WithField("request_id", requestID)

	var (
		report *models.Report
		err    error
	)
	if text := c.FormValue("text"); strings.TrimSpace(text) != "" {
		log.WithField("chars", len(text)).Debug("parsing submitted text")
		report, err = h.Pipeline.ParseText(text)
	} else {
		data, status, msg := h.readUpload(c)
		if status != fiber.StatusOK {
			return writeError(c, status, requestID, msg)
		}
		log.WithField("bytes", len(data)).Debug("parsing uploaded PDF")
		report, err = h.Pipeline.ParseBytes(data)
	}

	if err != nil {
		var unknown *pipeline.UnknownFormatError
		switch {
		case errors.As(err, &unknown):
			log.WithField("scores", unknown.Scores).Info("unrecognised report format")
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ParseResponse{
				Error:     err.Error(),
				RequestID: requestID,
				Scores:    unknown.Scores,
				Head:      unknown.Head,
			})
		case errors.Is(err, extractor.ErrNoText):
			return writeError(c, fiber.StatusUnprocessableEntity, requestID, err.Error())
		default:
			log.WithError(err).Error("parse failed")
			return writeError(c, fiber.StatusInternalServerError, requestID, fmt.Sprintf("Parsing failed: %v", err))
		}
	}

	log.WithFields(logrus.Fields{
		"bureau":   report.Bureau,
		"accounts": len(report.Accounts),
	}).Info("report parsed")

	return c.JSON(ParseResponse{
		Success:   true,
		RequestID: requestID,
		Bureau:    report.Bureau,
		Scores:    parser.Scores(report.BureauScores),
		Report:    report,
	})
}

// readUpload returns the uploaded PDF bytes, or a status and message when
// the upload is missing, oversized or not a PDF.
func (h *Handler) readUpload(c *fiber.Ctx) ([]byte, int, string) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.StatusBadRequest, "No input. Use form field 'file' for a PDF or 'text' for extracted text."
	}
	if h.MaxUploadBytes > 0 && header.Size > int64(h.MaxUploadBytes) {
		return nil, fiber.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds the %d byte upload limit.", h.MaxUploadBytes)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fiber.StatusBadRequest, "Could not read uploaded file."
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fiber.StatusBadRequest, "Could not read uploaded file."
	}
	if !isPDF(header.Filename, data) {
		return nil, fiber.StatusBadRequest, "Only PDF files are supported."
	}
	return data, fiber.StatusOK, ""
}

func isPDF(name string, data []byte) bool {
	if strings.HasPrefix(string(data[:min(len(data), 5)]), "%PDF-") {
		return true
	}
	return strings.EqualFold(filepath.Ext(name), ".pdf") && len(data) > 0
}

// handleError turns fiber errors, such as an oversized body, into the JSON
// error shape.
func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	return writeError(c, status, "", err.Error())
}

func writeError(c *fiber.Ctx, status int, requestID, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success:   false,
		Error:     msg,
		RequestID: requestID,
	})
}
