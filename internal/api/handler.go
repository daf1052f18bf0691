package api

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/card-statement-parser/internal/models"
	"github.com/insightdelivered/card-statement-parser/internal/parser"
)

const version = "1.0.0"

// StatementParser is the part of *parser.StatementParser the handlers use.
type StatementParser interface {
	ParseFile(path string) (*models.ExtractionResult, error)
	ParseText(text string) (*models.ExtractionResult, error)
	Supported() []string
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Parser StatementParser
	Log    logrus.FieldLogger
}

// NewHandler returns a Handler around p.
func NewHandler(p StatementParser, log logrus.FieldLogger) *Handler {
	return &Handler{Parser: p, Log: log}
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
}

// NewApp builds a fiber app with the API routes and the given upload limit.
func NewApp(h *Handler, bodyLimitMB int) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             bodyLimitMB << 20,
		DisableStartupMessage: true,
	})
	h.RegisterRoutes(app)
	return app
}

// HandleHealth reports liveness and the supported issuers.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"version":   version,
		"engine":    "fiber",
		"supported": h.Parser.Supported(),
	})
}

// HandleParse parses an uploaded statement PDF (multipart field "file") or,
// when the form field "text" is set, the supplied statement text.
//
// The response body is the extraction result, or {"error": "..."} with status
// 422 when the statement cannot be read or its issuer is not recognised.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	c.Set("X-Request-ID", requestID)
	log := h.Log.WithField("request_id", requestID)

	if text := c.FormValue("text"); strings.TrimSpace(text) != "" {
		res, err := h.Parser.ParseText(text)
		return h.respond(c, log, res, err)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	tmpDir, err := os.MkdirTemp("", "statement-*")
	if err != nil {
		log.WithError(err).Error("failed to create temp dir")
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, "statement.pdf")
	if err := c.SaveFile(header, tmpPath); err != nil {
		log.WithError(err).Error("failed to save upload")
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	log.WithField("filename", header.Filename).Info("parsing uploaded statement")
	res, err := h.Parser.ParseFile(tmpPath)
	return h.respond(c, log, res, err)
}

func (h *Handler) respond(c *fiber.Ctx, log logrus.FieldLogger, res *models.ExtractionResult, err error) error {
	if err != nil {
		log.WithError(err).Warn("statement not parsed")
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	log.WithField("bank", res.BankName.String()).Info("statement parsed")
	return c.JSON(res)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(models.ErrorResult{Error: msg})
}

var _ StatementParser = (*parser.StatementParser)(nil)
