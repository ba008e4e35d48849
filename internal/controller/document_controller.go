package controller

import (
	"os"
	"path/filepath"
	"strings"

	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	AddDocument(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	uploadDir       string
}

func NewDocumentController(documentService service.IDocumentService, uploadDir string) IDocumentController {
	return &documentController{
		documentService: documentService,
		uploadDir:       uploadDir,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
	r.Post("/documents", c.AddDocument)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("pdf")
	if err != nil {
		return serverutils.NewValidationError("No PDF file uploaded")
	}

	if !isPdf(fileHeader.Header.Get("Content-Type"), fileHeader.Filename) {
		return serverutils.NewValidationError("Only PDF files are allowed")
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return serverutils.NewUpstreamError("Failed to process document", err)
	}

	// Random name avoids collisions between concurrent uploads.
	tmpPath := filepath.Join(c.uploadDir, uuid.NewString()+".pdf")
	if err := ctx.SaveFile(fileHeader, tmpPath); err != nil {
		return serverutils.NewUpstreamError("Failed to process document", err)
	}
	defer os.Remove(tmpPath)

	res, err := c.documentService.IndexUpload(ctx.Context(), tmpPath, fileHeader.Filename)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *documentController) AddDocument(ctx *fiber.Ctx) error {
	var req dto.AddDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.AddToDefaultCorpus(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Success queue document", res))
}

func isPdf(contentType, filename string) bool {
	if strings.EqualFold(contentType, "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
