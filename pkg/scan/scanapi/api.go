// Package scanapi exposes the document flow over HTTP.
package scanapi

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/inkwell/pkg/fsx"
	"github.com/Abraxas-365/inkwell/pkg/logx"
	"github.com/Abraxas-365/inkwell/pkg/ocr"
	"github.com/Abraxas-365/inkwell/pkg/scan"
)

// allowedExtensions is the upload allow-list, lowercase with leading dot.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
}

// Handlers serves the scanner endpoints
type Handlers struct {
	orchestrator *scan.Orchestrator
	scoper       fsx.Scoper
}

// NewHandlers creates the scanner HTTP handlers
func NewHandlers(orchestrator *scan.Orchestrator, scoper fsx.Scoper) *Handlers {
	return &Handlers{
		orchestrator: orchestrator,
		scoper:       scoper,
	}
}

// RegisterRoutes mounts the scanner routes on the app
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1/scanner")
	api.Post("/process", h.processDocument)
}

// processResponse is the stable wire shape of a completed flow.
type processResponse struct {
	JobID   string            `json:"job_id"`
	Pages   []ocr.PageResult  `json:"pages"`
	Quality []pageQualityItem `json:"quality"`
}

type pageQualityItem struct {
	PageNumber int     `json:"page_number"`
	Profile    string  `json:"profile"`
	Score      float64 `json:"score"`
	Status     string  `json:"status"`
}

// processDocument accepts a multipart document upload, runs the full
// preprocess-gate-submit flow, and returns the normalized result.
func (h *Handlers) processDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apiErrors.New(ErrMissingFile)
	}

	filename := filepath.Base(fileHeader.Filename)
	if filename == "" || filename == "." {
		return apiErrors.New(ErrEmptyFilename)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return apiErrors.New(ErrUnsupportedExtension).WithDetail("extension", ext)
	}

	req := ocr.Request{
		Action:      ocr.Action(c.FormValue("action", string(ocr.ActionTranscribe))),
		ExtractorID: c.FormValue("extractor_id"),
		WebhookURL:  c.FormValue("webhook_url"),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	// The upload gets its own scope so it disappears with the request.
	scope, scopeErr := h.scoper.NewScope(c.Context(), "upload")
	if scopeErr != nil {
		return scopeErr
	}
	defer func() {
		if err := scope.Release(); err != nil {
			logx.WithError(err).Warn("failed to release upload scope")
		}
	}()

	documentPath := scope.Join(filename)
	if err := c.SaveFile(fileHeader, documentPath); err != nil {
		return err
	}

	outcome, procErr := h.orchestrator.Process(c.Context(), documentPath, req)
	if procErr != nil {
		return procErr
	}

	quality := make([]pageQualityItem, 0, len(outcome.Pages))
	for _, page := range outcome.Pages {
		quality = append(quality, pageQualityItem{
			PageNumber: page.PageNumber,
			Profile:    page.ProfileName,
			Score:      page.Report.Score,
			Status:     string(page.Report.Status),
		})
	}

	return c.JSON(processResponse{
		JobID:   outcome.Result.JobID,
		Pages:   outcome.Result.Pages,
		Quality: quality,
	})
}
