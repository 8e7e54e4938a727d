// cmd/container.go
//
// Root composition root. Owns infrastructure (file system, rasterizer, OCR
// providers) and wires the scanner flow. This is the only place that knows
// about ALL modules.
package main

import (
	"net/http"

	"github.com/Abraxas-365/inkwell/pkg/config"
	"github.com/Abraxas-365/inkwell/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/inkwell/pkg/logx"
	"github.com/Abraxas-365/inkwell/pkg/ocr"
	"github.com/Abraxas-365/inkwell/pkg/ocr/providers/hwocr"
	"github.com/Abraxas-365/inkwell/pkg/rasterx"
	"github.com/Abraxas-365/inkwell/pkg/scan"
	"github.com/Abraxas-365/inkwell/pkg/scan/preprocess"
	"github.com/Abraxas-365/inkwell/pkg/scan/scanapi"
)

// Container holds shared infrastructure and the composed scanner flow.
type Container struct {
	Config *config.Config

	// Infrastructure
	FileSystem *fsxlocal.LocalFileSystem
	Rasterizer rasterx.Rasterizer
	Providers  *ocr.Registry

	// Scanner flow
	Orchestrator *scan.Orchestrator
	ScanHandlers *scanapi.Handlers
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initScanner()

	logx.Info("✅ Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure — file storage, rasterizer, OCR providers
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	fs, err := fsxlocal.NewLocalFileSystem(c.Config.Scan.WorkDir)
	if err != nil {
		logx.Fatalf("Failed to initialize working directory: %v", err)
	}
	c.FileSystem = fs
	logx.Info("  ✅ Working directory ready")

	c.Rasterizer = rasterx.NewDocumentRasterizer()
	logx.Info("  ✅ Rasterizer ready")

	c.Providers = ocr.NewRegistry()

	provider, perr := hwocr.New(
		c.Config.OCR.APIKey,
		hwocr.WithBaseURL(c.Config.OCR.BaseURL),
		hwocr.WithHTTPClient(&http.Client{Timeout: c.Config.OCR.Timeout}),
	)
	if perr != nil {
		logx.Fatalf("Failed to initialize OCR provider: %v", perr)
	}
	c.Providers.Register(provider)
	logx.Info("  ✅ OCR provider registered")
}

// ---------------------------------------------------------------------------
// Scanner flow
// ---------------------------------------------------------------------------

func (c *Container) initScanner() {
	logx.Info("📄 Initializing scanner flow...")

	retrier, err := scan.NewRetrier(preprocess.DefaultProfiles())
	if err != nil {
		logx.Fatalf("Failed to initialize retrier: %v", err)
	}

	poller := scan.NewPoller(c.Config.Scan.PollInterval, c.Config.Scan.MaxPollAttempts)

	c.Orchestrator = scan.NewOrchestrator(
		c.Rasterizer,
		c.FileSystem,
		c.Providers,
		retrier,
		poller,
		c.Config.OCR.Provider,
	)

	c.ScanHandlers = scanapi.NewHandlers(c.Orchestrator, c.FileSystem)
	logx.Info("  ✅ Scanner flow ready")
}

// Cleanup releases container resources on shutdown
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up container resources...")
}
