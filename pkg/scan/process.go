// Package scan orchestrates the document flow: rasterize pages, preprocess
// and gate each one on measured quality, then submit the document for OCR
// and wait for the normalized result. A document whose pages cannot reach
// acceptable quality under any profile is rejected before anything is sent
// to the provider.
package scan

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/Abraxas-365/inkwell/pkg/asyncx"
	"github.com/Abraxas-365/inkwell/pkg/errx"
	"github.com/Abraxas-365/inkwell/pkg/fsx"
	"github.com/Abraxas-365/inkwell/pkg/logx"
	"github.com/Abraxas-365/inkwell/pkg/ocr"
	"github.com/Abraxas-365/inkwell/pkg/rasterx"
	"github.com/Abraxas-365/inkwell/pkg/scan/quality"
)

// State names a stage of the document flow, used for logging.
type State string

const (
	StateLoading       State = "loading"
	StatePreprocessing State = "preprocessing"
	StateSubmitting    State = "submitting"
	StatePolling       State = "polling"
	StateFetching      State = "fetching"
	StateDone          State = "done"
	StateRejected      State = "rejected"
	StateFailed        State = "failed"
)

// PageOutcome records how one page fared through preprocessing.
type PageOutcome struct {
	// PageNumber is 1-based.
	PageNumber int

	// Report is the quality report of the kept attempt.
	Report quality.Report

	// ProfileName is the profile that produced the kept attempt.
	ProfileName string
}

// Outcome is the full result of one document flow.
type Outcome struct {
	Result *ocr.Result
	Pages  []PageOutcome
}

// Orchestrator runs the document flow end to end.
type Orchestrator struct {
	rasterizer   rasterx.Rasterizer
	scoper       fsx.Scoper
	providers    *ocr.Registry
	retrier      *Retrier
	poller       *Poller
	providerName string
}

// NewOrchestrator wires the document flow. All collaborators are required.
func NewOrchestrator(
	rasterizer rasterx.Rasterizer,
	scoper fsx.Scoper,
	providers *ocr.Registry,
	retrier *Retrier,
	poller *Poller,
	providerName string,
) *Orchestrator {
	return &Orchestrator{
		rasterizer:   rasterizer,
		scoper:       scoper,
		providers:    providers,
		retrier:      retrier,
		poller:       poller,
		providerName: providerName,
	}
}

// Process runs one document through the full flow and returns the
// normalized OCR result together with the per-page quality outcomes.
// Any page that fails the quality gate under every profile rejects the
// whole document; nothing is submitted to the provider in that case.
func (o *Orchestrator) Process(ctx context.Context, documentPath string, req ocr.Request) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Capability mismatch should surface before any page work.
	provider, err := o.providers.Select(o.providerName, req.Action)
	if err != nil {
		return nil, err
	}

	log := logx.WithFields(logx.Fields{
		"document": documentPath,
		"provider": o.providerName,
		"action":   string(req.Action),
	})

	log.WithField("state", string(StateLoading)).Info("loading document")
	pages, err := o.rasterizer.Pages(ctx, documentPath)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, scanErrors.New(ErrNoPages).WithDetail("document", documentPath)
	}

	scope, err := o.scoper.NewScope(ctx, "scan")
	if err != nil {
		return nil, errx.Wrap(err, "failed to create working scope", errx.TypeInternal)
	}
	defer func() {
		if err := scope.Release(); err != nil {
			log.WithError(err).Warn("failed to release working scope")
		}
	}()

	log.WithField("state", string(StatePreprocessing)).
		WithField("pages", len(pages)).Info("preprocessing pages")
	outcomes, err := o.preprocessPages(ctx, scope, pages)
	if err != nil {
		return nil, err
	}

	log.WithField("state", string(StateSubmitting)).Info("submitting document")
	job, err := provider.Submit(ctx, documentPath, req)
	if err != nil {
		return nil, err
	}

	log.WithFields(logx.Fields{
		"state":  string(StatePolling),
		"job_id": job.ID,
	}).Info("waiting for OCR job")
	if err := o.poller.Wait(ctx, provider, job); err != nil {
		return nil, err
	}

	log.WithField("state", string(StateFetching)).Info("fetching result")
	payload, err := provider.FetchResult(ctx, job)
	if err != nil {
		return nil, err
	}

	result, err := ocr.Normalize(job.ID, payload)
	if err != nil {
		return nil, err
	}

	log.WithFields(logx.Fields{
		"state":  string(StateDone),
		"job_id": job.ID,
		"pages":  len(result.Pages),
	}).Info("document processed")

	return &Outcome{Result: result, Pages: outcomes}, nil
}

// preprocessPages runs the retrying pipeline over every page concurrently.
// A failing page stops the flow; the returned error carries the page number
// and the measured metrics of its final attempt. Processed pages are kept
// in the working scope as PNGs for inspection.
func (o *Orchestrator) preprocessPages(ctx context.Context, scope fsx.Scope, pages []image.Image) ([]PageOutcome, error) {
	fns := make([]func(context.Context) (PageOutcome, error), len(pages))
	for i, page := range pages {
		fns[i] = func(ctx context.Context) (PageOutcome, error) {
			attempt, err := o.retrier.Run(ctx, page)
			if err != nil {
				return PageOutcome{}, err
			}

			outcome := PageOutcome{
				PageNumber:  i + 1,
				Report:      attempt.Report,
				ProfileName: attempt.Profile.Name,
			}

			if attempt.Report.Status == quality.StatusFail {
				return PageOutcome{}, scanErrors.New(ErrPageRejected).
					WithDetail("page_number", outcome.PageNumber).
					WithDetail("profile", attempt.Profile.Name).
					WithDetail("metrics", attempt.Report.Metrics).
					WithDetail("score", attempt.Report.Score)
			}

			if attempt.Report.Status == quality.StatusWarn {
				logx.WithFields(logx.Fields{
					"page_number": outcome.PageNumber,
					"profile":     attempt.Profile.Name,
					"score":       attempt.Report.Score,
				}).Warn("page accepted below pass threshold")
			}

			if err := o.persistPage(ctx, scope, outcome.PageNumber, attempt.Image); err != nil {
				return PageOutcome{}, err
			}

			return outcome, nil
		}
	}

	return asyncx.All(ctx, fns...)
}

func (o *Orchestrator) persistPage(ctx context.Context, scope fsx.Scope, pageNumber int, img *image.Gray) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errx.Wrap(err, "failed to encode processed page", errx.TypeInternal)
	}

	name := fmt.Sprintf("page_%03d.png", pageNumber)
	if err := scope.WriteFile(ctx, name, buf.Bytes()); err != nil {
		return errx.Wrap(err, "failed to persist processed page", errx.TypeInternal)
	}

	return nil
}
