package scan

import (
	"context"
	"image"

	"github.com/Abraxas-365/inkwell/pkg/errx"
	"github.com/Abraxas-365/inkwell/pkg/logx"
	"github.com/Abraxas-365/inkwell/pkg/scan/preprocess"
	"github.com/Abraxas-365/inkwell/pkg/scan/quality"
)

// ProcessFunc runs the preprocessing pipeline on one page image.
type ProcessFunc func(img image.Image, profile preprocess.Profile) (*image.Gray, *errx.Error)

// ScoreFunc measures a processed page image.
type ScoreFunc func(img *image.Gray) (quality.Report, *errx.Error)

// Attempt is the outcome of processing one page under one profile.
type Attempt struct {
	Image   *image.Gray
	Report  quality.Report
	Profile preprocess.Profile
}

// Retrier reprocesses a page under successive profiles until one passes
// the quality gate. Profiles are tried in configuration order; the first
// passing attempt wins. When no profile passes, the final attempt is
// returned so the caller can decide what a warn or fail means for the
// document as a whole.
type Retrier struct {
	profiles []preprocess.Profile
	process  ProcessFunc
	score    ScoreFunc
}

// RetrierOption configures a Retrier
type RetrierOption func(*Retrier)

// WithProcessFunc overrides the preprocessing pipeline
func WithProcessFunc(fn ProcessFunc) RetrierOption {
	return func(r *Retrier) {
		r.process = fn
	}
}

// WithScoreFunc overrides the quality scorer
func WithScoreFunc(fn ScoreFunc) RetrierOption {
	return func(r *Retrier) {
		r.score = fn
	}
}

// NewRetrier creates a Retrier over the given profiles. Every profile is
// validated up front so a bad configuration fails before any page work.
func NewRetrier(profiles []preprocess.Profile, opts ...RetrierOption) (*Retrier, *errx.Error) {
	if len(profiles) == 0 {
		return nil, scanErrors.New(ErrEmptyProfiles)
	}

	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	r := &Retrier{
		profiles: profiles,
		process:  preprocess.Apply,
		score:    quality.Score,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Run processes one page image, retrying with the next profile whenever
// the quality gate does not pass.
func (r *Retrier) Run(ctx context.Context, img image.Image) (Attempt, *errx.Error) {
	var last Attempt

	for i, profile := range r.profiles {
		if err := ctx.Err(); err != nil {
			return Attempt{}, errx.Wrap(err, "page processing cancelled", errx.TypeInternal)
		}

		processed, err := r.process(img, profile)
		if err != nil {
			return Attempt{}, err
		}

		report, err := r.score(processed)
		if err != nil {
			return Attempt{}, err
		}

		last = Attempt{Image: processed, Report: report, Profile: profile}

		if report.Status == quality.StatusPass {
			return last, nil
		}

		logx.WithFields(logx.Fields{
			"profile": profile.Name,
			"status":  string(report.Status),
			"score":   report.Score,
			"attempt": i + 1,
		}).Debug("quality gate not passed, trying next profile")
	}

	return last, nil
}
