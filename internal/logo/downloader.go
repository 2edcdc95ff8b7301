package logo

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/pfrederiksen/nhl-season/internal/logger"
	"github.com/pfrederiksen/nhl-season/internal/metrics"
	"github.com/pfrederiksen/nhl-season/internal/storage"
	"github.com/pfrederiksen/nhl-season/internal/team"
)

// File describes a saved logo.
type File struct {
	Team      string `json:"team"`
	Code      string `json:"code"`
	Name      string `json:"file"`
	Path      string `json:"path"`
	Format    Format `json:"format"`
	SourceURL string `json:"source_url"`
	Bytes     int    `json:"bytes"`
	ViewBox   string `json:"view_box,omitempty"`
}

// Summary is the outcome of DownloadAll.
type Summary struct {
	Total  int      `json:"total"`
	Saved  []File   `json:"saved"`
	Failed []string `json:"failed"`
	// Err joins every per-team failure, nil when all teams succeeded.
	Err error `json:"-"`
	// Interrupted is the context error that stopped the run early. Teams not
	// reached are neither saved nor failed.
	Interrupted error `json:"-"`
}

// Downloader probes and saves logos into a Storage directory.
type Downloader struct {
	prober  *Prober
	store   *storage.Storage
	log     *logger.Logger
	metrics *metrics.Recorder
}

// NewDownloader wires a prober to an output directory.
func NewDownloader(prober *Prober, store *storage.Storage, log *logger.Logger, rec *metrics.Recorder) *Downloader {
	if log == nil {
		log = logger.Default()
	}
	return &Downloader{
		prober:  prober,
		store:   store,
		log:     log.With(logger.Fields{"pipeline": "logos"}),
		metrics: rec,
	}
}

// Download fetches and saves the logo for one team. No file is written
// unless a candidate succeeds.
func (d *Downloader) Download(ctx context.Context, name string) (File, error) {
	code := team.ResolveCode(name)
	if code == "" {
		return File{}, fmt.Errorf("%q: %w: empty team name", name, ErrNoLogo)
	}

	res, err := d.prober.Probe(ctx, code)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", name, err)
	}

	fileName := team.SanitizeName(name) + res.Candidate.Format.Extension()
	path, err := d.store.WriteFile(fileName, res.Body)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", name, err)
	}

	f := File{
		Team:      name,
		Code:      code,
		Name:      fileName,
		Path:      path,
		Format:    res.Candidate.Format,
		SourceURL: res.URL,
		Bytes:     len(res.Body),
	}
	if f.Format == FormatSVG {
		f.ViewBox = SVGViewBox(res.Body)
	}
	return f, nil
}

// DownloadAll processes teams one after another. A failing team is recorded
// and the run moves on. Cancelling ctx stops the run without marking the
// remaining teams as failed.
func (d *Downloader) DownloadAll(ctx context.Context, teams []string) Summary {
	summary := Summary{
		Total:  len(teams),
		Saved:  make([]File, 0, len(teams)),
		Failed: make([]string, 0),
	}
	var errs *multierror.Error

	for _, name := range teams {
		if err := ctx.Err(); err != nil {
			summary.Interrupted = err
			break
		}
		d.log.Info("Downloading logo", logger.Fields{"team": name})

		f, err := d.Download(ctx, name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				d.log.Warn("Logo download interrupted", logger.Fields{"team": name})
				summary.Interrupted = ctxErr
				break
			}
			d.log.Warn("Logo download failed", logger.Fields{"team": name, "error": err.Error()})
			summary.Failed = append(summary.Failed, name)
			errs = multierror.Append(errs, err)
			d.metrics.RecordLogo(false)
			continue
		}

		d.log.Info("Logo saved", logger.Fields{"team": name, "file": f.Name, "url": f.SourceURL})
		summary.Saved = append(summary.Saved, f)
		d.metrics.RecordLogo(true)
	}

	summary.Err = errs.ErrorOrNil()
	return summary
}
