package logo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pfrederiksen/nhl-season/internal/logger"
	"github.com/pfrederiksen/nhl-season/internal/metrics"
)

const (
	DefaultAssetsURL = "https://assets.nhle.com"
	DefaultTimeout   = 10 * time.Second
	UserAgent        = "nhl-season/1.0 (github.com/pfrederiksen/nhl-season)"

	metricsEndpoint = "logo"
)

// ProberConfig controls how candidates are fetched.
type ProberConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds each candidate request.
	Timeout    time.Duration
	Candidates []Candidate
	Logger     *logger.Logger
	Metrics    *metrics.Recorder
}

// Prober tries candidate URLs in order.
type Prober struct {
	client     *http.Client
	baseURL    string
	timeout    time.Duration
	candidates []Candidate
	log        *logger.Logger
	metrics    *metrics.Recorder
}

// Result is the first candidate that answered 200 OK.
type Result struct {
	Candidate Candidate
	URL       string
	Body      []byte
}

// NewProber creates a Prober, filling unset fields with defaults.
func NewProber(cfg ProberConfig) *Prober {
	p := &Prober{
		client:     cfg.HTTPClient,
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		candidates: cfg.Candidates,
		log:        cfg.Logger,
		metrics:    cfg.Metrics,
	}
	if p.client == nil {
		p.client = &http.Client{}
	}
	if p.baseURL == "" {
		p.baseURL = DefaultAssetsURL
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}
	if len(p.candidates) == 0 {
		p.candidates = DefaultCandidates()
	}
	if p.log == nil {
		p.log = logger.Default()
	}
	return p
}

// Probe returns the first candidate for code that succeeds. Misses are
// logged and skipped; only exhausting every candidate is ErrNoLogo. When ctx
// is done Probe stops and returns ctx.Err() instead.
func (p *Prober) Probe(ctx context.Context, code string) (Result, error) {
	for _, c := range p.candidates {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		url := c.URL(p.baseURL, code)
		p.log.Debug("Trying logo candidate", logger.Fields{"code": code, "url": url})

		body, err := p.fetch(ctx, url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			p.log.Info("Logo candidate missed", logger.Fields{
				"code":      code,
				"candidate": c.String(),
				"reason":    err.Error(),
			})
			continue
		}
		return Result{Candidate: c, URL: url, Body: body}, nil
	}
	return Result{}, fmt.Errorf("%w: %s (%d candidates)", ErrNoLogo, code, len(p.candidates))
}

func (p *Prober) fetch(ctx context.Context, url string) ([]byte, error) {
	started := time.Now()
	body, err := p.get(ctx, url)
	p.metrics.RecordRequest(metricsEndpoint, time.Since(started), err)
	return body, err
}

func (p *Prober) get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &MissError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &MissError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &MissError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &MissError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}
