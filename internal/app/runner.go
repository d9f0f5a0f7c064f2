package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samvad-hq/getrequester/internal/config"
	"github.com/samvad-hq/getrequester/internal/logger"
	"github.com/samvad-hq/getrequester/pkg/fetcher"
	"github.com/samvad-hq/getrequester/pkg/httpclient"
	"github.com/samvad-hq/getrequester/pkg/targets"
)

// Request selects what to fetch and how to render it. Empty fields fall back
// to the target entry and then to config.
type Request struct {
	URL      string
	TargetID string
	Format   string
}

// Runner resolves a Request to a URL, fetches it, and renders the result.
type Runner struct {
	cfg     *config.Config
	log     logger.Logger
	targets *targets.Registry
	client  httpclient.Client
}

// Option customizes a Runner.
type Option func(*Runner)

// WithHTTPClient overrides the transport handed to every Fetcher.
func WithHTTPClient(c httpclient.Client) Option {
	return func(r *Runner) { r.client = c }
}

// NewRunner builds a runner from config, loading the targets file when one is configured.
func NewRunner(cfg *config.Config, log logger.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	r := &Runner{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(r)
	}

	if cfg.TargetsFile != "" {
		reg, err := targets.LoadRegistry(cfg.TargetsFile)
		if err != nil {
			return nil, fmt.Errorf("load targets registry: %w", err)
		}
		r.targets = reg
		log.InfoObj("targets registry loaded", "targets_meta", map[string]any{
			"count": len(reg.All()),
			"file":  cfg.TargetsFile,
		})
	}

	return r, nil
}

// Targets returns the loaded targets, or nil when no targets file is configured.
func (r *Runner) Targets() []targets.Target {
	return r.targets.All()
}

// Run fetches the resolved URL and writes the rendered body to w.
func (r *Runner) Run(ctx context.Context, req Request, w io.Writer) error {
	if r == nil || r.cfg == nil {
		return fmt.Errorf("runner is not initialized")
	}

	url, format, err := r.resolve(req)
	if err != nil {
		return err
	}

	opts := []fetcher.Option{fetcher.WithLogger(r.log)}
	if format != targets.FormatRaw {
		// rendering re-encodes the value, so numbers must survive unrounded
		opts = append(opts, fetcher.WithNumbers())
	}
	if r.client != nil {
		opts = append(opts, fetcher.WithClient(r.client))
	}
	f := fetcher.New(url, opts...)

	start := time.Now()
	r.log.InfoObj("fetch started", "fetch_meta", map[string]any{
		"url":    url,
		"format": format,
	})

	out, err := r.fetchAndRender(ctx, f, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	r.log.InfoObj("fetch completed", "fetch_meta", map[string]any{
		"url":          url,
		"format":       format,
		"output_bytes": len(out),
		"elapsed_ms":   time.Since(start).Milliseconds(),
	})
	return nil
}

func (r *Runner) resolve(req Request) (string, string, error) {
	url := strings.TrimSpace(req.URL)
	format := strings.ToLower(strings.TrimSpace(req.Format))

	if url == "" && strings.TrimSpace(req.TargetID) != "" {
		if r.targets == nil {
			return "", "", fmt.Errorf("target %q requested but no targets file configured", req.TargetID)
		}
		t, ok := r.targets.ByID(req.TargetID)
		if !ok {
			return "", "", fmt.Errorf("unknown target %q", req.TargetID)
		}
		url = t.URL
		if format == "" {
			format = t.Format
		}
	}
	if url == "" {
		url = r.cfg.URL
	}
	if url == "" {
		return "", "", errors.New("no url given (pass one, use --target, or set TARGET_URL)")
	}

	if format == "" {
		format = r.cfg.OutputFormat
	}
	if format == "" {
		format = targets.FormatJSON
	}
	if !targets.ValidFormat(format) {
		return "", "", fmt.Errorf("unsupported output format %q", format)
	}
	return url, format, nil
}

func (r *Runner) fetchAndRender(ctx context.Context, f *fetcher.Fetcher, format string) ([]byte, error) {
	if format == targets.FormatRaw {
		body, err := f.FetchBytes(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch bytes: %w", err)
		}
		return body, nil
	}

	v, err := f.FetchJSON(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch json: %w", err)
	}
	return render(v, format)
}
