package votemerge

import (
	"net/http"
	"time"

	"github.com/siamvotes/votemerge/pkg/errors"
	"github.com/siamvotes/votemerge/pkg/reconcile"
	"github.com/siamvotes/votemerge/pkg/sources"
)

// Option is a function that configures a Client.
type Option func(*config) error

// config collects everything a Client needs before it is built.
type config struct {
	resultSource   sources.ResultSource
	registrySource sources.RegistrySource

	httpClient *http.Client
	timeout    time.Duration
	cachePath  string

	ectStaticBase string
	ectStatsBase  string
	vote62URL     string

	outputDir       string
	augmentedFile   string
	diagnosticsFile string

	reconcileOpts []reconcile.Option
}

func defaultConfig() *config {
	return &config{
		outputDir:       "out",
		augmentedFile:   "augmented.csv",
		diagnosticsFile: "diagnostics.json",
	}
}

// WithResultSource replaces the default ECT results source.
func WithResultSource(src sources.ResultSource) Option {
	return func(c *config) error {
		if src == nil {
			return errors.NewValidationError("result_source", nil, "must not be nil")
		}
		c.resultSource = src
		return nil
	}
}

// WithRegistrySource replaces the default Vote62 registry source.
func WithRegistrySource(src sources.RegistrySource) Option {
	return func(c *config) error {
		if src == nil {
			return errors.NewValidationError("registry_source", nil, "must not be nil")
		}
		c.registrySource = src
		return nil
	}
}

// WithHTTPClient sets the underlying HTTP client for the default sources.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) error {
		c.httpClient = hc
		return nil
	}
}

// WithTimeout sets the per-request timeout for the default sources.
func WithTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.NewValidationError("timeout", d, "must be positive")
		}
		c.timeout = d
		return nil
	}
}

// WithCachePath enables the SQLite payload cache at the given file.
func WithCachePath(path string) Option {
	return func(c *config) error {
		c.cachePath = path
		return nil
	}
}

// WithECTBases overrides the ECT static and stats endpoints. Empty strings
// keep the published defaults.
func WithECTBases(staticBase, statsBase string) Option {
	return func(c *config) error {
		c.ectStaticBase = staticBase
		c.ectStatsBase = statsBase
		return nil
	}
}

// WithVote62URL overrides the Vote62 structure document URL.
func WithVote62URL(url string) Option {
	return func(c *config) error {
		c.vote62URL = url
		return nil
	}
}

// WithOutputDir sets the directory the augmented dataset and diagnostics
// are written to.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("output_dir", "", "must not be empty")
		}
		c.outputDir = dir
		return nil
	}
}

// WithOutputFiles sets the augmented and diagnostics file names, relative
// to the output directory. The diagnostics extension picks the format.
func WithOutputFiles(augmented, diagnostics string) Option {
	return func(c *config) error {
		if augmented != "" {
			c.augmentedFile = augmented
		}
		if diagnostics != "" {
			c.diagnosticsFile = diagnostics
		}
		return nil
	}
}

// WithReconcileOptions forwards options to the reconciler.
func WithReconcileOptions(opts ...reconcile.Option) Option {
	return func(c *config) error {
		c.reconcileOpts = append(c.reconcileOpts, opts...)
		return nil
	}
}
