// Package votemerge joins official Thai election results with candidate
// ballot registrations into one augmented dataset.
//
// The pipeline has three stages: fetch (official results from the ECT
// report site, registrations from the Vote62 structure feed), reconcile
// (a left-outer join on constituency and ballot number that preserves
// result order and reports every data-quality issue it finds), and write
// (the augmented dataset as CSV, the diagnostics as JSON or YAML).
//
// Example usage:
//
//	client, err := votemerge.New(
//	    votemerge.WithCachePath("payloads.db"),
//	    votemerge.WithOutputDir("out"),
//	    votemerge.WithReconcileOptions(reconcile.WithNameFallback(true)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("matched %d of %d rows\n", result.Metadata.Stats.Matched, result.Metadata.Stats.ResultsIn)
package votemerge

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/siamvotes/votemerge/internal/cache"
	"github.com/siamvotes/votemerge/internal/sources/ectreport"
	"github.com/siamvotes/votemerge/internal/sources/vote62"
	"github.com/siamvotes/votemerge/internal/tabular"
	"github.com/siamvotes/votemerge/internal/transport"
	"github.com/siamvotes/votemerge/pkg/election"
	"github.com/siamvotes/votemerge/pkg/logging"
	"github.com/siamvotes/votemerge/pkg/reconcile"
	"github.com/siamvotes/votemerge/pkg/sources"
)

// Client runs the merge pipeline.
type Client struct {
	resultSource   sources.ResultSource
	registrySource sources.RegistrySource
	reconciler     reconcile.Reconciler
	cache          *cache.PayloadCache

	outputDir       string
	augmentedFile   string
	diagnosticsFile string
}

// New builds a Client. Without options it fetches from the published ECT
// and Vote62 endpoints, caches nothing, and writes to ./out.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	c := &Client{
		resultSource:    cfg.resultSource,
		registrySource:  cfg.registrySource,
		outputDir:       cfg.outputDir,
		augmentedFile:   cfg.augmentedFile,
		diagnosticsFile: cfg.diagnosticsFile,
	}

	rec, err := reconcile.New(cfg.reconcileOpts...)
	if err != nil {
		return nil, err
	}
	c.reconciler = rec

	if c.resultSource == nil || c.registrySource == nil {
		transportOpts := []transport.Option{}
		if cfg.httpClient != nil {
			transportOpts = append(transportOpts, transport.WithHTTPClient(cfg.httpClient))
		}
		if cfg.timeout > 0 {
			transportOpts = append(transportOpts, transport.WithTimeout(cfg.timeout))
		}
		if cfg.cachePath != "" {
			pc, err := cache.Open(cfg.cachePath)
			if err != nil {
				return nil, err
			}
			c.cache = pc
			transportOpts = append(transportOpts, transport.WithCache(pc))
		}
		tc := transport.New(transportOpts...)

		if c.resultSource == nil {
			ectOpts := []ectreport.Option{}
			if cfg.ectStaticBase != "" {
				ectOpts = append(ectOpts, ectreport.WithStaticBase(cfg.ectStaticBase))
			}
			if cfg.ectStatsBase != "" {
				ectOpts = append(ectOpts, ectreport.WithStatsBase(cfg.ectStatsBase))
			}
			c.resultSource = ectreport.New(tc, ectOpts...)
		}
		if c.registrySource == nil {
			v62Opts := []vote62.Option{}
			if cfg.vote62URL != "" {
				v62Opts = append(v62Opts, vote62.WithURL(cfg.vote62URL))
			}
			c.registrySource = vote62.New(tc, v62Opts...)
		}
	}

	return c, nil
}

// Fetch retrieves both sources concurrently.
func (c *Client) Fetch(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.resultSource.Fetch(logging.WithSource(ctx, c.resultSource.ID().String()))
	})
	g.Go(func() error {
		return c.registrySource.Fetch(logging.WithSource(ctx, c.registrySource.ID().String()))
	})
	return g.Wait()
}

// FetchResults retrieves only the official results source.
func (c *Client) FetchResults(ctx context.Context) error {
	return c.resultSource.Fetch(logging.WithSource(ctx, c.resultSource.ID().String()))
}

// FetchRegistry retrieves only the registrations source.
func (c *Client) FetchRegistry(ctx context.Context) error {
	return c.registrySource.Fetch(logging.WithSource(ctx, c.registrySource.ID().String()))
}

// Merge reconciles the fetched data. Call Fetch first, or use Run.
func (c *Client) Merge() (*reconcile.Result, error) {
	return c.reconciler.Reconcile(c.resultSource.Results(), c.registrySource.Registry())
}

// Write persists the augmented dataset and diagnostics under the output
// directory and returns the augmented file path.
func (c *Client) Write(result *reconcile.Result) (string, error) {
	augPath := filepath.Join(c.outputDir, c.augmentedFile)
	if err := tabular.WriteAugmentedCSV(augPath, result.Augmented); err != nil {
		return "", err
	}
	diagPath := filepath.Join(c.outputDir, c.diagnosticsFile)
	if err := tabular.WriteDiagnostics(diagPath, result); err != nil {
		return "", err
	}
	return augPath, nil
}

// Run executes the full pipeline: fetch, merge, write.
func (c *Client) Run(ctx context.Context) (*reconcile.Result, error) {
	if err := c.Fetch(ctx); err != nil {
		return nil, err
	}
	result, err := c.Merge()
	if err != nil {
		return nil, err
	}
	if _, err := c.Write(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Results returns the normalized official results from the last Fetch.
func (c *Client) Results() []election.ResultRecord {
	return c.resultSource.Results()
}

// Registry returns the normalized registrations from the last Fetch.
func (c *Client) Registry() []election.RegistryRecord {
	return c.registrySource.Registry()
}

// Close releases source and cache resources.
func (c *Client) Close() error {
	if err := c.resultSource.Cleanup(); err != nil {
		return err
	}
	if err := c.registrySource.Cleanup(); err != nil {
		return err
	}
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}
