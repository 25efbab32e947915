package cmd

import (
	"github.com/siamvotes/votemerge"
	"github.com/siamvotes/votemerge/internal/config"
	"github.com/siamvotes/votemerge/pkg/reconcile"
)

// newClient builds a pipeline client from the resolved configuration.
func newClient(cfg *config.Config) (*votemerge.Client, error) {
	recOpts := []reconcile.Option{}
	if cfg.DuplicatePolicy != "" {
		recOpts = append(recOpts, reconcile.WithDuplicatePolicy(reconcile.DuplicatePolicy(cfg.DuplicatePolicy)))
	}
	if cfg.NameFallback {
		recOpts = append(recOpts, reconcile.WithNameFallback(true))
	}
	if cfg.SampleLimit > 0 {
		recOpts = append(recOpts, reconcile.WithSampleLimit(cfg.SampleLimit))
	}

	opts := []votemerge.Option{
		votemerge.WithOutputDir(cfg.OutputDir),
		votemerge.WithOutputFiles(cfg.AugmentedFile, cfg.DiagnosticsFile),
		votemerge.WithECTBases(cfg.ECTStaticBase, cfg.ECTStatsBase),
		votemerge.WithReconcileOptions(recOpts...),
	}
	if cfg.Vote62URL != "" {
		opts = append(opts, votemerge.WithVote62URL(cfg.Vote62URL))
	}
	if cfg.CachePath != "" {
		opts = append(opts, votemerge.WithCachePath(cfg.CachePath))
	}

	return votemerge.New(opts...)
}
