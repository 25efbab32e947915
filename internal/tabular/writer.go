// Package tabular writes the merge outputs: the augmented dataset as CSV in
// the fixed column order downstream consumers index by, and the diagnostics
// list as JSON or YAML for operator review.
package tabular

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/siamvotes/votemerge/pkg/election"
	"github.com/siamvotes/votemerge/pkg/errors"
	"github.com/siamvotes/votemerge/pkg/logging"
	"github.com/siamvotes/votemerge/pkg/reconcile"
)

// WriteAugmentedCSV writes the augmented dataset to path, creating parent
// directories as needed. The header row is election.Columns() in order.
func WriteAugmentedCSV(path string, records []election.AugmentedRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(election.Columns()); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.Info().Str("path", path).Int("rows", len(records)).Msg("Wrote augmented dataset")
	return nil
}

// diagnosticsExport is the on-disk shape of the diagnostics file.
type diagnosticsExport struct {
	Metadata    reconcile.Metadata     `json:"metadata" yaml:"metadata"`
	Counts      map[reconcile.Kind]int `json:"counts" yaml:"counts"`
	Diagnostics []reconcile.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// WriteDiagnostics writes the diagnostics list to path. The format follows
// the file extension: .yaml/.yml produce YAML, anything else JSON.
func WriteDiagnostics(path string, result *reconcile.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}

	export := diagnosticsExport{
		Metadata:    result.Metadata,
		Counts:      result.Counts(),
		Diagnostics: result.Diagnostics,
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.MarshalWithOptions(export, yaml.Indent(2))
		if err != nil {
			return errors.WrapParse("yaml", path, err)
		}
	default:
		data, err = json.MarshalIndent(export, "", "  ")
		if err != nil {
			return errors.WrapParse("json", path, err)
		}
		data = append(data, '\n')
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.Info().Str("path", path).Int("diagnostics", len(result.Diagnostics)).Msg("Wrote diagnostics")
	return nil
}
