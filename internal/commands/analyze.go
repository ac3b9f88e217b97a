package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/costlens-dev/costlens/internal/auditlog"
	"github.com/costlens-dev/costlens/internal/config"
	"github.com/costlens-dev/costlens/internal/ledger"
	"github.com/costlens-dev/costlens/internal/model"
	"github.com/costlens-dev/costlens/internal/oracle"
	"github.com/costlens-dev/costlens/internal/parse"
	"github.com/costlens-dev/costlens/internal/reconcile"
	"github.com/costlens-dev/costlens/internal/report"
	"github.com/costlens-dev/costlens/internal/source"
)

func newAnalyzeCommand() *cobra.Command {
	var mode string
	var configPath string
	var outDir string
	var noReconcile bool
	var totalOverride string

	cmd := &cobra.Command{
		Use:   "analyze <invoice-file>",
		Short: "Extract, classify and reconcile one invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], mode, configPath, outDir, noReconcile, totalOverride)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "extraction mode: classified or forensic (default from config)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to costlens.yaml (default ./costlens.yaml if present)")
	cmd.Flags().StringVar(&outDir, "out", "", "report output directory (default from config)")
	cmd.Flags().BoolVar(&noReconcile, "no-reconcile", false, "skip the reconciliation pass")
	cmd.Flags().StringVar(&totalOverride, "total", "", "invoice total override, e.g. 152.40")

	return cmd
}

func runAnalyze(cmd *cobra.Command, path, modeFlag, configPath, outDir string, noReconcile bool, totalOverride string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	analysisMode, err := resolveMode(modeFlag, cfg)
	if err != nil {
		return err
	}

	text, err := extractText(path)
	if err != nil {
		return err
	}

	builder := ledger.NewBuilder()
	if cfg.Extraction.MinLineLength > 0 {
		builder.MinLineLength = cfg.Extraction.MinLineLength
	}
	if cfg.Extraction.ConfidenceFloor > 0 {
		builder.ConfidenceFloor = cfg.Extraction.ConfidenceFloor
	}

	analysis := model.InvoiceAnalysis{
		Source: filepath.Base(path),
		Mode:   analysisMode,
		Ledger: builder.Build(text, analysisMode),
	}

	invoiceTotal, hasTotal, err := resolveInvoiceTotal(text, totalOverride, cfg)
	if err != nil {
		return err
	}

	tolerance := toleranceFor(analysisMode, cfg)
	analysis.Validation = model.Validate(analysis.Ledger.Total, invoiceTotal, hasTotal, tolerance)

	entries := []auditlog.Entry{{
		Timestamp: time.Now(),
		Source:    analysis.Source,
		Action:    "analyze",
		Details:   fmt.Sprintf("mode=%s items=%d total=%s", analysisMode, analysis.Ledger.Len(), analysis.Ledger.Total.StringFixed(2)),
	}}

	if !noReconcile && cfg.Reconciliation.Enabled {
		entries = append(entries, reconcileAnalysis(cmd, &analysis, text, tolerance, cfg)...)
	} else {
		analysis.Reconciled = true
	}

	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if err := writeReports(outDir, analysis); err != nil {
		return err
	}

	if err := auditlog.Append(".", entries); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: writing audit log: %v\n", err)
	}

	return report.WriteSummary(cmd.OutOrStdout(), analysis)
}

// loadConfig loads an explicit config path, falls back to ./costlens.yaml,
// and finally to defaults when no file exists.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.FileName); err == nil {
		return config.Load(config.FileName)
	}
	return config.Default(), nil
}

func resolveMode(flag string, cfg *config.Config) (model.Mode, error) {
	name := flag
	if name == "" {
		name = cfg.Extraction.Mode
	}
	switch model.Mode(name) {
	case model.ModeClassified, model.ModeForensic:
		return model.Mode(name), nil
	case "":
		return model.ModeClassified, nil
	}
	return "", fmt.Errorf("unknown mode %q (want classified or forensic)", name)
}

func extractText(path string) (string, error) {
	extractor, err := source.DefaultRegistry().ForFile(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening invoice: %w", err)
	}
	defer f.Close()

	text, err := extractor.Extract(f)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", filepath.Base(path), err)
	}
	return text, nil
}

// resolveInvoiceTotal prefers an explicit override, then the document's own
// stated total, then the configured fallback.
func resolveInvoiceTotal(text, override string, cfg *config.Config) (decimal.Decimal, bool, error) {
	if override != "" {
		total, err := decimal.NewFromString(strings.TrimSpace(override))
		if err != nil {
			return decimal.Zero, false, fmt.Errorf("parsing --total %q: %w", override, err)
		}
		return total, true, nil
	}

	if total, ok := parse.InvoiceTotal(text); ok {
		return total, true, nil
	}

	if cfg.Extraction.FallbackInvoiceTotal != "" {
		total, err := decimal.NewFromString(cfg.Extraction.FallbackInvoiceTotal)
		if err != nil {
			return decimal.Zero, false, fmt.Errorf("parsing fallback_invoice_total %q: %w", cfg.Extraction.FallbackInvoiceTotal, err)
		}
		return total, true, nil
	}

	return decimal.Zero, false, nil
}

func toleranceFor(mode model.Mode, cfg *config.Config) decimal.Decimal {
	value := cfg.Reconciliation.Tolerance
	if mode == model.ModeForensic {
		value = cfg.Reconciliation.ForensicTolerance
	}
	if value <= 0 {
		return reconcile.FirstPassTolerance
	}
	return decimal.NewFromFloat(value)
}

func reconcileAnalysis(cmd *cobra.Command, analysis *model.InvoiceAnalysis, text string, tolerance decimal.Decimal, cfg *config.Config) []auditlog.Entry {
	apiKey := os.Getenv(cfg.Oracle.APIKeyEnv)
	if apiKey == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s not set, skipping reconciliation\n", cfg.Oracle.APIKeyEnv)
		analysis.Reconciled = true
		return nil
	}

	client := oracle.New(apiKey, cfg.Oracle.Model, cfg.Oracle.MaxTokens)
	controller := reconcile.NewController(client).
		WithTolerance(tolerance).
		WithWarnings(cmd.ErrOrStderr())
	controller.Reconcile(cmd.Context(), analysis, text)

	var entries []auditlog.Entry
	if analysis.OracleInvoked {
		entries = append(entries, auditlog.Entry{
			Timestamp: time.Now(),
			Source:    analysis.Source,
			Action:    "oracle-invoked",
			Details:   fmt.Sprintf("model=%s items_added=%d", cfg.Oracle.Model, analysis.ItemsAdded),
		})
	}
	if analysis.OracleErr != "" {
		entries = append(entries, auditlog.Entry{
			Timestamp: time.Now(),
			Source:    analysis.Source,
			Action:    "oracle-failed",
			Details:   analysis.OracleErr,
		})
	}
	return entries
}

func writeReports(dir string, analysis model.InvoiceAnalysis) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	stem := strings.TrimSuffix(analysis.Source, filepath.Ext(analysis.Source))
	write := func(name string, fn func(f *os.File) error) error {
		path := filepath.Join(dir, stem+"-"+name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		if err := fn(f); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	if err := write("ledger.csv", func(f *os.File) error { return report.WriteLedger(f, analysis.Ledger) }); err != nil {
		return err
	}
	if err := write("by-category.csv", func(f *os.File) error { return report.WriteCategoryRollup(f, analysis.Ledger) }); err != nil {
		return err
	}
	if err := write("by-region.csv", func(f *os.File) error { return report.WriteRegionRollup(f, analysis.Ledger) }); err != nil {
		return err
	}
	return write("gcp-ledger.csv", func(f *os.File) error { return report.WriteGCPLedger(f, analysis.Ledger) })
}
