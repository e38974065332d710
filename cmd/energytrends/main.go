// Command energytrends runs the energy indicator pipeline: fetch four World
// Bank series, build the processed dataset, and render figures and reports
// from it. With no arguments it runs every stage in order.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energytrends/internal/config"
	"energytrends/internal/dataset"
	"energytrends/internal/figures"
	"energytrends/internal/logging"
	"energytrends/internal/report"
	"energytrends/internal/worldbank"
)

func main() {
	logger, err := logging.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "energytrends",
		Short:         "Fetch World Bank energy indicators and render charts from them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runPrepare(cmd, cfg, logger); err != nil {
				return err
			}
			if err := runFigures(cfg, logger); err != nil {
				return err
			}
			return runReport(cfg, logger)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "prepare",
			Short: "Fetch indicators and persist the processed dataset",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPrepare(cmd, cfg, logger)
			},
		},
		&cobra.Command{
			Use:   "figures",
			Short: "Render all figures from the persisted dataset",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFigures(cfg, logger)
			},
		},
		&cobra.Command{
			Use:   "report",
			Short: "Write the Excel workbook and markdown summary",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runReport(cfg, logger)
			},
		},
	)
	return root
}

func runPrepare(cmd *cobra.Command, cfg config.Config, logger *zap.Logger) error {
	logger.Info("preparing dataset",
		zap.Int("indicators", len(cfg.Indicators)),
		zap.Int("countries", len(cfg.Countries)))

	client := worldbank.NewClient(cfg.APIBaseURL, logger,
		worldbank.WithPerPage(cfg.PerPage),
		worldbank.WithMaxRetries(cfg.MaxRetries))

	recs, err := dataset.Build(cmd.Context(), client, dataset.Spec{
		Indicators: cfg.Indicators,
		Countries:  cfg.Countries,
		MinYear:    cfg.MinYear,
	}, logger)
	if err != nil {
		return fmt.Errorf("prepare stage: %w", err)
	}

	if err := dataset.WriteCSV(recs, cfg.DatasetPath()); err != nil {
		return fmt.Errorf("prepare stage: %w", err)
	}
	logger.Info("dataset persisted",
		zap.String("path", cfg.DatasetPath()),
		zap.Int("records", len(recs)))
	return nil
}

func runFigures(cfg config.Config, logger *zap.Logger) error {
	recs, err := dataset.ReadCSV(cfg.DatasetPath())
	if err != nil {
		return fmt.Errorf("figures stage: %w", err)
	}

	err = figures.Render(recs, figures.Params{
		Dir:             cfg.FigureDir,
		Suffix:          cfg.FigureSuffix,
		ClusterK:        cfg.ClusterK,
		ClusterSeed:     cfg.ClusterSeed,
		ForecastCountry: cfg.ForecastCountry,
		ForecastHorizon: cfg.ForecastHorizon,
	}, logger)
	if err != nil {
		return fmt.Errorf("figures stage: %w", err)
	}
	return nil
}

func runReport(cfg config.Config, logger *zap.Logger) error {
	recs, err := dataset.ReadCSV(cfg.DatasetPath())
	if err != nil {
		return fmt.Errorf("report stage: %w", err)
	}

	workbook := filepath.Join(cfg.DataDir, "energy_summary.xlsx")
	if err := report.WriteWorkbook(recs, workbook); err != nil {
		return fmt.Errorf("report stage: %w", err)
	}
	summary := filepath.Join(cfg.DataDir, "energy_summary.md")
	if err := report.WriteMarkdown(recs, summary); err != nil {
		return fmt.Errorf("report stage: %w", err)
	}
	logger.Info("report written",
		zap.String("workbook", workbook),
		zap.String("summary", summary))
	return nil
}
