// Package importer converts the card spreadsheet export into the catalog
// exchange document the server loads.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"cosanostra/internal/catalog"
)

// Config holds importer settings.
type Config struct {
	CSVPath string
	OutPath string
	DryRun  bool
	Strict  bool
}

// ParseConfig parses CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.CSVPath, "csv", "", "spreadsheet export to import")
	fs.StringVar(&cfg.OutPath, "out", "", "catalog JSON output path (default stdout)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing the catalog")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail when any card needed coercion")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.CSVPath) == "" {
		return Config{}, errors.New("csv is required")
	}
	return cfg, nil
}

// Run imports cfg.CSVPath and writes the catalog to cfg.OutPath, or to out
// when no path is set.
func Run(ctx context.Context, cfg Config, out io.Writer, logger *zap.Logger) error {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(cfg.CSVPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	entries, err := catalog.ImportCSV(f)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(entries)
	if err != nil {
		return err
	}

	issues := cat.Issues()
	for _, issue := range issues {
		logger.Warn("card coerced",
			zap.String("card", issue.CardID),
			zap.String("field", issue.Field),
			zap.String("detail", issue.Message),
		)
	}
	logger.Info("catalog imported",
		zap.String("csv", cfg.CSVPath),
		zap.Int("cards", cat.Len()),
		zap.Int("issues", len(issues)),
	)
	if cfg.Strict && len(issues) > 0 {
		return fmt.Errorf("%d cards needed coercion", len(issues))
	}
	if cfg.DryRun {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cat.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	data = append(data, '\n')

	if cfg.OutPath == "" {
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(cfg.OutPath, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	logger.Info("catalog written", zap.String("path", cfg.OutPath))
	return nil
}
