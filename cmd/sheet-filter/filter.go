package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"sheet-filter/internal/codec"
	"sheet-filter/internal/config"
	"sheet-filter/internal/exporter"
	"sheet-filter/internal/filter"
	"sheet-filter/internal/logger"
	"sheet-filter/internal/model"
	"sheet-filter/internal/render"
	"sheet-filter/internal/source"
	"sheet-filter/internal/store"
	"sheet-filter/internal/ui"

	"github.com/spf13/cobra"
)

type filterFlags struct {
	source   string
	input    filter.Input
	formats  string
	filename string
	output   string
	preview  bool
	quiet    bool
}

func newFilterCmd() *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Load a sheet, filter its rows and export the result",
		Example: `  sheet-filter filter --source data.xlsx --primary A --row-from 0 --row-to 10 --mode null
  sheet-filter filter --source https://example.com/data.xlsx --primary B --mode not-null --format xlsx,csv --filename out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFilterFlags(cmd, &f, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runFilter(cmd.Context(), cfg, f)
		},
	}

	cmd.Flags().StringVar(&f.source, "source", "", "Spreadsheet path or URL (overrides source.location)")
	cmd.Flags().StringVar(&f.input.Primary, "primary", "", "Primary column key to null-test")
	cmd.Flags().StringVar(&f.input.RowFrom, "row-from", "", "First row position (0-based)")
	cmd.Flags().StringVar(&f.input.RowTo, "row-to", "", "Last row position (defaults to --row-from)")
	cmd.Flags().StringVar(&f.input.ColFrom, "col-from", "", "Column key that must be present")
	cmd.Flags().StringVar(&f.input.ColTo, "col-to", "", "Second column key that must be present")
	cmd.Flags().StringVar(&f.input.Mode, "mode", "", "Null test: null or not-null (defaults to filter.mode)")
	cmd.Flags().StringVar(&f.formats, "format", "", "Comma-separated export formats (xlsx,csv,json,html,docx)")
	cmd.Flags().StringVar(&f.filename, "filename", "", "Export file name without extension")
	cmd.Flags().StringVar(&f.output, "output", "", "Override output directory from config")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "Print the rendered HTML table to stdout")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "Hide progress bars")
	cmd.MarkFlagRequired("primary")

	return cmd
}

// applyFilterFlags lets explicit flags win over the config file
func applyFilterFlags(cmd *cobra.Command, f *filterFlags, c *config.Config) {
	if f.source != "" {
		c.Source.Location = f.source
	}
	if f.output != "" {
		c.Output.Dir = f.output
	}
	if f.filename != "" {
		c.Output.FileName = f.filename
	}
	if f.formats != "" {
		c.Output.Formats = strings.Split(f.formats, ",")
	}
	if !cmd.Flags().Changed("mode") {
		f.input.Mode = c.Filter.Mode
	}
}

func runFilter(ctx context.Context, c *config.Config, f filterFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	params, err := filter.ParseParams(f.input)
	if err != nil {
		return err
	}

	opts, err := c.CodecOptions()
	if err != nil {
		return err
	}

	logger.Debug("Header mode %s: %s", opts.HeaderMode, headerModeNote(opts.HeaderMode))
	exporters := exporter.GetExporters(c.Output.Formats)
	if len(exporters) == 0 {
		return fmt.Errorf("%w: %s", exporter.ErrUnknownFormat, strings.Join(c.Output.Formats, ","))
	}

	pipeline := ui.NewPipeline([]ui.Phase{
		ui.PhaseLoading,
		ui.PhaseFiltering,
		ui.PhaseExporting,
	})
	if f.quiet || f.preview {
		pipeline.Disable()
	}

	// --- Phase 1: Loading ---
	logger.Info("Loading %s...", c.Source.Location)
	loadBar := pipeline.NextPhase(1)

	st := store.New(opts)
	ds, err := st.LoadFrom(ctx, source.Open(c.Source.Location))
	if err != nil {
		logger.LogLoadError(c.Source.Location, err)
		return err
	}
	loadBar.Increment()
	logger.Info("Loaded %d rows", len(ds))

	// --- Phase 2: Filtering ---
	filterBar := pipeline.NextPhase(1)
	view := filter.Apply(ds, params)
	st.SetView(view)
	filterBar.Increment()
	logger.Info("Filter matched %d of %d rows", len(view), len(ds))

	if f.preview {
		if err := render.NewHTMLRenderer().Render(os.Stdout, view, filter.Highlight(params)); err != nil {
			return err
		}
	}

	// --- Phase 3: Exporting ---
	if err := c.EnsureOutputDir(); err != nil {
		return err
	}
	genBar := pipeline.NextPhase(len(exporters))

	var exportErrors []error
	for _, exp := range exporters {
		if err := exportOne(exp, st.View(), c); err != nil {
			logger.Error("Export failed: %v", err)
			exportErrors = append(exportErrors, err)
		}
		genBar.Increment()
	}
	pipeline.Finish()

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %d errors", len(exportErrors))
	}
	logger.Info("✅ Export complete. Check [%s] directory.", c.Output.Dir)
	return nil
}

func exportOne(exp exporter.Exporter, view model.View, c *config.Config) error {
	blob, err := exporter.ExportWith(exp, view, c.Output.FileName)
	if err != nil {
		return err
	}
	path, err := exporter.Save(c.Output.Dir, blob)
	if err != nil {
		return err
	}
	logger.Info("Wrote %s", path)
	return nil
}

// headerModeNote explains how column keys are named for the given mode
func headerModeNote(m codec.HeaderMode) string {
	if m == codec.HeaderLetters {
		return "column keys are letters (A, B, ...)"
	}
	return "column keys come from the first row"
}
