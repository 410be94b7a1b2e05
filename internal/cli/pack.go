package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/athul8raj/cargo-planning/internal/config"
	"github.com/athul8raj/cargo-planning/internal/engine"
	"github.com/athul8raj/cargo-planning/internal/export"
	"github.com/athul8raj/cargo-planning/internal/importer"
	"github.com/athul8raj/cargo-planning/internal/model"
	"github.com/athul8raj/cargo-planning/internal/normalize"
)

// packOptions holds the pack command flags.
type packOptions struct {
	input      string
	trucks     []string
	dests      []string
	pattern    string
	threshold  float64
	outDir     string
	planPDF    string
	labelsPDF  string
	configPath string
}

func newPackCmd() *cobra.Command {
	opts := packOptions{}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack a box table into trucks and write the results",
		Long: `Pack reads a box table (CSV or Excel), normalizes it, packs the boxes
into the given trucks and writes the renderer hand-off files. Trucks are
given as LxWxH in centimeters and filled in flag order; when no --truck
flag is set, the truck_size sheet of the input workbook is used.
Destination unloading order is given as --dest NAME=CODE (lower code =
unloaded earlier) or inferred from first appearance in the input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "box table file (.csv or .xlsx)")
	cmd.Flags().StringArrayVar(&opts.trucks, "truck", nil, "truck dimensions LxWxH in cm (repeatable, order = fill order)")
	cmd.Flags().StringArrayVar(&opts.dests, "dest", nil, "destination order NAME=CODE (repeatable)")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "load pattern: Side, Default, Back, Rear Loading, Uniform Dist.")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", -1, "base support threshold percentage [0,100]")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory for the renderer files")
	cmd.Flags().StringVar(&opts.planPDF, "pdf", "", "write the load-plan PDF report to this path")
	cmd.Flags().StringVar(&opts.labelsPDF, "labels", "", "write QR cargo labels PDF to this path")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: per-user config dir)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runPack(cmd *cobra.Command, opts packOptions) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyConfigDefaults(&opts, cfg)

	pattern, ok := model.ParseLoadPattern(opts.pattern)
	if !ok {
		return fmt.Errorf("unknown load pattern %q", opts.pattern)
	}
	if opts.threshold < 0 || opts.threshold > 100 {
		return fmt.Errorf("threshold must be in [0,100], got %v", opts.threshold)
	}
	settings := model.PackSettings{Pattern: pattern, BaseAreaThreshold: opts.threshold}

	// Ingest the box table.
	var imported importer.ImportResult
	isExcel := strings.EqualFold(filepath.Ext(opts.input), ".xlsx")
	if isExcel {
		imported = importer.ImportExcel(opts.input)
	} else {
		imported = importer.ImportCSV(opts.input)
	}
	for _, w := range imported.Warnings {
		logger.Warn(w)
	}
	if len(imported.Errors) > 0 {
		for _, e := range imported.Errors {
			logger.Error(e)
		}
		return fmt.Errorf("%w: box table has %d invalid rows", engine.ErrInvalidInput, len(imported.Errors))
	}
	logger.Info("box table loaded", "rows", len(imported.Rows))

	trucks, err := resolveTrucks(opts, isExcel)
	if err != nil {
		return err
	}

	destCodes, err := resolveDestinations(opts.dests, imported.Rows)
	if err != nil {
		return err
	}

	norm, err := normalize.Normalize(imported.Rows, destCodes, pattern, logger)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrInvalidInput, err)
	}
	logger.Info("normalized", "groups", len(norm.Specs), "boxes", norm.TotalBoxes())

	plan, err := engine.NewPlanner(settings, logger).Plan(trucks, norm.Boxes, norm.Specs)
	if err != nil {
		return err
	}

	if err := export.WriteUIFiles(opts.outDir, plan, norm); err != nil {
		return err
	}
	logger.Info("renderer files written", "dir", opts.outDir)

	if opts.planPDF != "" {
		if err := export.ExportPDF(opts.planPDF, plan, norm); err != nil {
			return err
		}
		logger.Info("load-plan report written", "path", opts.planPDF)
	}
	if opts.labelsPDF != "" {
		if err := export.ExportLabels(opts.labelsPDF, plan, norm); err != nil {
			return err
		}
		logger.Info("cargo labels written", "path", opts.labelsPDF)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(plan))
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// applyConfigDefaults fills unset flags from the config.
func applyConfigDefaults(opts *packOptions, cfg config.Config) {
	if opts.pattern == "" {
		opts.pattern = cfg.LoadPattern
	}
	if opts.threshold < 0 {
		opts.threshold = cfg.BaseAreaThreshold
	}
	if opts.outDir == "" {
		opts.outDir = cfg.OutputDir
	}
	if opts.planPDF == "" {
		opts.planPDF = cfg.PlanPDF
	}
	if opts.labelsPDF == "" {
		opts.labelsPDF = cfg.LabelsPDF
	}
}

// resolveTrucks builds the ordered truck list from --truck flags, or
// from the input workbook's truck_size sheet when no flags are given.
func resolveTrucks(opts packOptions, isExcel bool) ([]model.Truck, error) {
	if len(opts.trucks) == 0 {
		if isExcel {
			return importer.ImportTrucksExcel(opts.input)
		}
		return nil, fmt.Errorf("%w: no trucks given (use --truck LxWxH)", engine.ErrInvalidInput)
	}
	trucks := make([]model.Truck, 0, len(opts.trucks))
	for i, spec := range opts.trucks {
		parts := strings.Split(spec, "x")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: truck %q is not LxWxH", engine.ErrInvalidInput, spec)
		}
		dims := make([]int, 3)
		for j, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("%w: truck %q has invalid dimension %q", engine.ErrInvalidInput, spec, p)
			}
			dims[j] = v
		}
		trucks = append(trucks, model.Truck{
			Name:   fmt.Sprintf("TRUCK-%d", i+1),
			Length: dims[0],
			Width:  dims[1],
			Height: dims[2],
		})
	}
	return trucks, nil
}

// resolveDestinations parses --dest NAME=CODE flags. With no flags the
// order is inferred from first appearance in the input: the first
// destination seen gets code 1 (unloaded first).
func resolveDestinations(flags []string, rows []model.BoxRow) (map[string]int, error) {
	codes := make(map[string]int)
	if len(flags) > 0 {
		seen := make(map[int]string)
		for _, f := range flags {
			name, codeStr, found := strings.Cut(f, "=")
			if !found {
				return nil, fmt.Errorf("%w: destination %q is not NAME=CODE", engine.ErrInvalidInput, f)
			}
			name = strings.TrimSpace(name)
			code, err := strconv.Atoi(strings.TrimSpace(codeStr))
			if err != nil || code < 1 {
				return nil, fmt.Errorf("%w: destination %q needs an integer code >= 1", engine.ErrInvalidInput, f)
			}
			if prev, dup := seen[code]; dup {
				return nil, fmt.Errorf("%w: destinations %q and %q share code %d", engine.ErrInvalidInput, prev, name, code)
			}
			seen[code] = name
			codes[name] = code
		}
		return codes, nil
	}

	next := 1
	for _, row := range rows {
		name := strings.TrimSpace(row.Destination)
		if _, ok := codes[name]; !ok {
			codes[name] = next
			next++
		}
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no destinations in input", engine.ErrInvalidInput)
	}
	return codes, nil
}
