package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athul8raj/cargo-planning/internal/config"
)

func newConfigCmd() *cobra.Command {
	var path string
	var write bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the cargoplan configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if write {
				if err := config.Save(path, cfg); err != nil {
					return err
				}
				loggerFromContext(cmd.Context()).Info("config written", "path", path)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config file: %s\n", path)
			fmt.Fprintf(out, "load_pattern = %q\n", cfg.LoadPattern)
			fmt.Fprintf(out, "base_area_threshold = %v\n", cfg.BaseAreaThreshold)
			fmt.Fprintf(out, "output_dir = %q\n", cfg.OutputDir)
			fmt.Fprintf(out, "plan_pdf = %q\n", cfg.PlanPDF)
			fmt.Fprintf(out, "labels_pdf = %q\n", cfg.LabelsPDF)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "config file path (default: per-user config dir)")
	cmd.Flags().BoolVar(&write, "init", false, "write the current configuration to disk")
	return cmd
}
