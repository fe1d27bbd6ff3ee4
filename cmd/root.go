package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/goprofile/internal/config"
	"github.com/alexiusacademia/goprofile/internal/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	// Loaded before every command runs
	cfg    = config.DefaultConfig()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "goprofile",
	Short: "Cross-section properties from a profile image",
	Long: `goprofile - Go Profile Section Calculator

A CLI tool that measures the geometric cross-sectional properties
of a 2D profile drawn black on a white background.

From a single image and the actual width of the profile it computes:
  - Cross-sectional area
  - Centre of gravity (pixels and physical units)
  - Second moment of area about the centroidal axes
  - Bending section modulus and polar moment of area

A cropped copy of the image and a copy marked with a crosshair
at the centre of gravity are written for visual verification.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultConfigFile
		}
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("verbose") {
			cfg.Logging.Verbose = verbose
		}

		level := slog.LevelInfo
		if cfg.Logging.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   goprofile v%-45s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Profile Section Calculator                           ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Computes section properties of a profile from its image.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Automatic cropping of the white border")
		fmt.Fprintln(out, "    • Area, centre of gravity and second moment of area")
		fmt.Fprintln(out, "    • Bending section modulus and polar moment")
		fmt.Fprintln(out, "    • Crosshair image, ASCII preview and plotted diagram")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'goprofile --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file (default ./"+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log crop progress and other debug output")
}
