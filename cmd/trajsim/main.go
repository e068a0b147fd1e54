package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trajsim/internal/config"
	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/export"
	"github.com/san-kum/trajsim/internal/logging"
	"github.com/san-kum/trajsim/internal/metrics"
	"github.com/san-kum/trajsim/internal/physics"
	"github.com/san-kum/trajsim/internal/sim"
	"github.com/san-kum/trajsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	drag    float64
	thrust  float64
	gravity float64
	preset  string
	fps     int
	svgW    int
	svgH    int
	asYAML  bool
)

// main registers the commands and flags, starts the live view when no
// subcommand is given, and exits with status 1 if the command fails.
func main() {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "trajsim",
		Short:        "2D missile trajectory simulator with live tuning",
		SilenceUsage: true,
		RunE:         runLive,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	addParamFlags(rootCmd)
	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "ticks per second in the live view")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation with live visualization and tuning",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "ticks per second")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless until the missile lands or time runs out",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "run headless and plot height and speed",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	addParamFlags(plotCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "run headless and write the trajectory as CSV to stdout",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}
	addParamFlags(exportCSVCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "run headless and write the trajectory as JSON to stdout",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}
	addParamFlags(exportJSONCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run headless and write the flight path as SVG to stdout",
		Args:  cobra.NoArgs,
		RunE:  exportSVG,
	}
	addParamFlags(exportSVGCmd)
	exportSVGCmd.Flags().IntVar(&svgW, "width", 800, "image width in pixels")
	exportSVGCmd.Flags().IntVar(&svgH, "height", 400, "image height in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	presetsCmd.Flags().BoolVar(&asYAML, "yaml", false, "print each preset as yaml")

	rootCmd.AddCommand(liveCmd, runCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)
	return rootCmd
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&drag, "drag", dynamo.DefaultDrag, "drag coefficient [0, 0.1]")
	cmd.Flags().Float64Var(&thrust, "thrust", dynamo.DefaultThrust, "thrust in newtons [0, 200]")
	cmd.Flags().Float64Var(&gravity, "gravity", dynamo.DefaultGravity, "gravity in m/s^2 [0.1, 20]")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
}

// resolveConfig starts from the preset (or defaults) and applies only the
// flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.Lookup(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("drag") {
		cfg.Params.Drag = drag
	}
	if flags.Changed("thrust") {
		cfg.Params.Thrust = thrust
	}
	if flags.Changed("gravity") {
		cfg.Params.Gravity = gravity
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid configuration")
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr())
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	title := "missile trajectory"
	if cfg.Preset != "" {
		title = fmt.Sprintf("missile trajectory (%s)", cfg.Preset)
	}
	params := cfg.Params
	return viz.Run(&params, cfg.FPS, title, logging.Discard())
}

// headlessRun runs a full trajectory with the standard flight metrics attached.
func headlessRun(cmd *cobra.Command) (*config.Config, *dynamo.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(cmd)
	params := cfg.Params
	missile := physics.NewMissile(&params)

	ctrl := sim.New(&params, sim.WithLogger(logger))
	for _, m := range metrics.Flight(&params, missile, ctrl.State()) {
		ctrl.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Debug("starting run", "preset", cfg.Preset, "drag", params.Drag, "thrust", params.Thrust, "gravity", params.Gravity)
	start := time.Now()
	result, err := ctrl.Run(ctx)
	if err != nil {
		return nil, nil, logging.WrapError(err, "run interrupted after %d steps", ctrl.Steps())
	}
	logger.Debug("run finished", "wall", time.Since(start), "steps", result.Steps)

	return cfg, result, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, result, err := headlessRun(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "drag=%.4f thrust=%.1fN gravity=%.2fm/s^2\n", cfg.Params.Drag, cfg.Params.Thrust, cfg.Params.Gravity)
	fmt.Fprintf(out, "stopped: %s after %d steps\n\n", result.StopReason, result.Steps)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", name, result.Metrics[name])
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, result, err := headlessRun(cmd)
	if err != nil {
		return err
	}

	if len(result.States) < 2 {
		return fmt.Errorf("no data to plot")
	}

	heights := make([]float64, len(result.States))
	speeds := make([]float64, len(result.States))
	for i, s := range result.States {
		heights[i] = s.Position.Y
		speeds[i] = s.Speed()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "stopped: %s at t=%.2fs\n\n", result.StopReason, result.States[len(result.States)-1].Elapsed)
	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{heights, "height (m) per step"},
		{speeds, "speed (m/s) per step"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := headlessRun(cmd)
	if err != nil {
		return err
	}
	return export.WriteCSV(cmd.OutOrStdout(), result.States)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, result, err := headlessRun(cmd)
	if err != nil {
		return err
	}
	return export.WriteJSON(cmd.OutOrStdout(), export.NewData(cfg.Preset, cfg.Params, result))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := headlessRun(cmd)
	if err != nil {
		return err
	}
	return export.WriteSVG(cmd.OutOrStdout(), result.States, svgW, svgH, "#00ff00")
}

func listPresets(cmd *cobra.Command, args []string) error {
	if asYAML {
		out := cmd.OutOrStdout()
		for _, name := range config.ListPresets() {
			data, err := config.GetPreset(name).Marshal()
			if err != nil {
				return logging.WrapError(err, "marshal preset %s", name)
			}
			fmt.Fprintf(out, "---\n%s", data)
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDRAG\tTHRUST\tGRAVITY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name).Params
		fmt.Fprintf(w, "%s\t%.4f\t%.1f\t%.2f\n", name, p.Drag, p.Thrust, p.Gravity)
	}
	return w.Flush()
}
