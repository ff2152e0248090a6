package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/optim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	input      string
	dimension  int
	integrator string
	collision  string
	dt         float64
	gravity    float64
	maxTicks   int

	// run / svg / plot output
	jsonFile string
	csvFile  string
	svgFile  string
	every    int
	svgW     int
	svgH     int
	plotRows int

	// live view
	frameRate int
	steps     int
	trailLen  int
	theme     string
	exitOnEnd bool

	// batch
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	trials       int
	perturbation float64
	seed         int64

	// lyapunov
	lyapTicks int
	lyapD0    float64

	// optimize
	gridSpecs []string
	metric    string

	// init
	bodiesFile string
)

// main registers the commands and runs the root command. With no
// subcommand it opens the preset picker.
func main() {
	rootCmd := &cobra.Command{
		Use:           "gravsim",
		Short:         "gravitational n-body simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunPicker(experiment.NewRegistry(), viz.Options{FPS: frameRate, Theme: theme})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a built-in preset")
	pf.StringVarP(&input, "input", "i", "", "initial-condition file")
	pf.IntVar(&dimension, "dim", 2, "dimension (2 or 3)")
	pf.StringVar(&integrator, "integrator", "rk4", "integrator")
	pf.StringVar(&collision, "collision", config.CollisionApproach, "collision rule")
	pf.Float64Var(&dt, "dt", 1, "timestep")
	pf.Float64Var(&gravity, "g", 1, "gravitational constant")
	pf.IntVar(&maxTicks, "max-ticks", 0, "stop after this many ticks (0 = until out of bounds)")
	pf.IntVar(&frameRate, "fps", 60, "frame rate")
	pf.StringVar(&theme, "theme", "nebula", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a session headless and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runSession,
	}
	runCmd.Flags().StringVarP(&jsonFile, "out", "o", "", "write recorded frames as JSON")
	runCmd.Flags().StringVar(&csvFile, "csv", "", "write recorded frames as CSV")
	runCmd.Flags().IntVar(&every, "every", 1, "record every n-th tick")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a session in the terminal viewer",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&steps, "steps", 1, "ticks per frame")
	liveCmd.Flags().IntVar(&trailLen, "trail", 200, "trail length in ticks (negative disables)")
	liveCmd.Flags().BoolVar(&exitOnEnd, "exit-on-end", false, "close the viewer when the session stops")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "run a session and chart energy and body count",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&plotRows, "height", 10, "chart height")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "run a session and draw the body trails as SVG",
		Args:  cobra.NoArgs,
		RunE:  runSVG,
	}
	svgCmd.Flags().StringVarP(&svgFile, "out", "o", "trails.svg", "output file")
	svgCmd.Flags().IntVar(&every, "every", 1, "record every n-th tick")
	svgCmd.Flags().IntVar(&svgW, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgH, "height", 800, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every step of a scenario file concurrently",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the configured session across a range of one setting",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "dt", "setting to vary (dt, g, margin)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.01, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	mcCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb initial positions and count bounded trials",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	mcCmd.Flags().Float64Var(&perturbation, "perturb", 0.1, "position perturbation per axis")
	mcCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest Lyapunov exponent of the configured bodies",
		Args:  cobra.NoArgs,
		RunE:  runLyapunov,
	}
	lyapunovCmd.Flags().IntVar(&lyapTicks, "ticks", 5000, "ticks to integrate")
	lyapunovCmd.Flags().Float64Var(&lyapD0, "d0", 1e-8, "initial separation")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid-search settings for the smallest value of a metric",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().StringArrayVar(&gridSpecs, "grid", []string{"dt=0.01,0.05,0.1"}, "name=v1,v2,... (repeatable)")
	optimizeCmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to minimise")

	initCmd := &cobra.Command{
		Use:   "init [config.yaml]",
		Short: "write a config file for the selected preset or flags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
	initCmd.Flags().StringVar(&bodiesFile, "bodies", "", "also write the bodies as an initial-condition file")

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, svgCmd, presetsCmd, batchCmd, sweepCmd, mcCmd, lyapunovCmd, optimizeCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig builds the session config: a preset or config file first,
// then any flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	if preset != "" && configFile != "" {
		return nil, errors.New("--preset and --config cannot be used together")
	}

	cfg := config.DefaultConfig()
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = input
		cfg.Bodies = nil
	}
	if flags.Changed("dim") {
		cfg.Dimension = dimension
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("collision") {
		cfg.Collision = collision
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("g") {
		cfg.G = gravity
	}
	if flags.Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if cfg.Input == "" && len(cfg.Bodies) == 0 {
		return nil, errors.New("no bodies: pass --input, --preset or a config file with bodies")
	}
	return cfg, nil
}

func newExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return nil, err
	}
	if lerr := exp.LoadErr(); lerr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (continuing with %d bodies)\n", lerr, exp.Runner().Len())
	}
	return exp, nil
}

func runSession(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	var rec *export.Recorder
	if jsonFile != "" || csvFile != "" {
		rec = export.NewRecorder(every)
		rec.Start(exp.Runner().State())
		exp.Observe(rec.Observe)
	}

	fmt.Printf("running %s...\n", sessionName(exp.Config()))
	start := time.Now()
	result, runErr := exp.Run(cmd.Context())
	fmt.Printf("completed in %v\n", time.Since(start))
	printResult(exp, result)

	if rec != nil {
		if err := writeRecording(exp, rec, result); err != nil {
			return err
		}
	}
	return runErr
}

func writeRecording(exp *experiment.Experiment, rec *export.Recorder, result *dynamo.Result) error {
	cfg := exp.Config()
	if jsonFile != "" {
		f, err := os.Create(jsonFile)
		if err != nil {
			return err
		}
		defer f.Close()
		data := &export.ExportData{
			Preset:     cfg.Preset,
			Input:      cfg.Input,
			Dimension:  cfg.Dimension,
			Integrator: cfg.Integrator,
			Dt:         cfg.Dt,
			Ticks:      result.Ticks,
			Merges:     result.Merges,
			Frames:     rec.Frames(),
			Metrics:    result.Metrics,
		}
		if err := export.WriteJSON(f, data); err != nil {
			return err
		}
		fmt.Printf("wrote %d frames to %s\n", len(data.Frames), jsonFile)
	}
	if csvFile != "" {
		f, err := os.Create(csvFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteCSV(f, rec, cfg.Dimension); err != nil {
			return err
		}
		fmt.Printf("wrote %d frames to %s\n", len(rec.Frames()), csvFile)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	opts := viz.Options{
		Title:         sessionName(cfg),
		StepsPerFrame: steps,
		FPS:           frameRate,
		TrailLen:      trailLen,
		Theme:         theme,
		ExitOnEnd:     exitOnEnd,
	}
	if _, err := viz.Run(exp.Runner(), cfg.HalfExtent(), opts); err != nil {
		return err
	}
	printResult(exp, exp.Result())
	return exp.Runner().Err()
}

func runPlot(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	runner := exp.Runner()
	energy := []float64{runner.Energy()}
	count := []float64{float64(runner.Len())}
	exp.Observe(func(f dynamo.FrameState) {
		energy = append(energy, runner.Energy())
		count = append(count, float64(len(f.Bodies)))
	})

	result, runErr := exp.Run(cmd.Context())
	printResult(exp, result)
	fmt.Println()

	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(plotRows),
		asciigraph.Width(80),
		asciigraph.Caption("total energy"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(count,
		asciigraph.Height(max(plotRows/2, 2)),
		asciigraph.Width(80),
		asciigraph.Caption("live bodies"),
	))
	return runErr
}

func runSVG(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	rec := export.NewRecorder(every)
	rec.Start(exp.Runner().State())
	exp.Observe(rec.Observe)

	result, runErr := exp.Run(cmd.Context())
	printResult(exp, result)

	svg := export.TrailsToSVG(rec.Trails(), svgW, svgH)
	if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %d trails to %s\n", len(rec.Trails()), svgFile)
	return runErr
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIM\tBODIES\tINTEG\tDT\tMAX TICKS")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%g\t%d\n", name, p.Dimension, len(p.Bodies), p.Integrator, p.Dt, p.MaxTicks)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := experiment.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if scenario.Name != "" {
		fmt.Printf("scenario: %s\n", scenario.Name)
	}
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}

	results, runErr := experiment.RunScenario(cmd.Context(), scenario, experiment.NewRegistry())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTICKS\tTIME\tMERGES\tREMAINING\tNOTE")
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		note := ""
		if r.LoadErr != nil {
			note = "input: " + r.LoadErr.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%d\t%d\t%s\n", r.Name, r.Result.Ticks, r.Result.Time, r.Result.Merges, r.Result.Remaining, note)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sweep := &experiment.Sweep{Base: cfg, Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	results, runErr := experiment.RunSweep(cmd.Context(), sweep, experiment.NewRegistry())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tTICKS\tMERGES\tREMAINING\tENERGY DRIFT\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		fmt.Fprintf(w, "%g\t%d\t%d\t%d\t%.3e\n", r.Value, r.Result.Ticks, r.Result.Merges, r.Result.Remaining, r.Result.Metrics["energy_drift"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	mc := &experiment.MonteCarlo{Base: cfg, Perturbation: perturbation, Trials: trials, Seed: seed}
	results, err := experiment.RunMonteCarlo(cmd.Context(), mc, experiment.NewRegistry())
	if err != nil {
		return err
	}
	bounded, escaped := experiment.MonteCarloStats(results)
	fmt.Printf("trials:  %d\n", len(results))
	fmt.Printf("bounded: %d (%.0f%%)\n", bounded, 100*float64(bounded)/float64(max(len(results), 1)))
	fmt.Printf("escaped: %d\n", escaped)
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	lambda, err := experiment.Lyapunov(cfg, lyapTicks, lyapD0)
	if err != nil {
		return err
	}
	fmt.Printf("session: %s\n", sessionName(cfg))
	fmt.Printf("lyapunov exponent: %.6g\n", lambda)
	if lambda > 0 {
		fmt.Println("positive exponent: nearby trajectories separate exponentially")
	}
	return nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(gridSpecs)
	if err != nil {
		return err
	}
	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	best, err := gs.Search(cmd.Context(), cfg, experiment.NewRegistry(), metric)
	if err != nil {
		return err
	}
	fmt.Printf("tried %d combinations (%d failed)\n", best.Tried, best.Failed)
	fmt.Printf("best %s: %.6g\n", metric, best.Value)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best.Params[name])
	}
	return nil
}

// parseGrid turns "dt=0.01,0.1" specs into parameter names and value lists.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("bad grid %q: want name=v1,v2", spec)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad grid %q: %w", spec, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "gravsim.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if preset == "" && configFile == "" && !cmd.Flags().Changed("input") {
		preset = "binary"
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)

	if bodiesFile == "" {
		return nil
	}
	if len(cfg.Bodies) == 0 {
		return errors.New("config has no inline bodies to write")
	}
	if err := writeBodies(bodiesFile, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %d bodies to %s\n", len(cfg.Bodies), bodiesFile)
	return nil
}

func writeBodies(path string, cfg *config.Config) error {
	if cfg.Dimension == 3 {
		bodies, err := config.Bodies[dynamo.Vec3](cfg.Bodies)
		if err != nil {
			return err
		}
		return storage.WriteFile(path, bodies)
	}
	bodies, err := config.Bodies[dynamo.Vec2](cfg.Bodies)
	if err != nil {
		return err
	}
	return storage.WriteFile(path, bodies)
}

func sessionName(cfg *config.Config) string {
	switch {
	case cfg.Preset != "":
		return cfg.Preset
	case cfg.Input != "":
		return cfg.Input
	}
	return fmt.Sprintf("%dd session", cfg.Dimension)
}

func printResult(exp *experiment.Experiment, r *dynamo.Result) {
	runner := exp.Runner()
	fmt.Printf("ticks: %d\n", r.Ticks)
	fmt.Printf("time: %.3f\n", r.Time)
	fmt.Printf("merges: %d\n", r.Merges)
	fmt.Printf("remaining: %d\n", r.Remaining)
	switch {
	case runner.Err() != nil:
		fmt.Printf("stopped: %v\n", runner.Err())
	case !runner.InBounds():
		fmt.Println("stopped: all bodies out of bounds")
	}

	if len(r.Metrics) == 0 {
		return
	}
	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, r.Metrics[name])
	}
}
