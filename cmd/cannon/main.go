package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cannon/internal/analysis"
	"github.com/san-kum/cannon/internal/config"
	"github.com/san-kum/cannon/internal/dynamo"
	"github.com/san-kum/cannon/internal/export"
	"github.com/san-kum/cannon/internal/gui"
	"github.com/san-kum/cannon/internal/logging"
	"github.com/san-kum/cannon/internal/metrics"
	"github.com/san-kum/cannon/internal/sim"
	"github.com/san-kum/cannon/internal/storage"
	"github.com/san-kum/cannon/internal/tui"
	"github.com/san-kum/cannon/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir     string
	logLevel    string
	logEncoding string
	configFile  string
	preset      string

	g           float64
	dt          float64
	duration    float64
	speed       float64
	speedScale  float64
	restitution float64
	response    string
	launchAt    []float64

	watch     bool
	frameRate int

	sweepFrom    float64
	sweepTo      float64
	sweepStep    float64
	sweepWorkers int

	outPath string
	svgSize int
	theme   string

	logger = logging.Nop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cannon",
		Short:         "newton's cannon orbital sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if screenMode(cmd) {
				return nil
			}
			level, encoding := logLevel, logEncoding
			if configFile != "" {
				if fileCfg, err := config.Load(configFile); err == nil {
					if !cmd.Flags().Changed("log-level") {
						level = fileCfg.Log.Level
					}
					if !cmd.Flags().Changed("log-encoding") {
						encoding = fileCfg.Log.Encoding
					}
				}
			}
			l, err := logging.New(level, encoding)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset == "" && configFile == "" {
				return viz.RunInteractive(nil)
			}
			return runLive(cmd, args)
		},
	}

	themeHelp := "color theme (" + strings.Join(viz.ThemeNames(), ", ") + ")"
	rootCmd.Flags().StringVar(&theme, "theme", viz.ThemeNames()[0], themeHelp)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".cannon", "data directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logEncoding, "log-encoding", "console", "log encoding (console, json)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save a report",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addPhysicsFlags(runCmd)
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw ascii frames while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --watch")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeNames()[0], themeHelp)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addPhysicsFlags(guiCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "classify launches over a range of speeds",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addPhysicsFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first launch speed")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 80, "last launch speed")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 5, "speed increment")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 4, "concurrent worlds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot altitude of each ball",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "per-ball summary and altitude spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run report to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")
	svgCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, sweepCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, svgCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		exit(err)
	}
}

// screenMode reports whether the command owns the terminal or a window, in
// which case log output would corrupt the display.
func screenMode(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "live", "gui", "cannon":
		return true
	}
	return false
}

func exit(err error) {
	log, lerr := logging.New("error", logEncoding)
	if lerr != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fields := []zap.Field{zap.Error(err)}
	var simErr *dynamo.SimulationError
	if errors.As(err, &simErr) {
		fields = append(fields,
			zap.Int("tick", simErr.Tick),
			zap.Float64("time", simErr.Time),
			zap.Int("body", simErr.Handle),
		)
	}
	log.Fatal("cannon failed", fields...)
}

func addPhysicsFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.Float64Var(&g, "g", def.Physics.G, "gravitational constant")
	f.Float64Var(&dt, "dt", def.Physics.Dt, "timestep")
	f.Float64Var(&duration, "time", def.Run.Duration, "duration in seconds")
	f.Float64Var(&speed, "speed", def.Launch.Speed, "first launch speed")
	f.Float64Var(&speedScale, "scale", def.Physics.SpeedScale, "speed scale")
	f.Float64Var(&restitution, "restitution", def.Physics.Restitution, "velocity kept after a bounce")
	f.StringVar(&response, "response", def.Physics.Response, "collision response (bounce, rollback)")
	f.Float64SliceVar(&launchAt, "launch-at", def.Run.LaunchAt, "launch times in seconds")
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("g") {
		cfg.Physics.G = g
	}
	if flags.Changed("dt") {
		cfg.Physics.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Changed("speed") {
		cfg.Launch.Speed = speed
	}
	if flags.Changed("scale") {
		cfg.Physics.SpeedScale = speedScale
	}
	if flags.Changed("restitution") {
		cfg.Physics.Restitution = restitution
	}
	if flags.Changed("response") {
		cfg.Physics.Response = response
	}
	if flags.Changed("launch-at") {
		cfg.Run.LaunchAt = launchAt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sessionName() string {
	if preset != "" {
		return preset
	}
	if configFile != "" {
		return filepath.Base(configFile)
	}
	return "custom"
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w, l, err := cfg.NewWorld()
	if err != nil {
		return err
	}

	s := sim.New(w, l, logger.With(zap.String("fingerprint", cfg.Fingerprint())))
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}

	var renderer *tui.LiveRenderer
	if watch {
		renderer = tui.NewLiveRenderer(os.Stdout, sessionName(), frameRate)
		renderer.Start()
		defer renderer.Stop()
		s.AddObserver(renderer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running simulation",
		zap.String("preset", preset),
		zap.Float64("duration", cfg.Run.Duration),
		zap.Int("launches", len(cfg.Run.LaunchAt)),
	)
	start := time.Now()

	result, err := s.Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	if renderer != nil {
		renderer.Draw(w)
	}

	runID, err := st.Save(storage.RunInfo{
		Preset:       preset,
		Fingerprint:  cfg.Fingerprint(),
		Dt:           cfg.Physics.Dt,
		Duration:     cfg.Run.Duration,
		G:            cfg.Physics.G,
		Response:     cfg.Physics.Response,
		PlanetMass:   cfg.Planet.Mass,
		PlanetRadius: cfg.Planet.Radius,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d  balls: %d  collisions: %d\n", result.Ticks, result.Projectiles, result.Collisions)
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Standard() {
		fmt.Printf("  %-15s %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, l, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	return viz.RunLive(viz.NewModel(w, l, sessionName(), cfg.Run.LaunchAt).WithTheme(theme))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w, l, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	return gui.Run(w, l, sessionName(), cfg.Run.LaunchAt)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !(sweepStep > 0) || sweepTo < sweepFrom {
		return fmt.Errorf("invalid sweep range %.2f..%.2f step %.2f", sweepFrom, sweepTo, sweepStep)
	}

	var speeds []float64
	for v := sweepFrom; v <= sweepTo+1e-9; v += sweepStep {
		speeds = append(speeds, v)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweeping", zap.Int("speeds", len(speeds)), zap.Int("workers", sweepWorkers))
	results, err := sim.Sweep(ctx, cfg.NewWorld, speeds, cfg.SimConfig(), sweepWorkers)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPEED\tOUTCOME\tBOUNCES\tMIN ALT\tMAX ALT\tTICKS")
	maxAlt := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(tw, "%.2f\t%s\t%d\t%.1f\t%.1f\t%d\n",
			r.Speed, r.Outcome, r.Bounces, r.MinAltitude, r.MaxAltitude, r.Ticks)
		maxAlt[i] = r.MaxAltitude
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(maxAlt) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(maxAlt,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("max altitude by launch"),
		))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tBALLS\tHITS\tFINGERPRINT")

	for _, run := range runs {
		name := run.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%d\t%s\n",
			run.ID,
			name,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Projectiles,
			run.Collisions,
			run.Fingerprint,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	const maxPlots = 6
	handles := analysis.Handles(samples)
	for i, h := range handles {
		if i >= maxPlots {
			fmt.Printf("... %d more balls\n", len(handles)-maxPlots)
			break
		}
		alt := analysis.Altitudes(samples, h, meta.PlanetRadius)
		if len(alt) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(alt,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("ball %d altitude", h)),
		))
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)
	gm := meta.G * float64(meta.PlanetMass)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BALL\tSAMPLES\tMIN ALT\tMAX ALT\tBOUNCES\tENERGY\tPERIOD")
	handles := analysis.Handles(samples)
	for _, h := range handles {
		s := analysis.Summarize(samples, h, meta.PlanetRadius, gm, meta.Dt)
		period := "-"
		if s.Period > 0 {
			period = fmt.Sprintf("%.2fs", s.Period)
		}
		fmt.Fprintf(tw, "%d\t%d\t%.1f\t%.1f\t%d\t%.3f\t%s\n",
			h, s.Samples, s.MinAltitude, s.MaxAltitude, s.Bounces, s.Energy, period)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	last := handles[len(handles)-1]
	ps := analysis.PowerSpectrum(analysis.Altitudes(samples, last, meta.PlanetRadius))
	if len(ps) >= 8 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("altitude spectrum, ball %d", last)),
		))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = args[0] + ".csv"
	}
	if err := export.ExportCSV(path, samples); err != nil {
		return err
	}
	fmt.Printf("exported %d samples to %s\n", len(samples), path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return export.WriteJSON(os.Stdout, meta, samples)
	}
	return export.ExportJSON(outPath, meta, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = args[0] + ".svg"
	}
	svg := export.TrajectoryToSVG(samples, meta.PlanetRadius, svgSize)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tG\tSPEED\tRESPONSE\tSCALE\tLAUNCHES\tDURATION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.3f\t%.1f\t%s\t%.1f\t%d\t%.0fs\n",
			name, p.Physics.G, p.Launch.Speed, p.Physics.Response,
			p.Physics.SpeedScale, len(p.Run.LaunchAt), p.Run.Duration)
	}
	return w.Flush()
}
