package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/newsorbit/internal/analysis"
	"github.com/san-kum/newsorbit/internal/automation"
	"github.com/san-kum/newsorbit/internal/config"
	"github.com/san-kum/newsorbit/internal/experiment"
	"github.com/san-kum/newsorbit/internal/export"
	"github.com/san-kum/newsorbit/internal/ingest"
	"github.com/san-kum/newsorbit/internal/optim"
	"github.com/san-kum/newsorbit/internal/placement"
	"github.com/san-kum/newsorbit/internal/sim"
	"github.com/san-kum/newsorbit/internal/storage"
	"github.com/san-kum/newsorbit/internal/viz"
)

var (
	dataDir  string
	logLevel string

	configFile   string
	preset       string
	articlesPath string
	seed         int64
	ticks        int
	sampleEvery  int
	runName      string

	theme         string
	ticksPerFrame int

	bodyID    string
	maxPlots  int
	outFile   string
	svgSize   int
	trails    bool
	sweepLo   float64
	sweepHi   float64
	sweepN    int
	transient int
	record    int

	tuneParams []string
	metric     string
	maximize   bool
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

var presetInfo = map[string]string{
	"default": "twelve stories, default physics",
	"calm":    "slow orbits, strong ecliptic pull",
	"heavy":   "massive anchor, fast bodies",
	"crowded": "sixty stories packed close",
	"ghosts":  "no collisions",
	"wide":    "loose orbits far from the anchor",
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "newsorbit",
		Short:        "news stories orbiting an anchor story",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".newsorbit", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the tracks",
		RunE:  runSimulation,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 5, "ticks between recorded samples")
	runCmd.Flags().StringVar(&runName, "name", "orbit", "run name prefix")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the simulation in the terminal",
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "night", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	liveCmd.Flags().IntVar(&ticksPerFrame, "speed", 1, "ticks per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot distance to the anchor over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&bodyID, "body", "", "plot a single body")
	plotCmd.Flags().IntVar(&maxPlots, "max", 4, "maximum number of bodies to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbit statistics and dominant periods",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&bodyID, "body", "", "show the radial phase portrait of one body")

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the tracks of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")
	svgCmd.Flags().StringVar(&theme, "theme", "night", "color theme")

	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate and print the final world as JSON",
		RunE:  snapshotJSON,
	}
	addWorldFlags(snapCmd)
	snapCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	snapCmd.Flags().BoolVar(&trails, "trails", false, "include trails")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the anchor mass and plot the distances reached",
		RunE:  sweepMass,
	}
	addWorldFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepLo, "lo", 1e7, "lowest anchor mass")
	sweepCmd.Flags().Float64Var(&sweepHi, "hi", 2e8, "highest anchor mass")
	sweepCmd.Flags().IntVar(&sweepN, "steps", 20, "number of masses")
	sweepCmd.Flags().IntVar(&transient, "transient", 500, "ticks to settle before recording")
	sweepCmd.Flags().IntVar(&record, "record", 200, "ticks recorded per mass")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search config keys for the best metric",
		RunE:  tune,
	}
	addWorldFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", nil, "key=lo:hi:steps, repeatable ("+strings.Join(config.Tunables(), ", ")+")")
	tuneCmd.Flags().StringVar(&metric, "metric", "absorbed", "metric name or absorbed")
	tuneCmd.Flags().BoolVar(&maximize, "maximize", false, "maximize instead of minimize")
	tuneCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %-10s %s\n", p, keyStyle.Render(presetInfo[p]))
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, svgCmd, snapCmd, sweepCmd, scenarioCmd, tuneCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&articlesPath, "articles", "", "JSON article list")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
}

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the world config: a config file wins over a preset,
// and flags the user set win over both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		c, err := config.Load("")
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("articles") {
		cfg.Articles = articlesPath
	}
	return cfg, cfg.Validate()
}

func setup(cfg *config.Config, opts ...experiment.Option) (*experiment.Experiment, error) {
	var articles []ingest.Article
	if cfg.Articles != "" {
		a, err := ingest.LoadFile(cfg.Articles)
		if err != nil {
			return nil, err
		}
		articles = a
	}

	exp := experiment.New(cfg, append([]experiment.Option{experiment.WithLogger(newLogger())}, opts...)...)
	if err := exp.Setup(articles); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return exp, nil
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

	exp, err := setup(cfg, experiment.WithSampleEvery(sampleEvery))
	if err != nil {
		return err
	}

	fmt.Printf("running %d ticks with %d bodies...\n", cfg.Ticks, exp.World().Len()-1)
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	runID, err := st.Save(runName, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", titleStyle.Render("run"), runID)
	fmt.Printf("ticks: %d  absorbed: %d  remaining: %d\n", result.Ticks, result.Absorbed, len(result.Final.Orbiting()))
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s %.6g\n", keyStyle.Render(fmt.Sprintf("%-20s", name)), metrics[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	if configFile == "" && preset == "" && !cmd.Flags().Changed("articles") {
		return runMenu()
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := setup(cfg)
	if err != nil {
		return err
	}
	title := preset
	if title == "" {
		title = "newsorbit"
	}
	return viz.Run(exp.World(), viz.WithTitle(title), viz.WithTheme(theme), viz.WithTicksPerFrame(ticksPerFrame))
}

func runMenu() error {
	build := func(name string) (*sim.World, error) {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", name)
		}
		exp, err := setup(cfg)
		if err != nil {
			return nil, err
		}
		return exp.World(), nil
	}
	return viz.RunMenu(config.ListPresets(), presetInfo, build, viz.WithTheme(theme), viz.WithTicksPerFrame(max(ticksPerFrame, 1)))
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
	fmt.Fprintln(w, "ID\tTIME\tSEED\tTICKS\tBODIES\tABSORBED\tANCHOR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Ticks,
			run.Bodies,
			run.Absorbed,
			run.Anchor.Name,
		)
	}

	return w.Flush()
}

func loadResult(runID string) (*storage.RunMetadata, *experiment.Result, error) {
	meta, result, err := storage.New(dataDir).Result(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Samples) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, result, nil
}

func selectedBodies(result *experiment.Result) ([]string, error) {
	if bodyID == "" {
		return result.BodyIDs(), nil
	}
	if len(result.Distances(bodyID)) == 0 {
		return nil, fmt.Errorf("body %s not found in run", bodyID)
	}
	return []string{bodyID}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	ids, err := selectedBodies(result)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d every %d ticks\n\n", len(result.Samples), result.SampleEvery)

	if len(ids) > maxPlots {
		ids = ids[:maxPlots]
	}
	for _, id := range ids {
		data := result.Distances(id)
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s distance to anchor", id)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	ids, err := selectedBodies(result)
	if err != nil {
		return err
	}

	fmt.Printf("orbit analysis: %s\n\n", meta.ID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tSAMPLES\tMEAN\tSTDDEV\tMIN\tMAX\tECC\tPERIOD")
	for _, id := range ids {
		d := result.Distances(id)
		s := analysis.Orbit(d)
		period := "-"
		if p, ok := analysis.DominantPeriod(d, result.SampleEvery); ok {
			period = fmt.Sprintf("%.0f", p)
		}
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.3f\t%s\n",
			id, s.Samples, s.Mean, s.StdDev, s.Min, s.Max, s.Eccentricity, period)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if bodyID != "" {
		portrait := analysis.NewPhasePortrait(result.Distances(bodyID), result.SampleEvery)
		fmt.Println()
		fmt.Println(titleStyle.Render("radial phase portrait") + keyStyle.Render("  distance vs radial speed"))
		fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))
		fmt.Printf("apsides: %d\n", len(portrait.Apsides()))
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	svg := export.TracksToSVG(result, svgSize, viz.GetTheme(theme))
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func snapshotJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := setup(cfg)
	if err != nil {
		return err
	}
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, result.Final, result.Metrics, trails)
}

func sweepMass(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	articles := ingest.Synthetic(cfg.Bodies, rand.New(rand.NewSource(cfg.Seed)))
	if cfg.Articles != "" {
		if articles, err = ingest.LoadFile(cfg.Articles); err != nil {
			return err
		}
	}

	build := func(mass float64) (*sim.World, error) {
		c := *cfg
		c.Anchor.Mass = mass
		w, err := sim.New(c.Params(), sim.WithLogger(newLogger()), sim.WithRand(rand.New(rand.NewSource(c.Seed+1))))
		if err != nil {
			return nil, err
		}
		if err := w.Add(c.NewAnchor()); err != nil {
			return nil, err
		}
		placer := placement.New(c.Params(), rand.New(rand.NewSource(c.Seed)))
		if _, err := ingest.Populate(w, articles, placer); err != nil {
			newLogger().Warn("some articles were skipped", "error", err)
		}
		return w, nil
	}

	masses := analysis.Linspace(sweepLo, sweepHi, sweepN)
	points, err := analysis.Sweep(cmd.Context(), build, masses, transient, record)
	if err != nil {
		return err
	}

	fmt.Printf("anchor mass %.3g .. %.3g (%d steps)\n\n", sweepLo, sweepHi, sweepN)
	fmt.Println(analysis.SweepToASCII(points, 80, 20))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("%s %s\n", titleStyle.Render("scenario"), sc.Name)
	results, err := automation.RunScenario(cmd.Context(), sc, newLogger(), st.Save)
	for i, r := range results {
		fmt.Printf("step %d: ticks %d, absorbed %d, remaining %d\n", i+1, r.Ticks, r.Absorbed, len(r.Final.Orbiting()))
	}
	return err
}

// parseRange reads key=lo:hi:steps.
func parseRange(s string) (string, []float64, error) {
	key, spec, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad --param %q, want key=lo:hi:steps", s)
	}
	var lo, hi float64
	var n int
	if _, err := fmt.Sscanf(spec, "%g:%g:%d", &lo, &hi, &n); err != nil {
		return "", nil, fmt.Errorf("bad --param %q: %w", s, err)
	}
	return key, analysis.Linspace(lo, hi, n), nil
}

func tune(cmd *cobra.Command, args []string) error {
	if len(tuneParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var keys []string
	var ranges [][]float64
	for _, p := range tuneParams {
		key, values, err := parseRange(p)
		if err != nil {
			return err
		}
		keys = append(keys, key)
		ranges = append(ranges, values)
	}

	run := func(ctx context.Context, c *config.Config) (*experiment.Result, error) {
		exp, err := setup(c)
		if err != nil {
			return nil, err
		}
		return exp.Run(ctx)
	}

	gs := optim.NewGridSearch(keys, ranges)
	gs.Maximize = maximize
	best, err := gs.Search(cmd.Context(), cfg, run, metric)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s = %.6g after %d runs\n", titleStyle.Render("best"), metric, best.Value, best.Tried)
	for _, k := range keys {
		fmt.Printf("  %s %.6g\n", keyStyle.Render(fmt.Sprintf("%-24s", k)), best.Params[k])
	}
	return nil
}
