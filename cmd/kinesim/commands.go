package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/kinesim/internal/automation"
	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/experiment"
	"github.com/san-kum/kinesim/internal/export"
	"github.com/san-kum/kinesim/internal/logging"
	"github.com/san-kum/kinesim/internal/optim"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/storage"
	"github.com/san-kum/kinesim/internal/stream"
	"github.com/san-kum/kinesim/internal/viz"
)

// resolveConfig starts from the preset (freefall when neither a preset nor
// a file is given), applies the config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	name := preset
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
		}
	default:
		if name == "" {
			name = "freefall"
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = frameRate
	}
	if cmd.Flags().Changed("realtime") {
		cfg.Realtime = realtime
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	for _, s := range sets {
		path, raw, ok := strings.Cut(s, "=")
		if !ok {
			return nil, "", fmt.Errorf("bad --set %q: want path=value", s)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, "", fmt.Errorf("bad --set %q: %w", s, err)
		}
		if err := cfg.SetParam(path, v); err != nil {
			return nil, "", err
		}
	}
	return cfg, name, cfg.Validate()
}

func newLogger(cfg *config.Config) logging.Logger {
	level := logLevel
	if cfg != nil && level == "" {
		level = cfg.LogLevel
	}
	return logging.New(level)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	exp, err := experiment.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s simulation...\n", name)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, cfg.Dt, cfg.Duration, exp.Scene(), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("steps: %d (t=%.4f)\n", result.Steps, result.Time)
	for _, e := range result.Errors {
		fmt.Printf("warning: %s\n", e)
	}
	fmt.Println("\nmetrics:")
	for _, n := range exp.MetricNames() {
		fmt.Printf("  %s: %.6f\n", n, result.Metrics[n])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	// the terminal belongs to the UI
	exp, err := experiment.New(cfg, logging.NoOp{})
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(exp), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func serveStream(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("realtime") {
		cfg.Realtime = true
	}
	log := newLogger(cfg)

	exp, err := experiment.New(cfg, log)
	if err != nil {
		return err
	}
	hub := stream.NewHub(log)
	defer hub.Close()
	hub.Watch(exp.Scene(), exp.Graphs())
	exp.Simulator().AddObserver(hub)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/scene", func(w http.ResponseWriter, r *http.Request) {
		data, err := scene.Encode(exp.Scene())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
	srv := &http.Server{Addr: addr, Handler: mux}

	ctx, cancel := signalContext()
	defer cancel()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("http server: %v", err)
			cancel()
		}
	}()
	log.Infof("streaming %s on ws://%s/ws", name, addr)

	result, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Infof("run finished at t=%.3f (%d steps), %d frames dropped", result.Time, result.Steps, hub.Dropped())

	shutdown, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return srv.Shutdown(shutdown)
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tSTEPS\tGRAPHS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			len(run.Graphs),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	graphs, err := st.LoadPoints(runID)
	if err != nil {
		return err
	}
	if len(graphs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n\n", meta.Name)

	for i, pts := range graphs {
		title := fmt.Sprintf("graph %d", i)
		if i < len(meta.Graphs) {
			title = meta.Graphs[i]
		}
		fmt.Println(viz.Plot(title, pts, 70, 12))
		fmt.Println()
	}
	return nil
}

// loadRun reads a stored run back. The scene is nil for runs saved
// without one.
func loadRun(runID string) (*storage.RunMetadata, *scene.Scene, *experiment.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	sc, err := st.LoadScene(runID)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil, err
	}
	return meta, sc, result, nil
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	meta, sc, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	data, err := export.NewExportData(meta.Name, meta.Dt, meta.Duration, sc, result)
	if err != nil {
		return err
	}
	return export.ExportJSON(outFile, data)
}

func exportRunSVG(cmd *cobra.Command, args []string) error {
	_, _, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if graphIdx < 0 || graphIdx >= len(result.Graphs) {
		return fmt.Errorf("graph %d out of range (run has %d)", graphIdx, len(result.Graphs))
	}
	svg := export.PolylineSVG(result.Graphs[graphIdx], svgWidth, svgHeight, "#00ff88", 4)
	if err := export.WriteSVG(outFile, svg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tOBJECTS\tDT\tDURATION\tGRAPHS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		names := make([]string, len(cfg.Objects))
		for i, o := range cfg.Objects {
			names[i] = o.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.2f\t%d\n", name, strings.Join(names, ","), cfg.Dt, cfg.Duration, len(cfg.Graphs))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nvalue sources:")
	for _, s := range experiment.NewRegistry(nil, scene.New()).List() {
		fmt.Printf("  %s\n", s)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	log := newLogger(nil)

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, log)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	for i, r := range results {
		step := sc.Steps[i]
		fmt.Printf("step %d: %d steps, t=%.3f\n", i+1, r.Steps, r.Time)
		if step.SaveAs == "" {
			continue
		}
		if err := st.Init(); err != nil {
			return err
		}
		cfg, err := step.Resolve()
		if err != nil {
			return err
		}
		runID, err := st.Save(step.SaveAs, cfg.Dt, cfg.Duration, nil, r)
		if err != nil {
			return err
		}
		fmt.Printf("  saved as %s\n", runID)
	}
	return nil
}

// targetObject returns --object, or the first configured object.
func targetObject(cfg *config.Config) string {
	if object != "" {
		return object
	}
	return cfg.Objects[0].Name
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{
		Base:     cfg,
		Object:   targetObject(cfg),
		Param:    param,
		ParamMin: paramMin,
		ParamMax: paramMax,
		NumSteps: numSteps,
		Workers:  workers,
	}
	results, err := automation.RunSweep(ctx, sweep, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL X\tFINAL Y\tMAX HEIGHT\tRANGE\n", strings.ToUpper(param))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.ParamValue, r.FinalPosition.X, r.FinalPosition.Y, r.MaxHeight, r.Range)
	}
	return w.Flush()
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	obj := targetObject(cfg)
	path := obj + "." + param

	ctx, cancel := signalContext()
	defer cancel()

	g := optim.NewGridSearch([]string{path}, [][]float64{optim.Linspace(paramMin, paramMax, numSteps)})
	g.Maximize = maximize
	best, val, err := g.Search(ctx, optim.FromConfig(cfg), obj+"."+metric)
	if err != nil {
		return err
	}
	fmt.Printf("best %s = %.4f (%s.%s = %.6f)\n", path, best[path], obj, metric, val)
	return nil
}
