package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	dt         float64
	duration   float64
	frameRate  int
	realtime   bool
	sets       []string
	noSave     bool
	// serve
	addr string
	// export
	outFile   string
	graphIdx  int
	svgWidth  int
	svgHeight int
	// sweep and optimize
	object   string
	param    string
	paramMin float64
	paramMax float64
	numSteps int
	workers  int
	metric   string
	maximize bool
)

// addConfigFlags registers the flags that select and override a run
// configuration.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	cmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for live views")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "pace ticks to wall-clock time")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "override an initial value, e.g. --set ball.velocity.x=3")
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "kinesim",
		Short:         "2D kinematics sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live terminal visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run a simulation in real time and stream frames over websocket",
		Args:  cobra.NoArgs,
		RunE:  serveStream,
	}
	addConfigFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the graphs of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "-", "output file (- for stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one graph of a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "graph.svg", "output file")
	exportSVGCmd.Flags().IntVar(&graphIdx, "graph", 0, "graph index")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and value sources",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one initial value over a range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&object, "object", "", "object to vary (default: first object)")
	sweepCmd.Flags().StringVar(&param, "param", "velocity.x", "initial value to vary")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0, "range start")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 10, "range end")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0: GOMAXPROCS)")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search one initial value for the best metric",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	addConfigFlags(optimizeCmd)
	optimizeCmd.Flags().StringVar(&object, "object", "", "object to vary (default: first object)")
	optimizeCmd.Flags().StringVar(&param, "param", "velocity.y", "initial value to vary")
	optimizeCmd.Flags().Float64Var(&paramMin, "min", 0, "range start")
	optimizeCmd.Flags().Float64Var(&paramMax, "max", 10, "range end")
	optimizeCmd.Flags().IntVar(&numSteps, "steps", 11, "number of values")
	optimizeCmd.Flags().StringVar(&metric, "metric", "max_height", "metric suffix, e.g. max_height or path_length")
	optimizeCmd.Flags().BoolVar(&maximize, "maximize", true, "maximize instead of minimize")

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd,
		presetsCmd, scenarioCmd, sweepCmd, optimizeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
