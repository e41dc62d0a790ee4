package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	sim "github.com/hospital-sim/hospital-sim/sim"
	"github.com/hospital-sim/hospital-sim/sim/trace"
)

var (
	// Global flags
	logLevel string // Log verbosity level
	logFile  string // Rotating log file; empty logs to stderr
	envFile  string // .env file with HOSPITAL_SIM_* defaults

	// CLI flags for the run command
	seed         int64             // Master seed for all random streams
	horizon      float64           // Simulated time bound (days)
	configPath   string            // YAML hospital configuration
	beds         map[string]int    // Per-category bed overrides
	arrivalRates map[string]string // Per-category arrival rate overrides
	stayMeans    map[string]string // Per-category mean stay overrides
	noRelocation bool              // Lose patients whose home ward is full
	traceLevel   string            // Decision trace verbosity
	outputFormat string            // summary, json or csv
	resultsPath  string            // File to write results to instead of stdout
	replications int               // Number of independent runs
	defaultsJSON bool              // defaults: print JSON instead of YAML
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "hospital-sim",
	Short: "Discrete-event simulator for hospital bed allocation and overflow policies",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := loadDotEnv(envFile); err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := applyEnv(cmd.Flags()); err != nil {
			logrus.Fatalf("Invalid environment override: %v", err)
		}
		if err := setupLogging(logLevel, logFile); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hospital simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		if !validOutputs[outputFormat] {
			logrus.Fatalf("Invalid output format: %s", outputFormat)
		}
		if replications < 1 {
			logrus.Fatalf("--replications must be >= 1, got %d", replications)
		}

		logrus.Infof("Starting %d replication(s): seed=%d horizon=%g relocation=%v",
			replications, seed, cfg.Horizon, len(cfg.Relocation) > 0)

		outcomes, err := runReplications(cfg, seed, replications, trace.TraceLevel(traceLevel))
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if resultsPath == "" {
			err = writeResults(os.Stdout, outputFormat, cfg, outcomes)
		} else {
			err = writeResultsFile(resultsPath, outputFormat, cfg, outcomes)
		}
		if err != nil {
			logrus.Fatalf("Failed to write results: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// defaultsCmd prints the built-in configuration
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default hospital configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := sim.DefaultConfig()
		if defaultsJSON {
			return writeJSON(cmd.OutOrStdout(), cfg)
		}
		data, err := MarshalConfig(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// buildConfig layers the defaults, the --config file and the per-category flags.
func buildConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		file, err := LoadConfigFile(configPath)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = file.Apply(cfg)
	}

	rates, err := toFloatMap("arrival-rates", arrivalRates)
	if err != nil {
		return sim.Config{}, err
	}
	means, err := toFloatMap("stay-means", stayMeans)
	if err != nil {
		return sim.Config{}, err
	}
	override := sim.Config{
		Beds:         toIntMap(beds),
		ArrivalRates: rates,
		StayMeans:    means,
	}
	if noRelocation {
		override.Relocation = sim.RelocationMatrix{}
	}
	cfg = sim.Merge(cfg, override)

	// Merge treats a zero horizon as unset; an explicit --horizon 0 is legal.
	if cmd.Flags().Changed("horizon") {
		cfg.Horizon = horizon
	}
	return cfg, cfg.Validate()
}

// setupLogging sets the logrus level and, when file is set, rotates logs there.
func setupLogging(level, file string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
	if file != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (rotated) instead of stderr")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File with HOSPITAL_SIM_* environment defaults")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for arrivals, stays and relocation draws")
	runCmd.Flags().Float64Var(&horizon, "horizon", sim.DefaultHorizon, "Simulation horizon (days); the last event processed may lie past it")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML hospital configuration; omitted fields fall back to defaults per category")

	// Per-category overrides
	runCmd.Flags().StringToIntVar(&beds, "beds", nil, "Bed counts per category, e.g. A=55,F=0")
	runCmd.Flags().StringToStringVar(&arrivalRates, "arrival-rates", nil, "Arrivals per day per category, e.g. A=14.5,B=11")
	runCmd.Flags().StringToStringVar(&stayMeans, "stay-means", nil, "Mean length of stay (days) per category, e.g. D=1.4")
	runCmd.Flags().BoolVar(&noRelocation, "no-relocation", false, "Disable the relocation policy: patients finding their ward full are lost")

	// Results
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&outputFormat, "output", OutputSummary, "Output format (summary, json, csv)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write results to this file instead of stdout")
	runCmd.Flags().IntVar(&replications, "replications", 1, "Number of independent runs, seeded seed, seed+1, ...")

	defaultsCmd.Flags().BoolVar(&defaultsJSON, "json", false, "Print JSON instead of YAML")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultsCmd)
}
