// Command rv32emu runs a flat RV32I program image to completion,
// printing a per-instruction trace and a final register dump.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lookbusy-dev/rv32emu/config"
	"github.com/lookbusy-dev/rv32emu/core"
	"github.com/lookbusy-dev/rv32emu/loader"
	"github.com/lookbusy-dev/rv32emu/stats"
	"github.com/lookbusy-dev/rv32emu/trace"
)

func main() {
	var (
		configPath      string
		maxSteps        uint64
		spInit          string
		alignmentStrict bool
		dumpFile        string
		traceEnabled    bool
		traceFile       string
		statsEnabled    bool
		statsFile       string
		statsFormat     string
	)

	rootCmd := &cobra.Command{
		Use:   "rv32emu <image>",
		Short: "A functional RV32I instruction-set simulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cmd.Flags().Changed("max-steps") {
				cfg.Execution.MaxSteps = maxSteps
			}
			if cmd.Flags().Changed("sp-init") {
				cfg.Execution.InitialSP = spInit
			}
			if cmd.Flags().Changed("align-strict") {
				cfg.Execution.AlignmentStrict = alignmentStrict
			}
			if cmd.Flags().Changed("dump-file") {
				cfg.Dump.Path = dumpFile
			}
			if cmd.Flags().Changed("trace") {
				cfg.Trace.Enabled = traceEnabled
			}
			if cmd.Flags().Changed("trace-file") {
				cfg.Trace.File = traceFile
			}
			if cmd.Flags().Changed("stats") {
				cfg.Statistics.Enabled = statsEnabled
			}
			if cmd.Flags().Changed("stats-file") {
				cfg.Statistics.File = statsFile
			}
			if cmd.Flags().Changed("stats-format") {
				cfg.Statistics.Format = statsFormat
			}

			return run(cfg, args[0])
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", config.GetConfigPath(), "Path to a TOML configuration file")
	rootCmd.Flags().Uint64Var(&maxSteps, "max-steps", 0, "Maximum instructions to execute (0 = unlimited)")
	rootCmd.Flags().StringVar(&spInit, "sp-init", "zero", "Initial stack pointer (x2) convention: zero or top")
	rootCmd.Flags().BoolVar(&alignmentStrict, "align-strict", false, "Reject misaligned halfword/word memory accesses")
	rootCmd.Flags().StringVar(&dumpFile, "dump-file", "", "Register dump output path")
	rootCmd.Flags().BoolVar(&traceEnabled, "trace", false, "Mirror the per-instruction trace to a file")
	rootCmd.Flags().StringVar(&traceFile, "trace-file", "", "Execution trace output path")
	rootCmd.Flags().BoolVar(&statsEnabled, "stats", false, "Collect end-of-run execution statistics")
	rootCmd.Flags().StringVar(&statsFile, "stats-file", "", "Statistics output path")
	rootCmd.Flags().StringVar(&statsFormat, "stats-format", "", "Statistics output format: json or csv")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run builds a Machine from cfg, loads the image at path, executes it
// to completion, and always emits the register dump before returning —
// on the success path, a fatal run error, or a fatal image-load error
// alike, matching original_source/RISC-V.c registering its dump hook
// before load_memory runs at all.
func run(cfg *config.Config, path string) error {
	initialSP := core.SPZero
	if cfg.Execution.InitialSP == "top" {
		initialSP = core.SPTop
	}

	m := core.NewMachine(core.Config{
		InitialSP:       initialSP,
		AlignmentStrict: cfg.Execution.AlignmentStrict,
		MaxSteps:        cfg.Execution.MaxSteps,
	})

	dumpPath := cfg.Dump.Path
	if dumpPath == "" {
		dumpPath = "register_dump.res"
	}
	defer func() {
		if err := m.Terminate(os.Stdout, dumpPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write register dump: %v\n", err)
		}
	}()

	if cfg.Trace.Enabled {
		f, err := os.Create(cfg.Trace.File) // #nosec G304 -- user-configured trace path
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		defer f.Close()
		m.Trace = trace.New(f)
	}

	if cfg.Statistics.Enabled {
		m.Stats = stats.NewCounters()
	}

	warning, err := loader.LoadImage(m, path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	if warning != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	runErr := m.Run()

	if cfg.Statistics.Enabled && m.Stats != nil {
		m.Stats.Finish()
		if writeErr := writeStats(m.Stats, cfg.Statistics.Format, cfg.Statistics.File); writeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write statistics: %v\n", writeErr)
		}
	}

	return runErr
}

func writeStats(c *stats.Counters, format, path string) error {
	if path == "" {
		path = "stats.json"
	}
	f, err := os.Create(path) // #nosec G304 -- user-configured statistics path
	if err != nil {
		return err
	}
	defer f.Close()

	if format == "csv" {
		return c.ExportCSV(f)
	}
	return c.ExportJSON(f)
}
