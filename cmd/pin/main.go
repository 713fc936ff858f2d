package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/makinimakes/power-in-numbers-sub000/internal/calculation"
	"github.com/makinimakes/power-in-numbers-sub000/internal/config"
	"github.com/makinimakes/power-in-numbers-sub000/internal/domain"
	"github.com/makinimakes/power-in-numbers-sub000/internal/output"
	"github.com/makinimakes/power-in-numbers-sub000/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pin",
	Short: "Rate and project costing calculator for independent workers",
	Long: "pin derives hourly/daily/weekly/monthly rate targets from personal expense\n" +
		"and schedule data, aggregates them into project pay bands and costs, and\n" +
		"distributes project profit against the team's equity liabilities.",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "pin %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// newEngine wires logging into an engine per the shared CLI flags.
func newEngine(cmd *cobra.Command) *calculation.Engine {
	engine := calculation.NewEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		log := logger.Must(logger.New(true))
		engine.Logger = logger.Engine{S: log.Sugar()}
	}
	if override, _ := cmd.Flags().GetBool("allow-over-capacity"); override {
		engine.AllowOverCapacity = true
	}
	return engine
}

func loadSnapshot(file string) (*domain.Snapshot, error) {
	doc, err := config.NewInputParser().LoadFromFile(file)
	if err != nil {
		return nil, err
	}
	return doc.Snapshot(), nil
}

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates [workspace-file]",
		Short: "Derive a worker's capacity and now/goal rates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}
			handle, _ := cmd.Flags().GetString("worker")
			format, _ := cmd.Flags().GetString("format")

			engine := newEngine(cmd)
			generator := output.NewReportGenerator(os.Stdout)

			if handle != "" {
				if snap.Profiles[handle] == nil {
					return fmt.Errorf("no profile %q in %s", handle, args[0])
				}
				return generator.GenerateRatesReport(handle, engine.MemberRates(snap, handle), format)
			}
			for name := range snap.Profiles {
				if err := generator.GenerateRatesReport(name, engine.MemberRates(snap, name), format); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("worker", "w", "", "profile handle (default: all profiles)")
	return cmd
}

func recomputeResult(cmd *cobra.Command, file string) (*domain.Snapshot, *domain.RecomputeResult, error) {
	snap, err := loadSnapshot(file)
	if err != nil {
		return nil, nil, err
	}
	if snap.Project == nil {
		return nil, nil, fmt.Errorf("%s contains no project", file)
	}
	result, err := newEngine(cmd).Recompute(snap)
	if err != nil {
		return nil, nil, err
	}
	return snap, result, nil
}

func projectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project [workspace-file]",
		Short: "Cost a project: pay band, phase budgets, equity and scenarios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, result, err := recomputeResult(cmd, args[0])
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			return output.NewReportGenerator(os.Stdout).GenerateProjectReport(snap.Project, result, format)
		},
	}
}

func equityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equity [workspace-file]",
		Short: "Show equity liabilities and profit distribution per scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := recomputeResult(cmd, args[0])
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			return output.NewReportGenerator(os.Stdout).GenerateEquityReport(result, format)
		},
	}
}

func main() {
	rootCmd.PersistentFlags().String("format", "console", "output format (console, json, csv)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable engine diagnostics")
	rootCmd.PersistentFlags().Bool("allow-over-capacity", false, "confirm schedules that exceed phase capacity")

	rootCmd.AddCommand(ratesCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(equityCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
