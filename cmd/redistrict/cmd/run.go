package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openmander/redistrict-core/objective"
	"github.com/openmander/redistrict-core/plan"
)

var (
	runGraphPath      string
	runAssignmentsIn  string
	runAssignmentsOut string
	runAnneal         bool
	runTabu           bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured search pipeline over a graph and write the resulting assignment",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runGraphPath, "graph", "", "path to a graphFile JSON input (required)")
	runCmd.Flags().StringVar(&runAssignmentsIn, "in", "", "optional existing assignment CSV to seed from (randomize runs otherwise)")
	runCmd.Flags().StringVar(&runAssignmentsOut, "out", "", "path to write the resulting assignment CSV (required)")
	runCmd.Flags().BoolVar(&runAnneal, "anneal", false, "run adaptive simulated annealing against the population-deviation objective after equalizing")
	runCmd.Flags().BoolVar(&runTabu, "tabu", false, "run tabu search after equalizing, instead of annealing")
	_ = runCmd.MarkFlagRequired("graph")
	_ = runCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(runCmd)
}

func runRun(c *cobra.Command, args []string) error {
	g, geoIDs, err := loadGraphFile(runGraphPath)
	if err != nil {
		return err
	}

	pl, err := plan.New(g, cfg.Plan.NumDistricts, geoIDs)
	if err != nil {
		return fmt.Errorf("constructing plan: %w", err)
	}

	if runAssignmentsIn != "" {
		f, err := os.Open(runAssignmentsIn)
		if err != nil {
			return fmt.Errorf("opening --in: %w", err)
		}
		defer f.Close()
		if err := pl.ReadAssignmentsCSV(f); err != nil {
			return fmt.Errorf("reading --in: %w", err)
		}
	} else {
		pl.Randomize(cfg.Search.Seed)
	}

	series := cfg.Plan.BalanceSeries
	log.Info("equalizing", zap.String("series", series), zap.Float64("tolerance", cfg.Search.Tolerance))
	pl.Equalize(series, cfg.Search.Tolerance, cfg.Search.MaxIter, cfg.Search.Seed)

	switch {
	case runTabu:
		pl.TabuBalance(series, cfg.Search.MaxIter, cfg.Search.TabuTenure, cfg.Search.BoundaryFactor, cfg.Search.CandidatesPerIter, cfg.Search.Seed, log)
	case runAnneal:
		obj := objective.New([]objective.Metric{objective.PopulationDeviation(series)}, nil)
		pl.Anneal(obj, cfg.Search.MaxIter, cfg.Search.InitialTemp, cfg.Search.CoolingRate, cfg.Search.EarlyStop, cfg.Search.Window, cfg.Search.Seed, log)
	}

	if moved := pl.EnsureContiguity(); moved {
		log.Info("ensure_contiguity repaired one or more districts")
	}

	out, err := os.Create(runAssignmentsOut)
	if err != nil {
		return fmt.Errorf("creating --out: %w", err)
	}
	defer out.Close()
	if err := pl.WriteAssignmentsCSV(out); err != nil {
		return fmt.Errorf("writing --out: %w", err)
	}

	log.Info("run complete", zap.String("out", runAssignmentsOut))
	return nil
}
