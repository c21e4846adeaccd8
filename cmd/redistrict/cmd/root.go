package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openmander/redistrict-core/internal/config"
)

var (
	cfgPath string
	runID   string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "redistrict",
	Short: "Balance, anneal, and recombine electoral district assignments",
	Long: `redistrict drives the partition search algorithms (randomize,
equalize, anneal, tabu, recombine) over a precomputed block-adjacency
graph, and reads/writes block-to-district assignments as flat CSV.`,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded

		zcfg := zap.NewProductionConfig()
		if cfg.Log.Format == "console" {
			zcfg = zap.NewDevelopmentConfig()
		}
		level, err := zap.ParseAtomicLevel(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("parsing log level %q: %w", cfg.Log.Level, err)
		}
		zcfg.Level = level

		built, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}

		runID = uuid.New().String()
		log = built.With(zap.String("run_id", runID))
		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a redistrict.yaml config file")
}
