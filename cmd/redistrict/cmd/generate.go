package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openmander/redistrict-core/internal/rng"
)

var (
	genRows   int
	genCols   int
	genSeed   int64
	genOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic rows x cols rook-adjacency block grid as a graphFile JSON input",
	Long: `generate emits a synthetic graphFile JSON suitable for the run
command's --graph flag: a rows x cols grid of blocks, each a node with a
randomized "pop" series and a unit "area_m2" series, connected to its
up/down/left/right neighbors by unit-weight edges (rook adjacency). It
is meant for demos and local testing, not for real census ingestion.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&genRows, "rows", 4, "grid row count")
	generateCmd.Flags().IntVar(&genCols, "cols", 4, "grid column count")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 1, "seed for per-block population randomization")
	generateCmd.Flags().StringVar(&genOutput, "out", "", "path to write the generated graphFile JSON (required)")
	_ = generateCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(generateCmd)
}

// rookOffsets are the four-connectivity neighbor deltas for a row-major
// grid: up, down, left, right.
var rookOffsets = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func runGenerate(c *cobra.Command, args []string) error {
	if genRows <= 0 || genCols <= 0 {
		return fmt.Errorf("generate: --rows and --cols must be positive")
	}

	r := rng.FromSeed(genSeed)
	index := func(x, y int) int { return y*genCols + x }
	inBounds := func(x, y int) bool { return x >= 0 && x < genCols && y >= 0 && y < genRows }

	n := genRows * genCols
	nodes := make([]nodeRecord, n)
	for y := 0; y < genRows; y++ {
		for x := 0; x < genCols; x++ {
			pop := 50 + r.Intn(450) // a plausible per-block population range
			nodes[index(x, y)] = nodeRecord{
				GeoIDKind: "block",
				GeoIDCode: fmt.Sprintf("%09d%06d", 1, index(x, y)),
				Series:    map[string]float64{"pop": float64(pop), "area_m2": 1.0},
			}
		}
	}

	var edges []edgeRecord
	for y := 0; y < genRows; y++ {
		for x := 0; x < genCols; x++ {
			u := index(x, y)
			for _, d := range rookOffsets {
				nx, ny := x+d[0], y+d[1]
				if !inBounds(nx, ny) {
					continue
				}
				v := index(nx, ny)
				if v < u {
					continue // each undirected edge emitted once
				}
				edges = append(edges, edgeRecord{From: u, To: v, Weight: 1.0})
			}
		}
	}

	gf := graphFile{Nodes: nodes, Edges: edges}
	out, err := os.Create(genOutput)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(gf); err != nil {
		return fmt.Errorf("generate: encoding output: %w", err)
	}

	log.Info("generated synthetic grid",
		zap.Int("rows", genRows), zap.Int("cols", genCols), zap.String("out", genOutput))
	return nil
}
