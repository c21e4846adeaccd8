package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/openmander/redistrict-core/graph"
	"github.com/openmander/redistrict-core/weightmatrix"
)

// graphFile is the CLI's own flat JSON input format for an adjacency
// graph plus node GeoIds and weight series. It is deliberately narrow:
// real census-pack ingestion (shapefile/TIGER, parquet/pmtiles) belongs
// to an external pack loader; this format exists only so the CLI has
// something concrete to read for a demo run.
type graphFile struct {
	Nodes []nodeRecord `json:"nodes"`
	Edges []edgeRecord `json:"edges"`
}

type nodeRecord struct {
	GeoIDKind string             `json:"geo_id_kind"`
	GeoIDCode string             `json:"geo_id_code"`
	Series    map[string]float64 `json:"series"`
}

type edgeRecord struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight"`
}

var geoKindByName = map[string]graph.Kind{
	"state":       graph.State,
	"county":      graph.County,
	"tract":       graph.Tract,
	"block_group": graph.BlockGroup,
	"vtd":         graph.VTD,
	"block":       graph.Block,
}

// loadGraphFile reads path as a graphFile and builds a graph.Graph plus
// the parallel GeoId slice plan.New expects.
func loadGraphFile(path string) (*graph.Graph, []graph.GeoId, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loadGraphFile: %w", err)
	}
	defer f.Close()
	return decodeGraphFile(f)
}

func decodeGraphFile(r io.Reader) (*graph.Graph, []graph.GeoId, error) {
	var gf graphFile
	if err := json.NewDecoder(r).Decode(&gf); err != nil {
		return nil, nil, fmt.Errorf("decodeGraphFile: %w", err)
	}

	n := len(gf.Nodes)
	seriesNames := collectSeriesNames(gf.Nodes)
	kinds := make([]weightmatrix.Kind, len(seriesNames))
	for i := range kinds {
		kinds[i] = weightmatrix.Float64
	}

	m, err := weightmatrix.New(n, seriesNames, kinds)
	if err != nil {
		return nil, nil, fmt.Errorf("decodeGraphFile: building weight matrix: %w", err)
	}
	for i, nr := range gf.Nodes {
		for _, series := range seriesNames {
			if err := m.SetFloat64(series, i, nr.Series[series]); err != nil {
				return nil, nil, fmt.Errorf("decodeGraphFile: node %d series %q: %w", i, series, err)
			}
		}
	}

	adjacency := make([][]int, n)
	adjWeights := make([][]float64, n)
	for _, e := range gf.Edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, nil, fmt.Errorf("decodeGraphFile: edge %d-%d out of range for %d nodes", e.From, e.To, n)
		}
		adjacency[e.From] = append(adjacency[e.From], e.To)
		adjWeights[e.From] = append(adjWeights[e.From], e.Weight)
		adjacency[e.To] = append(adjacency[e.To], e.From)
		adjWeights[e.To] = append(adjWeights[e.To], e.Weight)
	}

	g, err := graph.New(adjacency, adjWeights, m)
	if err != nil {
		return nil, nil, fmt.Errorf("decodeGraphFile: %w", err)
	}

	geoIDs := make([]graph.GeoId, n)
	for i, nr := range gf.Nodes {
		kind, ok := geoKindByName[nr.GeoIDKind]
		if !ok {
			return nil, nil, fmt.Errorf("decodeGraphFile: node %d: unknown geo_id_kind %q", i, nr.GeoIDKind)
		}
		geoIDs[i] = graph.GeoId{Kind: kind, Code: nr.GeoIDCode}
	}

	return g, geoIDs, nil
}

// collectSeriesNames returns the union of series names present across all
// node records, sorted, so weightmatrix columns line up deterministically
// across runs of the same input file regardless of map iteration order.
func collectSeriesNames(nodes []nodeRecord) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range nodes {
		for series := range n.Series {
			if !seen[series] {
				seen[series] = true
				out = append(out, series)
			}
		}
	}
	sort.Strings(out)
	return out
}
