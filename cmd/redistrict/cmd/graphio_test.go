package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeGraphFile_BuildsGraphAndGeoIDs(t *testing.T) {
	input := `{
		"nodes": [
			{"geo_id_kind": "block", "geo_id_code": "000010001001000", "series": {"pop": 10}},
			{"geo_id_kind": "block", "geo_id_code": "000010001001001", "series": {"pop": 20}}
		],
		"edges": [{"from": 0, "to": 1, "weight": 1.0}]
	}`

	g, geoIDs, err := decodeGraphFile(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 2, g.EdgeCount())
	require.Len(t, geoIDs, 2)
	require.Equal(t, "000010001001000", geoIDs[0].Code)
	require.Equal(t, 10.0, g.NodeWeights().MustGetAsF64("pop", 0))
}

func TestDecodeGraphFile_RejectsOutOfRangeEdge(t *testing.T) {
	input := `{"nodes": [{"geo_id_kind": "block", "geo_id_code": "x", "series": {}}], "edges": [{"from": 0, "to": 5, "weight": 1.0}]}`
	_, _, err := decodeGraphFile(strings.NewReader(input))
	require.Error(t, err)
}

func TestDecodeGraphFile_RejectsUnknownGeoKind(t *testing.T) {
	input := `{"nodes": [{"geo_id_kind": "planet", "geo_id_code": "x", "series": {}}], "edges": []}`
	_, _, err := decodeGraphFile(strings.NewReader(input))
	require.Error(t, err)
}
