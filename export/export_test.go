package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/osuushi/meshwalk/advanced"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMesh(t *testing.T) *advanced.Mesh {
	m, err := advanced.NewMesh(
		[]float64{-1, 1, 1, 1, 1, -1, -1, -1, 0, 0, -1, 0},
		[]float64{0, 1, 2, 3, 4, 5},
		[]int{0, 4, 1, 4, 2, 1, 4, 3, 2, 0, 5, 4, 5, 3, 4},
		[]int{11, 5, -1, 8, -1, 1, 13, -1, 3, -1, 14, 0, -1, 6, 10},
	)
	require.NoError(t, err)
	return m
}

func TestWriteTriangles(t *testing.T) {
	m := testMesh(t)
	var out bytes.Buffer
	require.NoError(t, WriteTriangles(&out, m))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, 3*m.NumTriangles())
	assert.Equal(t, []string{
		"-1.000000, 1.000000",
		"0.000000, 0.000000",
		"1.000000, 1.000000",
	}, lines[:3])
}

func TestWritePath(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WritePath(&out, advanced.Path{0, 9, 12}))
	assert.Equal(t, "0\n9\n12\n", out.String())
}

func TestReadSamplesText(t *testing.T) {
	input := `# x y value
0 0 1

1.5 -2 3e2
  -1 1 -0.25
`
	coords, values, err := ReadSamplesText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1.5, -2, -1, 1}, coords)
	assert.Equal(t, []float64{1, 300, -0.25}, values)

	t.Run("missing value", func(t *testing.T) {
		_, _, err := ReadSamplesText(strings.NewReader("0 0 1\n1 2\n"))
		assert.EqualError(t, err, `line 2: expected "x y value", found "1 2"`)
	})

	t.Run("not a number", func(t *testing.T) {
		_, _, err := ReadSamplesText(strings.NewReader("0 zero 1\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `line 1: invalid number "zero"`)
	})
}

func TestMeshToGeoJSON(t *testing.T) {
	m := testMesh(t)
	fc, err := MeshToGeoJSON(m)
	require.NoError(t, err)
	require.Len(t, fc.Features, m.NumTriangles())

	feature := fc.Features[1]
	polygon, ok := feature.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, polygon, 1)
	assert.Equal(t, orb.Ring{{0, 0}, {1, -1}, {1, 1}, {0, 0}}, polygon[0])
	assert.Equal(t, 3, feature.Properties["triangle"])
	assert.Equal(t, []int{4, 2, 1}, feature.Properties["vertices"])
	assert.Equal(t, []float64{4, 2, 1}, feature.Properties["values"])
	assert.InDelta(t, 1, math.Abs(feature.Properties["area"].(float64)), 1e-12)
}

func TestPathToGeoJSON(t *testing.T) {
	m := testMesh(t)
	query := advanced.Point{X: -1, Y: -1}
	path, err := m.Search(query, 0)
	require.NoError(t, err)

	fc, err := PathToGeoJSON(m, path, query)
	require.NoError(t, err)
	// One polygon per step, the centroid line, and the query point
	require.Len(t, fc.Features, len(path)+2)

	for i := range path {
		assert.Equal(t, i, fc.Features[i].Properties["step"])
	}
	line, ok := fc.Features[len(path)].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, len(path))
	assert.Equal(t, orb.Point{-1, -1}, fc.Features[len(path)+1].Geometry)

	_, err = PathToGeoJSON(m, advanced.Path{42}, query)
	assert.ErrorIs(t, err, advanced.ErrIndexOutOfRange)
}

func TestReadSamples(t *testing.T) {
	input := `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 1]}, "properties": {"value": 2.5}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}, "properties": {}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-3, 4]}, "properties": {"value": -1}}
  ]
}`
	coords, values, err := ReadSamples(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, -3, 4}, coords)
	assert.Equal(t, []float64{2.5, -1}, values)

	t.Run("missing value", func(t *testing.T) {
		input := `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 1]}, "properties": {"value": "high"}}
		]}`
		_, _, err := ReadSamples(strings.NewReader(input))
		assert.EqualError(t, err, "feature 0 has no numeric value property")
	})

	t.Run("not geojson", func(t *testing.T) {
		_, _, err := ReadSamples(strings.NewReader("0 0 1"))
		assert.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	m := testMesh(t)
	fc, err := MeshToGeoJSON(m)
	require.NoError(t, err)
	data, err := fc.MarshalJSON()
	require.NoError(t, err)

	// Triangles are not samples, so nothing comes back
	coords, values, err := ReadSamples(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, coords)
	assert.Empty(t, values)

	coords, values, triangles, err := ReadMesh(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, values, m.Size())
	assert.Len(t, triangles, m.NumHalfedges())

	halfedges, err := advanced.LinkHalfedges(triangles)
	require.NoError(t, err)
	back, err := advanced.NewMesh(coords, values, triangles, halfedges)
	require.NoError(t, err)
	for _, p := range []advanced.Point{{X: 0.2, Y: 0.7}, {X: -0.9, Y: -0.3}, {X: 0.6, Y: -0.1}, {X: 1, Y: 1}} {
		expected, err := m.Interp(p, 0)
		require.NoError(t, err)
		value, err := back.Interp(p, 0)
		require.NoError(t, err)
		assert.InDelta(t, expected, value, advanced.Tolerance, "%v", p)
	}
}

func TestReadMesh(t *testing.T) {
	// The second triangle is clockwise, and shares its first two corners with
	// the first.
	input := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [0, 1], [0, 0]]]}, "properties": {"values": [1, 2, 3]}},
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [5, 5]}, "properties": {}},
		{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, -1], [0, 0]]]}, "properties": {"values": [1, 2, 4]}}
	]}`
	coords, values, triangles, err := ReadMesh(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 0, 0, 1, 1, -1}, coords)
	assert.Equal(t, []float64{1, 2, 3, 4}, values)
	assert.Equal(t, []int{0, 1, 2, 0, 3, 1}, triangles)

	cases := []struct {
		name     string
		features string
		expected string
	}{
		{
			"square",
			`{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]]]}, "properties": {"values": [1, 2, 3]}}`,
			"feature 0 is not a triangle",
		},
		{
			"missing values",
			`{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [0, 1], [0, 0]]]}, "properties": {}}`,
			"feature 0: values property must list three numbers",
		},
		{
			"conflicting values",
			`{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [0, 1], [0, 0]]]}, "properties": {"values": [1, 2, 3]}},
			{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [0, 1], [-1, 0], [0, 0]]]}, "properties": {"values": [7, 3, 5]}}`,
			"feature 1 gives corner [0 0] the value 7, but it already has 1",
		},
		{
			"no triangles",
			`{"type": "Feature", "geometry": {"type": "Point", "coordinates": [0, 0]}, "properties": {"value": 1}}`,
			"no triangles found",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, _, err := ReadMesh(strings.NewReader(`{"type": "FeatureCollection", "features": [` + c.features + `]}`))
			assert.EqualError(t, err, c.expected)
		})
	}

	t.Run("degenerate", func(t *testing.T) {
		input := `{"type": "FeatureCollection", "features": [
			{"type": "Feature", "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 1], [2, 2], [0, 0]]]}, "properties": {"values": [1, 2, 3]}}
		]}`
		_, _, _, err := ReadMesh(strings.NewReader(input))
		assert.ErrorIs(t, err, advanced.ErrDegenerateTriangle)
	})
}
