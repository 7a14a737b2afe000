package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/osuushi/meshwalk"
	"github.com/osuushi/meshwalk/dbg"
	"github.com/osuushi/meshwalk/export"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Demo of point location. The mesh is read from --mesh, or from stdin when it
// is not given, as GeoJSON triangles in the form written by --geojson-out. The
// triangle containing the query point is found by walking from --init, and the
// field is interpolated there.
//
// Reference samples given with --samples are interpolated in one batch and
// compared with their own values. Text input has one sample per line in the
// form "x y value"; files ending in .json or .geojson are read as a
// FeatureCollection of points with a "value" property.
var (
	app = kingpin.New("meshwalk", "Locate a point in a triangulation and interpolate there.")

	meshFile     = app.Flag("mesh", "Mesh file (GeoJSON triangles with a values property).").ExistingFile()
	samplesFile  = app.Flag("samples", "Reference samples to check the mesh against (text or GeoJSON).").ExistingFile()
	queryX       = app.Flag("x", "X coordinate of the query point.").Required().Float64()
	queryY       = app.Flag("y", "Y coordinate of the query point.").Required().Float64()
	initTriangle = app.Flag("init", "Triangle to start walking from.").Default("0").Int()
	maxSteps     = app.Flag("max-steps", "Give up after this many steps (0 for one per triangle).").Default("0").Int()

	trianglesOut = app.Flag("triangles-out", "Write triangle corners here.").String()
	pathOut      = app.Flag("path-out", "Write the search path here.").String()
	geojsonOut   = app.Flag("geojson-out", "Write the mesh and search path here as GeoJSON.").String()
	pngOut       = app.Flag("png", "Draw the mesh and search path to this PNG file.").String()
	scale        = app.Flag("scale", "Pixels per unit in the PNG.").Default("100").Float64()
	show         = app.Flag("show", "Print the PNG to the terminal (iTerm only).").Bool()
	trace        = app.Flag("trace", "Print each triangle visited to stderr.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	opts := []meshwalk.Option{meshwalk.WithMaxSteps(*maxSteps)}
	if *trace {
		opts = append(opts, meshwalk.WithTracer(dbg.NewTracer(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))))
	}
	m, err := readMesh(*meshFile, opts...)
	app.FatalIfError(err, "reading mesh")
	fmt.Printf("Read %d triangles over %d vertices\n", m.NumTriangles(), m.Size())

	query := meshwalk.Point{X: *queryX, Y: *queryY}
	path, searchErr := m.Search(query, *initTriangle)

	// Dumps are written even when the search fails, since the partial path is
	// usually what needs looking at.
	if *trianglesOut != "" {
		app.FatalIfError(writeFile(*trianglesOut, func(w io.Writer) error {
			return export.WriteTriangles(w, m)
		}), "writing triangles")
	}
	if *pathOut != "" {
		app.FatalIfError(writeFile(*pathOut, func(w io.Writer) error {
			return export.WritePath(w, path)
		}), "writing path")
	}
	if *geojsonOut != "" {
		app.FatalIfError(writeFile(*geojsonOut, func(w io.Writer) error {
			return writeGeoJSON(w, m, path, query)
		}), "writing geojson")
	}
	if *pngOut != "" {
		app.FatalIfError(dbg.Draw(m, path, query, *scale, *pngOut), "drawing")
		if *show {
			app.FatalIfError(dbg.Show(*pngOut, os.Stdout), "showing")
		}
	}

	app.FatalIfError(searchErr, "%s", searchContext(*initTriangle, path))
	value, err := m.Interp(query, path.Last())
	app.FatalIfError(err, "interpolating")
	fmt.Printf("Found %v in triangle %d after %d steps\n", query, path.Last(), len(path)-1)
	fmt.Printf("%g\n", value)

	if *samplesFile != "" {
		coords, values, err := readSamples(*samplesFile)
		app.FatalIfError(err, "reading samples")
		fmt.Println(checkSamples(m, coords, values))
	}
}

// Says where a failed search started, and how far it got. An init that is
// not a triangle fails before the first step, leaving the path empty.
func searchContext(init int, path meshwalk.Path) string {
	if len(path) == 0 {
		return fmt.Sprintf("searching from triangle %d", init)
	}
	return fmt.Sprintf("searching from triangle %d after %d steps", init, len(path)-1)
}

func readMesh(file string, opts ...meshwalk.Option) (*meshwalk.Mesh, error) {
	r := io.Reader(os.Stdin)
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	coords, values, triangles, err := export.ReadMesh(r)
	if err != nil {
		return nil, err
	}
	return meshwalk.New(coords, values, triangles, opts...)
}

// Interpolates every sample at once and sums up how far off the mesh is.
func checkSamples(m *meshwalk.Mesh, coords, values []float64) string {
	points := make([]meshwalk.Point, len(values))
	for i := range points {
		points[i] = meshwalk.Point{X: coords[2*i], Y: coords[2*i+1]}
	}

	var outside int
	var worst float64
	for i, value := range meshwalk.Interpolate(m, points) {
		if math.IsNaN(value) {
			outside++
			continue
		}
		worst = math.Max(worst, math.Abs(value-values[i]))
	}
	return fmt.Sprintf("Checked %d samples: %d outside the mesh, largest error %g", len(points), outside, worst)
}

func readSamples(file string) (coords, values []float64, err error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(file)) {
	case ".json", ".geojson":
		return export.ReadSamples(f)
	default:
		return export.ReadSamplesText(f)
	}
}

func writeGeoJSON(w io.Writer, m *meshwalk.Mesh, path meshwalk.Path, query meshwalk.Point) error {
	fc, err := export.MeshToGeoJSON(m)
	if err != nil {
		return err
	}
	walk, err := export.PathToGeoJSON(m, path, query)
	if err != nil {
		return err
	}
	fc.Features = append(fc.Features, walk.Features...)

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
