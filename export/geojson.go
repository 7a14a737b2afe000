package export

import (
	"io"

	"github.com/osuushi/meshwalk/advanced"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// MeshToGeoJSON makes one polygon feature per triangle, carrying its index,
// vertex ids, vertex values, and area.
func MeshToGeoJSON(m *advanced.Mesh) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for t := 0; t < m.NumHalfedges(); t += 3 {
		feature, err := triangleFeature(m, t)
		if err != nil {
			return nil, err
		}
		fc.Append(feature)
	}
	return fc, nil
}

// PathToGeoJSON describes a search: each visited triangle with its step
// number, the line through their centroids in visit order, and the query
// point itself.
func PathToGeoJSON(m *advanced.Mesh, path advanced.Path, query advanced.Point) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	line := make(orb.LineString, 0, len(path))
	for i, t := range path {
		feature, err := triangleFeature(m, t)
		if err != nil {
			return nil, err
		}
		feature.Properties["step"] = i
		fc.Append(feature)

		centroid, err := m.Centroid(t)
		if err != nil {
			return nil, err
		}
		line = append(line, orb.Point{centroid.X, centroid.Y})
	}

	if len(line) > 1 {
		walk := geojson.NewFeature(line)
		walk.Properties["path"] = []int(path)
		fc.Append(walk)
	}

	target := geojson.NewFeature(orb.Point{query.X, query.Y})
	target.Properties["query"] = true
	fc.Append(target)
	return fc, nil
}

func triangleFeature(m *advanced.Mesh, t int) (*geojson.Feature, error) {
	corners, err := m.CoordsOfTriangle(t)
	if err != nil {
		return nil, err
	}
	vertices, err := m.VerticesOfTriangle(t)
	if err != nil {
		return nil, err
	}

	ring := orb.Ring{
		{corners[0].X, corners[0].Y},
		{corners[1].X, corners[1].Y},
		{corners[2].X, corners[2].Y},
		{corners[0].X, corners[0].Y},
	}
	var values [3]float64
	for i, v := range vertices {
		if values[i], err = m.Value(v); err != nil {
			return nil, err
		}
	}

	polygon := orb.Polygon{ring}
	feature := geojson.NewFeature(polygon)
	feature.Properties["triangle"] = t - t%3
	feature.Properties["vertices"] = vertices[:]
	feature.Properties["values"] = values[:]
	feature.Properties["area"] = planar.Area(polygon)
	return feature, nil
}

// ReadSamples reads a GeoJSON FeatureCollection of points, each with a
// numeric "value" property. Features of any other geometry are skipped.
func ReadSamples(r io.Reader) (coords, values []float64, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading samples")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing samples")
	}

	for i, feature := range fc.Features {
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			continue
		}
		value, ok := feature.Properties["value"].(float64)
		if !ok {
			return nil, nil, errors.Errorf("feature %d has no numeric value property", i)
		}
		coords = append(coords, point.X(), point.Y())
		values = append(values, value)
	}
	return coords, values, nil
}

// ReadMesh reads a triangulation back from GeoJSON laid out the way
// MeshToGeoJSON writes it: a FeatureCollection of triangular polygons, each
// with a "values" property listing the value at its three corners in ring
// order. Corners with identical coordinates become one vertex, and every
// triangle is turned counterclockwise. Features of any other geometry are
// skipped, and so are the triangles PathToGeoJSON marks with a step, so a mesh
// written out together with a search reads back as just the mesh.
func ReadMesh(r io.Reader) (coords, values []float64, triangles []int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "reading mesh")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "parsing mesh")
	}

	ids := map[orb.Point]int{}
	for i, feature := range fc.Features {
		polygon, ok := feature.Geometry.(orb.Polygon)
		if !ok {
			continue
		}
		if _, ok := feature.Properties["step"]; ok {
			continue
		}
		if len(polygon) != 1 || len(polygon[0]) != 4 || !polygon[0].Closed() {
			return nil, nil, nil, errors.Errorf("feature %d is not a triangle", i)
		}
		cornerValues, err := triangleValues(feature.Properties["values"])
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "feature %d", i)
		}

		ring := polygon[0].Clone()
		switch ring.Orientation() {
		case orb.CW:
			ring[1], ring[2] = ring[2], ring[1]
			cornerValues[1], cornerValues[2] = cornerValues[2], cornerValues[1]
		case 0:
			return nil, nil, nil, errors.Wrapf(advanced.ErrDegenerateTriangle, "feature %d", i)
		}

		for c, corner := range ring[:3] {
			id, ok := ids[corner]
			if !ok {
				id = len(values)
				ids[corner] = id
				coords = append(coords, corner.X(), corner.Y())
				values = append(values, cornerValues[c])
			} else if values[id] != cornerValues[c] {
				return nil, nil, nil, errors.Errorf("feature %d gives corner %v the value %g, but it already has %g", i, corner, cornerValues[c], values[id])
			}
			triangles = append(triangles, id)
		}
	}
	if len(triangles) == 0 {
		return nil, nil, nil, errors.New("no triangles found")
	}
	return coords, values, triangles, nil
}

func triangleValues(property interface{}) ([3]float64, error) {
	var out [3]float64
	list, ok := property.([]interface{})
	if !ok || len(list) != 3 {
		return out, errors.New("values property must list three numbers")
	}
	for i, v := range list {
		if out[i], ok = v.(float64); !ok {
			return out, errors.Errorf("value %v is not a number", v)
		}
	}
	return out, nil
}
