// Package export writes meshes and search paths out for inspection, and reads
// meshes and sample points in, in plain text and GeoJSON.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/osuushi/meshwalk/advanced"
	"github.com/pkg/errors"
)

// WriteTriangles writes the corners of every triangle, one "x, y" line per
// corner and three lines per triangle, in triangle order.
func WriteTriangles(w io.Writer, m *advanced.Mesh) error {
	bw := bufio.NewWriter(w)
	for t := 0; t < m.NumHalfedges(); t += 3 {
		corners, err := m.CoordsOfTriangle(t)
		if err != nil {
			return err
		}
		for _, p := range corners {
			if _, err := fmt.Fprintf(bw, "%f, %f\n", p.X, p.Y); err != nil {
				return errors.Wrap(err, "writing triangles")
			}
		}
	}
	return errors.Wrap(bw.Flush(), "writing triangles")
}

// WritePath writes one triangle index per line.
func WritePath(w io.Writer, path advanced.Path) error {
	bw := bufio.NewWriter(w)
	for _, t := range path {
		if _, err := fmt.Fprintf(bw, "%d\n", t); err != nil {
			return errors.Wrap(err, "writing path")
		}
	}
	return errors.Wrap(bw.Flush(), "writing path")
}

// ReadSamplesText reads one sample per line in the form "x y value". Blank
// lines and lines starting with # are skipped.
func ReadSamplesText(r io.Reader) (coords, values []float64, err error) {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		x, y, value, err := parseSample(line)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		coords = append(coords, x, y)
		values = append(values, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "reading samples")
	}
	return coords, values, nil
}

func parseSample(line string) (x, y, value float64, err error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return 0, 0, 0, errors.Errorf("expected \"x y value\", found %q", line)
	}
	var parsed [3]float64
	for i, part := range parts {
		parsed[i], err = strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, 0, 0, errors.Wrapf(err, "invalid number %q", part)
		}
	}
	return parsed[0], parsed[1], parsed[2], nil
}
