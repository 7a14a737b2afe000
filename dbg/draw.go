package dbg

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/meshwalk/advanced"
)

// Padding around the mesh so that points just outside it stay visible
const drawPadding = 40

// Draw renders the mesh to a PNG file, with the triangles of a search path
// filled in and the query point marked. scale is in pixels per mesh unit.
func Draw(m *advanced.Mesh, path advanced.Path, query advanced.Point, scale float64, file string) error {
	bounds := m.Bounds()
	minX := math.Min(bounds.X.Lo, query.X)
	minY := math.Min(bounds.Y.Lo, query.Y)
	maxX := math.Max(bounds.X.Hi, query.X)
	maxY := math.Max(bounds.Y.Hi, query.Y)

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(drawPadding, drawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	// Path triangles get darker the later they were visited
	for i, t := range path {
		corners, err := m.CoordsOfTriangle(t)
		if err != nil {
			return err
		}
		traceTriangle(c, corners)
		shade := 0.3 + 0.7*float64(i+1)/float64(len(path))
		c.SetRGBA(0.3, 0.2, 1, shade*0.6)
		c.Fill()
	}

	c.SetLineWidth(2)
	for t := 0; t < m.NumHalfedges(); t += 3 {
		corners, err := m.CoordsOfTriangle(t)
		if err != nil {
			return err
		}
		traceTriangle(c, corners)
		c.SetRGB(0, 1, 0)
		c.Stroke()

		centroid, err := m.Centroid(t)
		if err != nil {
			return err
		}
		drawLabel(c, Name(t), centroid)
	}

	// Mark the query, and the line the walk follows out of the first triangle
	if len(path) > 0 {
		if start, err := m.Centroid(path[0]); err == nil {
			c.MoveTo(query.X, query.Y)
			c.LineTo(start.X, start.Y)
			c.SetRGB(1, 1, 0)
			c.Stroke()
		}
	}
	c.DrawCircle(query.X, query.Y, 4/scale)
	c.SetRGB(1, 0, 0)
	c.Fill()

	return c.SavePNG(file)
}

func traceTriangle(c *gg.Context, corners [3]advanced.Point) {
	c.MoveTo(corners[0].X, corners[0].Y)
	c.LineTo(corners[1].X, corners[1].Y)
	c.LineTo(corners[2].X, corners[2].Y)
	c.ClosePath()
}

func drawLabel(c *gg.Context, text string, at advanced.Point) {
	// We have to go back to identity to draw the text, so get the point in native coordinates
	x, y := c.TransformPoint(at.X, at.Y)
	c.Push()
	c.Identity()
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(text, x, y, 0.5, 0.5)
	c.Pop()
}

// Show prints a PNG to the terminal (iTerm only).
func Show(file string, w io.Writer) error {
	return imgcat.CatFile(file, w)
}
