// Package quad maps raster positions inside a four-cornered polygon back to
// texture coordinates.
//
// A Quad is four vertices in stored order. For bilinear interpolation the
// vertices are treated as the corners (0,0), (1,0), (1,1) and (0,1) of the
// parameter square, so vertex 0 and vertex 2 are opposite corners and, for
// the quads found in texture banks, also the corners of the bounding box.
package quad

import (
	"image"
	"math"
)

// Point is an integer raster position.
type Point struct {
	X, Y int
}

// UV is a normalized texture coordinate.
type UV struct {
	U, V float64
}

type Vertex struct {
	Pos Point
	UV  UV
}

type Quad [4]Vertex

// epsilon is the magnitude under which a quadratic coefficient is treated as
// zero.
const epsilon = 1e-9

// Bounds returns the rectangle spanned by vertex 0 (inclusive) and vertex 2
// (exclusive). If vertex 2 is not below and to the right of vertex 0 the
// rectangle is empty along that axis; it is never flipped.
func (q Quad) Bounds() image.Rectangle {
	r := image.Rectangle{
		Min: image.Pt(q[0].Pos.X, q[0].Pos.Y),
		Max: image.Pt(q[2].Pos.X, q[2].Pos.Y),
	}
	if r.Max.X < r.Min.X {
		r.Max.X = r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Max.Y = r.Min.Y
	}
	return r
}

type vec struct{ x, y float64 }

func (a vec) add(b vec) vec { return vec{a.x + b.x, a.y + b.y} }
func (a vec) sub(b vec) vec { return vec{a.x - b.x, a.y - b.y} }

func cross(a, b vec) float64 { return a.x*b.y - a.y*b.x }

func (q Quad) pos(i int) vec {
	return vec{float64(q[i].Pos.X), float64(q[i].Pos.Y)}
}

// Param inverts the bilinear mapping of the quad's corner positions: it
// returns the parameters (s, t) for which blending the four positions
// reproduces (x, y).
//
// Points outside the quad and degenerate quads do not fail; the result is
// always clamped into [0,1].
func (q Quad) Param(x, y float64) (s, t float64) {
	a, b, c, d := q.pos(0), q.pos(1), q.pos(2), q.pos(3)

	// P(s,t) = a + s*e + t*f + s*t*g
	e := b.sub(a)
	f := d.sub(a)
	g := a.sub(b).add(c).sub(d)
	h := vec{x, y}.sub(a)

	// Crossing h - t*f = s*(e + t*g) with (e + t*g) leaves a quadratic in t.
	k2 := cross(g, f)
	k1 := cross(e, f) + cross(h, g)
	k0 := cross(h, e)

	if math.Abs(k2) < epsilon {
		// Parallelogram (or trapezoid with parallel sides along s): linear.
		if math.Abs(k1) < epsilon {
			return 0, 0
		}
		t = -k0 / k1
		s = solveS(e, f, g, h, t)
		return clamp01(s), clamp01(t)
	}

	disc := k1*k1 - 4*k0*k2
	if disc < 0 {
		disc = 0
	}
	w := math.Sqrt(disc)
	ik2 := 0.5 / k2

	t = (-k1 - w) * ik2
	s = solveS(e, f, g, h, t)
	if !in01(s) || !in01(t) {
		t2 := (-k1 + w) * ik2
		s2 := solveS(e, f, g, h, t2)
		if in01(s2) && in01(t2) {
			s, t = s2, t2
		}
	}
	return clamp01(s), clamp01(t)
}

// solveS recovers s from h - t*f = s*(e + t*g), using the better conditioned
// axis.
func solveS(e, f, g, h vec, t float64) float64 {
	dx := e.x + g.x*t
	dy := e.y + g.y*t
	if math.Abs(dx) >= math.Abs(dy) {
		if dx == 0 {
			return 0
		}
		return (h.x - f.x*t) / dx
	}
	return (h.y - f.y*t) / dy
}

// Blend returns the bilinear blend of the corner texture coordinates at
// parameters (s, t).
func (q Quad) Blend(s, t float64) UV {
	w0 := (1 - s) * (1 - t)
	w1 := s * (1 - t)
	w2 := s * t
	w3 := (1 - s) * t
	return UV{
		U: w0*q[0].UV.U + w1*q[1].UV.U + w2*q[2].UV.U + w3*q[3].UV.U,
		V: w0*q[0].UV.V + w1*q[1].UV.V + w2*q[2].UV.V + w3*q[3].UV.V,
	}
}

// UVAt maps a raster position inside the quad to its texture coordinate.
func (q Quad) UVAt(x, y float64) UV {
	return q.Blend(q.Param(x, y))
}

func in01(v float64) bool {
	return v >= -epsilon && v <= 1+epsilon
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
