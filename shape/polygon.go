package shape

import (
	"math"
	"time"
)

// PolygonParams holds the ring as flat x,y pairs; the closing edge from the
// last vertex back to the first is implicit.
type PolygonParams struct {
	Vertices []float64 `json:"vertices" yaml:"vertices"`
}

func (p PolygonParams) params() Params {
	return Params{
		ParamVertices: append([]float64(nil), p.Vertices...),
	}
}

func (p PolygonParams) valid() bool {
	if len(p.Vertices) < 6 || len(p.Vertices)%2 != 0 {
		return false
	}

	for _, v := range p.Vertices {
		if !ValidateNumber(v, false) {
			return false
		}
	}

	return true
}

func (p PolygonParams) vertexCount() int {
	return len(p.Vertices) / 2
}

func (p PolygonParams) point(idx int) (x, y float64) {
	idx %= p.vertexCount()

	return p.Vertices[idx*2], p.Vertices[idx*2+1]
}

// area by the shoelace formula.
func (p PolygonParams) area() float64 {
	var sum float64

	for idx, n := 0, p.vertexCount(); idx < n; idx++ {
		x1, y1 := p.point(idx)
		x2, y2 := p.point(idx + 1)

		sum += x1*y2 - x2*y1
	}

	return math.Abs(sum) / 2
}

func (p PolygonParams) perimeter() float64 {
	var sum float64

	for idx, n := 0, p.vertexCount(); idx < n; idx++ {
		x1, y1 := p.point(idx)
		x2, y2 := p.point(idx + 1)

		sum += math.Hypot(x2-x1, y2-y1)
	}

	return sum
}

func (p PolygonParams) centroid() (cx, cy float64) {
	for idx := 0; idx < len(p.Vertices); idx += 2 {
		cx += p.Vertices[idx]
		cy += p.Vertices[idx+1]
	}

	n := float64(p.vertexCount())

	return cx / n, cy / n
}

func (PolygonParams) fromParams(ps Params) (p PolygonParams, err error) {
	p.Vertices, err = ps.Numbers(ParamVertices)

	return
}

type Polygon struct {
	core[PolygonParams]
}

func NewPolygon(p PolygonParams, opts ...Option) (*Polygon, error) {
	return newPolygon(p, "", time.Time{}, optionNew(opts...))
}

func newPolygon(p PolygonParams, id string, createdAt time.Time, opts *Options) (*Polygon, error) {
	p.Vertices = append([]float64(nil), p.Vertices...)

	pg := &Polygon{}

	if err := pg.init(KindPolygon, p, id, createdAt, opts); err != nil {
		return nil, err
	}

	return pg, nil
}

func (pg *Polygon) VertexCount() int {
	return pg.current().vertexCount()
}

func (pg *Polygon) Vertices() []float64 {
	return append([]float64(nil), pg.current().Vertices...)
}

// Centroid is the arithmetic mean of the vertices, the origin Scale works from.
func (pg *Polygon) Centroid() (x, y float64) {
	return pg.current().centroid()
}

func (pg *Polygon) BoundingBox() BoundingBox {
	p := pg.current()

	bb := BoundingBox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}

	for idx := 0; idx < len(p.Vertices); idx += 2 {
		x, y := p.Vertices[idx], p.Vertices[idx+1]

		bb.MinX = math.Min(bb.MinX, x)
		bb.MinY = math.Min(bb.MinY, y)
		bb.MaxX = math.Max(bb.MaxX, x)
		bb.MaxY = math.Max(bb.MaxY, y)
	}

	return bb
}

// Scale moves every vertex away from (or toward) the centroid by factor.
func (pg *Polygon) Scale(factor float64) error {
	if !ValidateNumber(factor, true) {
		return ErrInvalidScaleFactor
	}

	p := pg.current()
	cx, cy := p.centroid()

	vertices := make([]float64, len(p.Vertices))

	for idx, v := range p.Vertices {
		center := cx
		if idx%2 == 1 {
			center = cy
		}

		vertices[idx] = center + (v-center)*factor
	}

	return pg.Update(Params{ParamVertices: vertices})
}
