package shape

import (
	"math"
	"sort"
	"time"
)

type TriangleParams struct {
	SideA float64 `json:"sideA" yaml:"sideA"`
	SideB float64 `json:"sideB" yaml:"sideB"`
	SideC float64 `json:"sideC" yaml:"sideC"`
}

func (p TriangleParams) params() Params {
	return Params{
		ParamSideA: p.SideA,
		ParamSideB: p.SideB,
		ParamSideC: p.SideC,
	}
}

func (p TriangleParams) valid() bool {
	if !ValidateNumber(p.SideA, true) || !ValidateNumber(p.SideB, true) || !ValidateNumber(p.SideC, true) {
		return false
	}

	return p.SideA+p.SideB > p.SideC &&
		p.SideA+p.SideC > p.SideB &&
		p.SideB+p.SideC > p.SideA
}

// area by Heron's formula.
func (p TriangleParams) area() float64 {
	s := p.perimeter() / 2

	return math.Sqrt(s * (s - p.SideA) * (s - p.SideB) * (s - p.SideC))
}

func (p TriangleParams) perimeter() float64 {
	return p.SideA + p.SideB + p.SideC
}

func (TriangleParams) fromParams(ps Params) (p TriangleParams, err error) {
	if p.SideA, err = ps.Number(ParamSideA); err != nil {
		return
	}

	if p.SideB, err = ps.Number(ParamSideB); err != nil {
		return
	}

	p.SideC, err = ps.Number(ParamSideC)

	return
}

type Triangle struct {
	core[TriangleParams]
}

func NewTriangle(p TriangleParams, opts ...Option) (*Triangle, error) {
	return newTriangle(p, "", time.Time{}, optionNew(opts...))
}

func newTriangle(p TriangleParams, id string, createdAt time.Time, opts *Options) (*Triangle, error) {
	t := &Triangle{}

	if err := t.init(KindTriangle, p, id, createdAt, opts); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Triangle) SideA() float64 {
	return t.current().SideA
}

func (t *Triangle) SideB() float64 {
	return t.current().SideB
}

func (t *Triangle) SideC() float64 {
	return t.current().SideC
}

func (t *Triangle) IsRightTriangle() bool {
	p := t.current()

	sides := []float64{p.SideA, p.SideB, p.SideC}
	sort.Float64s(sides)

	return almostEqual(sides[2]*sides[2], sides[0]*sides[0]+sides[1]*sides[1])
}

func (t *Triangle) IsEquilateral() bool {
	p := t.current()

	return almostEqual(p.SideA, p.SideB) && almostEqual(p.SideB, p.SideC)
}

func (t *Triangle) IsIsosceles() bool {
	p := t.current()

	return almostEqual(p.SideA, p.SideB) || almostEqual(p.SideA, p.SideC) || almostEqual(p.SideB, p.SideC)
}
