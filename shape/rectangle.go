package shape

import (
	"math"
	"time"
)

type RectangleParams struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (p RectangleParams) params() Params {
	return Params{
		ParamWidth:  p.Width,
		ParamHeight: p.Height,
	}
}

func (p RectangleParams) valid() bool {
	return ValidateNumber(p.Width, true) && ValidateNumber(p.Height, true)
}

func (p RectangleParams) area() float64 {
	return p.Width * p.Height
}

func (p RectangleParams) perimeter() float64 {
	return 2 * (p.Width + p.Height)
}

func (RectangleParams) fromParams(ps Params) (p RectangleParams, err error) {
	if p.Width, err = ps.Number(ParamWidth); err != nil {
		return
	}

	p.Height, err = ps.Number(ParamHeight)

	return
}

type Rectangle struct {
	core[RectangleParams]
}

func NewRectangle(p RectangleParams, opts ...Option) (*Rectangle, error) {
	return newRectangle(p, "", time.Time{}, optionNew(opts...))
}

func newRectangle(p RectangleParams, id string, createdAt time.Time, opts *Options) (*Rectangle, error) {
	r := &Rectangle{}

	if err := r.init(KindRectangle, p, id, createdAt, opts); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Rectangle) Width() float64 {
	return r.current().Width
}

func (r *Rectangle) Height() float64 {
	return r.current().Height
}

func (r *Rectangle) Diagonal() float64 {
	p := r.current()

	return math.Sqrt(p.Width*p.Width + p.Height*p.Height)
}

func (r *Rectangle) IsSquare() bool {
	p := r.current()

	return almostEqual(p.Width, p.Height)
}
