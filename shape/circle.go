package shape

import (
	"math"
	"time"
)

type CircleParams struct {
	Radius float64 `json:"radius" yaml:"radius"`
}

func (p CircleParams) params() Params {
	return Params{
		ParamRadius: p.Radius,
	}
}

func (p CircleParams) valid() bool {
	return ValidateNumber(p.Radius, true)
}

func (p CircleParams) area() float64 {
	return math.Pi * p.Radius * p.Radius
}

func (p CircleParams) perimeter() float64 {
	return 2 * math.Pi * p.Radius
}

func (CircleParams) fromParams(ps Params) (p CircleParams, err error) {
	p.Radius, err = ps.Number(ParamRadius)

	return
}

type Circle struct {
	core[CircleParams]
}

func NewCircle(p CircleParams, opts ...Option) (*Circle, error) {
	return newCircle(p, "", time.Time{}, optionNew(opts...))
}

func newCircle(p CircleParams, id string, createdAt time.Time, opts *Options) (*Circle, error) {
	c := &Circle{}

	if err := c.init(KindCircle, p, id, createdAt, opts); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Circle) Radius() float64 {
	return c.current().Radius
}

func (c *Circle) Diameter() float64 {
	return 2 * c.current().Radius
}

// Circumference equals Perimeter but publishes no event.
func (c *Circle) Circumference() float64 {
	return c.current().perimeter()
}
