package shapeutil

import (
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libshapes/shape"
	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"
)

type Calculator interface {
	CompareArea(s1, s2 shape.Shape) float64
	TotalArea(shapes []shape.Shape) float64
	TotalPerimeter(shapes []shape.Shape) float64
}

// NewCalculator runs at most limit computations at once; limit <= 0 means no limit.
func NewCalculator(limit int, logger l.Wrapper) Calculator {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &calculatorImpl{
		logger: logger.WithFields(l.StringField(l.ClsKey, "calculatorImpl")),
		limit:  limit,
	}
}

type calculatorImpl struct {
	logger l.Wrapper
	limit  int
}

// CompareArea returns the signed difference area(s1) - area(s2).
func (impl *calculatorImpl) CompareArea(s1, s2 shape.Shape) float64 {
	areas := impl.collect([]shape.Shape{s1, s2}, shape.Shape.Area)

	return areas[0] - areas[1]
}

func (impl *calculatorImpl) TotalArea(shapes []shape.Shape) float64 {
	return impl.sum(shape.CalculationArea, shapes, shape.Shape.Area)
}

func (impl *calculatorImpl) TotalPerimeter(shapes []shape.Shape) float64 {
	return impl.sum(shape.CalculationPerimeter, shapes, shape.Shape.Perimeter)
}

func (impl *calculatorImpl) sum(calculation shape.Calculation, shapes []shape.Shape, fn func(shape.Shape) float64) (total float64) {
	for _, v := range impl.collect(shapes, fn) {
		total += v
	}

	impl.logger.WithFields(l.StringField("calculation", string(calculation)), l.IntField("shapes", len(shapes)),
		l.StringField("total", cast.ToString(total))).Debug("aggregated")

	return
}

// collect evaluates fn on every shape concurrently; results keep the input order.
func (impl *calculatorImpl) collect(shapes []shape.Shape, fn func(shape.Shape) float64) []float64 {
	vs := make([]float64, len(shapes))

	var g errgroup.Group

	if impl.limit > 0 {
		g.SetLimit(impl.limit)
	}

	for idx, s := range shapes {
		idx, s := idx, s

		g.Go(func() error {
			vs[idx] = fn(s)

			return nil
		})
	}

	_ = g.Wait()

	return vs
}

var defaultCalculator = NewCalculator(0, nil)

func CompareArea(s1, s2 shape.Shape) float64 {
	return defaultCalculator.CompareArea(s1, s2)
}

func TotalArea(shapes []shape.Shape) float64 {
	return defaultCalculator.TotalArea(shapes)
}

func TotalPerimeter(shapes []shape.Shape) float64 {
	return defaultCalculator.TotalPerimeter(shapes)
}
