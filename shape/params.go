package shape

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

const (
	ParamWidth    = "width"
	ParamHeight   = "height"
	ParamSideA    = "sideA"
	ParamSideB    = "sideB"
	ParamSideC    = "sideC"
	ParamRadius   = "radius"
	ParamVertices = "vertices"
)

// epsilon is the spacing between 1.0 and the next representable float64.
const epsilon = 2.220446049250313e-16

// Params is the generic view of a shape: field name to float64 or []float64.
// Inputs may carry any Go numeric type.
type Params map[string]interface{}

func (p Params) Clone() Params {
	c := make(Params, len(p))

	for k, v := range p {
		switch vs := v.(type) {
		case []float64:
			v = append([]float64(nil), vs...)
		case []interface{}:
			v = append([]interface{}(nil), vs...)
		}

		c[k] = v
	}

	return c
}

// merge overlays the non-nil values of partial on a copy of p.
func (p Params) merge(partial Params) Params {
	merged := p.Clone()

	for k, v := range partial {
		if v == nil {
			continue
		}

		merged[k] = v
	}

	return merged
}

func (p Params) Number(key string) (float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing %s", key)
	}

	return toNumber(v)
}

func (p Params) Numbers(key string) ([]float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing %s", key)
	}

	switch vs := v.(type) {
	case []float64:
		return append([]float64(nil), vs...), nil
	case []int:
		fs := make([]float64, len(vs))
		for idx, n := range vs {
			fs[idx] = float64(n)
		}

		return fs, nil
	case []interface{}:
		fs := make([]float64, len(vs))

		for idx, n := range vs {
			f, err := toNumber(n)
			if err != nil {
				return nil, err
			}

			fs[idx] = f
		}

		return fs, nil
	}

	return nil, fmt.Errorf("%s is not a number list: %T", key, v)
}

// toNumber accepts Go numeric values only; bools and strings are rejected.
func toNumber(v interface{}) (float64, error) {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToFloat64E(v)
	}

	return 0, fmt.Errorf("not a number: %T", v)
}

// ValidateNumber reports whether v is finite and, when positive is set, strictly above zero.
func ValidateNumber(v float64, positive bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}

	return !positive || v > 0
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}
