package shape

import (
	"fmt"
	"time"
)

var (
	_ Shape = (*Rectangle)(nil)
	_ Shape = (*Circle)(nil)
	_ Shape = (*Triangle)(nil)
	_ Shape = (*Polygon)(nil)
)

type Factory interface {
	CreateRectangle(width, height float64) (*Rectangle, error)
	CreateCircle(radius float64) (*Circle, error)
	CreateTriangle(sideA, sideB, sideC float64) (*Triangle, error)
	CreatePolygon(vertices []float64) (*Polygon, error)

	Create(kind Kind, params Params) (Shape, error)
	FromSnapshot(snapshot *Snapshot) (Shape, error)
}

// NewFactory returns a factory applying opts to every shape it creates.
func NewFactory(opts ...Option) Factory {
	return &factoryImpl{
		opts: opts,
	}
}

type factoryImpl struct {
	opts []Option
}

func (impl *factoryImpl) CreateRectangle(width, height float64) (*Rectangle, error) {
	return NewRectangle(RectangleParams{Width: width, Height: height}, impl.opts...)
}

func (impl *factoryImpl) CreateCircle(radius float64) (*Circle, error) {
	return NewCircle(CircleParams{Radius: radius}, impl.opts...)
}

func (impl *factoryImpl) CreateTriangle(sideA, sideB, sideC float64) (*Triangle, error) {
	return NewTriangle(TriangleParams{SideA: sideA, SideB: sideB, SideC: sideC}, impl.opts...)
}

func (impl *factoryImpl) CreatePolygon(vertices []float64) (*Polygon, error) {
	return NewPolygon(PolygonParams{Vertices: vertices}, impl.opts...)
}

func (impl *factoryImpl) Create(kind Kind, params Params) (Shape, error) {
	return New(kind, params, impl.opts...)
}

func (impl *factoryImpl) FromSnapshot(snapshot *Snapshot) (Shape, error) {
	return FromSnapshot(snapshot, impl.opts...)
}

// New builds a shape of kind from its generic parameters.
func New(kind Kind, params Params, opts ...Option) (Shape, error) {
	return build(kind, params, "", time.Time{}, optionNew(opts...))
}

// FromSnapshot rebuilds a shape keeping the snapshot's id and creation time.
func FromSnapshot(snapshot *Snapshot, opts ...Option) (Shape, error) {
	if snapshot == nil || snapshot.ID == "" {
		return nil, ErrBadSnapshot
	}

	return build(snapshot.Kind, snapshot.Params, snapshot.ID, snapshot.CreatedAt, optionNew(opts...))
}

// nolint: ireturn
func build(kind Kind, params Params, id string, createdAt time.Time, opts *Options) (Shape, error) {
	switch kind {
	case KindRectangle:
		p, err := RectangleParams{}.fromParams(params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
		}

		return asShape[*Rectangle](newRectangle(p, id, createdAt, opts))
	case KindCircle:
		p, err := CircleParams{}.fromParams(params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
		}

		return asShape[*Circle](newCircle(p, id, createdAt, opts))
	case KindTriangle:
		p, err := TriangleParams{}.fromParams(params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
		}

		return asShape[*Triangle](newTriangle(p, id, createdAt, opts))
	case KindPolygon:
		p, err := PolygonParams{}.fromParams(params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
		}

		return asShape[*Polygon](newPolygon(p, id, createdAt, opts))
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

// asShape returns a nil Shape whenever err is set.
func asShape[T Shape](s T, err error) (Shape, error) {
	if err != nil {
		return nil, err
	}

	return s, nil
}
