package shape

import (
	"fmt"
	"sync"
	"time"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

// state is the typed parameter set of one shape kind. Implementations are
// values; a shape replaces its state wholesale on commit and never mutates it
// in place.
type state[S any] interface {
	params() Params
	valid() bool
	area() float64
	perimeter() float64
	fromParams(p Params) (S, error)
}

// core holds what every shape kind shares: identity, the event channel and
// the validated mutation of its typed state.
type core[S state[S]] struct {
	logger    l.Wrapper
	events    EventChannel
	id        string
	kind      Kind
	createdAt time.Time

	lock sync.RWMutex
	st   S
}

func (c *core[S]) init(kind Kind, st S, id string, createdAt time.Time, opts *Options) error {
	if !st.valid() {
		return ErrInvalidShape
	}

	c.kind = kind
	c.st = st
	c.events = opts.events
	c.id = id
	c.createdAt = createdAt

	if c.id == "" {
		c.id = opts.idGen()
	}

	if c.createdAt.IsZero() {
		c.createdAt = opts.now()
	}

	c.logger = opts.logger.WithFields(l.StringField(l.ClsKey, string(kind)+"Impl"), l.StringField("shapeID", c.id))

	return nil
}

func (c *core[S]) ID() string {
	return c.id
}

func (c *core[S]) Kind() Kind {
	return c.kind
}

func (c *core[S]) CreatedAt() time.Time {
	return c.createdAt
}

func (c *core[S]) Params() Params {
	return c.current().params()
}

func (c *core[S]) IsValid() bool {
	return c.current().valid()
}

func (c *core[S]) Area() float64 {
	return c.calculate(CalculationArea, c.current().area())
}

func (c *core[S]) Perimeter() float64 {
	return c.calculate(CalculationPerimeter, c.current().perimeter())
}

// Update merges params over the current parameters and commits the result only
// if it describes a valid shape. Nil values and unknown keys are ignored.
func (c *core[S]) Update(params Params) error {
	c.lock.Lock()

	oldParams := c.st.params()

	next, err := c.st.fromParams(oldParams.merge(params))
	if err == nil && !next.valid() {
		err = ErrInvalidUpdate
	} else if err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}

	if err != nil {
		c.lock.Unlock()

		c.logger.WithFields(l.ErrorField(err)).Debug("update rejected")

		return err
	}

	c.st = next
	newParams := next.params()

	c.lock.Unlock()

	c.events.Publish(EventUpdate, c.id, UpdateData{
		OldParams: oldParams,
		NewParams: newParams,
	})

	return nil
}

func (c *core[S]) Destroy() {
	c.events.Publish(EventDestroy, c.id, DestroyData{
		ShapeID: c.id,
		Kind:    c.kind,
	})
}

func (c *core[S]) Snapshot() *Snapshot {
	return &Snapshot{
		ID:        c.id,
		Kind:      c.kind,
		CreatedAt: c.createdAt,
		Params:    c.Params(),
	}
}

func (c *core[S]) Subscribe(eventType EventType, listener Listener) SubscriptionID {
	return c.events.Subscribe(eventType, listener)
}

func (c *core[S]) Unsubscribe(eventType EventType, id SubscriptionID) {
	c.events.Unsubscribe(eventType, id)
}

func (c *core[S]) current() S {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.st
}

func (c *core[S]) calculate(calculation Calculation, result float64) float64 {
	c.logger.WithFields(l.StringField("calculation", string(calculation)),
		l.StringField("result", cast.ToString(result))).Debug("calculated")

	c.events.Publish(EventCalculate, c.id, CalculateData{
		ShapeID:     c.id,
		Calculation: calculation,
		Result:      result,
	})

	return result
}
