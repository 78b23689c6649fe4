package shape

import "time"

type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindTriangle  Kind = "triangle"
	KindCircle    Kind = "circle"
	KindPolygon   Kind = "polygon"
)

type EventType string

const (
	EventUpdate    EventType = "update"
	EventDestroy   EventType = "destroy"
	EventCalculate EventType = "calculate"
)

type Calculation string

const (
	CalculationArea      Calculation = "area"
	CalculationPerimeter Calculation = "perimeter"
)

// Event is the envelope handed to every listener.
type Event struct {
	Type      EventType
	ShapeID   string
	Timestamp time.Time
	Data      interface{}
}

type UpdateData struct {
	OldParams Params
	NewParams Params
}

type DestroyData struct {
	ShapeID string
	Kind    Kind
}

type CalculateData struct {
	ShapeID     string
	Calculation Calculation
	Result      float64
}

type Listener func(e Event)

type SubscriptionID uint64

type EventChannel interface {
	Subscribe(eventType EventType, listener Listener) SubscriptionID
	Unsubscribe(eventType EventType, id SubscriptionID)
	Publish(eventType EventType, shapeID string, data interface{})

	ListenerCount(eventType EventType) int
}

type Shape interface {
	ID() string
	Kind() Kind
	CreatedAt() time.Time
	Params() Params

	Area() float64
	Perimeter() float64
	IsValid() bool

	Update(params Params) error
	Destroy()

	Snapshot() *Snapshot

	Subscribe(eventType EventType, listener Listener) SubscriptionID
	Unsubscribe(eventType EventType, id SubscriptionID)
}

type Snapshot struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      Kind      `json:"kind" yaml:"kind"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Params    Params    `json:"params" yaml:"params"`
}

type BoundingBox struct {
	MinX float64 `json:"minX" yaml:"minX"`
	MinY float64 `json:"minY" yaml:"minY"`
	MaxX float64 `json:"maxX" yaml:"maxX"`
	MaxY float64 `json:"maxY" yaml:"maxY"`
}
