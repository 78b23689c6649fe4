package registry

import (
	"time"

	"github.com/sgostarter/libshapes/shape"
)

type Config struct {
	TombstoneRetention time.Duration `yaml:"tombstoneRetention" json:"tombstoneRetention"`
}

type Registry interface {
	Add(s shape.Shape) error
	Get(id string) (shape.Shape, bool)
	Remove(id string) error
	Shapes() []shape.Shape

	// Restore brings back a shape destroyed within the tombstone retention.
	Restore(id string) (shape.Shape, error)
	// Load tracks every shape held by the storage that is not tracked yet.
	Load() (n int, err error)

	TotalArea() float64
	TotalPerimeter() float64
}

type Storage interface {
	Save(snapshot *shape.Snapshot) error
	Remove(id string) error
	Load(id string) (snapshot *shape.Snapshot, exists bool, err error)
	List() ([]*shape.Snapshot, error)
}
