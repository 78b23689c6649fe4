package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libshapes/shape"
	"github.com/sgostarter/libshapes/shapeutil"
)

func NewRegistry(storage Storage, factory shape.Factory, cfg *Config, logger l.Wrapper) Registry {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "registryImpl"))

	if storage == nil {
		storage = &nopStorage{}
	}

	if factory == nil {
		factory = shape.NewFactory(shape.WithLogger(logger))
	}

	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.TombstoneRetention <= 0 {
		cfg.TombstoneRetention = time.Minute * 10
	}

	return &registryImpl{
		logger:     logger,
		storage:    storage,
		factory:    factory,
		calc:       shapeutil.NewCalculator(0, logger),
		entries:    make(map[string]*entry),
		tombstones: cache.New(cfg.TombstoneRetention, cfg.TombstoneRetention),
	}
}

type entry struct {
	s          shape.Shape
	updateSub  shape.SubscriptionID
	destroySub shape.SubscriptionID
}

type registryImpl struct {
	logger  l.Wrapper
	storage Storage
	factory shape.Factory
	calc    shapeutil.Calculator

	lock    sync.RWMutex
	entries map[string]*entry

	saveLock sync.Mutex

	tombstones *cache.Cache
}

func (impl *registryImpl) Add(s shape.Shape) error {
	if err := impl.track(s); err != nil {
		return err
	}

	impl.saveLock.Lock()
	err := impl.storage.Save(s.Snapshot())
	impl.saveLock.Unlock()

	if err != nil {
		impl.untrack(s.ID())

		return err
	}

	return nil
}

// Get falls back to the storage for shapes not tracked yet and tracks them.
func (impl *registryImpl) Get(id string) (shape.Shape, bool) {
	if s, ok := impl.tracked(id); ok {
		return s, true
	}

	snapshot, exists, err := impl.storage.Load(id)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("shapeID", id)).Error("load snapshot failed")

		return nil, false
	}

	if !exists {
		return nil, false
	}

	s, err := impl.factory.FromSnapshot(snapshot)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("shapeID", id)).Error("bad snapshot")

		return nil, false
	}

	if err = impl.track(s); err != nil {
		return impl.tracked(id)
	}

	return s, true
}

func (impl *registryImpl) Remove(id string) error {
	if !impl.untrack(id) {
		return commerr.ErrNotFound
	}

	return impl.storage.Remove(id)
}

func (impl *registryImpl) Shapes() []shape.Shape {
	impl.lock.RLock()

	shapes := make([]shape.Shape, 0, len(impl.entries))
	for _, e := range impl.entries {
		shapes = append(shapes, e.s)
	}

	impl.lock.RUnlock()

	sort.Slice(shapes, func(i, j int) bool {
		if shapes[i].CreatedAt().Equal(shapes[j].CreatedAt()) {
			return shapes[i].ID() < shapes[j].ID()
		}

		return shapes[i].CreatedAt().Before(shapes[j].CreatedAt())
	})

	return shapes
}

func (impl *registryImpl) Restore(id string) (shape.Shape, error) {
	i, ok := impl.tombstones.Get(id)
	if !ok {
		return nil, commerr.ErrNotFound
	}

	snapshot, ok := i.(*shape.Snapshot)
	if !ok {
		return nil, shape.ErrBadSnapshot
	}

	s, err := impl.factory.FromSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	if err = impl.Add(s); err != nil {
		return nil, err
	}

	impl.tombstones.Delete(id)

	return s, nil
}

func (impl *registryImpl) Load() (n int, err error) {
	snapshots, err := impl.storage.List()
	if err != nil {
		return
	}

	for _, snapshot := range snapshots {
		if _, exists := impl.tracked(snapshot.ID); exists {
			continue
		}

		s, e := impl.factory.FromSnapshot(snapshot)
		if e != nil {
			impl.logger.WithFields(l.ErrorField(e), l.StringField("shapeID", snapshot.ID)).Error("load snapshot failed")

			continue
		}

		if e = impl.track(s); e != nil {
			impl.logger.WithFields(l.ErrorField(e), l.StringField("shapeID", snapshot.ID)).Error("track shape failed")

			continue
		}

		n++
	}

	return
}

func (impl *registryImpl) TotalArea() float64 {
	return impl.calc.TotalArea(impl.Shapes())
}

func (impl *registryImpl) TotalPerimeter() float64 {
	return impl.calc.TotalPerimeter(impl.Shapes())
}

//
//
//

func (impl *registryImpl) track(s shape.Shape) error {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	id := s.ID()

	if _, ok := impl.entries[id]; ok {
		return commerr.ErrAlreadyExists
	}

	impl.entries[id] = &entry{
		s: s,
		updateSub: s.Subscribe(shape.EventUpdate, func(e shape.Event) {
			impl.onUpdate(s, e)
		}),
		destroySub: s.Subscribe(shape.EventDestroy, func(e shape.Event) {
			impl.onDestroy(s, e)
		}),
	}

	return nil
}

func (impl *registryImpl) tracked(id string) (shape.Shape, bool) {
	impl.lock.RLock()
	defer impl.lock.RUnlock()

	e, ok := impl.entries[id]
	if !ok {
		return nil, false
	}

	return e.s, true
}

func (impl *registryImpl) untrack(id string) bool {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	e, ok := impl.entries[id]
	if !ok {
		return false
	}

	e.s.Unsubscribe(shape.EventUpdate, e.updateSub)
	e.s.Unsubscribe(shape.EventDestroy, e.destroySub)

	delete(impl.entries, id)

	return true
}

// onUpdate filters by id since the shape may share its event channel. It
// saves the shape's current state; update events may arrive out of order.
func (impl *registryImpl) onUpdate(s shape.Shape, e shape.Event) {
	if e.ShapeID != s.ID() || e.Type != shape.EventUpdate {
		return
	}

	impl.saveLock.Lock()
	err := impl.storage.Save(s.Snapshot())
	impl.saveLock.Unlock()

	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("shapeID", s.ID())).Error("save snapshot failed")
	}
}

func (impl *registryImpl) onDestroy(s shape.Shape, e shape.Event) {
	if e.ShapeID != s.ID() {
		return
	}

	if !impl.untrack(s.ID()) {
		return
	}

	impl.tombstones.SetDefault(s.ID(), s.Snapshot())

	if err := impl.storage.Remove(s.ID()); err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("shapeID", s.ID())).Error("remove snapshot failed")
	}
}

type nopStorage struct{}

func (*nopStorage) Save(*shape.Snapshot) error {
	return nil
}

func (*nopStorage) Remove(string) error {
	return nil
}

func (*nopStorage) Load(string) (*shape.Snapshot, bool, error) {
	return nil, false, nil
}

func (*nopStorage) List() ([]*shape.Snapshot, error) {
	return nil, nil
}
