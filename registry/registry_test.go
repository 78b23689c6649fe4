package registry

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libshapes/shape"
	"github.com/stretchr/testify/assert"
)

type utStorage struct {
	lock      sync.Mutex
	snapshots map[string]*shape.Snapshot
	saveErr   error
}

func newUTStorage() *utStorage {
	return &utStorage{
		snapshots: make(map[string]*shape.Snapshot),
	}
}

func (stg *utStorage) Save(snapshot *shape.Snapshot) error {
	stg.lock.Lock()
	defer stg.lock.Unlock()

	if stg.saveErr != nil {
		return stg.saveErr
	}

	stg.snapshots[snapshot.ID] = snapshot

	return nil
}

func (stg *utStorage) Remove(id string) error {
	stg.lock.Lock()
	defer stg.lock.Unlock()

	delete(stg.snapshots, id)

	return nil
}

func (stg *utStorage) Load(id string) (*shape.Snapshot, bool, error) {
	stg.lock.Lock()
	defer stg.lock.Unlock()

	snapshot, ok := stg.snapshots[id]

	return snapshot, ok, nil
}

func (stg *utStorage) List() ([]*shape.Snapshot, error) {
	stg.lock.Lock()
	defer stg.lock.Unlock()

	snapshots := make([]*shape.Snapshot, 0, len(stg.snapshots))
	for _, snapshot := range stg.snapshots {
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func TestRegistryLifecycle(t *testing.T) {
	stg := newUTStorage()
	reg := NewRegistry(stg, nil, nil, l.NewConsoleLoggerWrapper())

	r, err := shape.NewRectangle(shape.RectangleParams{Width: 10, Height: 5})
	assert.Nil(t, err)

	err = reg.Add(r)
	assert.Nil(t, err)

	err = reg.Add(r)
	assert.True(t, errors.Is(err, commerr.ErrAlreadyExists))

	got, ok := reg.Get(r.ID())
	assert.True(t, ok)
	assert.EqualValues(t, r.ID(), got.ID())

	snapshot, exists, err := stg.Load(r.ID())
	assert.Nil(t, err)
	assert.True(t, exists)
	assert.EqualValues(t, shape.Params{shape.ParamWidth: 10.0, shape.ParamHeight: 5.0}, snapshot.Params)

	err = r.Update(shape.Params{shape.ParamWidth: 20})
	assert.Nil(t, err)

	snapshot, _, _ = stg.Load(r.ID())
	assert.EqualValues(t, 20, snapshot.Params[shape.ParamWidth])

	assert.EqualValues(t, 100, reg.TotalArea())
	assert.EqualValues(t, 50, reg.TotalPerimeter())

	r.Destroy()

	_, ok = reg.Get(r.ID())
	assert.False(t, ok)

	_, exists, _ = stg.Load(r.ID())
	assert.False(t, exists)

	restored, err := reg.Restore(r.ID())
	assert.Nil(t, err)
	assert.EqualValues(t, r.ID(), restored.ID())
	assert.EqualValues(t, r.Params(), restored.Params())

	_, exists, _ = stg.Load(r.ID())
	assert.True(t, exists)

	_, err = reg.Restore(r.ID())
	assert.True(t, errors.Is(err, commerr.ErrNotFound))

	// the old instance is no longer tracked
	err = r.Update(shape.Params{shape.ParamWidth: 30})
	assert.Nil(t, err)

	snapshot, _, _ = stg.Load(r.ID())
	assert.EqualValues(t, 20, snapshot.Params[shape.ParamWidth])

	err = reg.Remove(r.ID())
	assert.Nil(t, err)
	assert.Empty(t, reg.Shapes())

	err = reg.Remove(r.ID())
	assert.True(t, errors.Is(err, commerr.ErrNotFound))
}

func TestRegistryRejectedUpdateNotPersisted(t *testing.T) {
	stg := newUTStorage()
	reg := NewRegistry(stg, nil, nil, nil)

	c, err := shape.NewCircle(shape.CircleParams{Radius: 3})
	assert.Nil(t, err)
	assert.Nil(t, reg.Add(c))

	err = c.Update(shape.Params{shape.ParamRadius: -1})
	assert.True(t, errors.Is(err, shape.ErrInvalidUpdate))

	snapshot, _, _ := stg.Load(c.ID())
	assert.EqualValues(t, 3, snapshot.Params[shape.ParamRadius])
}

func TestRegistrySaveFailure(t *testing.T) {
	stg := newUTStorage()
	stg.saveErr = errors.New("disk full")

	reg := NewRegistry(stg, nil, nil, nil)

	c, err := shape.NewCircle(shape.CircleParams{Radius: 3})
	assert.Nil(t, err)

	err = reg.Add(c)
	assert.NotNil(t, err)

	_, ok := reg.Get(c.ID())
	assert.False(t, ok)
}

func TestRegistrySharedChannel(t *testing.T) {
	ch := shape.NewEventChannel(nil)
	f := shape.NewFactory(shape.WithEventChannel(ch))
	reg := NewRegistry(nil, f, nil, nil)

	r, err := f.CreateRectangle(1, 2)
	assert.Nil(t, err)

	c, err := f.CreateCircle(1)
	assert.Nil(t, err)

	assert.Nil(t, reg.Add(r))
	assert.Nil(t, reg.Add(c))

	c.Destroy()

	_, ok := reg.Get(r.ID())
	assert.True(t, ok)

	_, ok = reg.Get(c.ID())
	assert.False(t, ok)

	assert.Len(t, reg.Shapes(), 1)
}

func TestRegistryLoadAndOrder(t *testing.T) {
	stg := newUTStorage()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_ = stg.Save(&shape.Snapshot{ID: "b", Kind: shape.KindCircle, CreatedAt: base.Add(time.Second),
		Params: shape.Params{shape.ParamRadius: 1}})
	_ = stg.Save(&shape.Snapshot{ID: "a", Kind: shape.KindTriangle, CreatedAt: base,
		Params: shape.Params{shape.ParamSideA: 3, shape.ParamSideB: 4, shape.ParamSideC: 5}})
	_ = stg.Save(&shape.Snapshot{ID: "bad", Kind: shape.KindTriangle, CreatedAt: base,
		Params: shape.Params{shape.ParamSideA: 1, shape.ParamSideB: 1, shape.ParamSideC: 10}})

	reg := NewRegistry(stg, nil, &Config{TombstoneRetention: time.Second}, nil)

	n, err := reg.Load()
	assert.Nil(t, err)
	assert.EqualValues(t, 2, n)

	n, err = reg.Load()
	assert.Nil(t, err)
	assert.EqualValues(t, 0, n)

	shapes := reg.Shapes()
	assert.Len(t, shapes, 2)
	assert.EqualValues(t, "a", shapes[0].ID())
	assert.EqualValues(t, "b", shapes[1].ID())
}

func TestRegistryTombstoneExpires(t *testing.T) {
	reg := NewRegistry(nil, nil, &Config{TombstoneRetention: time.Millisecond * 50}, nil)

	c, err := shape.NewCircle(shape.CircleParams{Radius: 1})
	assert.Nil(t, err)
	assert.Nil(t, reg.Add(c))

	c.Destroy()

	time.Sleep(time.Millisecond * 200)

	_, err = reg.Restore(c.ID())
	assert.True(t, errors.Is(err, commerr.ErrNotFound))
}

func TestRegistryGetLoadsFromStorage(t *testing.T) {
	stg := newUTStorage()

	_ = stg.Save(&shape.Snapshot{ID: "c1", Kind: shape.KindCircle, CreatedAt: time.Now(),
		Params: shape.Params{shape.ParamRadius: 2}})
	_ = stg.Save(&shape.Snapshot{ID: "bad", Kind: shape.KindCircle, CreatedAt: time.Now(),
		Params: shape.Params{shape.ParamRadius: -2}})

	reg := NewRegistry(stg, nil, nil, nil)

	s, ok := reg.Get("c1")
	assert.True(t, ok)
	assert.EqualValues(t, "c1", s.ID())
	assert.Len(t, reg.Shapes(), 1)

	again, ok := reg.Get("c1")
	assert.True(t, ok)
	assert.True(t, s == again)

	_, ok = reg.Get("bad")
	assert.False(t, ok)

	_, ok = reg.Get("missing")
	assert.False(t, ok)

	// the loaded shape is tracked: updates reach the storage
	assert.Nil(t, s.Update(shape.Params{shape.ParamRadius: 3}))

	snapshot, _, _ := stg.Load("c1")
	assert.EqualValues(t, 3, snapshot.Params[shape.ParamRadius])
}

func TestRegistrySavesCurrentStateOnUpdate(t *testing.T) {
	stg := newUTStorage()
	ch := shape.NewEventChannel(nil)
	reg := NewRegistry(stg, shape.NewFactory(shape.WithEventChannel(ch)), nil, nil)

	r, err := shape.NewRectangle(shape.RectangleParams{Width: 1, Height: 1}, shape.WithEventChannel(ch))
	assert.Nil(t, err)
	assert.Nil(t, reg.Add(r))

	assert.Nil(t, r.Update(shape.Params{shape.ParamWidth: 3}))

	// a late event carrying an older version must not roll the storage back
	ch.Publish(shape.EventUpdate, r.ID(), shape.UpdateData{
		OldParams: shape.Params{shape.ParamWidth: 1.0, shape.ParamHeight: 1.0},
		NewParams: shape.Params{shape.ParamWidth: 2.0, shape.ParamHeight: 1.0},
	})

	snapshot, _, _ := stg.Load(r.ID())
	assert.EqualValues(t, r.Params(), snapshot.Params)
	assert.EqualValues(t, 3, snapshot.Params[shape.ParamWidth])
}

func TestRegistryConcurrentUpdates(t *testing.T) {
	stg := newUTStorage()
	reg := NewRegistry(stg, nil, nil, nil)

	c, err := shape.NewCircle(shape.CircleParams{Radius: 1})
	assert.Nil(t, err)
	assert.Nil(t, reg.Add(c))

	var wg sync.WaitGroup

	for idx := 1; idx <= 8; idx++ {
		wg.Add(1)

		go func(radius int) {
			defer wg.Done()

			_ = c.Update(shape.Params{shape.ParamRadius: radius})
		}(idx)
	}

	wg.Wait()

	snapshot, _, _ := stg.Load(c.ID())
	assert.EqualValues(t, c.Params(), snapshot.Params)
}
