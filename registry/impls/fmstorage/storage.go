package fmstorage

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/libshapes/registry"
	"github.com/sgostarter/libshapes/shape"
)

func NewFMStorage(root string, storage stg.FileStorage) registry.Storage {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fmStorageImpl{
		d: mwf.NewMemWithFile[map[string]*shape.Snapshot, mwf.Serial, mwf.Lock](
			make(map[string]*shape.Snapshot), &mwf.JSONSerial{}, &sync.RWMutex{}, filepath.Join(root, "shapes.json"), storage),
	}
}

type fmStorageImpl struct {
	d *mwf.MemWithFile[map[string]*shape.Snapshot, mwf.Serial, mwf.Lock]
}

func (impl *fmStorageImpl) Save(snapshot *shape.Snapshot) error {
	if snapshot == nil || snapshot.ID == "" {
		return commerr.ErrInvalidArgument
	}

	return impl.d.Change(func(oldM map[string]*shape.Snapshot) (newM map[string]*shape.Snapshot, err error) {
		newM = oldM
		if len(newM) == 0 {
			newM = make(map[string]*shape.Snapshot)
		}

		newM[snapshot.ID] = &shape.Snapshot{
			ID:        snapshot.ID,
			Kind:      snapshot.Kind,
			CreatedAt: snapshot.CreatedAt,
			Params:    snapshot.Params.Clone(),
		}

		return
	})
}

func (impl *fmStorageImpl) Remove(id string) error {
	return impl.d.Change(func(oldM map[string]*shape.Snapshot) (newM map[string]*shape.Snapshot, err error) {
		newM = oldM
		if len(newM) == 0 {
			newM = make(map[string]*shape.Snapshot)
		}

		if _, ok := newM[id]; !ok {
			err = commerr.ErrNotFound

			return
		}

		delete(newM, id)

		return
	})
}

func (impl *fmStorageImpl) Load(id string) (snapshot *shape.Snapshot, exists bool, err error) {
	impl.d.Read(func(m map[string]*shape.Snapshot) {
		if s, ok := m[id]; ok {
			snapshot = copySnapshot(s)
			exists = true
		}
	})

	return
}

func (impl *fmStorageImpl) List() (snapshots []*shape.Snapshot, err error) {
	impl.d.Read(func(m map[string]*shape.Snapshot) {
		snapshots = make([]*shape.Snapshot, 0, len(m))

		for _, s := range m {
			snapshots = append(snapshots, copySnapshot(s))
		}
	})

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID < snapshots[j].ID
	})

	return
}

func copySnapshot(s *shape.Snapshot) *shape.Snapshot {
	c := *s
	c.Params = s.Params.Clone()

	return &c
}
