package redisstorage

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libshapes/registry"
	"github.com/sgostarter/libshapes/shape"
)

const defaultTimeout = time.Second * 5

func NewRedisStorage(redisKeyPre string, redisCli *redis.Client, logger l.Wrapper) registry.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "redisStorageImpl"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &redisStorageImpl{
		logger:      logger,
		redisCli:    redisCli,
		redisKeyPre: redisKeyPre,
	}
}

type redisStorageImpl struct {
	logger      l.Wrapper
	redisCli    *redis.Client
	redisKeyPre string
}

func (impl *redisStorageImpl) shapesRedisKey() string {
	if impl.redisKeyPre == "" {
		return "shapes"
	}

	return impl.redisKeyPre + ":" + "shapes"
}

func (impl *redisStorageImpl) Save(snapshot *shape.Snapshot) error {
	if snapshot == nil || snapshot.ID == "" {
		return commerr.ErrInvalidArgument
	}

	d, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	return impl.redisCli.HSet(ctx, impl.shapesRedisKey(), snapshot.ID, d).Err()
}

func (impl *redisStorageImpl) Remove(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	n, err := impl.redisCli.HDel(ctx, impl.shapesRedisKey(), id).Result()
	if err != nil {
		return err
	}

	if n == 0 {
		return commerr.ErrNotFound
	}

	return nil
}

func (impl *redisStorageImpl) Load(id string) (snapshot *shape.Snapshot, exists bool, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	d, err := impl.redisCli.HGet(ctx, impl.shapesRedisKey(), id).Bytes()
	if err == redis.Nil {
		err = nil

		return
	}

	if err != nil {
		return
	}

	snapshot = &shape.Snapshot{}

	if err = json.Unmarshal(d, snapshot); err != nil {
		snapshot = nil

		return
	}

	exists = true

	return
}

func (impl *redisStorageImpl) List() (snapshots []*shape.Snapshot, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	m, err := impl.redisCli.HGetAll(ctx, impl.shapesRedisKey()).Result()
	if err != nil {
		return
	}

	snapshots = make([]*shape.Snapshot, 0, len(m))

	for id, d := range m {
		var snapshot shape.Snapshot

		if e := json.Unmarshal([]byte(d), &snapshot); e != nil {
			impl.logger.WithFields(l.ErrorField(e), l.StringField("shapeID", id)).Error("bad snapshot")

			continue
		}

		snapshots = append(snapshots, &snapshot)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID < snapshots[j].ID
	})

	return
}
