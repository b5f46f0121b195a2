package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"cardroom.io/holdem/game"
)

const casAttempts = 3

// RedisStore persists table snapshots in redis. The compare-and-swap is a
// WATCH on the revision key followed by a transactional write of both keys.
type RedisStore struct {
	rdclient *redis.Client
}

func NewRedisStore(redisURL string, redisPW string, redisDB int) *RedisStore {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisStore{
		rdclient: rdclient,
	}
}

func tableKey(code string) string {
	return fmt.Sprintf("table|%s", code)
}

func revKey(code string) string {
	return fmt.Sprintf("table|%s|rev", code)
}

func (r *RedisStore) Load(ctx context.Context, code string) (*game.Table, uint64, error) {
	snapshot, err := r.rdclient.Get(ctx, tableKey(code)).Result()
	if err == redis.Nil {
		return nil, 0, ErrTableNotFound
	} else if err != nil {
		return nil, 0, errors.Wrapf(err, "Unable to load snapshot for table %s", code)
	}
	rev, err := r.rdclient.Get(ctx, revKey(code)).Uint64()
	if err != nil && err != redis.Nil {
		return nil, 0, errors.Wrapf(err, "Unable to load revision for table %s", code)
	}
	table := &game.Table{}
	if err := jsoniter.Unmarshal([]byte(snapshot), table); err != nil {
		return nil, 0, errors.Wrapf(err, "Unable to unmarshal snapshot for table %s", code)
	}
	return table, rev, nil
}

func (r *RedisStore) Save(ctx context.Context, code string, table *game.Table, rev uint64) error {
	snapshot, err := jsoniter.Marshal(table)
	if err != nil {
		return errors.Wrapf(err, "Unable to marshal snapshot for table %s", code)
	}

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, revKey(code)).Uint64()
		if err == redis.Nil {
			current = 0
		} else if err != nil {
			return err
		}
		if current != rev {
			return ErrRevisionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, tableKey(code), snapshot, 0)
			pipe.Set(ctx, revKey(code), rev+1, 0)
			return nil
		})
		return err
	}

	for i := 0; i < casAttempts; i++ {
		err := r.rdclient.Watch(ctx, txf, revKey(code))
		if err == redis.TxFailedErr {
			// another writer touched the key; re-check the revision
			continue
		}
		return err
	}
	return ErrRevisionConflict
}

func (r *RedisStore) Remove(ctx context.Context, code string) error {
	removed, err := r.rdclient.Del(ctx, tableKey(code), revKey(code)).Result()
	if err != nil {
		return errors.Wrapf(err, "Unable to remove table %s", code)
	}
	if removed == 0 {
		return ErrTableNotFound
	}
	return nil
}
