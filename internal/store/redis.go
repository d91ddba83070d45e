package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hamdan/hifzi/internal/learner"
	"github.com/hamdan/hifzi/internal/progress"
)

const (
	verseKeyPrefix = "hifzi:verse:"
	learnerKey     = "hifzi:learner"
)

// RedisStore backs the same repositories as the SQLite store with Redis,
// for hosts that run the engine server-side. State is stored as JSON under
// one key per verse, without TTL: learning progress doesn't expire.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to Redis at uri and verifies the connection.
func OpenRedis(uri string) (*RedisStore, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis URI: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// VerseStates returns the per-verse state repository.
func (s *RedisStore) VerseStates() progress.StateRepo {
	return &redisVerseRepo{client: s.client}
}

// Learner returns the learner profile repository.
func (s *RedisStore) Learner() learner.Repo {
	return &redisLearnerRepo{client: s.client}
}

type redisVerseRepo struct {
	client *redis.Client
}

func (r *redisVerseRepo) Get(ctx context.Context, verseID string) (*progress.VerseState, error) {
	val, err := r.client.Get(ctx, verseKeyPrefix+verseID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get verse state: %w", err)
	}
	var st progress.VerseState
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return nil, fmt.Errorf("unmarshal verse state: %w", err)
	}
	return &st, nil
}

func (r *redisVerseRepo) Put(ctx context.Context, st *progress.VerseState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal verse state: %w", err)
	}
	if err := r.client.Set(ctx, verseKeyPrefix+st.VerseID, data, 0).Err(); err != nil {
		return fmt.Errorf("set verse state: %w", err)
	}
	return nil
}

func (r *redisVerseRepo) All(ctx context.Context) ([]*progress.VerseState, error) {
	var out []*progress.VerseState
	iter := r.client.Scan(ctx, 0, verseKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		val, err := r.client.Get(ctx, iter.Val()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get verse state: %w", err)
		}
		var st progress.VerseState
		if err := json.Unmarshal([]byte(val), &st); err != nil {
			return nil, fmt.Errorf("unmarshal verse state: %w", err)
		}
		out = append(out, &st)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan verse states: %w", err)
	}
	return out, nil
}

type redisLearnerRepo struct {
	client *redis.Client
}

func (r *redisLearnerRepo) Load(ctx context.Context) (*learner.Profile, error) {
	val, err := r.client.Get(ctx, learnerKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get learner profile: %w", err)
	}
	var p learner.Profile
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, fmt.Errorf("unmarshal learner profile: %w", err)
	}
	return &p, nil
}

func (r *redisLearnerRepo) Save(ctx context.Context, p *learner.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal learner profile: %w", err)
	}
	if err := r.client.Set(ctx, learnerKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save learner profile: %w", err)
	}
	return nil
}
