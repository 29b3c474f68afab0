package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps settings in one hash and announces writes on a pub/sub
// channel so that every process sharing the server converges.
type RedisStore struct {
	client  *redis.Client
	hashKey string
	channel string
	hub     *hub
	cancel  context.CancelFunc
	done    chan struct{}
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "focusflow"
	}
	s := &RedisStore{
		client:  client,
		hashKey: prefix + ":settings",
		channel: prefix + ":settings:changes",
		hub:     newHub(),
		done:    make(chan struct{}),
	}
	listenCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	pubsub := client.Subscribe(listenCtx, s.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		_ = client.Close()
		return nil, fmt.Errorf("subscribe settings channel: %w", err)
	}
	go s.listen(listenCtx, pubsub)
	return s, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.hashKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.hashKey, key, value).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return s.announce(ctx, key)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.hashKey, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return s.announce(ctx, key)
}

func (s *RedisStore) Subscribe(key string) (<-chan Change, func()) {
	return s.hub.subscribe(key)
}

func (s *RedisStore) Close() error {
	s.cancel()
	<-s.done
	return s.client.Close()
}

func (s *RedisStore) announce(ctx context.Context, key string) error {
	s.hub.publish(key)
	if err := s.client.Publish(ctx, s.channel, key).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) listen(ctx context.Context, pubsub *redis.PubSub) {
	defer close(s.done)
	defer pubsub.Close()
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.hub.publish(msg.Payload)
		}
	}
}
