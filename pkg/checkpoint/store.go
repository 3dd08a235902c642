// Package checkpoint persists worklist queues in Redis so long propagation runs can resume.
// Values use the FIFOSet binary layout.
package checkpoint

import (
	"bytes"
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	redisV9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/stn-common/pkg/datastructs/queue"
	"github.com/huynhanx03/stn-common/pkg/logger"
)

const defaultPrefix = "stn:checkpoint:"

// Store saves and loads queue checkpoints.
type Store struct {
	client redisV9.UniversalClient
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the prefix prepended to every key.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL sets the expiration used when Save or SaveMany are called with a zero ttl.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithLogger logs saves and loads at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStoreFromClient wraps an existing client.
func NewStoreFromClient(client redisV9.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	return s
}

// Key returns the Redis key used for name.
func (s *Store) Key(name string) string {
	return s.prefix + name
}

// Client returns the underlying redis client (Escape hatch)
func (s *Store) Client() redisV9.UniversalClient {
	return s.client
}

// Delete removes the checkpoints stored under names.
func (s *Store) Delete(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = s.Key(n)
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close closes the Redis client
func (s *Store) Close() error {
	return s.client.Close()
}

// Save writes q under name. A zero ttl falls back to the store default;
// when both are zero the checkpoint is kept until deleted.
func Save[T comparable](ctx context.Context, s *Store, name string, q *queue.FIFOSet[T], codec queue.Codec[T], ttl time.Duration) error {
	data, err := encode(q, codec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.Key(name), data, s.expiration(ttl)).Err(); err != nil {
		return pkgerrors.Wrapf(err, "save checkpoint %s", name)
	}
	s.log.Debug("checkpoint saved", zap.String("name", name), zap.Int("size", q.Len()), zap.Int("bytes", len(data)))
	return nil
}

// SaveMany encodes every queue concurrently and writes them in a single pipeline.
// ttl is resolved like in Save.
// The queues must not be mutated until SaveMany returns.
func SaveMany[T comparable](ctx context.Context, s *Store, queues map[string]*queue.FIFOSet[T], codec queue.Codec[T], ttl time.Duration) error {
	if len(queues) == 0 {
		return nil
	}

	names := make([]string, 0, len(queues))
	for name := range queues {
		names = append(names, name)
	}
	encoded := make([][]byte, len(names))

	g, _ := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			data, err := encode(queues[name], codec)
			if err != nil {
				return pkgerrors.Wrapf(err, "checkpoint %s", name)
			}
			encoded[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	expiration := s.expiration(ttl)
	pipe := s.client.Pipeline()
	for i, name := range names {
		pipe.Set(ctx, s.Key(name), encoded[i], expiration)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return pkgerrors.Wrap(err, "save checkpoints")
	}
	s.log.Debug("checkpoints saved", zap.Int("count", len(names)))
	return nil
}

// Load reads the queue stored under name.
func Load[T comparable](ctx context.Context, s *Store, name string, codec queue.Codec[T], opts ...queue.Option) (*queue.FIFOSet[T], error) {
	data, err := s.client.Get(ctx, s.Key(name)).Bytes()
	if errors.Is(err, redisV9.Nil) {
		return nil, pkgerrors.Wrapf(ErrNotFound, "checkpoint %s", name)
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "load checkpoint %s", name)
	}

	q, err := queue.DecodeFIFOSet(bytes.NewReader(data), codec, opts...)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "decode checkpoint %s", name)
	}
	s.log.Debug("checkpoint loaded", zap.String("name", name), zap.Int("size", q.Len()))
	return q, nil
}

// expiration returns ttl, or the store default when ttl is zero.
func (s *Store) expiration(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return s.ttl
	}
	return ttl
}

func encode[T comparable](q *queue.FIFOSet[T], codec queue.Codec[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := q.Encode(&buf, codec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
