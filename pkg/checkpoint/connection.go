package checkpoint

import (
	"context"
	"fmt"
	"time"

	redisV9 "github.com/redis/go-redis/v9"

	"github.com/huynhanx03/stn-common/pkg/settings"
	"github.com/huynhanx03/stn-common/pkg/utils"
)

const (
	defaultPoolSize        = 10
	defaultMinIdleConns    = 2
	defaultPoolTimeout     = 5
	defaultDialTimeout     = 5
	defaultReadTimeout     = 3
	defaultWriteTimeout    = 3
	defaultMaxRetries      = 3
	defaultMinRetryBackoff = 300 // millis
	defaultMaxRetryBackoff = 500 // millis
	pingTimeout            = 5 * time.Second
)

// NewStore connects to Redis and returns a Store using it.
func NewStore(cfg *settings.Redis, opts ...Option) (*Store, error) {
	c := *cfg
	setDefaultConfig(&c)

	addr := c.Host
	if c.Port > 0 {
		addr = fmt.Sprintf("%s:%d", addr, c.Port)
	}

	client := redisV9.NewClient(&redisV9.Options{
		Addr:            addr,
		Password:        c.Password,
		DB:              c.Database,
		PoolSize:        c.PoolSize,
		MinIdleConns:    c.MinIdleConns,
		MaxRetries:      c.MaxRetries,
		DialTimeout:     utils.ToDuration(c.DialTimeout),
		ReadTimeout:     utils.ToDuration(c.ReadTimeout),
		WriteTimeout:    utils.ToDuration(c.WriteTimeout),
		PoolTimeout:     utils.ToDuration(c.PoolTimeout),
		MinRetryBackoff: utils.ToDurationMs(c.MinRetryBackoff),
		MaxRetryBackoff: utils.ToDurationMs(c.MaxRetryBackoff),
	})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrPingFailed, err)
	}

	return NewStoreFromClient(client, append(configOptions(&c), opts...)...), nil
}

// configOptions turns the store level settings of cfg into options.
func configOptions(c *settings.Redis) []Option {
	var opts []Option
	if c.KeyPrefix != "" {
		opts = append(opts, WithPrefix(c.KeyPrefix))
	}
	if c.TTL > 0 {
		opts = append(opts, WithTTL(utils.ToDuration(c.TTL)))
	}
	return opts
}

// setDefaultConfig sets default values for Redis configuration
func setDefaultConfig(c *settings.Redis) {
	if c.PoolSize == 0 {
		c.PoolSize = defaultPoolSize
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = defaultMinIdleConns
	}
	if c.PoolTimeout == 0 {
		c.PoolTimeout = defaultPoolTimeout
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.MinRetryBackoff == 0 {
		c.MinRetryBackoff = defaultMinRetryBackoff
	}
	if c.MaxRetryBackoff == 0 {
		c.MaxRetryBackoff = defaultMaxRetryBackoff
	}
}
