package suite

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"

	// REDIS_TAG overrides the image tag, e.g. to pin the server version in CI.
	redisTagEnv     = "REDIS_TAG"
	defaultRedisTag = "7-alpine"

	containerTTL = uint(120)
	connectWait  = 120 * time.Second
)

// redisContainer - a throwaway redis server run through the local docker daemon.
type redisContainer struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

func startRedis() (*redisContainer, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	pool.MaxWait = connectWait

	tag := os.Getenv(redisTagEnv)
	if tag == "" {
		tag = defaultRedisTag
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        tag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start redis %s: %w", tag, err)
	}

	// docker kills the container even if the test binary dies before cleanup
	_ = resource.Expire(containerTTL)

	return &redisContainer{pool: pool, resource: resource}, nil
}

// connect retries until the server accepts connections or the pool gives up.
func (that *redisContainer) connect(ctx context.Context) (*storage.RedisStorage, error) {
	addr := that.resource.GetHostPort(redisPort)

	var st *storage.RedisStorage
	err := that.pool.Retry(func() error {
		var err error
		st, err = storage.New(ctx, addr)
		return err //nolint: wrapcheck // retried until the server is up
	})
	if err != nil {
		return nil, fmt.Errorf("redis at %s never came up: %w", addr, err)
	}

	return st, nil
}

func (that *redisContainer) stop() error {
	if err := that.pool.Purge(that.resource); err != nil {
		return fmt.Errorf("could not purge redis container: %w", err)
	}

	return nil
}
