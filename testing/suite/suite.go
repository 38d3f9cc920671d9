// Package suite runs tests against a real redis started in docker.
// Tests using it are skipped with -short or when docker is not reachable.
package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New - starts a fresh redis for the test and removes it on cleanup.
// The returned context ends with the test.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis tests need docker, skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectWait)
	t.Cleanup(cancel)

	container, err := startRedis()
	if err != nil {
		t.Skipf("redis is not available: %v", err)
	}

	t.Cleanup(func() {
		if err := container.stop(); err != nil {
			t.Errorf("cleanup: %v", err)
		}
	})

	st, err := container.connect(ctx)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = st.Close() })

	if err = st.Connection.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush redis: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Logger:  slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Storage: st.Connection,
	}
}
