// Package redistest starts a disposable redis for integration tests.
package redistest

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Start runs redis:7-alpine and returns a connected client. The caller
// terminates the container and closes the client.
func Start(ctx context.Context) (testcontainers.Container, *redis.Client, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, nil, err
	}

	addr, err := container.Endpoint(ctx, "")
	if err != nil {
		return container, nil, err
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err = client.Ping(ctx).Err(); err != nil {
		return container, client, err
	}
	return container, client, nil
}
