// Package testutil starts throwaway backing services for integration tests.
// Each container is started at most once per test binary; tests are skipped
// when Docker is not reachable or -short is set.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

const startTimeout = 3 * time.Minute

// skipUnavailable skips t when a container could not be started.
func skipUnavailable(t *testing.T, name string, err error) {
	t.Helper()
	if err != nil {
		t.Skipf("%s container unavailable: %v", name, err)
	}
}

func skipShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
}

// run starts image and returns the container with its host:port endpoint.
func run(t *testing.T, image string, opts ...testcontainers.ContainerCustomizer) (testcontainers.Container, string, error) {
	t.Helper()

	// Give generous timeout in CI environments
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := testcontainers.Run(ctx, image, opts...)
	if err != nil {
		return nil, "", err
	}

	t.Cleanup(func() {
		testcontainers.CleanupContainer(t, c)
	})

	endpoint, err := c.Endpoint(ctx, "")
	if err != nil {
		_ = c.Terminate(context.Background()) // best-effort cleanup
		return nil, "", err
	}
	return c, endpoint, nil
}
