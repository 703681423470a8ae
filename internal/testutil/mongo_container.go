package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	mongoOnce sync.Once
	mongoURI  string
	mongoErr  error
)

// GetMongoURI returns a mongodb:// URI for a shared MongoDB container.
func GetMongoURI(t *testing.T) string {
	t.Helper()
	skipShort(t)

	mongoOnce.Do(func() {
		_, endpoint, err := run(t, "mongo:7",
			testcontainers.WithExposedPorts("27017/tcp"),
			testcontainers.WithWaitStrategy(
				wait.ForListeningPort("27017/tcp"),
				wait.ForLog("mongod startup complete"),
			),
		)
		if err != nil {
			mongoErr = err
			return
		}
		mongoURI = fmt.Sprintf("mongodb://%s", endpoint)
	})

	skipUnavailable(t, "mongo", mongoErr)
	return mongoURI
}
