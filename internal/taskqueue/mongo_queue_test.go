package taskqueue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrijr/flowwire/internal/testutil"
)

type MongoQueueTestSuite struct {
	suite.Suite
	client *mongo.Client
	queue  *MongoQueue
}

func TestMongoQueueSuite(t *testing.T) {
	suite.Run(t, new(MongoQueueTestSuite))
}

func (m *MongoQueueTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(testutil.GetMongoURI(m.T())))
	m.Require().NoError(err)
	m.Require().NoError(client.Ping(ctx, nil))
	m.client = client
	m.queue = NewMongoQueue(client, "flowwire_test", "queue_tasks")
}

func (m *MongoQueueTestSuite) TearDownSuite() {
	if m.client != nil {
		_ = m.client.Disconnect(context.Background())
	}
}

func (m *MongoQueueTestSuite) SetupTest() {
	m.Require().NoError(m.queue.coll.Drop(context.Background()))
}

func (m *MongoQueueTestSuite) TestFIFO() {
	testQueueFIFO(m.T(), m.queue)
}

func (m *MongoQueueTestSuite) TestDequeueBlocks() {
	testQueueDequeueBlocks(m.T(), m.queue)
}

func (m *MongoQueueTestSuite) TestDequeueCancelled() {
	testQueueDequeueCancelled(m.T(), m.queue)
}

func (m *MongoQueueTestSuite) TestNotBefore() {
	testQueueNotBefore(m.T(), m.queue)
}
