package persistence

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/petrijr/flowwire/internal/testutil"
)

const redisTestPrefix = "flowwire-test:"

type RedisStoreSuite struct {
	suite.Suite
	client *redis.Client
	store  *RedisStore
}

func (s *RedisStoreSuite) SetupSuite() {
	addr := testutil.GetRedisAddress(s.T())

	s.client = redis.NewClient(&redis.Options{Addr: addr})
	s.Require().NoError(s.client.Ping(context.Background()).Err())
	s.store = NewRedisStore(s.client, redisTestPrefix)
}

func (s *RedisStoreSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *RedisStoreSuite) SetupTest() {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, redisTestPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.Require().NoError(s.client.Del(ctx, iter.Val()).Err())
	}
	s.Require().NoError(iter.Err())
}

func (s *RedisStoreSuite) TestHistory() {
	testHistoryStore(s.T(), s.store)
}

func (s *RedisStoreSuite) TestActivations() {
	testActivationStore(s.T(), s.store)
}

func (s *RedisStoreSuite) TestDefaultPrefix() {
	store := NewRedisStore(s.client, "")
	s.Equal("flowwire:history:r1", store.keyHistory("r1"))
	s.Equal("flowwire:activations:r1", store.keyActivations("r1"))
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}
