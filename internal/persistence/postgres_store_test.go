package persistence

import (
	"database/sql"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/suite"

	"github.com/petrijr/flowwire/internal/testutil"
)

type PostgresStoreSuite struct {
	suite.Suite
	db    *sql.DB
	store *PostgresStore
}

func (s *PostgresStoreSuite) SetupSuite() {
	dsn := testutil.GetPostgresDSN(s.T())

	db, err := sql.Open("pgx", dsn)
	s.Require().NoError(err)
	s.Require().NoError(db.Ping())
	s.db = db

	s.store, err = NewPostgresStore(db)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.db.Exec(`TRUNCATE history_chunks, activations`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestHistory() {
	testHistoryStore(s.T(), s.store)
}

func (s *PostgresStoreSuite) TestActivations() {
	testActivationStore(s.T(), s.store)
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}
