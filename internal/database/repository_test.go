package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mi-raf/rule-look/internal/database"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PgPreferenceRepositoryTestSuite struct {
	suite.Suite
	r           *database.PgPreferenceRepository
	pool        *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	ctx         context.Context
}

func (suite *PgPreferenceRepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	var err error
	suite.pgContainer, err = postgres.RunContainer(suite.ctx,
		testcontainers.WithImage("postgres:15.3-alpine"),
		postgres.WithInitScripts(filepath.Join("..", "..", "init", "migrations", "000001_create_preference.up.sql")),
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	connStr, err := suite.pgContainer.ConnectionString(suite.ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(suite.ctx, connStr)
	suite.Require().NoError(err)
	suite.r = database.NewPgPreferenceRepository(suite.ctx, suite.pool)

	err = suite.pgContainer.CopyFileToContainer(suite.ctx, filepath.Join("..", "..", "testdata", "drop-info.sql"), "/drop-info.sql", int64(os.ModePerm.Perm()))
	suite.NoError(err)
}

func (suite *PgPreferenceRepositoryTestSuite) TearDownTest() {
	_, _, err := suite.pgContainer.Exec(suite.ctx, []string{"psql", "-U", "postgres", "-d", "test-db", "-f", "/drop-info.sql"})
	suite.NoError(err)
}

func (s *PgPreferenceRepositoryTestSuite) TearDownSuite() {
	s.pool.Close()
	err := s.pgContainer.Terminate(s.ctx)
	s.NoError(err)
}

func (s *PgPreferenceRepositoryTestSuite) TestSetAndGet() {
	// given
	owner := gofakeit.UUID()
	email := gofakeit.Email()

	// when
	err := s.r.Set(s.ctx, owner, database.KeyUserEmail, email)

	// then
	s.NoError(err)
	v, ok, err := s.r.Get(s.ctx, owner, database.KeyUserEmail)
	s.NoError(err)
	s.True(ok)
	s.Equal(email, v)
}

func (s *PgPreferenceRepositoryTestSuite) TestUpsert() {
	// given
	owner := gofakeit.UUID()
	s.NoError(s.r.Set(s.ctx, owner, database.KeyUserName, "first"))

	// when
	err := s.r.Set(s.ctx, owner, database.KeyUserName, "second")

	// then
	s.NoError(err)
	v, _, err := s.r.Get(s.ctx, owner, database.KeyUserName)
	s.NoError(err)
	s.Equal("second", v)
}

func (s *PgPreferenceRepositoryTestSuite) TestGetEmpty() {

	// when
	v, ok, err := s.r.Get(s.ctx, gofakeit.UUID(), database.KeyMySchool)

	// then
	s.NoError(err)
	s.False(ok)
	s.Empty(v)
}

func (s *PgPreferenceRepositoryTestSuite) TestDeleteAndClear() {
	// given
	owner := gofakeit.UUID()
	s.NoError(s.r.Set(s.ctx, owner, database.KeyUserEmail, gofakeit.Email()))
	s.NoError(s.r.Set(s.ctx, owner, database.KeyUserName, gofakeit.Name()))
	s.NoError(s.r.Set(s.ctx, owner, database.KeyMySchool, "Hanyang University"))

	// when
	err := s.r.Delete(s.ctx, owner, database.KeyUserEmail, database.KeyUserName)

	// then
	s.NoError(err)
	_, ok, _ := s.r.Get(s.ctx, owner, database.KeyUserName)
	s.False(ok)

	// when
	err = s.r.Clear(s.ctx, owner)

	// then
	s.NoError(err)
	_, ok, _ = s.r.Get(s.ctx, owner, database.KeyMySchool)
	s.False(ok)
}

func TestPgPreferenceRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}
	suite.Run(t, new(PgPreferenceRepositoryTestSuite))
}
