package postgres

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shrimpsizemoose/klassrum/internal/models"
	"github.com/shrimpsizemoose/klassrum/internal/store"
)

// setupTestDB spins up a throwaway Postgres and initializes schema
func setupTestDB(t *testing.T) (*PostgresStore, func()) {
	ctx := context.Background()

	postgres, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	dsn, err := postgres.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := NewPostgresStore(dsn, "../../../migrations")
	require.NoError(t, err, "Failed to create store")

	cleanup := func() {
		s.Close()
		postgres.Terminate(ctx)
	}

	return s, cleanup
}

type testData struct {
	store *PostgresStore
}

func setupTestData(t *testing.T) (*testData, func()) {
	s, cleanup := setupTestDB(t)

	err := s.ReseedCatalog(store.SeedTopics)
	require.NoError(t, err, "Failed to seed catalog")

	return &testData{
		store: s,
	}, cleanup
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		log.Println("Skipping Postgres integration tests. Use -short=false to run them.")
		os.Exit(0)
	}
	log.Println("Starting Postgres store tests...")
	code := m.Run()
	log.Println("Finished Postgres store tests")
	os.Exit(code)
}

func TestCreateAndGetUser(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()

	user := models.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$04$notarealhashnotarealhashno",
	}

	id, err := td.store.CreateUser(&user)
	require.NoError(t, err, "Failed to create user")
	assert.Equal(t, int64(1), id)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := td.store.CreateUser(&models.User{
			Username:     "bob",
			Email:        "a@x.com",
			PasswordHash: "x",
		})
		require.ErrorIs(t, err, store.ErrDuplicateUser)
	})

	t.Run("get user", func(t *testing.T) {
		got, err := td.store.GetUserByEmail(user.Email)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, user.Username, got.Username)
	})

	t.Run("get non-existent user", func(t *testing.T) {
		got, err := td.store.GetUserByEmail("nobody@x.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCatalogAndProgress(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()

	userID, err := td.store.CreateUser(&models.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)

	t.Run("seeded catalog", func(t *testing.T) {
		topics, err := td.store.ListTopics()
		require.NoError(t, err)
		assert.Len(t, topics, 14)
	})

	t.Run("replace keeps one row", func(t *testing.T) {
		first, err := td.store.UpsertAssignment(&models.Assignment{
			UserID:   userID,
			TopicID:  5,
			FilePath: "uploads/1-first.pdf",
		})
		require.NoError(t, err)

		second, err := td.store.UpsertAssignment(&models.Assignment{
			UserID:   userID,
			TopicID:  5,
			FilePath: "uploads/2-second.pdf",
		})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("progress defaults and completion", func(t *testing.T) {
		rows, err := td.store.FetchProgress(userID)
		require.NoError(t, err)
		require.Len(t, rows, 14)
		for _, row := range rows {
			assert.Equal(t, row.TopicID == 5, row.Completed)
			assert.Zero(t, row.Marks)
		}
	})
}
