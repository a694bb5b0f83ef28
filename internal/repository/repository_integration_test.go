package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	mongoOnce     sync.Once
	mongoTestDB   *mongo.Database
	mongoSetupErr error
)

// testDatabase starts a throwaway MongoDB container shared by all
// integration tests in this package. The container expires on its own,
// so there is no teardown.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	mongoOnce.Do(func() {
		pool, err := dockertest.NewPool("")
		if err != nil {
			mongoSetupErr = fmt.Errorf("constructing docker pool: %w", err)
			return
		}
		if err := pool.Client.Ping(); err != nil {
			mongoSetupErr = fmt.Errorf("connecting to docker: %w", err)
			return
		}

		resource, err := pool.RunWithOptions(&dockertest.RunOptions{
			Repository: "mongo",
			Tag:        "5.0",
			Env: []string{
				"MONGO_INITDB_ROOT_USERNAME=root",
				"MONGO_INITDB_ROOT_PASSWORD=password",
			},
		}, func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no"}
		})
		if err != nil {
			mongoSetupErr = fmt.Errorf("starting mongo container: %w", err)
			return
		}
		_ = resource.Expire(300)

		uri := fmt.Sprintf("mongodb://root:password@%s/classyshop_test?authSource=admin", resource.GetHostPort("27017/tcp"))
		var client *mongo.Client
		if err := pool.Retry(func() error {
			var retryErr error
			client, retryErr = mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
			if retryErr != nil {
				return retryErr
			}
			return client.Ping(context.Background(), nil)
		}); err != nil {
			mongoSetupErr = fmt.Errorf("connecting to mongo: %w", err)
			return
		}
		mongoTestDB = client.Database("classyshop_test")
	})
	if mongoSetupErr != nil {
		t.Fatalf("integration setup failed: %v", mongoSetupErr)
	}
	return mongoTestDB
}

// Racing signups for the same email must produce exactly one stored
// user; every loser gets the duplicate sentinel, enforced by the unique
// index rather than any application-level check.
func TestUserRepository_ConcurrentSignup_OneWinner(t *testing.T) {
	db := testDatabase(t)
	repo := NewUserRepository(db, zap.NewNop())

	email := fmt.Sprintf("race-%d@example.com", time.Now().UnixNano())

	const attempts = 8
	results := make(chan error, attempts)
	var start, done sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			_, err := repo.Create(context.Background(), &entity.User{
				Name:     "Race Runner",
				Email:    email,
				Password: "bcrypt-hash",
				Role:     entity.RoleUser,
			})
			results <- err
		}()
	}
	start.Done()
	done.Wait()
	close(results)

	var winners, conflicts int
	for err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrDuplicateEmail):
			conflicts++
		default:
			t.Fatalf("unexpected error from concurrent signup: %v", err)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCategoryRepository_ConcurrentCreate_OneWinner(t *testing.T) {
	db := testDatabase(t)
	repo := NewCategoryRepository(db, zap.NewNop())

	name := "Race-" + primitive.NewObjectID().Hex()

	const attempts = 4
	results := make(chan error, attempts)
	var start, done sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			_, err := repo.Create(context.Background(), &entity.Category{Name: name, Gender: "Men"})
			results <- err
		}()
	}
	start.Done()
	done.Wait()
	close(results)

	var winners int
	for err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrCategoryAlreadyExists)
		}
	}
	assert.Equal(t, 1, winners)
}

// Renaming a category onto a taken (name, gender) pair violates the
// unique index inside findAndModify, which the driver reports as a
// command error rather than a write exception.
func TestCategoryRepository_RenameOntoExisting_Conflict(t *testing.T) {
	db := testDatabase(t)
	repo := NewCategoryRepository(db, zap.NewNop())
	ctx := context.Background()

	suffix := primitive.NewObjectID().Hex()
	takenName := "Shoes-" + suffix
	_, err := repo.Create(ctx, &entity.Category{Name: takenName, Gender: "Men"})
	require.NoError(t, err)
	bagsID, err := repo.Create(ctx, &entity.Category{Name: "Bags-" + suffix, Gender: "Men"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, bagsID, UpdateCategoryParams{Name: &takenName})
	assert.ErrorIs(t, err, ErrCategoryAlreadyExists)

	freeName := "Hats-" + suffix
	updated, err := repo.Update(ctx, bagsID, UpdateCategoryParams{Name: &freeName})
	require.NoError(t, err)
	assert.Equal(t, freeName, updated.Name)
}
