package repository

import (
	"context"
	"testing"
	"time"

	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
)

func setupTestDB(t *testing.T) (*MongoRepository, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(db)

	err = repo.CreateIndexes(ctx)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func TestGetCart_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetCart(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestSaveCart_InsertThenReadBack(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	color := "Navy"
	cart := &domain.Cart{
		ID: "cart1",
		Items: []domain.CartItem{
			{ID: "i1", ProductID: "1", Quantity: 2, Color: &color, AddedAt: time.Now()},
		},
	}

	err := repo.SaveCart(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cart.Version)

	stored, err := repo.GetCart(ctx, "cart1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "1", stored.Items[0].ProductID)
	assert.Equal(t, "Navy", *stored.Items[0].Color)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestSaveCart_StaleVersionConflicts(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	cart := &domain.Cart{ID: "cart1", Items: []domain.CartItem{{ID: "i1", ProductID: "1", Quantity: 1}}}
	require.NoError(t, repo.SaveCart(ctx, cart))

	// Two readers pick up version 1; the second writer must lose.
	first, err := repo.GetCart(ctx, "cart1")
	require.NoError(t, err)
	second, err := repo.GetCart(ctx, "cart1")
	require.NoError(t, err)

	first.Items[0].Quantity = 5
	require.NoError(t, repo.SaveCart(ctx, first))

	second.Items[0].Quantity = 9
	err = repo.SaveCart(ctx, second)
	assert.ErrorIs(t, err, ErrVersionConflict)

	stored, err := repo.GetCart(ctx, "cart1")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Items[0].Quantity)
}

func TestSaveCart_DuplicateInsertConflicts(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SaveCart(ctx, &domain.Cart{ID: "cart1"}))

	err := repo.SaveCart(ctx, &domain.Cart{ID: "cart1"})
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestDeleteCart_RemovesDocument(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SaveCart(ctx, &domain.Cart{ID: "cart1"}))
	require.NoError(t, repo.DeleteCart(ctx, "cart1"))

	_, err := repo.GetCart(ctx, "cart1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestDeleteCart_AbsentCartIsNoOp(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.DeleteCart(context.Background(), "missing")
	assert.NoError(t, err)
}

func TestGetCart_CorruptDocument(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	// Write a document whose items field has the wrong shape.
	_, err := repo.collection.InsertOne(ctx, bson.M{
		"_id":     "cart1",
		"items":   "not an array",
		"version": int64(1),
	})
	require.NoError(t, err)

	_, err = repo.GetCart(ctx, "cart1")
	assert.ErrorIs(t, err, ErrCartCorrupt)
}
