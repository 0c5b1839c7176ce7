package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("carts"),
	}
}

func (m *MongoRepository) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"_id": cartID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		if isDecodeError(err) {
			return nil, fmt.Errorf("%w: %v", ErrCartCorrupt, err)
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (m *MongoRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()

	if cart.Version == 0 {
		// First save: the document must not exist yet. A duplicate-key
		// error means another caller created it concurrently.
		fresh := *cart
		fresh.Version = 1
		fresh.CreatedAt = now
		fresh.UpdatedAt = now

		_, err := m.collection.InsertOne(ctx, &fresh)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrVersionConflict
			}
			return fmt.Errorf("failed to insert cart: %w", err)
		}
		*cart = fresh
		return nil
	}

	filter := bson.M{"_id": cart.ID, "version": cart.Version}
	update := bson.M{
		"$set": bson.M{
			"items":      cart.Items,
			"version":    cart.Version + 1,
			"updated_at": now,
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}

	cart.Version++
	cart.UpdatedAt = now
	return nil
}

func (m *MongoRepository) DeleteCart(ctx context.Context, cartID string) error {
	filter := bson.M{"_id": cartID}

	// Clearing an absent cart is not an error.
	if _, err := m.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// isDecodeError distinguishes an unreadable stored document from a
// transport failure so reads can fail soft per the availability policy.
func isDecodeError(err error) bool {
	var decodeErr *bsoncodec.DecodeError
	return errors.As(err, &decodeErr)
}
