package repository

import (
	"context"
	"errors"
	"fmt"

	"pdf-chatbot-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepository implements the domain.UserRepository interface
type MongoUserRepository struct {
	collection *mongo.Collection
	logger     domain.Logger
}

// NewUserRepository creates a new MongoDB user repository
func NewUserRepository(client *MongoClient, logger domain.Logger) domain.UserRepository {
	return &MongoUserRepository{
		collection: client.Collection(CollectionUsers),
		logger:     logger,
	}
}

// Create inserts a user and fills in its id. A username taken by a concurrent
// insert surfaces as domain.ErrDuplicateUsername through the unique index.
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = nowUTC()
	}

	doc := userDocument{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateUsername
		}
		r.logger.Error("Failed to insert user", err, "username", user.Username)
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = insertedID(res.InsertedID)
	return nil
}

// GetByUsername fetches a user by exact username
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toDomain(), nil
}

// ExistsByUsername reports whether the username is already registered
func (r *MongoUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count > 0, nil
}
