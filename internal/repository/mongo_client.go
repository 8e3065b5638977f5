package repository

import (
	"context"
	"errors"
	"fmt"

	"pdf-chatbot-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"
)

// Collection names inside the chatbot database
const (
	CollectionUsers          = "users"
	CollectionPDFTexts       = "pdf_texts"
	CollectionSummaries      = "summaries"
	CollectionQAInteractions = "qa_interactions"
	CollectionTranslations   = "translations"
)

// Collections lists every collection the service writes to.
var Collections = []string{
	CollectionUsers,
	CollectionPDFTexts,
	CollectionSummaries,
	CollectionQAInteractions,
	CollectionTranslations,
}

// MongoClient owns the connection to the document store
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
	config domain.Config
	logger domain.Logger
}

// CollectionStats is the document count of one collection
type CollectionStats struct {
	Name  string
	Count int64
}

// NewMongoClient creates a new, not yet connected, MongoDB client
func NewMongoClient(config domain.Config, logger domain.Logger) *MongoClient {
	return &MongoClient{
		config: config,
		logger: logger,
	}
}

// Initialize connects to MongoDB and verifies the connection with a ping
func (m *MongoClient) Initialize(ctx context.Context) error {
	uri := m.config.GetMongoURI()
	if uri == "" {
		return fmt.Errorf("MongoDB URI must be provided")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.client = client
	m.db = client.Database(m.config.GetMongoDatabase())
	m.logger.Info("MongoDB client initialized successfully", "database", m.config.GetMongoDatabase())
	return nil
}

// Database returns the configured database handle
func (m *MongoClient) Database() *mongo.Database {
	return m.db
}

// Collection returns a handle to the named collection
func (m *MongoClient) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// EnsureIndexes creates the unique username index and the per-user summaries
// index. Safe to call repeatedly.
func (m *MongoClient) EnsureIndexes(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("MongoDB client not initialized")
	}

	_, err := m.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}

	_, err = m.Collection(CollectionSummaries).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("user_created_at"),
	})
	if err != nil {
		return fmt.Errorf("failed to create summaries index: %w", err)
	}
	return nil
}

// EnsureCollections creates any missing collection, then the indexes
func (m *MongoClient) EnsureCollections(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("MongoDB client not initialized")
	}

	existing, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	for _, name := range Collections {
		if have[name] {
			continue
		}
		if err := m.db.CreateCollection(ctx, name); err != nil {
			var cmdErr mongo.CommandError
			// 48 is NamespaceExists, returned when another process created it first
			if errors.As(err, &cmdErr) && cmdErr.Code == 48 {
				continue
			}
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
		m.logger.Info("Collection created", "collection", name)
	}

	return m.EnsureIndexes(ctx)
}

// DatabaseNames lists the databases visible to the connection
func (m *MongoClient) DatabaseNames(ctx context.Context) ([]string, error) {
	if m.client == nil {
		return nil, fmt.Errorf("MongoDB client not initialized")
	}
	return m.client.ListDatabaseNames(ctx, bson.D{})
}

// Stats counts the documents of every collection in the database concurrently
func (m *MongoClient) Stats(ctx context.Context) ([]CollectionStats, error) {
	if m.db == nil {
		return nil, fmt.Errorf("MongoDB client not initialized")
	}

	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	stats := make([]CollectionStats, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			count, err := m.Collection(name).CountDocuments(gctx, bson.D{})
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", name, err)
			}
			stats[i] = CollectionStats{Name: name, Count: count}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// Close disconnects from MongoDB
func (m *MongoClient) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	m.logger.Info("MongoDB client disconnected")
	return nil
}
