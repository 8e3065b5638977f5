package repository

import (
	"context"
	"fmt"

	"pdf-chatbot-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AIRepository implements SummaryRepository, QARepository, and TranslationRepository.
type AIRepository struct {
	summaries    *mongo.Collection
	interactions *mongo.Collection
	translations *mongo.Collection
	logger       domain.Logger
}

func NewAIRepository(client *MongoClient, logger domain.Logger) *AIRepository {
	return &AIRepository{
		summaries:    client.Collection(CollectionSummaries),
		interactions: client.Collection(CollectionQAInteractions),
		translations: client.Collection(CollectionTranslations),
		logger:       logger,
	}
}

// --- SummaryRepository Implementation ---

// SaveSummary inserts a summary. A non-empty UserID must be a valid ObjectID hex.
func (r *AIRepository) SaveSummary(ctx context.Context, record *domain.SummaryRecord) error {
	doc := summaryDocument{
		OriginalText: record.OriginalText,
		Summary:      record.Summary,
		CreatedAt:    record.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = nowUTC()
		record.CreatedAt = doc.CreatedAt
	}
	if record.UserID != "" {
		oid, err := parseObjectID(record.UserID)
		if err != nil {
			return err
		}
		doc.UserID = &oid
	}

	res, err := r.summaries.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	record.ID = insertedID(res.InsertedID)
	return nil
}

// ListByUserID returns the user's summaries, newest first
func (r *AIRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.SummaryRecord, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.summaries.Find(ctx, bson.M{"user_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []summaryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode summaries: %w", err)
	}

	records := make([]*domain.SummaryRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toDomain())
	}
	return records, nil
}

// --- QARepository Implementation ---

func (r *AIRepository) SaveInteraction(ctx context.Context, interaction *domain.QAInteraction) error {
	if interaction.Timestamp.IsZero() {
		interaction.Timestamp = nowUTC()
	}

	res, err := r.interactions.InsertOne(ctx, qaDocument{
		Question:  interaction.Question,
		Context:   interaction.Context,
		Answer:    interaction.Answer,
		Timestamp: interaction.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}
	interaction.ID = insertedID(res.InsertedID)
	return nil
}

// --- TranslationRepository Implementation ---

func (r *AIRepository) SaveTranslation(ctx context.Context, record *domain.TranslationRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = nowUTC()
	}

	res, err := r.translations.InsertOne(ctx, translationDocument{
		OriginalText:       record.OriginalText,
		TranslatedText:     record.TranslatedText,
		TargetLanguage:     record.TargetLanguage,
		TargetLanguageName: record.TargetLanguageName,
		Timestamp:          record.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to save translation: %w", err)
	}
	record.ID = insertedID(res.InsertedID)
	return nil
}
