package repository

import (
	"context"
	"fmt"

	"pdf-chatbot-api/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// DocumentRepository implements the domain.DocumentRepository interface
type DocumentRepository struct {
	collection *mongo.Collection
	logger     domain.Logger
}

// NewDocumentRepository creates a repository over the pdf_texts collection
func NewDocumentRepository(client *MongoClient, logger domain.Logger) domain.DocumentRepository {
	return &DocumentRepository{
		collection: client.Collection(CollectionPDFTexts),
		logger:     logger,
	}
}

// Store inserts the extracted text of one upload
func (r *DocumentRepository) Store(ctx context.Context, document *domain.ExtractedDocument) error {
	if document.Timestamp.IsZero() {
		document.Timestamp = nowUTC()
	}

	res, err := r.collection.InsertOne(ctx, pdfTextDocument{
		Filename:  document.Filename,
		Text:      document.Text,
		Timestamp: document.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to store extracted text: %w", err)
	}

	document.ID = insertedID(res.InsertedID)
	r.logger.Debug("Extracted text stored", "id", document.ID, "filename", document.Filename)
	return nil
}
