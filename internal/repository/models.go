package repository

import (
	"fmt"
	"time"

	"pdf-chatbot-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection: users
type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// Collection: pdf_texts
type pdfTextDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Filename  string             `bson:"filename"`
	Text      string             `bson:"text"`
	Timestamp time.Time          `bson:"timestamp"`
}

// Collection: summaries
type summaryDocument struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	UserID       *primitive.ObjectID `bson:"user_id,omitempty"`
	OriginalText string              `bson:"original_text"`
	Summary      string              `bson:"summary"`
	CreatedAt    time.Time           `bson:"created_at"`
}

func (d *summaryDocument) toDomain() *domain.SummaryRecord {
	record := &domain.SummaryRecord{
		ID:           d.ID.Hex(),
		OriginalText: d.OriginalText,
		Summary:      d.Summary,
		CreatedAt:    d.CreatedAt,
	}
	if d.UserID != nil {
		record.UserID = d.UserID.Hex()
	}
	return record
}

// Collection: qa_interactions
type qaDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Question  string             `bson:"question"`
	Context   string             `bson:"context"`
	Answer    string             `bson:"answer"`
	Timestamp time.Time          `bson:"timestamp"`
}

// Collection: translations
type translationDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	OriginalText       string             `bson:"original_text"`
	TranslatedText     string             `bson:"translated_text"`
	TargetLanguage     string             `bson:"target_language"`
	TargetLanguageName string             `bson:"target_language_name"`
	Timestamp          time.Time          `bson:"timestamp"`
}

// parseObjectID converts a hex id, wrapping domain.ErrInvalidID on failure.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return oid, nil
}

// insertedID returns the hex form of an InsertOne result id.
func insertedID(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

// nowUTC is replaced in tests.
var nowUTC = func() time.Time { return time.Now().UTC() }
