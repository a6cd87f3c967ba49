package journal

import (
	"context"

	"mindnest-svc/src/clients"
	"mindnest-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]*Entry, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, entryID string) error
}

type journalRepository struct {
	collection *mongo.Collection
}

func NewJournalRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	collection := mongoClient.Database.Collection(collectionName)
	return &journalRepository{collection: collection}
}

func (r *journalRepository) Create(ctx context.Context, entry *Entry) (*Entry, error) {
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		logrus.WithError(err).WithField("user_id", entry.UserID).Error("Failed to insert journal entry")
		return nil, models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}

	return entry, nil
}

// ListByUser returns the user's entries newest first. A limit of 0 returns all.
func (r *journalRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]*Entry, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to find journal entries")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var entries []*Entry
	for cursor.Next(ctx) {
		var entry Entry
		if err := cursor.Decode(&entry); err != nil {
			logrus.WithError(err).Error("Failed to decode journal entry")
			continue
		}
		entries = append(entries, &entry)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return entries, nil
}

func (r *journalRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to count journal entries")
		return 0, models.ErrDatabaseQuery
	}
	return count, nil
}

// Delete removes an entry only if it belongs to the requesting user.
func (r *journalRepository) Delete(ctx context.Context, userID, entryID string) error {
	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return models.ErrInvalidParams
	}

	filter := bson.M{"_id": oid, "user_id": userID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		logrus.WithError(err).WithField("entry_id", entryID).Error("Failed to delete journal entry")
		return models.ErrDatabaseDelete
	}

	if result.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}
