package mood

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
	Create(ctx context.Context, log *Log) (*Log, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]*Log, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type moodRepository struct {
	collection *mongo.Collection
}

func NewMoodRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	collection := mongoClient.Database.Collection(collectionName)
	return &moodRepository{collection: collection}
}

func (r *moodRepository) Create(ctx context.Context, log *Log) (*Log, error) {
	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		logrus.WithError(err).WithField("user_id", log.UserID).Error("Failed to insert mood log")
		return nil, models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		log.ID = oid
	}

	return log, nil
}

// ListByUser returns the user's mood logs newest first. A limit of 0 returns all.
func (r *moodRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]*Log, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to find mood logs")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var logs []*Log
	for cursor.Next(ctx) {
		var log Log
		if err := cursor.Decode(&log); err != nil {
			logrus.WithError(err).Error("Failed to decode mood log")
			continue
		}
		logs = append(logs, &log)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return logs, nil
}

func (r *moodRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to count mood logs")
		return 0, models.ErrDatabaseQuery
	}
	return count, nil
}
