package session

import (
	"context"
	"errors"
	"time"

	"mindnest-svc/src/clients"
	"mindnest-svc/src/internal/clock"
	"mindnest-svc/src/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Create(ctx context.Context, userID string, lifetime time.Duration) (*Session, error)
	GetByID(ctx context.Context, sessionID string) (*Session, error)
	UpdateActivity(ctx context.Context, sessionID string) error
	Close(ctx context.Context, sessionID string) error
}

type repository struct {
	collection *mongo.Collection
	clk        clock.Clock
}

func NewSessionRepository(db *clients.MongoDB, collectionName string, clk clock.Clock) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection, clk: clk}
}

func (r *repository) Create(ctx context.Context, userID string, lifetime time.Duration) (*Session, error) {
	now := r.clk.Now()
	session := &Session{
		SessionID:    uuid.NewString(),
		UserID:       userID,
		IsActive:     true,
		CreatedAt:    now,
		ExpiresAt:    now.Add(lifetime),
		LastActiveAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create session")
		return nil, models.ErrSessionCreating
	}

	return session, nil
}

func (r *repository) GetByID(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	filter := bson.M{"session_id": sessionID}

	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to get session")
		return nil, models.ErrDatabaseQuery
	}

	return &session, nil
}

func (r *repository) UpdateActivity(ctx context.Context, sessionID string) error {
	filter := bson.M{
		"session_id": sessionID,
		"is_active":  true,
	}

	update := bson.M{
		"$set": bson.M{
			"last_active_at": r.clk.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to update session activity")
		return models.ErrSessionUpdating
	}

	return nil
}

func (r *repository) Close(ctx context.Context, sessionID string) error {
	now := r.clk.Now()
	filter := bson.M{"session_id": sessionID}

	update := bson.M{
		"$set": bson.M{
			"is_active": false,
			"logout_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to close session")
		return models.ErrSessionClosing
	}

	return nil
}
