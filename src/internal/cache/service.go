package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mindnest-svc/src/internal/config"
	"mindnest-svc/src/internal/models"
	"mindnest-svc/src/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Service is the Redis-backed session state store. It holds the per-session
// time-tracking checkpoint, cached active sessions for the auth middleware,
// and the admin user-summary payload.
type Service interface {
	GetCheckpoint(ctx context.Context, userID, sessionID string) (time.Time, bool, error)
	SetCheckpoint(ctx context.Context, userID, sessionID string, start time.Time) error
	ClearCheckpoint(ctx context.Context, userID, sessionID string) error

	GetActiveSession(ctx context.Context, key string) (*session.Session, error)
	UpdateSessionActivity(ctx context.Context, key string) error
	CacheActiveSession(ctx context.Context, session *session.Session) error
	DeleteActiveSession(ctx context.Context, userID, sessionID string) error

	SaveUserSummaries(ctx context.Context, summaries []*models.UserSummary) error
	GetUserSummaries(ctx context.Context) ([]*models.UserSummary, error)
}

type cacheService struct {
	client     *redis.Client
	cfg        *config.CacheConfig
	sessionTTL time.Duration
}

func NewCacheService(client *redis.Client, cfg *config.Configuration) Service {
	return &cacheService{
		client:     client,
		cfg:        &cfg.Cache,
		sessionTTL: time.Duration(cfg.Session.ExpirationMinutes) * time.Minute,
	}
}

const (
	checkpointKeyPattern = "checkpoint:%s:%s" // checkpoint:userID:sessionID
	sessionKeyPattern    = "session:%s:%s"    // session:userID:sessionID
)

func checkpointKey(userID, sessionID string) string {
	return fmt.Sprintf(checkpointKeyPattern, userID, sessionID)
}

// GetCheckpoint reads the session time-tracking checkpoint. A missing key is
// reported as absent, not as an error.
func (c *cacheService) GetCheckpoint(ctx context.Context, userID, sessionID string) (time.Time, bool, error) {
	key := checkpointKey(userID, sessionID)

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get checkpoint from cache")
		return time.Time{}, false, models.ErrRedisGet
	}

	start, err := time.Parse(time.RFC3339Nano, data)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to parse checkpoint value")
		return time.Time{}, false, models.ErrRedisGet
	}

	return start, true, nil
}

// SetCheckpoint writes the checkpoint. The entry lives as long as the login
// session it belongs to.
func (c *cacheService) SetCheckpoint(ctx context.Context, userID, sessionID string, start time.Time) error {
	key := checkpointKey(userID, sessionID)

	err := c.client.Set(ctx, key, start.Format(time.RFC3339Nano), c.sessionTTL).Err()
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to set checkpoint")
		return models.ErrRedisSet
	}

	return nil
}

func (c *cacheService) ClearCheckpoint(ctx context.Context, userID, sessionID string) error {
	key := checkpointKey(userID, sessionID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to clear checkpoint")
		return models.ErrRedisDelete
	}

	return nil
}

func (c *cacheService) GetActiveSession(ctx context.Context, key string) (*session.Session, error) {
	logrus.WithField("key", key).Debug("Getting active session from cache")

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.WithField("key", key).Debug("Session not found in cache")
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get session from cache")
		return nil, models.ErrRedisGet
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to unmarshal session from cache")
		return nil, models.ErrRedisGet
	}

	return &sess, nil
}

func (c *cacheService) UpdateSessionActivity(ctx context.Context, key string) error {
	sess, err := c.GetActiveSession(ctx, key)
	if err != nil || sess == nil {
		return err
	}

	sess.LastActiveAt = time.Now()

	data, err := json.Marshal(sess)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal session for activity update")
		return models.ErrRedisSet
	}

	extendedTTL := time.Duration(c.cfg.SessionExpirationMinutes) * time.Minute
	if err := c.client.Set(ctx, key, data, extendedTTL).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to update session activity")
		return models.ErrRedisSet
	}

	return nil
}

func (c *cacheService) CacheActiveSession(ctx context.Context, sess *session.Session) error {
	key := fmt.Sprintf(sessionKeyPattern, sess.UserID, sess.SessionID)

	data, err := json.Marshal(sess)
	if err != nil {
		logrus.WithError(err).WithField("session_id", sess.SessionID).Error("Failed to marshal session for cache")
		return models.ErrRedisSet
	}

	expiration := time.Until(sess.LastActiveAt.Add(time.Minute * time.Duration(c.cfg.SessionExpirationMinutes)))
	if expiration <= 0 {
		logrus.WithField("session_id", sess.SessionID).Warn("Session already expired, not caching")
		return nil
	}

	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		logrus.WithError(err).WithField("session_id", sess.SessionID).Error("Failed to cache session")
		return models.ErrRedisSet
	}

	logrus.WithField("session_id", sess.SessionID).Debug("Session cached successfully")
	return nil
}

func (c *cacheService) DeleteActiveSession(ctx context.Context, userID, sessionID string) error {
	key := fmt.Sprintf(sessionKeyPattern, userID, sessionID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to delete cached session")
		return models.ErrRedisDelete
	}

	return nil
}

func (c *cacheService) SaveUserSummaries(ctx context.Context, summaries []*models.UserSummary) error {
	data, err := json.Marshal(summaries)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal user summaries for cache")
		return models.ErrRedisSet
	}

	expiration := time.Duration(c.cfg.UserSummaryExpirationMinutes) * time.Minute
	if err := c.client.Set(ctx, c.cfg.UserSummaryKey, data, expiration).Err(); err != nil {
		logrus.WithError(err).Error("Failed to cache user summaries")
		return models.ErrRedisSet
	}
	return nil
}

func (c *cacheService) GetUserSummaries(ctx context.Context) ([]*models.UserSummary, error) {
	data, err := c.client.Get(ctx, c.cfg.UserSummaryKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.Debug("User summaries not found in cache")
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).Error("Failed to get user summaries from cache")
		return nil, models.ErrRedisGet
	}

	var summaries []*models.UserSummary
	if err := json.Unmarshal([]byte(data), &summaries); err != nil {
		logrus.WithError(err).Error("Failed to unmarshal user summaries from cache")
		return nil, models.ErrRedisGet
	}

	return summaries, nil
}
