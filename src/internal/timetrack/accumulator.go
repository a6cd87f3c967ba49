package timetrack

import (
	"context"
	"strconv"
	"time"

	"mindnest-svc/src/internal/clock"
	"mindnest-svc/src/internal/models"

	"github.com/sirupsen/logrus"
)

// CheckpointStore holds the per-session checkpoint: the last instant at
// which active time was reconciled into the user's persistent total.
type CheckpointStore interface {
	GetCheckpoint(ctx context.Context, userID, sessionID string) (time.Time, bool, error)
	SetCheckpoint(ctx context.Context, userID, sessionID string, start time.Time) error
}

// TotalStore persists the lifetime minute total. Increments only; the total
// never decreases.
type TotalStore interface {
	IncrementTotalMinutes(ctx context.Context, userID string, minutes int64) error
}

// ActivityPublisher receives a notification whenever minutes are credited.
type ActivityPublisher interface {
	PublishActivityWithMetadata(userID, sessionID, serviceName, action string, metadata map[string]string) error
}

// Accumulator credits elapsed whole minutes of active session time to a
// user's lifetime total. One Tick per tracked request.
type Accumulator struct {
	checkpoints CheckpointStore
	totals      TotalStore
	clk         clock.Clock
	publisher   ActivityPublisher
}

func NewAccumulator(checkpoints CheckpointStore, totals TotalStore, clk clock.Clock, publisher ActivityPublisher) *Accumulator {
	return &Accumulator{
		checkpoints: checkpoints,
		totals:      totals,
		clk:         clk,
		publisher:   publisher,
	}
}

// Tick reconciles elapsed session time into the user's persistent total.
//
// The first tick of a session writes the baseline and credits nothing.
// Later ticks credit floor(elapsed/60) minutes; when nothing is credited
// the checkpoint stays put, so sub-minute remainders accumulate across
// requests. When minutes are credited the checkpoint advances by exactly
// the credited amount, preserving the remainder.
//
// Tick never returns an error: store failures are logged and the credit is
// simply deferred to a future tick. The checkpoint advances only after the
// total has been persisted.
func (a *Accumulator) Tick(ctx context.Context, userID, sessionID string) {
	if userID == "" || sessionID == "" {
		return
	}

	now := a.clk.Now()

	start, found, err := a.checkpoints.GetCheckpoint(ctx, userID, sessionID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to read time checkpoint, skipping tick")
		return
	}

	if !found {
		if err := a.checkpoints.SetCheckpoint(ctx, userID, sessionID, now); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("Failed to write baseline checkpoint")
		}
		return
	}

	elapsed := now.Sub(start)
	if elapsed < 0 {
		// Clock went backwards; never credit negative time.
		elapsed = 0
	}

	minutes := int64(elapsed / time.Minute)
	if minutes < 1 {
		return
	}

	if err := a.totals.IncrementTotalMinutes(ctx, userID, minutes); err != nil {
		// Checkpoint stays put: the next successful tick credits the
		// whole interval instead.
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"minutes": minutes,
		}).Warn("Failed to credit session minutes, deferring to next tick")
		return
	}

	newStart := start.Add(time.Duration(minutes) * time.Minute)
	if err := a.checkpoints.SetCheckpoint(ctx, userID, sessionID, newStart); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to advance checkpoint after credit")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"session_id": sessionID,
		"minutes":    minutes,
	}).Debug("Session minutes credited")

	if a.publisher != nil {
		if err := a.publisher.PublishActivityWithMetadata(userID, sessionID, models.ServiceTimeTrack, models.ActionTimeCredited,
			map[string]string{"minutes": strconv.FormatInt(minutes, 10)}); err != nil {
			logrus.WithError(err).Debug("Failed to publish time credit activity")
		}
	}
}

// Baseline establishes a fresh checkpoint at login without crediting time.
func (a *Accumulator) Baseline(ctx context.Context, userID, sessionID string) {
	if userID == "" || sessionID == "" {
		return
	}
	if err := a.checkpoints.SetCheckpoint(ctx, userID, sessionID, a.clk.Now()); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to write login checkpoint")
	}
}
