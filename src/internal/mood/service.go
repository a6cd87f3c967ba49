package mood

import (
	"context"
	"strconv"

	"mindnest-svc/src/internal/clock"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultMoodValue is the neutral check-in used when no usable value is submitted.
	DefaultMoodValue = 3

	chartLabelFormat = "02 Jan"
)

type Service interface {
	CreateLog(ctx context.Context, userID string, req *CreateLogRequest) (*Log, error)
	ListLogs(ctx context.Context, userID string) ([]*Log, error)
	RecentLogs(ctx context.Context, userID string, limit int64) ([]*Log, error)
	CountLogs(ctx context.Context, userID string) (int64, error)
	RecentSeries(ctx context.Context, userID string, limit int64) (*ChartSeries, error)
}

type moodService struct {
	repository Repository
	clk        clock.Clock
}

func NewMoodService(repository Repository, clk clock.Clock) Service {
	return &moodService{
		repository: repository,
		clk:        clk,
	}
}

// ParseMoodValue converts a submitted mood value, falling back to the
// neutral default when the input is not a number.
func ParseMoodValue(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultMoodValue
	}
	return value
}

func (s *moodService) CreateLog(ctx context.Context, userID string, req *CreateLogRequest) (*Log, error) {
	log := &Log{
		UserID:       userID,
		MoodValue:    ParseMoodValue(req.MoodValue),
		EmotionLabel: req.EmotionLabel,
		Note:         req.Note,
		CreatedAt:    s.clk.Now(),
	}

	created, err := s.repository.Create(ctx, log)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"mood_value": created.MoodValue,
	}).Info("Mood check-in saved")

	return created, nil
}

func (s *moodService) ListLogs(ctx context.Context, userID string) ([]*Log, error) {
	return s.repository.ListByUser(ctx, userID, 0)
}

func (s *moodService) RecentLogs(ctx context.Context, userID string, limit int64) ([]*Log, error) {
	return s.repository.ListByUser(ctx, userID, limit)
}

func (s *moodService) CountLogs(ctx context.Context, userID string) (int64, error) {
	return s.repository.CountByUser(ctx, userID)
}

// RecentSeries prepares the most recent logs for charting, oldest first.
func (s *moodService) RecentSeries(ctx context.Context, userID string, limit int64) (*ChartSeries, error) {
	logs, err := s.repository.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return BuildSeries(logs), nil
}

// BuildSeries converts newest-first logs into a chart series, oldest first.
func BuildSeries(logs []*Log) *ChartSeries {
	series := &ChartSeries{
		Labels: make([]string, 0, len(logs)),
		Values: make([]int, 0, len(logs)),
	}

	for i := len(logs) - 1; i >= 0; i-- {
		series.Labels = append(series.Labels, logs[i].CreatedAt.Format(chartLabelFormat))
		series.Values = append(series.Values, logs[i].MoodValue)
	}

	return series
}
