package dashboard

import (
	"context"

	"mindnest-svc/src/internal/clock"
	"mindnest-svc/src/internal/journal"
	"mindnest-svc/src/internal/mood"
	"mindnest-svc/src/internal/user"

	"github.com/sirupsen/logrus"
)

const (
	recentEntriesLimit = 5
	recentMoodsLimit   = 7
)

// Overview is the dashboard payload.
type Overview struct {
	Quote         Quote             `json:"quote"`
	TotalEntries  int64             `json:"totalEntries"`
	TotalMoods    int64             `json:"totalMoods"`
	RecentEntries []*journal.Entry  `json:"recentEntries"`
	MoodChart     *mood.ChartSeries `json:"moodChart"`
	TotalMinutes  int64             `json:"totalMinutes"`
}

type Service interface {
	Overview(ctx context.Context, userID string) (*Overview, error)
}

type dashboardService struct {
	users    user.Service
	journals journal.Service
	moods    mood.Service
	clk      clock.Clock
}

func NewDashboardService(users user.Service, journals journal.Service, moods mood.Service, clk clock.Clock) Service {
	return &dashboardService{
		users:    users,
		journals: journals,
		moods:    moods,
		clk:      clk,
	}
}

func (s *dashboardService) Overview(ctx context.Context, userID string) (*Overview, error) {
	profile, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalEntries, err := s.journals.CountEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalMoods, err := s.moods.CountLogs(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentEntries, err := s.journals.RecentEntries(ctx, userID, recentEntriesLimit)
	if err != nil {
		return nil, err
	}
	if recentEntries == nil {
		recentEntries = []*journal.Entry{}
	}

	moodChart, err := s.moods.RecentSeries(ctx, userID, recentMoodsLimit)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":       userID,
		"total_entries": totalEntries,
		"total_moods":   totalMoods,
	}).Debug("Dashboard overview assembled")

	return &Overview{
		Quote:         DailyQuote(s.clk.Now()),
		TotalEntries:  totalEntries,
		TotalMoods:    totalMoods,
		RecentEntries: recentEntries,
		MoodChart:     moodChart,
		TotalMinutes:  profile.TotalMinutes,
	}, nil
}
