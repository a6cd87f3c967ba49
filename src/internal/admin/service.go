package admin

import (
	"context"
	"fmt"

	"mindnest-svc/src/internal/journal"
	"mindnest-svc/src/internal/models"
	"mindnest-svc/src/internal/mood"
	"mindnest-svc/src/internal/user"

	"github.com/sirupsen/logrus"
)

const joinedDateFormat = "02 Jan 2006"

type Service interface {
	UserSummaries(ctx context.Context) ([]*models.UserSummary, error)
}

type adminService struct {
	users    user.Repository
	journals journal.Service
	moods    mood.Service
}

func NewAdminService(users user.Repository, journals journal.Service, moods mood.Service) Service {
	return &adminService{
		users:    users,
		journals: journals,
		moods:    moods,
	}
}

// UserSummaries builds the admin panel rows, newest users first.
func (s *adminService) UserSummaries(ctx context.Context) ([]*models.UserSummary, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get users for summaries")
		return nil, err
	}

	summaries := make([]*models.UserSummary, 0, len(users))
	for _, u := range users {
		userID := u.ID.Hex()

		entries, err := s.journals.CountEntries(ctx, userID)
		if err != nil {
			return nil, err
		}

		moods, err := s.moods.CountLogs(ctx, userID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, &models.UserSummary{
			ID:          userID,
			Name:        u.Name,
			Email:       u.Email,
			Joined:      u.CreatedAt.Format(joinedDateFormat),
			Entries:     entries,
			Moods:       moods,
			TimeDisplay: TimeDisplay(u.TotalMinutes),
		})
	}

	logrus.WithField("count", len(summaries)).Debug("User summaries assembled")

	return summaries, nil
}

// TimeDisplay renders tracked minutes the way the admin panel shows them:
// "2h 5m" once a full hour is reached, "45 min" below that.
func TimeDisplay(minutes int64) string {
	hours := minutes / 60
	rem := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, rem)
	}
	return fmt.Sprintf("%d min", minutes)
}
