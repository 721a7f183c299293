package service

import (
	"context"
	"time"

	"notely/internal/model"
)

const (
	defaultLoginLogLimit = 50
	maxLoginLogLimit     = 100
)

// StatsService computes read-side aggregations on demand; nothing here is
// cached or precomputed.
type StatsService struct {
	stats  StatsStore
	logins LoginEventStore
}

func NewStatsService(stats StatsStore, logins LoginEventStore) *StatsService {
	return &StatsService{stats: stats, logins: logins}
}

func (s *StatsService) Overview(ctx context.Context) (model.Statistics, error) {
	totalUsers, err := s.stats.CountUsers(ctx)
	if err != nil {
		return model.Statistics{}, err
	}

	totalNotes, err := s.stats.CountNotes(ctx)
	if err != nil {
		return model.Statistics{}, err
	}

	activeUsers, err := s.stats.CountActiveSince(ctx, time.Now().UTC().Add(-7*24*time.Hour))
	if err != nil {
		return model.Statistics{}, err
	}

	avg := 0.0
	if totalUsers > 0 {
		avg = float64(totalNotes) / float64(totalUsers)
	}

	return model.Statistics{
		TotalUsers:           totalUsers,
		TotalNotes:           totalNotes,
		AvgNotesPerUser:      avg,
		ActiveUsersLast7Days: activeUsers,
	}, nil
}

func (s *StatsService) RecentLogins(ctx context.Context, limit int) ([]model.LoginEvent, error) {
	if limit <= 0 {
		limit = defaultLoginLogLimit
	}
	if limit > maxLoginLogLimit {
		limit = maxLoginLogLimit
	}

	return s.logins.RecentSuccessful(ctx, limit)
}
